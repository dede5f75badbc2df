package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"
)

// DefaultClientTypes are created by SeedDefaults when missing.
var DefaultClientTypes = []ClientTypeInput{
	{Name: "External", DisplayName: "External", Description: "External clients with no discount", Privileges: &domain.ClientTypePrivileges{RentDiscount: 0}},
	{Name: "Insurance", DisplayName: "Insurance", Description: "Insurance clients with 10% discount", Privileges: &domain.ClientTypePrivileges{RentDiscount: 10}},
	{Name: "Internal", DisplayName: "Internal", Description: "Internal clients with 30% discount", Privileges: &domain.ClientTypePrivileges{RentDiscount: 30}},
}

type clientTypeService struct {
	clientTypeRepo repository.ClientTypeRepository
}

func NewClientTypeService(clientTypeRepo repository.ClientTypeRepository) ClientTypeService {
	return &clientTypeService{clientTypeRepo: clientTypeRepo}
}

func (s *clientTypeService) ListClientTypes(ctx context.Context) ([]domain.ClientType, error) {
	types, err := s.clientTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []domain.ClientType{}
	}
	return types, nil
}

func (s *clientTypeService) GetClientType(ctx context.Context, id int32) (*domain.ClientType, error) {
	ct, err := s.clientTypeRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrClientTypeNotFound, id)
	}
	return ct, err
}

func (s *clientTypeService) CreateClientType(ctx context.Context, input ClientTypeInput) (*domain.ClientType, error) {
	logger.EnterMethod("clientTypeService.CreateClientType", "name", input.Name)

	input, err := normalizeInput(input)
	if err != nil {
		logger.ExitMethodWithError("clientTypeService.CreateClientType", err, "name", input.Name)
		return nil, err
	}

	existing, err := s.clientTypeRepo.GetByName(ctx, input.Name)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientTypeExists, input.Name)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	ct := &domain.ClientType{Active: true}
	applyInput(ct, input)
	if err := s.clientTypeRepo.Create(ctx, ct); err != nil {
		logger.ExitMethodWithError("clientTypeService.CreateClientType", err, "name", input.Name)
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrClientTypeExists, input.Name)
		}
		return nil, err
	}

	logger.ExitMethod("clientTypeService.CreateClientType", "clientTypeID", ct.ID)
	return ct, nil
}

func (s *clientTypeService) UpdateClientType(ctx context.Context, id int32, input ClientTypeInput) (*domain.ClientType, error) {
	logger.EnterMethod("clientTypeService.UpdateClientType", "clientTypeID", id)

	input, err := normalizeInput(input)
	if err != nil {
		logger.ExitMethodWithError("clientTypeService.UpdateClientType", err, "clientTypeID", id)
		return nil, err
	}

	ct, err := s.GetClientType(ctx, id)
	if err != nil {
		return nil, err
	}
	if ct.Name != input.Name {
		other, err := s.clientTypeRepo.GetByName(ctx, input.Name)
		if err == nil && other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: %s", ErrClientTypeExists, input.Name)
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	applyInput(ct, input)
	if err := s.clientTypeRepo.Update(ctx, ct); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrClientTypeNotFound, id)
		}
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: %s", ErrClientTypeExists, input.Name)
		}
		logger.ExitMethodWithError("clientTypeService.UpdateClientType", err, "clientTypeID", id)
		return nil, err
	}

	logger.ExitMethod("clientTypeService.UpdateClientType", "clientTypeID", id)
	return ct, nil
}

func (s *clientTypeService) DeleteClientTypes(ctx context.Context, ids []int32) (bool, error) {
	if len(ids) == 0 {
		return false, fmt.Errorf("%w: no ids given", ErrInvalidClientType)
	}
	n, err := s.clientTypeRepo.DeleteMany(ctx, ids)
	if err != nil {
		return false, err
	}
	logger.Info("Client types deleted", "requested", len(ids), "deleted", n)
	return n > 0, nil
}

func (s *clientTypeService) GetClientDiscount(ctx context.Context, userID int32) (int, error) {
	ct, err := s.clientTypeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	warnLegacyOnly(ctx, ct)
	return utils.ResolveDiscount(ct), nil
}

func (s *clientTypeService) MigrateLegacyDiscounts(ctx context.Context) (repository.LegacyMigrationResult, error) {
	res, err := s.clientTypeRepo.MigrateLegacyDiscounts(ctx)
	if err != nil {
		return res, err
	}
	logger.Info("Legacy client type discounts migrated", "migrated", res.Migrated, "cleaned", res.Cleaned)
	return res, nil
}

func (s *clientTypeService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, def := range DefaultClientTypes {
		_, err := s.clientTypeRepo.GetByName(ctx, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return created, err
		}
		if _, err := s.CreateClientType(ctx, def); err != nil {
			return created, fmt.Errorf("failed to seed client type %s: %w", def.Name, err)
		}
		created++
	}
	return created, nil
}

func normalizeInput(input ClientTypeInput) (ClientTypeInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Description = strings.TrimSpace(input.Description)

	if input.Name == "" {
		return input, fmt.Errorf("%w: name is required", ErrInvalidClientType)
	}
	if input.DisplayName == "" {
		return input, fmt.Errorf("%w: display name is required", ErrInvalidClientType)
	}
	if input.Privileges == nil {
		return input, fmt.Errorf("%w: privileges are required", ErrInvalidClientType)
	}
	if d := input.Privileges.RentDiscount; d < 0 || d > 100 {
		return input, fmt.Errorf("%w: rent discount must be between 0 and 100, got %d", ErrInvalidClientType, d)
	}
	return input, nil
}

func applyInput(ct *domain.ClientType, input ClientTypeInput) {
	ct.Name = input.Name
	ct.DisplayName = input.DisplayName
	ct.Description = input.Description
	privileges := *input.Privileges
	ct.Privileges = &privileges
	if input.Active != nil {
		ct.Active = *input.Active
	}
}
