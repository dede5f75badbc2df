package service

import (
	"context"
	"fmt"
	"testing"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
}

func TestClientTypeService_CreateClientType(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)

		repo.On("GetByName", ctx, "insurance").Return(nil, notFound("insurance"))
		repo.On("Create", ctx, mock.MatchedBy(func(ct *domain.ClientType) bool {
			return ct.Name == "insurance" && ct.DisplayName == "Insurance" && ct.Active && ct.Privileges.RentDiscount == 10
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.ClientType).ID = 3
		}).Return(nil)

		ct, err := svc.CreateClientType(ctx, ClientTypeInput{
			Name:        "  insurance ",
			DisplayName: "Insurance",
			Privileges:  &domain.ClientTypePrivileges{RentDiscount: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, int32(3), ct.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate name", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("GetByName", ctx, "insurance").Return(&domain.ClientType{ID: 1, Name: "insurance"}, nil)

		_, err := svc.CreateClientType(ctx, ClientTypeInput{Name: "insurance", DisplayName: "Insurance", Privileges: &domain.ClientTypePrivileges{}})
		assert.ErrorIs(t, err, ErrClientTypeExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Concurrent create loses on unique name", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("GetByName", ctx, "insurance").Return(nil, notFound("insurance"))
		repo.On("Create", ctx, mock.AnythingOfType("*domain.ClientType")).
			Return(fmt.Errorf("client type %q: %w", "insurance", repository.ErrAlreadyExists))

		_, err := svc.CreateClientType(ctx, ClientTypeInput{Name: "insurance", DisplayName: "Insurance", Privileges: &domain.ClientTypePrivileges{}})
		assert.ErrorIs(t, err, ErrClientTypeExists)
	})

	invalid := []struct {
		name  string
		input ClientTypeInput
	}{
		{"Blank name", ClientTypeInput{Name: "  ", DisplayName: "X", Privileges: &domain.ClientTypePrivileges{}}},
		{"Blank display name", ClientTypeInput{Name: "x", Privileges: &domain.ClientTypePrivileges{}}},
		{"Missing privileges", ClientTypeInput{Name: "x", DisplayName: "X"}},
		{"Discount above 100", ClientTypeInput{Name: "x", DisplayName: "X", Privileges: &domain.ClientTypePrivileges{RentDiscount: 101}}},
		{"Negative discount", ClientTypeInput{Name: "x", DisplayName: "X", Privileges: &domain.ClientTypePrivileges{RentDiscount: -1}}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockClientTypeRepo)
			svc := NewClientTypeService(repo)

			_, err := svc.CreateClientType(ctx, tt.input)
			assert.ErrorIs(t, err, ErrInvalidClientType)
			repo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
		})
	}
}

func TestClientTypeService_UpdateClientType(t *testing.T) {
	ctx := context.Background()

	t.Run("Success clears legacy discount", func(t *testing.T) {
		legacy := 30
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)

		existing := &domain.ClientType{ID: 2, Name: "internal", DisplayName: "Internal", Active: true, LegacyDiscount: &legacy, DiscountSource: domain.DiscountSourceLegacy}
		repo.On("GetByID", ctx, int32(2)).Return(existing, nil)
		repo.On("Update", ctx, existing).Return(nil)

		inactive := false
		ct, err := svc.UpdateClientType(ctx, 2, ClientTypeInput{
			Name:        "internal",
			DisplayName: "Internal staff",
			Privileges:  &domain.ClientTypePrivileges{RentDiscount: 30},
			Active:      &inactive,
		})
		require.NoError(t, err)
		assert.Equal(t, "Internal staff", ct.DisplayName)
		assert.Equal(t, 30, ct.Privileges.RentDiscount)
		assert.False(t, ct.Active)
		repo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("GetByID", ctx, int32(8)).Return(nil, notFound("client type 8"))

		_, err := svc.UpdateClientType(ctx, 8, ClientTypeInput{Name: "x", DisplayName: "X", Privileges: &domain.ClientTypePrivileges{}})
		assert.ErrorIs(t, err, ErrClientTypeNotFound)
	})

	t.Run("Rename onto an existing name", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("GetByID", ctx, int32(2)).Return(&domain.ClientType{ID: 2, Name: "internal"}, nil)
		repo.On("GetByName", ctx, "external").Return(&domain.ClientType{ID: 1, Name: "external"}, nil)

		_, err := svc.UpdateClientType(ctx, 2, ClientTypeInput{Name: "external", DisplayName: "External", Privileges: &domain.ClientTypePrivileges{}})
		assert.ErrorIs(t, err, ErrClientTypeExists)
	})

	t.Run("Concurrent rename loses on unique name", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("GetByID", ctx, int32(2)).Return(&domain.ClientType{ID: 2, Name: "internal"}, nil)
		repo.On("GetByName", ctx, "partner").Return(nil, notFound("partner"))
		repo.On("Update", ctx, mock.AnythingOfType("*domain.ClientType")).
			Return(fmt.Errorf("client type %q: %w", "partner", repository.ErrAlreadyExists))

		_, err := svc.UpdateClientType(ctx, 2, ClientTypeInput{Name: "partner", DisplayName: "Partner", Privileges: &domain.ClientTypePrivileges{}})
		assert.ErrorIs(t, err, ErrClientTypeExists)
	})
}

func TestClientTypeService_DeleteClientTypes(t *testing.T) {
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("DeleteMany", ctx, []int32{1, 2}).Return(int64(2), nil)

		deleted, err := svc.DeleteClientTypes(ctx, []int32{1, 2})
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("Nothing matched", func(t *testing.T) {
		repo := new(MockClientTypeRepo)
		svc := NewClientTypeService(repo)
		repo.On("DeleteMany", ctx, []int32{9}).Return(int64(0), nil)

		deleted, err := svc.DeleteClientTypes(ctx, []int32{9})
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("No ids", func(t *testing.T) {
		svc := NewClientTypeService(new(MockClientTypeRepo))
		_, err := svc.DeleteClientTypes(ctx, nil)
		assert.ErrorIs(t, err, ErrInvalidClientType)
	})
}

func TestClientTypeService_GetClientDiscount(t *testing.T) {
	ctx := context.Background()
	legacy := 25

	tests := []struct {
		name     string
		ct       *domain.ClientType
		expected int
	}{
		{"No client type", nil, 0},
		{"Privileges", &domain.ClientType{Active: true, Privileges: &domain.ClientTypePrivileges{RentDiscount: 10}}, 10},
		{"Legacy only", &domain.ClientType{Name: "old", Active: true, DiscountSource: domain.DiscountSourceLegacy, LegacyDiscount: &legacy}, 0},
		{"Inactive", &domain.ClientType{Active: false, Privileges: &domain.ClientTypePrivileges{RentDiscount: 10}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockClientTypeRepo)
			svc := NewClientTypeService(repo)
			if tt.ct == nil {
				repo.On("GetByUserID", ctx, int32(7)).Return(nil, nil)
			} else {
				repo.On("GetByUserID", ctx, int32(7)).Return(tt.ct, nil)
			}

			discount, err := svc.GetClientDiscount(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, discount)
		})
	}
}

func TestClientTypeService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientTypeRepo)
	svc := NewClientTypeService(repo)

	repo.On("GetByName", ctx, "External").Return(&domain.ClientType{ID: 1, Name: "External"}, nil)
	repo.On("GetByName", ctx, "Insurance").Return(nil, notFound("Insurance"))
	repo.On("GetByName", ctx, "Internal").Return(nil, notFound("Internal"))
	repo.On("Create", ctx, mock.MatchedBy(func(ct *domain.ClientType) bool {
		return ct.Name == "Insurance" && ct.Privileges.RentDiscount == 10
	})).Return(nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(ct *domain.ClientType) bool {
		return ct.Name == "Internal" && ct.Privileges.RentDiscount == 30
	})).Return(nil).Once()

	created, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	repo.AssertExpectations(t)
}

func TestClientTypeService_MigrateLegacyDiscounts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientTypeRepo)
	svc := NewClientTypeService(repo)

	repo.On("MigrateLegacyDiscounts", ctx).Return(repository.LegacyMigrationResult{Migrated: 2, Cleaned: 1}, nil)

	res, err := svc.MigrateLegacyDiscounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Migrated)
}

func TestClientTypeService_ListClientTypes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientTypeRepo)
	svc := NewClientTypeService(repo)
	repo.On("List", ctx).Return(nil, nil)

	types, err := svc.ListClientTypes(ctx)
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types)
}
