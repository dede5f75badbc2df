package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockCarRepo
type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}
func (m *MockCarRepo) List(ctx context.Context) ([]domain.Car, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Car), args.Error(1)
}

// MockSupplierRepo
type MockSupplierRepo struct {
	mock.Mock
}

func (m *MockSupplierRepo) GetByID(ctx context.Context, id int32) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

// MockClientTypeRepo
type MockClientTypeRepo struct {
	mock.Mock
}

func (m *MockClientTypeRepo) List(ctx context.Context) ([]domain.ClientType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClientType), args.Error(1)
}
func (m *MockClientTypeRepo) GetByID(ctx context.Context, id int32) (*domain.ClientType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientType), args.Error(1)
}
func (m *MockClientTypeRepo) GetByName(ctx context.Context, name string) (*domain.ClientType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientType), args.Error(1)
}
func (m *MockClientTypeRepo) GetByUserID(ctx context.Context, userID int32) (*domain.ClientType, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientType), args.Error(1)
}
func (m *MockClientTypeRepo) Create(ctx context.Context, ct *domain.ClientType) error {
	args := m.Called(ctx, ct)
	return args.Error(0)
}
func (m *MockClientTypeRepo) Update(ctx context.Context, ct *domain.ClientType) error {
	args := m.Called(ctx, ct)
	return args.Error(0)
}
func (m *MockClientTypeRepo) DeleteMany(ctx context.Context, ids []int32) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockClientTypeRepo) MigrateLegacyDiscounts(ctx context.Context) (repository.LegacyMigrationResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.LegacyMigrationResult), args.Error(1)
}
