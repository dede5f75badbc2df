package repository

import (
	"context"
	"errors"

	"carrental-backend/internal/domain"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists is returned by writes that hit a unique constraint.
var ErrAlreadyExists = errors.New("record already exists")

type CarRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Car, error)
	List(ctx context.Context) ([]domain.Car, error)
}

type SupplierRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Supplier, error)
}

// LegacyMigrationResult counts rows touched by MigrateLegacyDiscounts.
type LegacyMigrationResult struct {
	// Migrated rows had only the legacy discount; it was moved into privileges.
	Migrated int64
	// Cleaned rows had both; the legacy discount was dropped.
	Cleaned int64
}

type ClientTypeRepository interface {
	List(ctx context.Context) ([]domain.ClientType, error)
	GetByID(ctx context.Context, id int32) (*domain.ClientType, error)
	GetByName(ctx context.Context, name string) (*domain.ClientType, error)
	// GetByUserID returns nil, nil when the user has no client type.
	GetByUserID(ctx context.Context, userID int32) (*domain.ClientType, error)
	Create(ctx context.Context, ct *domain.ClientType) error
	Update(ctx context.Context, ct *domain.ClientType) error
	DeleteMany(ctx context.Context, ids []int32) (int64, error)
	MigrateLegacyDiscounts(ctx context.Context) (LegacyMigrationResult, error)
}
