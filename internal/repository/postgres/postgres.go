package postgres

import (
	"context"
	"database/sql"

	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.CarRepository
	repository.SupplierRepository
	repository.ClientTypeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		CarRepository:        NewCarRepository(db),
		SupplierRepository:   NewSupplierRepository(db),
		ClientTypeRepository: NewClientTypeRepository(db),
	}
}

// Ping checks the database connection; used by the health service.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}
