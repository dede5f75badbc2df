package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"

	"github.com/lib/pq"
)

const clientTypeColumns = `ct.id, ct.name, ct.display_name, COALESCE(ct.description, ''),
	ct.rent_discount, ct.legacy_discount, ct.active, ct.created_on, ct.updated_on`

const uniqueViolation = "23505"

type clientTypeRepository struct {
	db *sql.DB
}

func NewClientTypeRepository(db *sql.DB) repository.ClientTypeRepository {
	return &clientTypeRepository{db: db}
}

func (r *clientTypeRepository) List(ctx context.Context) ([]domain.ClientType, error) {
	query := `SELECT ` + clientTypeColumns + ` FROM client_types ct ORDER BY ct.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []domain.ClientType
	for rows.Next() {
		ct, err := scanClientType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, *ct)
	}
	return types, rows.Err()
}

func (r *clientTypeRepository) GetByID(ctx context.Context, id int32) (*domain.ClientType, error) {
	query := `SELECT ` + clientTypeColumns + ` FROM client_types ct WHERE ct.id = $1`
	ct, err := scanClientType(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client type %d: %w", id, repository.ErrNotFound)
	}
	return ct, err
}

func (r *clientTypeRepository) GetByName(ctx context.Context, name string) (*domain.ClientType, error) {
	query := `SELECT ` + clientTypeColumns + ` FROM client_types ct WHERE ct.name = $1`
	ct, err := scanClientType(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client type %q: %w", name, repository.ErrNotFound)
	}
	return ct, err
}

func (r *clientTypeRepository) GetByUserID(ctx context.Context, userID int32) (*domain.ClientType, error) {
	query := `SELECT ` + clientTypeColumns + ` FROM client_types ct
	          JOIN users u ON u.client_type_id = ct.id WHERE u.id = $1`
	ct, err := scanClientType(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ct, err
}

func (r *clientTypeRepository) Create(ctx context.Context, ct *domain.ClientType) error {
	logger.EnterMethod("clientTypeRepository.Create", "name", ct.Name)

	now := time.Now()
	query := `INSERT INTO client_types (name, display_name, description, rent_discount, active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, ct.Name, ct.DisplayName, ct.Description, rentDiscountArg(ct), ct.Active, now, now).Scan(&ct.ID)
	if err != nil {
		logger.ExitMethodWithError("clientTypeRepository.Create", err, "name", ct.Name)
		return mapUniqueViolation(err, ct.Name)
	}

	ct.CreatedOn, ct.UpdatedOn = now, now
	ct.LegacyDiscount = nil
	ct.DiscountSource = sourceOf(ct.Privileges != nil, false)
	logger.ExitMethod("clientTypeRepository.Create", "clientTypeID", ct.ID)
	return nil
}

// Update overwrites the record. Writes always clear the legacy discount column.
func (r *clientTypeRepository) Update(ctx context.Context, ct *domain.ClientType) error {
	logger.EnterMethod("clientTypeRepository.Update", "clientTypeID", ct.ID)

	now := time.Now()
	query := `UPDATE client_types SET name=$1, display_name=$2, description=$3, rent_discount=$4, active=$5,
	          legacy_discount=NULL, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, ct.Name, ct.DisplayName, ct.Description, rentDiscountArg(ct), ct.Active, now, ct.ID)
	if err != nil {
		logger.ExitMethodWithError("clientTypeRepository.Update", err, "clientTypeID", ct.ID)
		return mapUniqueViolation(err, ct.Name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("client type %d: %w", ct.ID, repository.ErrNotFound)
	}

	ct.UpdatedOn = now
	ct.LegacyDiscount = nil
	ct.DiscountSource = sourceOf(ct.Privileges != nil, false)
	logger.ExitMethod("clientTypeRepository.Update", "clientTypeID", ct.ID)
	return nil
}

func (r *clientTypeRepository) DeleteMany(ctx context.Context, ids []int32) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `DELETE FROM client_types WHERE id = ANY($1)`
	logger.DatabaseCall("delete", query, "ids", ids)
	res, err := r.db.ExecContext(ctx, query, pq.Array(ids))
	if err != nil {
		logger.DatabaseResult("delete", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("delete", n, err)
	return n, err
}

// MigrateLegacyDiscounts moves the flat legacy discount into privileges where
// privileges are missing, and drops it where both exist. Both steps share one transaction.
// Out-of-range legacy values are clamped to 0..100 so one stale row cannot fail the batch.
func (r *clientTypeRepository) MigrateLegacyDiscounts(ctx context.Context) (repository.LegacyMigrationResult, error) {
	var result repository.LegacyMigrationResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE client_types SET rent_discount = LEAST(GREATEST(legacy_discount, 0), 100), legacy_discount = NULL, updated_on = $1
		 WHERE rent_discount IS NULL AND legacy_discount IS NOT NULL`, now)
	if err != nil {
		return result, fmt.Errorf("failed to migrate legacy discounts: %w", err)
	}
	if result.Migrated, err = res.RowsAffected(); err != nil {
		return result, err
	}

	res, err = tx.ExecContext(ctx,
		`UPDATE client_types SET legacy_discount = NULL, updated_on = $1
		 WHERE rent_discount IS NOT NULL AND legacy_discount IS NOT NULL`, now)
	if err != nil {
		return result, fmt.Errorf("failed to drop legacy discounts: %w", err)
	}
	if result.Cleaned, err = res.RowsAffected(); err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return repository.LegacyMigrationResult{}, err
	}
	return result, nil
}

// mapUniqueViolation turns a unique_violation on client_types.name into ErrAlreadyExists.
func mapUniqueViolation(err error, name string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("client type %q: %w", name, repository.ErrAlreadyExists)
	}
	return err
}

func scanClientType(s rowScanner) (*domain.ClientType, error) {
	var ct domain.ClientType
	var rent, legacy sql.NullInt32
	err := s.Scan(&ct.ID, &ct.Name, &ct.DisplayName, &ct.Description, &rent, &legacy, &ct.Active, &ct.CreatedOn, &ct.UpdatedOn)
	if err != nil {
		return nil, err
	}

	if rent.Valid {
		ct.Privileges = &domain.ClientTypePrivileges{RentDiscount: int(rent.Int32)}
	}
	if legacy.Valid {
		v := int(legacy.Int32)
		ct.LegacyDiscount = &v
	}
	ct.DiscountSource = sourceOf(rent.Valid, legacy.Valid)
	return &ct, nil
}

func sourceOf(hasPrivileges, hasLegacy bool) domain.DiscountSource {
	switch {
	case hasPrivileges:
		return domain.DiscountSourcePrivileges
	case hasLegacy:
		return domain.DiscountSourceLegacy
	default:
		return domain.DiscountSourceNone
	}
}

func rentDiscountArg(ct *domain.ClientType) sql.NullInt32 {
	if ct.Privileges == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(ct.Privileges.RentDiscount), Valid: true}
}
