package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/shopspring/decimal"
)

const carColumns = `id, name, supplier_id, available,
	daily_rate, tier3_rate, tier7_rate, tier30_rate,
	discounted_daily_rate, discounted_tier3_rate, discounted_tier7_rate, discounted_tier30_rate,
	created_on, updated_on`

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	c, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("car %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) List(ctx context.Context) ([]domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func scanCar(s rowScanner) (*domain.Car, error) {
	var c domain.Car
	var rates [8]decimal.NullDecimal
	err := s.Scan(&c.ID, &c.Name, &c.SupplierID, &c.Available,
		&rates[0], &rates[1], &rates[2], &rates[3],
		&rates[4], &rates[5], &rates[6], &rates[7],
		&c.CreatedOn, &c.UpdatedOn)
	if err != nil {
		return nil, err
	}

	c.RateCard = domain.RateCard{
		DailyRate:            nullRate(rates[0]),
		Tier3Rate:            nullRate(rates[1]),
		Tier7Rate:            nullRate(rates[2]),
		Tier30Rate:           nullRate(rates[3]),
		DiscountedDailyRate:  nullRate(rates[4]),
		DiscountedTier3Rate:  nullRate(rates[5]),
		DiscountedTier7Rate:  nullRate(rates[6]),
		DiscountedTier30Rate: nullRate(rates[7]),
	}
	return &c, nil
}

// nullRate keeps the absent/zero distinction of a nullable numeric column.
func nullRate(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}
