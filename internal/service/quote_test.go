package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCar() *domain.Car {
	return &domain.Car{
		ID:         1,
		Name:       "Corolla",
		SupplierID: 9,
		Available:  true,
		RateCard: domain.RateCard{
			DailyRate:  domain.Rate("250"),
			Tier3Rate:  domain.Rate("220"),
			Tier7Rate:  domain.Rate("200"),
			Tier30Rate: domain.Rate("180"),
		},
	}
}

type quoteFixture struct {
	cars        *MockCarRepo
	suppliers   *MockSupplierRepo
	clientTypes *MockClientTypeRepo
	svc         QuoteService
}

func newQuoteFixture(maxDays int) *quoteFixture {
	f := &quoteFixture{
		cars:        new(MockCarRepo),
		suppliers:   new(MockSupplierRepo),
		clientTypes: new(MockClientTypeRepo),
	}
	svc := NewQuoteService(f.cars, f.suppliers, f.clientTypes, maxDays, metrics.New(prometheus.NewRegistry())).(*quoteService)
	svc.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	f.svc = svc
	return f
}

func TestQuoteService_QuoteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("Success with markup and discount", func(t *testing.T) {
		f := newQuoteFixture(365)
		f.cars.On("GetByID", ctx, int32(1)).Return(testCar(), nil)
		f.suppliers.On("GetByID", ctx, int32(9)).Return(&domain.Supplier{ID: 9, PriceChangeRate: decimal.NewFromInt(20)}, nil)
		f.clientTypes.On("GetByUserID", ctx, int32(5)).Return(&domain.ClientType{Name: "internal", Active: true, Privileges: &domain.ClientTypePrivileges{RentDiscount: 50}}, nil)

		q, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 1, UserID: 5, Days: 3})
		require.NoError(t, err)

		assert.NotEmpty(t, q.ID)
		assert.Equal(t, "internal", q.ClientType)
		assert.Equal(t, 50, q.DiscountPercent)
		assert.Equal(t, 3, q.Days)
		assert.Equal(t, domain.Tier3Day, q.Result.Tier)
		// 220 * 3 = 660 -> 792 -> 396
		assert.Equal(t, "396.00", q.Result.FinalTotal.StringFixed(2))
		assert.Equal(t, "132.00", q.Result.PerDayFinal.StringFixed(2))
		assert.Equal(t, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), q.CreatedOn)
		f.cars.AssertExpectations(t)
		f.clientTypes.AssertExpectations(t)
	})

	t.Run("Dates are counted inclusively", func(t *testing.T) {
		f := newQuoteFixture(365)
		f.cars.On("GetByID", ctx, int32(1)).Return(testCar(), nil)
		f.suppliers.On("GetByID", ctx, int32(9)).Return(&domain.Supplier{ID: 9}, nil)
		f.clientTypes.On("GetByUserID", ctx, int32(5)).Return(nil, nil)

		q, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 1, UserID: 5, StartDate: "2026-06-01", EndDate: "2026-06-07"})
		require.NoError(t, err)
		assert.Equal(t, 7, q.Days)
		assert.Equal(t, domain.Tier7Day, q.Result.Tier)
		assert.Equal(t, "1400.00", q.Result.FinalTotal.StringFixed(2))
		assert.Empty(t, q.ClientType)
		assert.Equal(t, 0, q.DiscountPercent)
	})

	t.Run("Anonymous quote skips client type lookup", func(t *testing.T) {
		f := newQuoteFixture(365)
		f.cars.On("GetByID", ctx, int32(1)).Return(testCar(), nil)
		f.suppliers.On("GetByID", ctx, int32(9)).Return(&domain.Supplier{ID: 9}, nil)

		q, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 1, Days: 1})
		require.NoError(t, err)
		assert.Equal(t, "250.00", q.Result.FinalTotal.StringFixed(2))
		f.clientTypes.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Legacy-only client type gets no discount", func(t *testing.T) {
		legacy := 30
		f := newQuoteFixture(365)
		f.cars.On("GetByID", ctx, int32(1)).Return(testCar(), nil)
		f.suppliers.On("GetByID", ctx, int32(9)).Return(&domain.Supplier{ID: 9}, nil)
		f.clientTypes.On("GetByUserID", ctx, int32(5)).Return(&domain.ClientType{
			Name: "internal", Active: true, DiscountSource: domain.DiscountSourceLegacy, LegacyDiscount: &legacy,
		}, nil)

		q, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 1, UserID: 5, Days: 2})
		require.NoError(t, err)
		assert.Equal(t, 0, q.DiscountPercent)
		assert.Equal(t, "500.00", q.Result.FinalTotal.StringFixed(2))
	})

	t.Run("Car not found", func(t *testing.T) {
		f := newQuoteFixture(365)
		f.cars.On("GetByID", ctx, int32(404)).Return(nil, fmt.Errorf("car 404: %w", repository.ErrNotFound))

		_, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 404, Days: 2})
		assert.ErrorIs(t, err, ErrCarNotFound)
	})

	t.Run("Missing tier rate", func(t *testing.T) {
		f := newQuoteFixture(365)
		car := testCar()
		car.RateCard.Tier30Rate = nil
		f.cars.On("GetByID", ctx, int32(1)).Return(car, nil)
		f.suppliers.On("GetByID", ctx, int32(9)).Return(&domain.Supplier{ID: 9}, nil)

		_, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 1, Days: 30})
		assert.ErrorIs(t, err, utils.ErrMissingRate)
	})

	t.Run("Supplier lookup failure", func(t *testing.T) {
		f := newQuoteFixture(365)
		f.cars.On("GetByID", ctx, int32(1)).Return(testCar(), nil)
		f.suppliers.On("GetByID", ctx, int32(9)).Return(nil, assert.AnError)

		_, err := f.svc.QuoteRental(ctx, QuoteRequest{CarID: 1, Days: 3})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestQuoteService_QuoteRental_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		req     QuoteRequest
		wantErr error
	}{
		{"Zero days", QuoteRequest{CarID: 1}, utils.ErrInvalidDuration},
		{"Negative days", QuoteRequest{CarID: 1, Days: -2}, utils.ErrInvalidDuration},
		{"Too long", QuoteRequest{CarID: 1, Days: 31}, ErrRentalTooLong},
		{"Days and dates", QuoteRequest{CarID: 1, Days: 3, StartDate: "2026-06-01", EndDate: "2026-06-03"}, ErrInvalidQuote},
		{"Only start date", QuoteRequest{CarID: 1, StartDate: "2026-06-01"}, ErrInvalidDateRange},
		{"End before start", QuoteRequest{CarID: 1, StartDate: "2026-06-05", EndDate: "2026-06-01"}, ErrInvalidDateRange},
		{"Bad date", QuoteRequest{CarID: 1, StartDate: "2026-02-30", EndDate: "2026-03-01"}, ErrInvalidDateRange},
		{"Dates too long", QuoteRequest{CarID: 1, StartDate: "2026-01-01", EndDate: "2026-03-01"}, ErrRentalTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuoteFixture(30)
			_, err := f.svc.QuoteRental(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.cars.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestQuoteService_PriceSheet(t *testing.T) {
	ctx := context.Background()
	f := newQuoteFixture(365)

	car := testCar()
	car.RateCard.Tier7Rate = nil
	f.cars.On("GetByID", ctx, int32(1)).Return(car, nil)
	f.suppliers.On("GetByID", ctx, int32(9)).Return(&domain.Supplier{ID: 9, PriceChangeRate: decimal.NewFromInt(10)}, nil)
	f.clientTypes.On("GetByUserID", ctx, int32(5)).Return(&domain.ClientType{Active: true, Privileges: &domain.ClientTypePrivileges{RentDiscount: 10}}, nil)

	sheet, err := f.svc.PriceSheet(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), sheet.CarID)
	assert.Equal(t, 10, sheet.DiscountPercent)
	require.Len(t, sheet.Tiers, 3)
	// 250 * 1.1 * 0.9
	assert.Equal(t, "247.50", sheet.Tiers[0].PerDayFinal.StringFixed(2))
	assert.Equal(t, domain.Tier30Day, sheet.Tiers[2].Tier)
	assert.Equal(t, "178.20", sheet.Tiers[2].PerDayFinal.StringFixed(2))
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, metrics.FailureNotFound, failureReason(fmt.Errorf("%w: 1", ErrCarNotFound)))
	assert.Equal(t, metrics.FailureMissingRate, failureReason(fmt.Errorf("x: %w", utils.ErrMissingRate)))
	assert.Equal(t, metrics.FailureInvalidInput, failureReason(ErrRentalTooLong))
	assert.Equal(t, metrics.FailureInternal, failureReason(utils.ErrInvalidMarkup))
	assert.Equal(t, metrics.FailureInternal, failureReason(assert.AnError))
}
