package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/repository"
	"carrental-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type quoteService struct {
	carRepo        repository.CarRepository
	supplierRepo   repository.SupplierRepository
	clientTypeRepo repository.ClientTypeRepository
	maxRentalDays  int
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewQuoteService(
	carRepo repository.CarRepository,
	supplierRepo repository.SupplierRepository,
	clientTypeRepo repository.ClientTypeRepository,
	maxRentalDays int,
	m *metrics.Metrics,
) QuoteService {
	return &quoteService{
		carRepo:        carRepo,
		supplierRepo:   supplierRepo,
		clientTypeRepo: clientTypeRepo,
		maxRentalDays:  maxRentalDays,
		metrics:        m,
		now:            time.Now,
	}
}

// QuoteRental prices a rental for a user. Nothing is written back; the quote
// is a value the caller may persist.
func (s *quoteService) QuoteRental(ctx context.Context, req QuoteRequest) (*domain.Quote, error) {
	logger.EnterMethod("quoteService.QuoteRental", "carID", req.CarID, "userID", req.UserID)

	quote, err := s.quoteRental(ctx, req)
	if err != nil {
		s.metrics.QuoteFailed(failureReason(err))
		logger.ExitMethodWithError("quoteService.QuoteRental", err, "carID", req.CarID, "userID", req.UserID)
		return nil, err
	}

	s.metrics.ObserveQuote(quote.Result.Tier, quote.Days)
	logger.ExitMethod("quoteService.QuoteRental", "quoteID", quote.ID, "tier", quote.Result.Tier, "final", quote.Result.FinalTotal.StringFixed(2))
	return quote, nil
}

func (s *quoteService) quoteRental(ctx context.Context, req QuoteRequest) (*domain.Quote, error) {
	days, err := s.rentalDays(req)
	if err != nil {
		return nil, err
	}

	car, markup, err := s.loadCar(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	ct, discount, err := s.clientDiscount(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	result, err := utils.ComputePrice(car.RateCard, days, markup, discount)
	if err != nil {
		return nil, fmt.Errorf("failed to price car %d: %w", car.ID, err)
	}

	quote := &domain.Quote{
		ID:              uuid.NewString(),
		CarID:           car.ID,
		UserID:          req.UserID,
		DiscountPercent: discount,
		MarkupPercent:   markup,
		Days:            days,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Result:          result,
		CreatedOn:       s.now().UTC(),
	}
	if ct != nil {
		quote.ClientType = ct.Name
	}
	return quote, nil
}

func (s *quoteService) PriceSheet(ctx context.Context, carID, userID int32) (*domain.PriceSheet, error) {
	car, markup, err := s.loadCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	_, discount, err := s.clientDiscount(ctx, userID)
	if err != nil {
		return nil, err
	}

	tiers, err := utils.ComputePriceSheet(car.RateCard, markup, discount)
	if err != nil {
		return nil, fmt.Errorf("failed to build price sheet for car %d: %w", car.ID, err)
	}

	return &domain.PriceSheet{
		CarID:           car.ID,
		DiscountPercent: discount,
		MarkupPercent:   markup,
		Tiers:           tiers,
	}, nil
}

func (s *quoteService) rentalDays(req QuoteRequest) (int, error) {
	hasDates := req.StartDate != "" || req.EndDate != ""
	if hasDates && req.Days != 0 {
		return 0, fmt.Errorf("%w: give either days or start and end dates", ErrInvalidQuote)
	}

	days := req.Days
	if hasDates {
		if req.StartDate == "" || req.EndDate == "" {
			return 0, fmt.Errorf("%w: start and end dates are both required", ErrInvalidDateRange)
		}
		var err error
		days, err = utils.RentalDaysFromStrings(req.StartDate, req.EndDate)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
		}
	}

	if days < 1 {
		return 0, fmt.Errorf("%w: got %d", utils.ErrInvalidDuration, days)
	}
	if s.maxRentalDays > 0 && days > s.maxRentalDays {
		return 0, fmt.Errorf("%w: %d days, maximum is %d", ErrRentalTooLong, days, s.maxRentalDays)
	}
	return days, nil
}

// loadCar returns the car and its supplier's markup percent.
func (s *quoteService) loadCar(ctx context.Context, carID int32) (*domain.Car, decimal.Decimal, error) {
	car, err := s.carRepo.GetByID(ctx, carID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, decimal.Zero, fmt.Errorf("%w: %d", ErrCarNotFound, carID)
	}
	if err != nil {
		return nil, decimal.Zero, err
	}

	supplier, err := s.supplierRepo.GetByID(ctx, car.SupplierID)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load supplier %d of car %d: %w", car.SupplierID, car.ID, err)
	}
	return car, supplier.PriceChangeRate, nil
}

// clientDiscount resolves the user's client type to a discount percent.
func (s *quoteService) clientDiscount(ctx context.Context, userID int32) (*domain.ClientType, int, error) {
	if userID == 0 {
		return nil, 0, nil
	}
	ct, err := s.clientTypeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load client type of user %d: %w", userID, err)
	}
	warnLegacyOnly(ctx, ct)
	return ct, utils.ResolveDiscount(ct), nil
}

func warnLegacyOnly(ctx context.Context, ct *domain.ClientType) {
	if ct != nil && ct.DiscountSource == domain.DiscountSourceLegacy && ct.LegacyDiscount != nil {
		logger.WarnContext(ctx, "Client type has only a legacy discount and is priced at 0%; run migrate-client-types",
			"clientType", ct.Name, "legacyDiscount", *ct.LegacyDiscount)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrCarNotFound):
		return metrics.FailureNotFound
	case errors.Is(err, utils.ErrMissingRate):
		return metrics.FailureMissingRate
	case errors.Is(err, ErrInvalidQuote), errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrRentalTooLong),
		errors.Is(err, utils.ErrInvalidDuration):
		return metrics.FailureInvalidInput
	default:
		return metrics.FailureInternal
	}
}
