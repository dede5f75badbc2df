package utils

import (
	"errors"
	"fmt"

	"carrental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the precision of every amount surfaced to a caller.
const CurrencyPlaces = 2

var (
	ErrInvalidDuration = errors.New("rental duration must be at least 1 day")
	ErrInvalidDiscount = errors.New("client discount must be between 0 and 100 percent")
	ErrInvalidMarkup   = errors.New("supplier markup must not be negative")
	ErrMissingRate     = errors.New("rate card has no price for the selected tier")
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// PricingRequest carries the inputs of one price computation.
type PricingRequest struct {
	RateCard              domain.RateCard
	Days                  int
	SupplierMarkupPercent decimal.Decimal
	ClientDiscountPercent int
}

// Compute runs ComputePrice on the request.
func (r PricingRequest) Compute() (domain.PricingResult, error) {
	return ComputePrice(r.RateCard, r.Days, r.SupplierMarkupPercent, r.ClientDiscountPercent)
}

// TierForDays maps a rental length to its tier. Lower bounds are inclusive:
// [1,3) daily, [3,7) tier3, [7,30) tier7, [30,inf) tier30.
func TierForDays(days int) (domain.Tier, error) {
	switch {
	case days < 1:
		return "", fmt.Errorf("%w: got %d", ErrInvalidDuration, days)
	case days < 3:
		return domain.TierDaily, nil
	case days < 7:
		return domain.Tier3Day, nil
	case days < 30:
		return domain.Tier7Day, nil
	default:
		return domain.Tier30Day, nil
	}
}

// SelectTier returns the per-day unit price for a rental of the given length.
// The discounted variant of the tier wins over the plain rate; there is no
// fallback to a neighbouring tier.
func SelectTier(card domain.RateCard, days int) (decimal.Decimal, domain.Tier, error) {
	price, tier, _, err := selectTier(card, days)
	return price, tier, err
}

func selectTier(card domain.RateCard, days int) (decimal.Decimal, domain.Tier, bool, error) {
	tier, err := TierForDays(days)
	if err != nil {
		return decimal.Zero, "", false, err
	}

	plain, discounted := card.Rates(tier)
	if discounted != nil {
		return *discounted, tier, true, nil
	}
	if plain != nil {
		return *plain, tier, false, nil
	}
	return decimal.Zero, tier, false, fmt.Errorf("%w: %s", ErrMissingRate, tier)
}

// ComputePrice prices a rental of days days.
//
// The pipeline is fixed: tier unit price, base total (unit x days), supplier
// markup, then client discount. Intermediate totals are exact; only FinalTotal
// and PerDayFinal are rounded half-up to cents, and PerDayFinal is derived
// from the unrounded final total.
func ComputePrice(card domain.RateCard, days int, supplierMarkupPercent decimal.Decimal, clientDiscountPercent int) (domain.PricingResult, error) {
	if days < 1 {
		return domain.PricingResult{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, days)
	}
	if supplierMarkupPercent.IsNegative() {
		return domain.PricingResult{}, fmt.Errorf("%w: got %s", ErrInvalidMarkup, supplierMarkupPercent)
	}
	if clientDiscountPercent < 0 || clientDiscountPercent > 100 {
		return domain.PricingResult{}, fmt.Errorf("%w: got %d", ErrInvalidDiscount, clientDiscountPercent)
	}

	unitPrice, tier, usedDiscounted, err := selectTier(card, days)
	if err != nil {
		return domain.PricingResult{}, err
	}

	n := decimal.NewFromInt(int64(days))
	baseTotal := unitPrice.Mul(n)
	markedUpTotal := baseTotal.Mul(one.Add(supplierMarkupPercent.Div(hundred)))
	finalTotal := markedUpTotal.Mul(one.Sub(decimal.NewFromInt(int64(clientDiscountPercent)).Div(hundred)))
	perDay := finalTotal.Div(n)

	return domain.PricingResult{
		Tier:               tier,
		TierUnitPrice:      unitPrice,
		TierDays:           days,
		UsedDiscountedRate: usedDiscounted,
		BaseTotal:          baseTotal,
		MarkedUpTotal:      markedUpTotal,
		FinalTotal:         RoundCurrency(finalTotal),
		PerDayFinal:        RoundCurrency(perDay),
	}, nil
}

// RoundCurrency rounds half-up to cents. Amounts here are never negative, so
// decimal's half-away-from-zero rounding is half-up.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// ComputePriceSheet returns the per-day price a client sees for each tier, using
// the first day count of the tier. Tiers without any rate are left out.
func ComputePriceSheet(card domain.RateCard, supplierMarkupPercent decimal.Decimal, clientDiscountPercent int) ([]domain.TierPrice, error) {
	var prices []domain.TierPrice
	for _, tier := range domain.Tiers {
		res, err := ComputePrice(card, tier.MinDays(), supplierMarkupPercent, clientDiscountPercent)
		if errors.Is(err, ErrMissingRate) {
			continue
		}
		if err != nil {
			return nil, err
		}
		prices = append(prices, domain.TierPrice{
			Tier:        tier,
			MinDays:     tier.MinDays(),
			PerDayFinal: res.PerDayFinal,
		})
	}
	return prices, nil
}
