package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierDaily Tier = "daily"
	Tier3Day  Tier = "tier3"
	Tier7Day  Tier = "tier7"
	Tier30Day Tier = "tier30"
)

// Tiers lists the duration tiers from shortest to longest.
var Tiers = []Tier{TierDaily, Tier3Day, Tier7Day, Tier30Day}

// MinDays returns the first rental length (inclusive) that the tier applies to.
func (t Tier) MinDays() int {
	switch t {
	case Tier3Day:
		return 3
	case Tier7Day:
		return 7
	case Tier30Day:
		return 30
	default:
		return 1
	}
}

// RateCard holds the per-day price of every duration tier of a car.
// A nil rate means the tier has no price; zero is a valid price.
type RateCard struct {
	DailyRate  *decimal.Decimal `json:"daily_rate,omitempty"`
	Tier3Rate  *decimal.Decimal `json:"tier3_rate,omitempty"`
	Tier7Rate  *decimal.Decimal `json:"tier7_rate,omitempty"`
	Tier30Rate *decimal.Decimal `json:"tier30_rate,omitempty"`

	// Supplier-discounted variants. When set they replace the plain rate as the calculation base.
	DiscountedDailyRate  *decimal.Decimal `json:"discounted_daily_rate,omitempty"`
	DiscountedTier3Rate  *decimal.Decimal `json:"discounted_tier3_rate,omitempty"`
	DiscountedTier7Rate  *decimal.Decimal `json:"discounted_tier7_rate,omitempty"`
	DiscountedTier30Rate *decimal.Decimal `json:"discounted_tier30_rate,omitempty"`
}

// Rates returns the plain and discounted rate of a tier.
func (rc RateCard) Rates(t Tier) (plain, discounted *decimal.Decimal) {
	switch t {
	case TierDaily:
		return rc.DailyRate, rc.DiscountedDailyRate
	case Tier3Day:
		return rc.Tier3Rate, rc.DiscountedTier3Rate
	case Tier7Day:
		return rc.Tier7Rate, rc.DiscountedTier7Rate
	case Tier30Day:
		return rc.Tier30Rate, rc.DiscountedTier30Rate
	}
	return nil, nil
}

type Car struct {
	ID         int32     `json:"id"`
	Name       string    `json:"name"`
	SupplierID int32     `json:"supplier_id"`
	Available  bool      `json:"available"`
	RateCard   RateCard  `json:"rate_card"`
	CreatedOn  time.Time `json:"created_on"`
	UpdatedOn  time.Time `json:"updated_on"`
}

// Rate is a convenience constructor for rate card fixtures and decoding.
func Rate(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}
