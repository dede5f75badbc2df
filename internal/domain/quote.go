package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricingResult is the outcome of one price computation.
// BaseTotal and MarkedUpTotal keep full precision; FinalTotal and PerDayFinal are rounded to cents.
type PricingResult struct {
	Tier               Tier            `json:"tier"`
	TierUnitPrice      decimal.Decimal `json:"tier_unit_price"`
	TierDays           int             `json:"tier_days"`
	UsedDiscountedRate bool            `json:"used_discounted_rate"`
	BaseTotal          decimal.Decimal `json:"base_total"`
	MarkedUpTotal      decimal.Decimal `json:"marked_up_total"`
	FinalTotal         decimal.Decimal `json:"final_total"`
	PerDayFinal        decimal.Decimal `json:"per_day_final"`
}

type Quote struct {
	ID              string          `json:"id"`
	CarID           int32           `json:"car_id"`
	UserID          int32           `json:"user_id"`
	ClientType      string          `json:"client_type,omitempty"`
	DiscountPercent int             `json:"discount_percent"`
	MarkupPercent   decimal.Decimal `json:"markup_percent"`
	Days            int             `json:"days"`
	StartDate       string          `json:"start_date,omitempty"`
	EndDate         string          `json:"end_date,omitempty"`
	Result          PricingResult   `json:"result"`
	CreatedOn       time.Time       `json:"created_on"`
}

// TierPrice is the per-day price a client sees for a tier.
type TierPrice struct {
	Tier        Tier            `json:"tier"`
	MinDays     int             `json:"min_days"`
	PerDayFinal decimal.Decimal `json:"per_day_final"`
}

type PriceSheet struct {
	CarID           int32           `json:"car_id"`
	DiscountPercent int             `json:"discount_percent"`
	MarkupPercent   decimal.Decimal `json:"markup_percent"`
	Tiers           []TierPrice     `json:"tiers"`
}
