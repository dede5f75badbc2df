package utils

import (
	"fmt"

	"carrental-backend/internal/domain"

	"github.com/shopspring/decimal"
)

type RateCardIssueCode string

const (
	IssueNoRates            RateCardIssueCode = "NO_RATES"
	IssueNegativeRate       RateCardIssueCode = "NEGATIVE_RATE"
	IssueDiscountAbovePlain RateCardIssueCode = "DISCOUNT_ABOVE_PLAIN"
	IssueTierNotDecreasing  RateCardIssueCode = "TIER_NOT_DECREASING"
)

// RateCardIssue is a data-quality problem found on a rate card. Issues never
// stop pricing; they are reported so the data owner can fix the record.
type RateCardIssue struct {
	Code    RateCardIssueCode `json:"code"`
	Tier    domain.Tier       `json:"tier,omitempty"`
	Message string            `json:"message"`
}

func (i RateCardIssue) String() string {
	return fmt.Sprintf("%s [%s]: %s", i.Code, i.Tier, i.Message)
}

// ValidateRateCard checks the invariants the pricing engine relies on callers to keep.
func ValidateRateCard(card domain.RateCard) []RateCardIssue {
	var issues []RateCardIssue

	present := 0
	for _, tier := range domain.Tiers {
		plain, discounted := card.Rates(tier)
		if plain != nil || discounted != nil {
			present++
		}
		if plain != nil && plain.IsNegative() {
			issues = append(issues, RateCardIssue{
				Code:    IssueNegativeRate,
				Tier:    tier,
				Message: fmt.Sprintf("rate %s is negative", plain),
			})
		}
		if discounted != nil && discounted.IsNegative() {
			issues = append(issues, RateCardIssue{
				Code:    IssueNegativeRate,
				Tier:    tier,
				Message: fmt.Sprintf("discounted rate %s is negative", discounted),
			})
		}
		if plain != nil && discounted != nil && discounted.GreaterThan(*plain) {
			issues = append(issues, RateCardIssue{
				Code:    IssueDiscountAbovePlain,
				Tier:    tier,
				Message: fmt.Sprintf("discounted rate %s is above plain rate %s", discounted, plain),
			})
		}
	}
	if present == 0 {
		return append(issues, RateCardIssue{Code: IssueNoRates, Message: "rate card has no rates"})
	}

	// Volume pricing: each present tier should not cost more per day than the previous present one.
	var prevTier domain.Tier
	var prev *decimal.Decimal
	for _, tier := range domain.Tiers {
		plain, _ := card.Rates(tier)
		if plain == nil {
			continue
		}
		if prev != nil && plain.GreaterThan(*prev) {
			issues = append(issues, RateCardIssue{
				Code:    IssueTierNotDecreasing,
				Tier:    tier,
				Message: fmt.Sprintf("%s rate %s is above %s rate %s", tier, plain, prevTier, prev),
			})
		}
		prev, prevTier = plain, tier
	}

	return issues
}
