package domain

import "github.com/shopspring/decimal"

type Supplier struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// PriceChangeRate is the supplier's markup percent applied to every rental of its cars.
	PriceChangeRate decimal.Decimal `json:"price_change_rate"`
}
