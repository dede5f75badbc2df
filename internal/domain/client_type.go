package domain

import "time"

// DiscountSource tags which stored field carried a client type's discount.
// Only the repository sets it; pricing code reads Privileges alone.
type DiscountSource string

const (
	DiscountSourceNone       DiscountSource = "NONE"
	DiscountSourcePrivileges DiscountSource = "PRIVILEGES"
	// DiscountSourceLegacy marks a record that still only has the flat discount
	// field. It is priced at 0% until migrated.
	DiscountSourceLegacy DiscountSource = "LEGACY"
)

type ClientTypePrivileges struct {
	RentDiscount int `json:"rent_discount"`
}

type ClientType struct {
	ID             int32                 `json:"id"`
	Name           string                `json:"name"`
	DisplayName    string                `json:"display_name"`
	Description    string                `json:"description"`
	Privileges     *ClientTypePrivileges `json:"privileges,omitempty"`
	Active         bool                  `json:"active"`
	DiscountSource DiscountSource        `json:"-"`
	LegacyDiscount *int                  `json:"-"`
	CreatedOn      time.Time             `json:"created_on"`
	UpdatedOn      time.Time             `json:"updated_on"`
}

// NeedsMigration reports whether the record still carries the legacy flat discount.
func (c *ClientType) NeedsMigration() bool {
	return c.LegacyDiscount != nil
}
