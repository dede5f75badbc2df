package utils

import "carrental-backend/internal/domain"

// ResolveDiscount returns the rental discount percent a client type is entitled to.
//
// Missing, inactive or privilege-less client types get 0. The legacy flat discount
// is never consulted, so records that were not migrated price at 0% as well.
func ResolveDiscount(ct *domain.ClientType) int {
	if ct == nil || !ct.Active || ct.Privileges == nil {
		return 0
	}

	discount := ct.Privileges.RentDiscount
	if discount < 0 {
		return 0
	}
	if discount > 100 {
		return 100
	}
	return discount
}
