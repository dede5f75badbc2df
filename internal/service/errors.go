package service

import "errors"

var (
	ErrCarNotFound        = errors.New("car not found")
	ErrClientTypeNotFound = errors.New("client type not found")
	ErrClientTypeExists   = errors.New("client type already exists")
	ErrInvalidClientType  = errors.New("invalid client type")
	ErrInvalidQuote       = errors.New("invalid quote request")
	ErrInvalidDateRange   = errors.New("invalid rental date range")
	ErrRentalTooLong      = errors.New("rental exceeds maximum length")
)
