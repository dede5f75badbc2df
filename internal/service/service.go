package service

import (
	"context"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// QuoteRequest identifies a rental to price. Exactly one of Days or the
// StartDate/EndDate pair (yyyy-mm-dd, both inclusive) must be set.
type QuoteRequest struct {
	CarID     int32
	UserID    int32
	Days      int
	StartDate string
	EndDate   string
}

type QuoteService interface {
	QuoteRental(ctx context.Context, req QuoteRequest) (*domain.Quote, error)
	PriceSheet(ctx context.Context, carID, userID int32) (*domain.PriceSheet, error)
}

// ClientTypeInput carries the writable fields of a client type.
type ClientTypeInput struct {
	Name        string
	DisplayName string
	Description string
	Privileges  *domain.ClientTypePrivileges
	Active      *bool
}

type ClientTypeService interface {
	ListClientTypes(ctx context.Context) ([]domain.ClientType, error)
	GetClientType(ctx context.Context, id int32) (*domain.ClientType, error)
	CreateClientType(ctx context.Context, input ClientTypeInput) (*domain.ClientType, error)
	UpdateClientType(ctx context.Context, id int32, input ClientTypeInput) (*domain.ClientType, error)
	DeleteClientTypes(ctx context.Context, ids []int32) (bool, error) // true when anything was deleted
	GetClientDiscount(ctx context.Context, userID int32) (int, error)
	MigrateLegacyDiscounts(ctx context.Context) (repository.LegacyMigrationResult, error)
	SeedDefaults(ctx context.Context) (int, error) // returns number of client types created
}

type EmailService interface {
	SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error
}
