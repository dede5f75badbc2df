package grpc

import (
	"errors"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
	"carrental-backend/internal/utils"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError converts service errors to gRPC status errors.
func mapError(err error) error {
	switch {
	case errors.Is(err, service.ErrCarNotFound), errors.Is(err, service.ErrClientTypeNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidQuote),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrRentalTooLong),
		errors.Is(err, utils.ErrInvalidDuration):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, utils.ErrMissingRate):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		logger.Error("Unhandled quote error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
