package grpc

import (
	"context"
	"strconv"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// userIDKey is the metadata key the auth interceptor overwrites with the token's user.
const userIDKey = "user-id"

// callerID returns the authenticated user of a quote call.
func callerID(ctx context.Context) (int32, error) {
	values := metadata.ValueFromIncomingContext(ctx, userIDKey)
	if len(values) == 0 {
		return 0, status.Error(codes.Unauthenticated, "caller is not authenticated")
	}
	id, err := strconv.ParseInt(values[0], 10, 32)
	if err != nil || id <= 0 {
		return 0, status.Errorf(codes.Unauthenticated, "malformed caller id %q", values[0])
	}
	return int32(id), nil
}
