package interceptor

import (
	"context"
	"time"

	"carrental-backend/internal/logger"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingUnary attaches a request-scoped logger and logs each call's outcome.
func LoggingUnary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		l := logger.Get().With("request_id", uuid.NewString(), "grpc_method", info.FullMethod)
		ctx = logger.WithContext(ctx, l)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		l.Info("gRPC call", "code", code.String(), "duration_ms", time.Since(start).Milliseconds())
		return resp, err
	}
}
