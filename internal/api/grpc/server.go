package grpc

import (
	"carrental-backend/internal/api/grpc/interceptor"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewServer builds the gRPC server with the quote and health services registered.
func NewServer(quoteSvc service.QuoteService, tm security.TokenManager) (*grpc.Server, *health.Server) {
	authInterceptor := interceptor.NewAuthInterceptor(tm)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			interceptor.LoggingUnary(),
			authInterceptor.Unary(),
		),
	)

	RegisterQuoteServiceServer(s, NewQuoteHandler(quoteSvc))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(s, healthSrv)
	healthSrv.SetServingStatus(QuoteServiceName, healthpb.HealthCheckResponse_SERVING)

	// Register reflection service for grpcurl
	reflection.Register(s)

	return s, healthSrv
}
