package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
	"carrental-backend/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) QuoteRental(ctx context.Context, req service.QuoteRequest) (*domain.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quote), args.Error(1)
}

func (m *MockQuoteService) PriceSheet(ctx context.Context, carID, userID int32) (*domain.PriceSheet, error) {
	args := m.Called(ctx, carID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceSheet), args.Error(1)
}

type testEnv struct {
	svc    *MockQuoteService
	conn   *grpc.ClientConn
	client *QuoteServiceClient
	tm     security.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	svc := new(MockQuoteService)
	tm := security.NewTokenManager(testSecret, time.Hour)
	srv, _ := NewServer(svc, tm)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &testEnv{svc: svc, conn: conn, client: NewQuoteServiceClient(conn), tm: tm}
}

func (e *testEnv) authed(t *testing.T, userID int32) context.Context {
	token, err := e.tm.GenerateAccessToken(userID, "", nil)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestQuoteHandler_Quote(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Success", func(t *testing.T) {
		env.svc.On("QuoteRental", mock.Anything, service.QuoteRequest{CarID: 1, UserID: 42, Days: 3}).
			Return(&domain.Quote{
				ID:              "q-1",
				CarID:           1,
				UserID:          42,
				DiscountPercent: 50,
				Days:            3,
				Result: domain.PricingResult{
					Tier:        domain.Tier3Day,
					FinalTotal:  decimal.RequireFromString("180.00"),
					PerDayFinal: decimal.RequireFromString("60.00"),
				},
			}, nil).Once()

		resp, err := env.client.Quote(env.authed(t, 42), mustStruct(t, map[string]any{"car_id": 1, "days": 3}))
		require.NoError(t, err)

		result := resp.GetFields()["result"].GetStructValue().GetFields()
		assert.Equal(t, "q-1", resp.GetFields()["id"].GetStringValue())
		assert.Equal(t, "tier3", result["tier"].GetStringValue())
		assert.Equal(t, "180", result["final_total"].GetStringValue())
		assert.Equal(t, float64(50), resp.GetFields()["discount_percent"].GetNumberValue())
	})

	t.Run("Dates", func(t *testing.T) {
		env.svc.On("QuoteRental", mock.Anything, service.QuoteRequest{CarID: 2, UserID: 42, StartDate: "2026-06-01", EndDate: "2026-06-03"}).
			Return(&domain.Quote{ID: "q-2"}, nil).Once()

		_, err := env.client.Quote(env.authed(t, 42), mustStruct(t, map[string]any{"car_id": 2, "start_date": "2026-06-01", "end_date": "2026-06-03"}))
		require.NoError(t, err)
	})

	t.Run("Missing token", func(t *testing.T) {
		_, err := env.client.Quote(context.Background(), mustStruct(t, map[string]any{"car_id": 1, "days": 3}))
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("Spoofed user-id header is replaced", func(t *testing.T) {
		env.svc.On("QuoteRental", mock.Anything, service.QuoteRequest{CarID: 3, UserID: 42, Days: 1}).
			Return(&domain.Quote{ID: "q-3"}, nil).Once()

		ctx := metadata.AppendToOutgoingContext(env.authed(t, 42), "user-id", "1")
		_, err := env.client.Quote(ctx, mustStruct(t, map[string]any{"car_id": 3, "days": 1}))
		require.NoError(t, err)
	})

	t.Run("Missing car id", func(t *testing.T) {
		_, err := env.client.Quote(env.authed(t, 42), mustStruct(t, map[string]any{"days": 3}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("Fractional days", func(t *testing.T) {
		_, err := env.client.Quote(env.authed(t, 42), mustStruct(t, map[string]any{"car_id": 1, "days": 2.5}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	errorCases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"Not found", service.ErrCarNotFound, codes.NotFound},
		{"Too long", service.ErrRentalTooLong, codes.InvalidArgument},
		{"Invalid duration", utils.ErrInvalidDuration, codes.InvalidArgument},
		{"Missing rate", utils.ErrMissingRate, codes.FailedPrecondition},
		{"Internal", assert.AnError, codes.Internal},
	}
	for i, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			carID := int32(100 + i)
			env.svc.On("QuoteRental", mock.Anything, service.QuoteRequest{CarID: carID, UserID: 42, Days: 2}).
				Return(nil, tc.err).Once()

			_, err := env.client.Quote(env.authed(t, 42), mustStruct(t, map[string]any{"car_id": carID, "days": 2}))
			assert.Equal(t, tc.code, status.Code(err))
		})
	}
}

func TestQuoteHandler_PriceSheet(t *testing.T) {
	env := newTestEnv(t)

	env.svc.On("PriceSheet", mock.Anything, int32(1), int32(42)).Return(&domain.PriceSheet{
		CarID: 1,
		Tiers: []domain.TierPrice{
			{Tier: domain.TierDaily, MinDays: 1, PerDayFinal: decimal.RequireFromString("247.50")},
		},
	}, nil)

	resp, err := env.client.PriceSheet(env.authed(t, 42), mustStruct(t, map[string]any{"car_id": 1}))
	require.NoError(t, err)

	tiers := resp.GetFields()["tiers"].GetListValue().GetValues()
	require.Len(t, tiers, 1)
	assert.Equal(t, "247.5", tiers[0].GetStructValue().GetFields()["per_day_final"].GetStringValue())
}

func TestHealthIsPublic(t *testing.T) {
	env := newTestEnv(t)

	resp, err := healthpb.NewHealthClient(env.conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: QuoteServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
