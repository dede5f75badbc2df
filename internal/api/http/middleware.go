package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/security"

	"github.com/google/uuid"
)

type claimsKey struct{}

// claimsFromContext returns the token claims set by requireAuth.
func claimsFromContext(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsKey{}).(*security.UserClaims)
	return claims
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware attaches a request-scoped logger and logs each request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := logger.Get().With("request_id", uuid.NewString(), "method", r.Method, "path", r.URL.Path)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(logger.WithContext(r.Context(), l)))

		l.Info("HTTP request", "status", rec.status, "duration_ms", time.Since(start).Milliseconds())
	})
}

func requireAuth(tm security.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if len(header) <= 7 || !strings.EqualFold(header[:7], "Bearer ") {
			writeError(w, http.StatusUnauthorized, "authorization token is not provided")
			return
		}

		claims, err := tm.ValidateToken(header[7:])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	}
}

func requireAdmin(tm security.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return requireAuth(tm, func(w http.ResponseWriter, r *http.Request) {
		if !claimsFromContext(r.Context()).HasRole(security.RoleAdmin) {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next(w, r)
	})
}
