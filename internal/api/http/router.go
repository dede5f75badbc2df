package http

import (
	"context"
	"net/http"

	"carrental-backend/internal/metrics"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"

	"github.com/gorilla/mux"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterDeps struct {
	QuoteSvc      service.QuoteService
	ClientTypeSvc service.ClientTypeService
	TokenManager  security.TokenManager
	Metrics       *metrics.Metrics
	DB            Pinger
}

// NewRouter registers every HTTP route of the API.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	tm := deps.TokenManager
	quotes := NewQuoteHandler(deps.QuoteSvc)
	clientTypes := NewClientTypeHandler(deps.ClientTypeSvc)

	router.HandleFunc("/api/quote", requireAuth(tm, quotes.Quote)).Methods(http.MethodPost)
	router.HandleFunc("/api/cars/{id}/price-sheet", requireAuth(tm, quotes.PriceSheet)).Methods(http.MethodGet)
	router.HandleFunc("/api/client-discount", requireAuth(tm, clientTypes.ClientDiscount)).Methods(http.MethodGet)

	router.HandleFunc("/api/client-types", requireAdmin(tm, clientTypes.List)).Methods(http.MethodGet)
	router.HandleFunc("/api/client-type/{id}", requireAdmin(tm, clientTypes.Get)).Methods(http.MethodGet)
	router.HandleFunc("/api/create-client-type", requireAdmin(tm, clientTypes.Create)).Methods(http.MethodPost)
	router.HandleFunc("/api/update-client-type/{id}", requireAdmin(tm, clientTypes.Update)).Methods(http.MethodPut)
	router.HandleFunc("/api/delete-client-types", requireAdmin(tm, clientTypes.Delete)).Methods(http.MethodPost)

	router.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthz(deps.DB)).Methods(http.MethodGet)

	return router
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
