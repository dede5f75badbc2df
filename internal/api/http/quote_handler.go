package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carrental-backend/internal/service"

	"github.com/gorilla/mux"
)

type QuoteHandler struct {
	quoteSvc service.QuoteService
}

func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

type quoteRequest struct {
	CarID     int32  `json:"car_id"`
	Days      int    `json:"days"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Quote handles POST /api/quote
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CarID <= 0 {
		writeError(w, http.StatusBadRequest, "car_id is required")
		return
	}

	quote, err := h.quoteSvc.QuoteRental(r.Context(), service.QuoteRequest{
		CarID:     req.CarID,
		UserID:    claimsFromContext(r.Context()).UserID,
		Days:      req.Days,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// PriceSheet handles GET /api/cars/{id}/price-sheet
func (h *QuoteHandler) PriceSheet(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(w, r)
	if !ok {
		return
	}

	sheet, err := h.quoteSvc.PriceSheet(r.Context(), carID, claimsFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func pathID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return int32(id), true
}
