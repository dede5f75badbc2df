package http

import (
	"encoding/json"
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/service"
)

type ClientTypeHandler struct {
	clientTypeSvc service.ClientTypeService
}

func NewClientTypeHandler(clientTypeSvc service.ClientTypeService) *ClientTypeHandler {
	return &ClientTypeHandler{clientTypeSvc: clientTypeSvc}
}

type clientTypeRequest struct {
	Name        string                       `json:"name"`
	DisplayName string                       `json:"display_name"`
	Description string                       `json:"description"`
	Privileges  *domain.ClientTypePrivileges `json:"privileges"`
	Active      *bool                        `json:"active"`
}

func (req clientTypeRequest) input() service.ClientTypeInput {
	return service.ClientTypeInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Privileges:  req.Privileges,
		Active:      req.Active,
	}
}

type deleteClientTypesRequest struct {
	IDs []int32 `json:"ids"`
}

type clientDiscountResponse struct {
	DiscountPercent int `json:"discount_percent"`
}

func (h *ClientTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.clientTypeSvc.ListClientTypes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *ClientTypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ct, err := h.clientTypeSvc.GetClientType(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ct)
}

func (h *ClientTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ct, err := h.clientTypeSvc.CreateClientType(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ct)
}

func (h *ClientTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ct, err := h.clientTypeSvc.UpdateClientType(r.Context(), id, req.input())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ct)
}

// Delete answers 200 when at least one client type was removed and 204 otherwise.
func (h *ClientTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteClientTypesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	deleted, err := h.clientTypeSvc.DeleteClientTypes(r.Context(), req.IDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// ClientDiscount returns the caller's effective rent discount.
func (h *ClientTypeHandler) ClientDiscount(w http.ResponseWriter, r *http.Request) {
	percent, err := h.clientTypeSvc.GetClientDiscount(r.Context(), claimsFromContext(r.Context()).UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, clientDiscountResponse{DiscountPercent: percent})
}
