package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/auth"
	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// CreateReservation sits behind optional auth on purpose: field validation
// must run before the logged-in check, so an anonymous user with a bad form
// sees the field error first.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	res, err := h.Service.Create(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// MyReservations returns the caller's reservations grouped by derived status.
func (h *ReservationHandler) MyReservations(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.ListForUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.Service.Get(ctx, auth.UserID(ctx), auth.IsAdmin(ctx), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.Service.Cancel(ctx, auth.UserID(ctx), auth.IsAdmin(ctx), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}
