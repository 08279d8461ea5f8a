package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/repository"
	"parkspot/internal/service"
)

// AdminHandler groups the management endpoints: spot and complex CRUD,
// reservation oversight, and a manual trigger for the sync job.
type AdminHandler struct {
	Spots        *service.SpotService
	Reservations *service.ReservationService
	Jobs         *service.JobService
}

func NewAdminHandler(spots *service.SpotService, reservations *service.ReservationService, jobs *service.JobService) *AdminHandler {
	return &AdminHandler{Spots: spots, Reservations: reservations, Jobs: jobs}
}

func (h *AdminHandler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req CreateSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	spot, err := h.Spots.CreateSpot(r.Context(), req.ParkingComplex, req.SpotID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, spot)
}

func (h *AdminHandler) CreateComplex(w http.ResponseWriter, r *http.Request) {
	var req CreateComplexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	spots, err := h.Spots.CreateComplex(r.Context(), req.Name, req.SpotCount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, spots)
}

func (h *AdminHandler) RenameComplex(w http.ResponseWriter, r *http.Request) {
	var req RenameComplexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Spots.RenameComplex(r.Context(), mux.Vars(r)["complex"], req.NewName); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Complex renamed"})
}

func (h *AdminHandler) UpdateSpotStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	spot, err := h.Spots.UpdateSpotStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}

func (h *AdminHandler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	if err := h.Spots.DeleteSpot(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Spot deleted"})
}

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ReservationFilter{
		Date:           q.Get("date"),
		ParkingComplex: q.Get("parking_complex"),
		Status:         q.Get("status"),
	}
	reservations, err := h.Reservations.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (h *AdminHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Reservations.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation updated"})
}

// TriggerSync runs one pass of the status/spot synchronization job on demand.
func (h *AdminHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	h.Jobs.Run(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sync completed"})
}
