package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/service"
)

type SpotHandler struct {
	Service *service.SpotService
}

func NewSpotHandler(svc *service.SpotService) *SpotHandler {
	return &SpotHandler{Service: svc}
}

func (h *SpotHandler) ListComplexes(w http.ResponseWriter, r *http.Request) {
	complexes, err := h.Service.ListComplexes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, complexes)
}

func (h *SpotHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Service.ListSpots(r.Context(), mux.Vars(r)["complex"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spots)
}

func (h *SpotHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	spot, err := h.Service.GetSpot(r.Context(), vars["complex"], vars["spot_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spot)
}
