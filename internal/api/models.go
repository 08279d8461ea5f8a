package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apierrors "parkspot/internal/errors"
	"parkspot/internal/repository"
)

type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehicle_plate"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehiclePlate string `json:"vehicle_plate"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type CreateSpotRequest struct {
	ParkingComplex string `json:"parking_complex"`
	SpotID         string `json:"spot_id"`
	Status         string `json:"status"`
}

type CreateComplexRequest struct {
	Name      string `json:"name"`
	SpotCount int    `json:"spot_count"`
}

type RenameComplexRequest struct {
	NewName string `json:"new_name"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeError maps service errors to HTTP responses: HTTPError carries its own
// code, repository sentinels map to 404/409, and anything else is treated as
// internal with its detail kept out of the body.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apierrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	if errors.Is(err, repository.ErrDuplicateEntry) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Already exists"})
		return
	}
	log.Printf("Internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
