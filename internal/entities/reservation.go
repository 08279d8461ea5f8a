package entities

import "time"

type ReservationRequest struct {
	ParkingComplex string `json:"parking_complex"`
	SpotID         string `json:"spot_id"`
	VehiclePlate   string `json:"vehicle_plate"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Duration       string `json:"duration"`
}

type ReservationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ParkingComplex string    `json:"parking_complex"`
	SpotID         string    `json:"spot_id"`
	VehiclePlate   string    `json:"vehicle_plate"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Duration       string    `json:"duration"`
	Status         string    `json:"status"`
	RemainingTime  string    `json:"remaining_time,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ReservationGroups is the profile-page view: rows bucketed by derived status.
type ReservationGroups struct {
	Upcoming []ReservationResponse `json:"upcoming"`
	Live     []ReservationResponse `json:"live"`
	Past     []ReservationResponse `json:"past"`
}
