// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is successfully
// created. It carries enough context for downstream consumers (notifications,
// analytics) without a round trip to the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  string `json:"reservation_id"`
	UserID         string `json:"user_id"`
	ParkingComplex string `json:"parking_complex"`
	SpotID         string `json:"spot_id"`
	VehiclePlate   string `json:"vehicle_plate"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Duration       string `json:"duration"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}
