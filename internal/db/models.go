package db

import "time"

// Spot statuses as stored in parking_spots.status.
const (
	SpotAvailable = "available"
	SpotReserved  = "reserved"
	SpotOccupied  = "occupied"
)

type ParkingSpot struct {
	ID             string    `json:"id"`
	ParkingComplex string    `json:"parking_complex"`
	SpotID         string    `json:"spot_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Reservation mirrors the reservations table. Date is a calendar date
// ("2006-01-02"), Time a wall-clock start ("15:04", legacy rows may carry
// "3:04 PM"), Duration one of the fixed duration labels. Status is the
// last-written value only; display status is always recomputed.
type Reservation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	ParkingComplex string    `json:"parking_complex"`
	SpotID         string    `json:"spot_id"`
	VehiclePlate   string    `json:"vehicle_plate"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Duration       string    `json:"duration"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	VehiclePlate string    `json:"vehicle_plate"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type VideoFeed struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	URL            string    `json:"url"`
	ParkingComplex string    `json:"parking_complex"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SpotDefinition maps a rectangular region of a video frame to a spot.
// Coordinates are percentages of the frame, not pixels.
type SpotDefinition struct {
	ID             string    `json:"id"`
	VideoFeedID    string    `json:"video_feed_id,omitempty"`
	SpotID         string    `json:"spot_id"`
	ParkingComplex string    `json:"parking_complex"`
	X              float64   `json:"x"`
	Y              float64   `json:"y"`
	Width          float64   `json:"width"`
	Height         float64   `json:"height"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
