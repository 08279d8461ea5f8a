package repository

import (
	"context"
	"errors"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

type SpotStore interface {
	Create(ctx context.Context, spot *db.ParkingSpot) error
	BulkCreate(ctx context.Context, complex string, count int) ([]db.ParkingSpot, error)
	List(ctx context.Context, complex string) ([]db.ParkingSpot, error)
	Get(ctx context.Context, complex, spotID string) (*db.ParkingSpot, error)
	GetByID(ctx context.Context, id string) (*db.ParkingSpot, error)
	UpdateStatus(ctx context.Context, complex, spotID, status string) error
	UpdateStatusByID(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	RenameComplex(ctx context.Context, oldName, newName string) (int64, error)
	ListComplexes(ctx context.Context) ([]entities.ComplexSummary, error)
}

// ReservationFilter narrows admin listings. Zero values mean "no filter".
type ReservationFilter struct {
	Date           string
	ParkingComplex string
	Status         string
}

type ReservationStore interface {
	// Create inserts the reservation and flips its spot to reserved in a
	// single transaction.
	Create(ctx context.Context, res *db.Reservation) error
	GetByID(ctx context.Context, id string) (*db.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]db.Reservation, error)
	List(ctx context.Context, f ReservationFilter) ([]db.Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// Delete removes the reservation and, when releaseSpot is set, resets its
	// spot to available in the same transaction.
	Delete(ctx context.Context, id string, releaseSpot bool) error
}

type ProfileStore interface {
	Create(ctx context.Context, p *db.Profile) error
	GetByEmail(ctx context.Context, email string) (*db.Profile, error)
	GetByID(ctx context.Context, id string) (*db.Profile, error)
	Update(ctx context.Context, p *db.Profile) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type VideoStore interface {
	CreateFeed(ctx context.Context, feed *db.VideoFeed) error
	GetFeed(ctx context.Context, id string) (*db.VideoFeed, error)
	ListFeeds(ctx context.Context, complex string) ([]db.VideoFeed, error)
	UpdateFeed(ctx context.Context, feed *db.VideoFeed) error
	DeleteFeed(ctx context.Context, id string) error
	CreateDefinition(ctx context.Context, def *db.SpotDefinition) error
	ListDefinitionsByFeed(ctx context.Context, feedID string) ([]db.SpotDefinition, error)
	DeleteDefinition(ctx context.Context, id string) error
}

// SyncStore backs the periodic spot-state synchronization job.
type SyncStore interface {
	ListUnfinished(ctx context.Context) ([]db.Reservation, error)
	UpdateStatuses(ctx context.Context, ids []string, status string) (int64, error)
	ReleaseUnbackedSpots(ctx context.Context) (int64, error)
}
