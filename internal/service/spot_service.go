package service

import (
	"context"

	"parkspot/internal/cache"
	"parkspot/internal/db"
	"parkspot/internal/entities"
	apierrors "parkspot/internal/errors"
	"parkspot/internal/repository"
)

type SpotService struct {
	Spots repository.SpotStore
	Cache *cache.SpotCache
	Hub   SpotBroadcaster
}

func NewSpotService(spots repository.SpotStore, spotCache *cache.SpotCache, hub SpotBroadcaster) *SpotService {
	return &SpotService{Spots: spots, Cache: spotCache, Hub: hub}
}

func (s *SpotService) ListComplexes(ctx context.Context) ([]entities.ComplexSummary, error) {
	return s.Spots.ListComplexes(ctx)
}

// ListSpots returns a complex's grid, served from the cache when possible.
func (s *SpotService) ListSpots(ctx context.Context, complex string) ([]db.ParkingSpot, error) {
	if spots, ok := s.Cache.Get(ctx, complex); ok {
		return spots, nil
	}
	spots, err := s.Spots.List(ctx, complex)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, complex, spots)
	return spots, nil
}

func (s *SpotService) GetSpot(ctx context.Context, complex, spotID string) (*db.ParkingSpot, error) {
	return s.Spots.Get(ctx, complex, spotID)
}

func (s *SpotService) CreateSpot(ctx context.Context, complex, spotID, status string) (*db.ParkingSpot, error) {
	if complex == "" || spotID == "" {
		return nil, apierrors.ErrBadRequest("parking_complex and spot_id are required")
	}
	if status == "" {
		status = db.SpotAvailable
	}
	if !isValidSpotStatus(status) {
		return nil, apierrors.ErrBadRequest("Status must be one of available, reserved, occupied")
	}
	spot := &db.ParkingSpot{ParkingComplex: complex, SpotID: spotID, Status: status}
	if err := s.Spots.Create(ctx, spot); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, complex)
	return spot, nil
}

// CreateComplex seeds a new complex with count spots, A01 upward.
func (s *SpotService) CreateComplex(ctx context.Context, name string, count int) ([]db.ParkingSpot, error) {
	if name == "" {
		return nil, apierrors.ErrBadRequest("Complex name is required")
	}
	if count < 1 || count > 200 {
		return nil, apierrors.ErrBadRequest("Spot count must be between 1 and 200")
	}
	spots, err := s.Spots.BulkCreate(ctx, name, count)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, name)
	return spots, nil
}

func (s *SpotService) RenameComplex(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return apierrors.ErrBadRequest("New complex name is required")
	}
	if _, err := s.Spots.RenameComplex(ctx, oldName, newName); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, oldName)
	s.Cache.Invalidate(ctx, newName)
	return nil
}

// UpdateSpotStatus overwrites a spot's status. Last writer wins; there is no
// version check on the registry.
func (s *SpotService) UpdateSpotStatus(ctx context.Context, id, status string) (*db.ParkingSpot, error) {
	if !isValidSpotStatus(status) {
		return nil, apierrors.ErrBadRequest("Status must be one of available, reserved, occupied")
	}
	if err := s.Spots.UpdateStatusByID(ctx, id, status); err != nil {
		return nil, err
	}
	spot, err := s.Spots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, spot.ParkingComplex)
	if s.Hub != nil {
		s.Hub.BroadcastSpotUpdate(*spot)
	}
	return spot, nil
}

func (s *SpotService) DeleteSpot(ctx context.Context, id string) error {
	spot, err := s.Spots.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Spots.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, spot.ParkingComplex)
	return nil
}

func isValidSpotStatus(s string) bool {
	return s == db.SpotAvailable || s == db.SpotReserved || s == db.SpotOccupied
}
