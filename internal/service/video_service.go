package service

import (
	"context"
	"errors"
	"strings"

	"parkspot/internal/db"
	"parkspot/internal/entities"
	apierrors "parkspot/internal/errors"
	"parkspot/internal/repository"
)

// VideoService manages camera feeds and the spot regions drawn over them.
type VideoService struct {
	Videos repository.VideoStore
}

func NewVideoService(videos repository.VideoStore) *VideoService {
	return &VideoService{Videos: videos}
}

func (s *VideoService) CreateFeed(ctx context.Context, feed *db.VideoFeed) (*db.VideoFeed, error) {
	if strings.TrimSpace(feed.Name) == "" {
		return nil, apierrors.ErrBadRequest("Feed name is required")
	}
	if strings.TrimSpace(feed.URL) == "" {
		return nil, apierrors.ErrBadRequest("Feed URL is required")
	}
	if strings.TrimSpace(feed.ParkingComplex) == "" {
		return nil, apierrors.ErrBadRequest("Parking complex is required")
	}
	if err := s.Videos.CreateFeed(ctx, feed); err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *VideoService) GetFeed(ctx context.Context, id string) (*db.VideoFeed, error) {
	feed, err := s.Videos.GetFeed(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apierrors.ErrNotFound("Video feed not found")
	}
	return feed, err
}

func (s *VideoService) ListFeeds(ctx context.Context, complex string) ([]db.VideoFeed, error) {
	return s.Videos.ListFeeds(ctx, complex)
}

func (s *VideoService) UpdateFeed(ctx context.Context, feed *db.VideoFeed) error {
	err := s.Videos.UpdateFeed(ctx, feed)
	if errors.Is(err, repository.ErrNotFound) {
		return apierrors.ErrNotFound("Video feed not found")
	}
	return err
}

func (s *VideoService) DeleteFeed(ctx context.Context, id string) error {
	err := s.Videos.DeleteFeed(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apierrors.ErrNotFound("Video feed not found")
	}
	return err
}

func (s *VideoService) CreateDefinition(ctx context.Context, def *db.SpotDefinition) (*db.SpotDefinition, error) {
	if strings.TrimSpace(def.SpotID) == "" || strings.TrimSpace(def.ParkingComplex) == "" {
		return nil, apierrors.ErrBadRequest("spot_id and parking_complex are required")
	}
	if def.Width <= 0 || def.Height <= 0 {
		return nil, apierrors.ErrBadRequest("Region width and height must be positive")
	}
	if def.X < 0 || def.Y < 0 || def.X+def.Width > 100 || def.Y+def.Height > 100 {
		return nil, apierrors.ErrBadRequest("Region must fit inside the frame (percent coordinates)")
	}
	if err := s.Videos.CreateDefinition(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *VideoService) ListDefinitionsByFeed(ctx context.Context, feedID string) ([]db.SpotDefinition, error) {
	return s.Videos.ListDefinitionsByFeed(ctx, feedID)
}

func (s *VideoService) DeleteDefinition(ctx context.Context, id string) error {
	err := s.Videos.DeleteDefinition(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apierrors.ErrNotFound("Spot definition not found")
	}
	return err
}

// RegionsForFeed loads a feed's definitions as detector regions.
func (s *VideoService) RegionsForFeed(ctx context.Context, feedID string) ([]entities.SpotRegion, error) {
	defs, err := s.Videos.ListDefinitionsByFeed(ctx, feedID)
	if err != nil {
		return nil, err
	}
	regions := make([]entities.SpotRegion, 0, len(defs))
	for _, def := range defs {
		regions = append(regions, entities.SpotRegion{
			SpotID:         def.SpotID,
			ParkingComplex: def.ParkingComplex,
			X:              def.X,
			Y:              def.Y,
			Width:          def.Width,
			Height:         def.Height,
		})
	}
	return regions, nil
}
