package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
	"parkspot/internal/repository"
)

type fakeVideoStore struct {
	feeds []db.VideoFeed
	defs  []db.SpotDefinition
}

func (f *fakeVideoStore) CreateFeed(_ context.Context, feed *db.VideoFeed) error {
	feed.ID = "feed-1"
	f.feeds = append(f.feeds, *feed)
	return nil
}

func (f *fakeVideoStore) GetFeed(_ context.Context, id string) (*db.VideoFeed, error) {
	for i := range f.feeds {
		if f.feeds[i].ID == id {
			feed := f.feeds[i]
			return &feed, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeVideoStore) ListFeeds(_ context.Context, _ string) ([]db.VideoFeed, error) {
	return f.feeds, nil
}

func (f *fakeVideoStore) UpdateFeed(_ context.Context, _ *db.VideoFeed) error { return nil }
func (f *fakeVideoStore) DeleteFeed(_ context.Context, _ string) error        { return nil }

func (f *fakeVideoStore) CreateDefinition(_ context.Context, def *db.SpotDefinition) error {
	f.defs = append(f.defs, *def)
	return nil
}

func (f *fakeVideoStore) ListDefinitionsByFeed(_ context.Context, feedID string) ([]db.SpotDefinition, error) {
	var out []db.SpotDefinition
	for _, def := range f.defs {
		if def.VideoFeedID == feedID {
			out = append(out, def)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) DeleteDefinition(_ context.Context, _ string) error { return nil }

func TestCreateFeedValidation(t *testing.T) {
	svc := NewVideoService(&fakeVideoStore{})
	ctx := context.Background()

	_, err := svc.CreateFeed(ctx, &db.VideoFeed{URL: "rtsp://cam", ParkingComplex: "Complex A"})
	assert.Error(t, err)
	_, err = svc.CreateFeed(ctx, &db.VideoFeed{Name: "North lot", ParkingComplex: "Complex A"})
	assert.Error(t, err)

	feed, err := svc.CreateFeed(ctx, &db.VideoFeed{Name: "North lot", URL: "rtsp://cam", ParkingComplex: "Complex A"})
	require.NoError(t, err)
	assert.NotEmpty(t, feed.ID)
}

func TestCreateDefinitionRegionBounds(t *testing.T) {
	svc := NewVideoService(&fakeVideoStore{})
	ctx := context.Background()

	base := db.SpotDefinition{SpotID: "A01", ParkingComplex: "Complex A", X: 10, Y: 10, Width: 20, Height: 20}

	ok := base
	_, err := svc.CreateDefinition(ctx, &ok)
	require.NoError(t, err)

	zeroWidth := base
	zeroWidth.Width = 0
	_, err = svc.CreateDefinition(ctx, &zeroWidth)
	assert.Error(t, err)

	// Percent coordinates must keep the region inside the frame.
	spills := base
	spills.X = 90
	_, err = svc.CreateDefinition(ctx, &spills)
	assert.Error(t, err)

	negative := base
	negative.Y = -5
	_, err = svc.CreateDefinition(ctx, &negative)
	assert.Error(t, err)
}

func TestRegionsForFeed(t *testing.T) {
	store := &fakeVideoStore{defs: []db.SpotDefinition{
		{ID: "d1", VideoFeedID: "feed-1", SpotID: "A01", ParkingComplex: "Complex A", X: 1, Y: 2, Width: 3, Height: 4},
		{ID: "d2", VideoFeedID: "feed-2", SpotID: "A02", ParkingComplex: "Complex A", X: 5, Y: 6, Width: 7, Height: 8},
	}}
	svc := NewVideoService(store)

	regions, err := svc.RegionsForFeed(context.Background(), "feed-1")
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "A01", regions[0].SpotID)
	assert.Equal(t, 3.0, regions[0].Width)
}
