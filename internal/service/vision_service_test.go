package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkspot/internal/db"
	"parkspot/internal/entities"
)

type stubDetector struct {
	results []entities.SpotObservation
}

func (d *stubDetector) Analyze(_ context.Context, _ []byte, _ []entities.SpotRegion) ([]entities.SpotObservation, error) {
	return d.results, nil
}

func TestAnalyzeFrameWritesStatuses(t *testing.T) {
	spots := newFakeSpotStore()
	spots.add("Complex A", "A01", db.SpotAvailable)
	spots.add("Complex A", "A02", db.SpotReserved)
	hub := &fakeHub{}
	detector := &stubDetector{results: []entities.SpotObservation{
		{SpotID: "A01", ParkingComplex: "Complex A", Occupied: true, Confidence: 0.9},
		{SpotID: "A02", ParkingComplex: "Complex A", Occupied: false, Confidence: 0.8},
	}}
	svc := NewVisionService(spots, nil, hub, detector)

	resp, err := svc.Process(context.Background(), entities.AnalyzeFrameRequest{
		Action:          entities.ActionAnalyzeFrame,
		SpotDefinitions: []entities.SpotRegion{{SpotID: "A01", ParkingComplex: "Complex A"}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Results, 2)

	// Detector verdicts overwrite whatever was stored, reserved included.
	a01, _ := spots.Get(context.Background(), "Complex A", "A01")
	assert.Equal(t, db.SpotOccupied, a01.Status)
	a02, _ := spots.Get(context.Background(), "Complex A", "A02")
	assert.Equal(t, db.SpotAvailable, a02.Status)
	assert.Len(t, hub.updates, 2)
}

func TestAnalyzeFrameUnknownSpotSkipped(t *testing.T) {
	spots := newFakeSpotStore()
	spots.add("Complex A", "A01", db.SpotAvailable)
	detector := &stubDetector{results: []entities.SpotObservation{
		{SpotID: "Z99", ParkingComplex: "Complex A", Occupied: true, Confidence: 0.9},
		{SpotID: "A01", ParkingComplex: "Complex A", Occupied: true, Confidence: 0.9},
	}}
	svc := NewVisionService(spots, nil, nil, detector)

	resp, err := svc.Process(context.Background(), entities.AnalyzeFrameRequest{
		Action:          entities.ActionAnalyzeFrame,
		SpotDefinitions: []entities.SpotRegion{{SpotID: "A01", ParkingComplex: "Complex A"}},
	})
	require.NoError(t, err, "a verdict for an unregistered spot is logged, not fatal")
	assert.True(t, resp.Success)

	a01, _ := spots.Get(context.Background(), "Complex A", "A01")
	assert.Equal(t, db.SpotOccupied, a01.Status)
}

func TestProcessValidation(t *testing.T) {
	svc := NewVisionService(newFakeSpotStore(), nil, nil, &stubDetector{})

	_, err := svc.Process(context.Background(), entities.AnalyzeFrameRequest{Action: "reboot"})
	assert.Error(t, err)

	_, err = svc.Process(context.Background(), entities.AnalyzeFrameRequest{Action: entities.ActionAnalyzeFrame})
	assert.Error(t, err, "analyze_frame needs spot definitions")

	_, err = svc.Process(context.Background(), entities.AnalyzeFrameRequest{
		Action:          entities.ActionAnalyzeFrame,
		VideoFrame:      "%%% not base64 %%%",
		SpotDefinitions: []entities.SpotRegion{{SpotID: "A01", ParkingComplex: "Complex A"}},
	})
	assert.Error(t, err)

	resp, err := svc.Process(context.Background(), entities.AnalyzeFrameRequest{Action: entities.ActionStartMonitoring})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestRandomDetectorCoversEverySpot(t *testing.T) {
	detector := NewRandomDetector(1)
	regions := []entities.SpotRegion{
		{SpotID: "A01", ParkingComplex: "Complex A"},
		{SpotID: "A02", ParkingComplex: "Complex A"},
		{SpotID: "A03", ParkingComplex: "Complex A"},
	}

	results, err := detector.Analyze(context.Background(), nil, regions)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, regions[i].SpotID, result.SpotID)
		assert.GreaterOrEqual(t, result.Confidence, 0.7)
		assert.Less(t, result.Confidence, 1.0)
	}
}

func TestOverlapRatio(t *testing.T) {
	region := entities.SpotRegion{X: 10, Y: 10, Width: 20, Height: 20}

	// Vehicle box covering the region entirely.
	assert.InDelta(t, 1.0, overlapRatio(region, 0, 0, 1, 1), 1e-9)
	// Disjoint box.
	assert.Zero(t, overlapRatio(region, 0.5, 0.5, 0.2, 0.2))
	// Half overlap: box covers the left half of the region.
	assert.InDelta(t, 0.5, overlapRatio(region, 0, 0, 0.2, 1), 1e-9)
}
