package service

import (
	"context"
	"encoding/base64"
	"log"
	"math/rand"
	"strings"

	"parkspot/internal/cache"
	"parkspot/internal/db"
	"parkspot/internal/entities"
	apierrors "parkspot/internal/errors"
	"parkspot/internal/repository"
)

// Detector produces per-spot occupancy verdicts from a video frame. The
// observation shape is fixed so backends can be swapped without touching the
// rest of the system.
type Detector interface {
	Analyze(ctx context.Context, frame []byte, regions []entities.SpotRegion) ([]entities.SpotObservation, error)
}

type VisionService struct {
	Spots    repository.SpotStore
	Cache    *cache.SpotCache
	Hub      SpotBroadcaster
	Detector Detector
}

func NewVisionService(spots repository.SpotStore, spotCache *cache.SpotCache, hub SpotBroadcaster, detector Detector) *VisionService {
	return &VisionService{Spots: spots, Cache: spotCache, Hub: hub, Detector: detector}
}

// Process dispatches a vision request by action name.
func (s *VisionService) Process(ctx context.Context, req entities.AnalyzeFrameRequest) (*entities.AnalyzeFrameResponse, error) {
	switch req.Action {
	case entities.ActionAnalyzeFrame:
		return s.analyzeFrame(ctx, req)
	case entities.ActionStartMonitoring:
		log.Printf("Starting monitoring for feed: %s (%d spot regions)", req.FeedID, len(req.SpotDefinitions))
		return &entities.AnalyzeFrameResponse{Success: true, Message: "Monitoring started"}, nil
	default:
		return nil, apierrors.ErrBadRequest("Unknown action")
	}
}

// analyzeFrame runs the detector and overwrites spot statuses with its
// verdicts. Occupancy writes are plain overwrites, last writer wins.
func (s *VisionService) analyzeFrame(ctx context.Context, req entities.AnalyzeFrameRequest) (*entities.AnalyzeFrameResponse, error) {
	if len(req.SpotDefinitions) == 0 {
		return nil, apierrors.ErrBadRequest("spot_definitions are required")
	}

	var frame []byte
	if req.VideoFrame != "" {
		payload := req.VideoFrame
		// Data URLs from browser canvas captures carry a media-type prefix.
		if idx := strings.Index(payload, ","); idx != -1 && strings.HasPrefix(payload, "data:") {
			payload = payload[idx+1:]
		}
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, apierrors.ErrBadRequest("video_frame is not valid base64")
		}
		frame = decoded
	}

	results, err := s.Detector.Analyze(ctx, frame, req.SpotDefinitions)
	if err != nil {
		return nil, err
	}

	touched := map[string]bool{}
	for _, result := range results {
		status := db.SpotAvailable
		if result.Occupied {
			status = db.SpotOccupied
		}
		if err := s.Spots.UpdateStatus(ctx, result.ParkingComplex, result.SpotID, status); err != nil {
			log.Printf("Vision: could not update spot %s/%s: %v", result.ParkingComplex, result.SpotID, err)
			continue
		}
		touched[result.ParkingComplex] = true
		if s.Hub != nil {
			if spot, err := s.Spots.Get(ctx, result.ParkingComplex, result.SpotID); err == nil {
				s.Hub.BroadcastSpotUpdate(*spot)
			}
		}
	}
	for complex := range touched {
		s.Cache.Invalidate(ctx, complex)
	}

	return &entities.AnalyzeFrameResponse{Success: true, Results: results}, nil
}

// RandomDetector simulates occupancy detection: roughly 30% of spots read as
// occupied, confidence uniform in [0.7, 1.0). Useful without camera hardware
// and the default backend.
type RandomDetector struct {
	rng *rand.Rand
}

func NewRandomDetector(seed int64) *RandomDetector {
	return &RandomDetector{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandomDetector) Analyze(_ context.Context, _ []byte, regions []entities.SpotRegion) ([]entities.SpotObservation, error) {
	results := make([]entities.SpotObservation, 0, len(regions))
	for _, region := range regions {
		results = append(results, entities.SpotObservation{
			SpotID:         region.SpotID,
			ParkingComplex: region.ParkingComplex,
			Occupied:       d.rng.Float64() > 0.7,
			Confidence:     0.7 + d.rng.Float64()*0.3,
		})
	}
	return results, nil
}
