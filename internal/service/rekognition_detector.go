package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"parkspot/internal/entities"
)

// Labels Rekognition emits for parked vehicles.
var vehicleLabels = map[string]bool{
	"Car":     true,
	"Vehicle": true,
	"Truck":   true,
	"Van":     true,
}

// RekognitionDetector decides occupancy by intersecting detected vehicle
// bounding boxes with the configured spot regions. Regions and Rekognition
// boxes both use fractional coordinates relative to frame size, so they
// compare directly.
type RekognitionDetector struct {
	client *rekognition.Client
}

func NewRekognitionDetector(client *rekognition.Client) *RekognitionDetector {
	return &RekognitionDetector{client: client}
}

func (d *RekognitionDetector) Analyze(ctx context.Context, frame []byte, regions []entities.SpotRegion) ([]entities.SpotObservation, error) {
	if d.client == nil {
		return nil, fmt.Errorf("rekognition client is not configured")
	}
	if len(frame) == 0 {
		return nil, fmt.Errorf("rekognition detector needs a video frame")
	}

	result, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: frame},
		MinConfidence: aws.Float32(70),
	})
	if err != nil {
		return nil, fmt.Errorf("rekognition DetectLabels: %w", err)
	}

	type box struct {
		left, top, width, height float64
		confidence               float64
	}
	var vehicles []box
	for _, label := range result.Labels {
		if label.Name == nil || !vehicleLabels[*label.Name] {
			continue
		}
		for _, instance := range label.Instances {
			bb := instance.BoundingBox
			if bb == nil || bb.Left == nil || bb.Top == nil || bb.Width == nil || bb.Height == nil {
				continue
			}
			confidence := float64(0)
			if instance.Confidence != nil {
				confidence = float64(*instance.Confidence) / 100
			}
			vehicles = append(vehicles, box{
				left:       float64(*bb.Left),
				top:        float64(*bb.Top),
				width:      float64(*bb.Width),
				height:     float64(*bb.Height),
				confidence: confidence,
			})
		}
	}
	log.Printf("Vision: Rekognition found %d vehicle instances across %d labels", len(vehicles), len(result.Labels))

	results := make([]entities.SpotObservation, 0, len(regions))
	for _, region := range regions {
		observation := entities.SpotObservation{
			SpotID:         region.SpotID,
			ParkingComplex: region.ParkingComplex,
			Confidence:     0.7,
		}
		for _, vehicle := range vehicles {
			if overlapRatio(region, vehicle.left, vehicle.top, vehicle.width, vehicle.height) >= 0.3 {
				observation.Occupied = true
				if vehicle.confidence > observation.Confidence {
					observation.Confidence = vehicle.confidence
				}
			}
		}
		results = append(results, observation)
	}
	return results, nil
}

// overlapRatio returns the intersection area divided by the region area.
func overlapRatio(region entities.SpotRegion, left, top, width, height float64) float64 {
	rx, ry := region.X/100, region.Y/100
	rw, rh := region.Width/100, region.Height/100
	if rw <= 0 || rh <= 0 {
		return 0
	}
	ix := max(rx, left)
	iy := max(ry, top)
	ix2 := min(rx+rw, left+width)
	iy2 := min(ry+rh, top+height)
	if ix2 <= ix || iy2 <= iy {
		return 0
	}
	return ((ix2 - ix) * (iy2 - iy)) / (rw * rh)
}
