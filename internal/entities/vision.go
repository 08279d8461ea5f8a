package entities

// Actions accepted by the vision endpoint.
const (
	ActionAnalyzeFrame    = "analyze_frame"
	ActionStartMonitoring = "start_monitoring"
)

type SpotRegion struct {
	SpotID         string  `json:"spot_id"`
	ParkingComplex string  `json:"parking_complex"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

type AnalyzeFrameRequest struct {
	Action          string       `json:"action"`
	FeedID          string       `json:"feed_id,omitempty"`
	VideoFrame      string       `json:"video_frame,omitempty"` // base64-encoded JPEG/PNG
	SpotDefinitions []SpotRegion `json:"spot_definitions,omitempty"`
}

// SpotObservation is the per-spot occupancy verdict. The shape is fixed so
// detector implementations can be swapped without touching callers.
type SpotObservation struct {
	SpotID         string  `json:"spot_id"`
	ParkingComplex string  `json:"parking_complex"`
	Occupied       bool    `json:"occupied"`
	Confidence     float64 `json:"confidence"`
}

type AnalyzeFrameResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Results []SpotObservation `json:"results,omitempty"`
}
