package api

import (
	"encoding/json"
	"net/http"

	"parkspot/internal/entities"
	"parkspot/internal/service"
)

type VisionHandler struct {
	Vision *service.VisionService
	Videos *service.VideoService
}

func NewVisionHandler(vision *service.VisionService, videos *service.VideoService) *VisionHandler {
	return &VisionHandler{Vision: vision, Videos: videos}
}

// Analyze accepts {action, feed_id, video_frame, spot_definitions}. When the
// request names a feed but carries no regions, the feed's stored definitions
// are used.
func (h *VisionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req entities.AnalyzeFrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.SpotDefinitions) == 0 && req.FeedID != "" {
		regions, err := h.Videos.RegionsForFeed(r.Context(), req.FeedID)
		if err != nil {
			writeError(w, err)
			return
		}
		req.SpotDefinitions = regions
	}
	resp, err := h.Vision.Process(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
