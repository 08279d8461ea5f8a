package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"parkspot/internal/db"
	"parkspot/internal/service"
)

type VideoHandler struct {
	Service *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{Service: svc}
}

func (h *VideoHandler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	var feed db.VideoFeed
	if err := json.NewDecoder(r.Body).Decode(&feed); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateFeed(r.Context(), &feed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *VideoHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	feeds, err := h.Service.ListFeeds(r.Context(), r.URL.Query().Get("parking_complex"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feeds)
}

func (h *VideoHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Service.GetFeed(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *VideoHandler) UpdateFeed(w http.ResponseWriter, r *http.Request) {
	var feed db.VideoFeed
	if err := json.NewDecoder(r.Body).Decode(&feed); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	feed.ID = mux.Vars(r)["id"]
	if err := h.Service.UpdateFeed(r.Context(), &feed); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (h *VideoHandler) DeleteFeed(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteFeed(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feed deleted"})
}

func (h *VideoHandler) CreateDefinition(w http.ResponseWriter, r *http.Request) {
	var def db.SpotDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	def.VideoFeedID = mux.Vars(r)["id"]
	created, err := h.Service.CreateDefinition(r.Context(), &def)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *VideoHandler) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.Service.ListDefinitionsByFeed(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, defs)
}

func (h *VideoHandler) DeleteDefinition(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteDefinition(r.Context(), mux.Vars(r)["definition_id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Definition deleted"})
}
