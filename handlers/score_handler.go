package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"lingoTrackAPI/internal/score"
	"lingoTrackAPI/services"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
}

func NewScoreHandler(scoreService *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// SaveScore commits a finished session score. The practice UI submits
// on the learner's behalf, so the user id travels in the body.
func (h *ScoreHandler) SaveScore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req score.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "Field 'id' is required")
		return
	}

	resp, err := h.scoreService.SaveScore(ctx, req.ID, req.Score)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// FetchDetail returns the score record plus the current and previous
// month calendar grids.
func (h *ScoreHandler) FetchDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := r.URL.Query().Get("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'id' is required")
		return
	}

	resp, err := h.scoreService.FetchDetail(ctx, id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
