package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"lingoTrackAPI/internal/gamification"
	"lingoTrackAPI/middleware"
	"lingoTrackAPI/services"
)

type GamificationHandler struct {
	gamificationService *services.GamificationService
}

func NewGamificationHandler(gamificationService *services.GamificationService) *GamificationHandler {
	return &GamificationHandler{
		gamificationService: gamificationService,
	}
}

// AwardXP converts a finished activity into XP and rolls the activity
// streak in the same request.
func (h *GamificationHandler) AwardXP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req gamification.AwardXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.gamificationService.AwardXP(ctx, userID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	// The award already succeeded, so a streak failure only logs.
	if _, err := h.gamificationService.UpdateStreak(ctx, userID); err != nil {
		log.Printf("AwardXP: streak update for user %s failed: %v", userID, err)
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Achievements returns the unlocked set plus catalog progress.
func (h *GamificationHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resp, err := h.gamificationService.Achievements(ctx, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// Weekly returns the seven-day dashboard view.
func (h *GamificationHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resp, err := h.gamificationService.Weekly(ctx, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
