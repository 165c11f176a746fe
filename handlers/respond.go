package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lingoTrackAPI/internal/apperr"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps service errors onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		respondWithError(w, http.StatusConflict, "Profile update conflicted, retry")
	case errors.Is(err, apperr.ErrUnavailable):
		respondWithError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		log.Printf("handler error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
