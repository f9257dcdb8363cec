package api

import (
	"encoding/json"
	"net/http"

	"github.com/mhayashi/hskdrill/internal/logger"
	"github.com/mhayashi/hskdrill/internal/services"
)

type Server struct {
	WordService      services.WordService
	Sessions         *services.SessionRegistry
	StaticDir        string
	AudioDir         string
	QuizFeedbackMS   int
	DefaultWordCount int
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
