package api

import (
	"net/http"
	"strconv"

	"github.com/mhayashi/hskdrill/internal/errors"
)

// handleWords returns words at one HSK level, optionally limited to a random
// subset. Query params: level (required), limit (optional).
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("level", "must be an integer"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil {
			handleError(w, r, errors.NewValidationError("limit", "must be an integer"))
			return
		}
	}

	words, err := s.WordService.Fetch(r.Context(), level, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"words": words,
		"count": len(words),
	})
}

// handleLevels returns the available HSK levels with their word counts.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.WordService.Levels(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{"levels": levels})
}
