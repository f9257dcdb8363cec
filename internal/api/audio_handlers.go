package api

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mhayashi/hskdrill/internal/audio"
	"github.com/mhayashi/hskdrill/internal/drill"
	"github.com/mhayashi/hskdrill/internal/errors"
)

// handleCueClip serves one of the fixed feedback clips by cue name.
func (s *Server) handleCueClip(w http.ResponseWriter, r *http.Request) {
	cue := drill.Cue(chi.URLParam(r, "name"))
	switch cue {
	case drill.CueCorrect, drill.CueIncorrect, drill.CueSuccess:
	default:
		handleError(w, r, errors.NewValidationError("name", "unknown cue"))
		return
	}
	http.ServeFile(w, r, filepath.Join(s.AudioDir, filepath.FromSlash(audio.CuePath(cue))))
}

// handleWordClip serves the pronunciation clip for a word. The word must
// exist; the clip itself may still 404.
func (s *Server) handleWordClip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handleError(w, r, errors.NewValidationError("id", "must be an integer"))
		return
	}
	if _, err := s.WordService.Get(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.AudioDir, filepath.FromSlash(audio.WordPath(id))))
}
