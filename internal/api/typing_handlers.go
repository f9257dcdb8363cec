package api

import (
	"net/http"

	"github.com/mhayashi/hskdrill/internal/drill"
	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/services"
)

type typingStartRequest struct {
	Level         int  `json:"level"`
	Count         int  `json:"count"`
	ShowTarget    bool `json:"show_target"`
	FeedbackSound bool `json:"feedback_sound"`
	Pronunciation bool `json:"pronunciation"`
}

type typingInputRequest struct {
	Generation uint64 `json:"generation"`
	Text       string `json:"text"`
}

type eventRequest struct {
	Generation uint64 `json:"generation"`
}

// typingEvent runs fn against the caller's typing session and answers with
// the resulting state. Sentinel no-ops come back as the current state with
// the ignored flag set; real errors take the error path.
func (s *Server) typingEvent(w http.ResponseWriter, r *http.Request, fn func(*services.Session) error) {
	var resp typingStateResponse
	var evErr error
	s.Sessions.WithSession(sessionFromContext(r.Context()), func(sess *services.Session) {
		evErr = fn(sess)
		if evErr == nil || ignoredEvent(evErr) {
			resp = typingState(sess)
		}
	})
	if evErr != nil && !ignoredEvent(evErr) {
		handleError(w, r, evErr)
		return
	}
	resp.Ignored = evErr != nil
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleTypingStart(w http.ResponseWriter, r *http.Request) {
	var req typingStartRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	count := req.Count
	if count == 0 {
		count = s.DefaultWordCount
	}

	pool, err := s.WordService.Fetch(r.Context(), req.Level, 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cfg := drill.Config{
		Count:         count,
		ShowTarget:    req.ShowTarget,
		FeedbackSound: req.FeedbackSound,
		Pronunciation: req.Pronunciation,
	}
	s.typingEvent(w, r, func(sess *services.Session) error {
		return sess.Typing.Start(pool, cfg)
	})
}

func (s *Server) handleTypingInput(w http.ResponseWriter, r *http.Request) {
	var req typingInputRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	var result drill.InputResult
	var resp typingStateResponse
	var evErr error
	s.Sessions.WithSession(sessionFromContext(r.Context()), func(sess *services.Session) {
		result, evErr = sess.Typing.Input(req.Generation, req.Text)
		if evErr == nil || ignoredEvent(evErr) {
			resp = typingState(sess)
		}
	})
	if evErr != nil && !ignoredEvent(evErr) {
		handleError(w, r, evErr)
		return
	}
	resp.Ignored = evErr != nil

	respondJSON(w, r, http.StatusOK, struct {
		typingStateResponse
		Match         string `json:"match"`
		MatchedPrefix int    `json:"matched_prefix"`
		Advanced      bool   `json:"advanced"`
		Done          bool   `json:"done"`
	}{
		typingStateResponse: resp,
		Match:               result.Match.String(),
		MatchedPrefix:       result.MatchedPrefix,
		Advanced:            result.Advanced,
		Done:                result.Done,
	})
}

func (s *Server) handleTypingSkip(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	s.typingEvent(w, r, func(sess *services.Session) error {
		_, err := sess.Typing.Skip(req.Generation)
		return err
	})
}

func (s *Server) handleTypingEnd(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	s.typingEvent(w, r, func(sess *services.Session) error {
		return sess.Typing.End(req.Generation)
	})
}

func (s *Server) handleTypingReset(w http.ResponseWriter, r *http.Request) {
	s.typingEvent(w, r, func(sess *services.Session) error {
		sess.Typing.Reset()
		return nil
	})
}

func (s *Server) handleTypingState(w http.ResponseWriter, r *http.Request) {
	s.typingEvent(w, r, func(*services.Session) error { return nil })
}
