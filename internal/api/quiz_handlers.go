package api

import (
	"net/http"

	"github.com/mhayashi/hskdrill/internal/drill"
	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/services"
)

type quizStartRequest struct {
	Level         int    `json:"level"`
	Count         int    `json:"count"`
	Direction     string `json:"direction"`
	FeedbackSound bool   `json:"feedback_sound"`
	Pronunciation bool   `json:"pronunciation"`
}

type quizAnswerRequest struct {
	Generation uint64 `json:"generation"`
	Choice     int    `json:"choice"`
}

// quizEvent runs fn against the caller's quiz session and answers with the
// resulting state, mirroring typingEvent.
func (s *Server) quizEvent(w http.ResponseWriter, r *http.Request, fn func(*services.Session) error) {
	var resp quizStateResponse
	var evErr error
	s.Sessions.WithSession(sessionFromContext(r.Context()), func(sess *services.Session) {
		evErr = fn(sess)
		if evErr == nil || ignoredEvent(evErr) {
			resp = quizState(sess)
		}
	})
	if evErr != nil && !ignoredEvent(evErr) {
		handleError(w, r, evErr)
		return
	}
	resp.Ignored = evErr != nil
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	var req quizStartRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	direction, ok := drill.ParseDirection(req.Direction)
	if !ok {
		handleError(w, r, errors.NewValidationError("direction", "unknown direction"))
		return
	}
	count := req.Count
	if count == 0 {
		count = s.DefaultWordCount
	}

	// The whole level is fetched so distractors can be drawn from outside
	// the drilled selection.
	pool, err := s.WordService.Fetch(r.Context(), req.Level, 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	cfg := drill.Config{
		Count:         count,
		Direction:     direction,
		FeedbackSound: req.FeedbackSound,
		Pronunciation: req.Pronunciation,
	}
	s.quizEvent(w, r, func(sess *services.Session) error {
		return sess.Quiz.Start(pool, cfg)
	})
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	var result drill.ChoiceResult
	var resp quizStateResponse
	var evErr error
	s.Sessions.WithSession(sessionFromContext(r.Context()), func(sess *services.Session) {
		result, evErr = sess.Quiz.Choose(req.Generation, req.Choice)
		if evErr == nil || ignoredEvent(evErr) {
			resp = quizState(sess)
		}
	})
	if evErr != nil && !ignoredEvent(evErr) {
		handleError(w, r, evErr)
		return
	}
	resp.Ignored = evErr != nil

	respondJSON(w, r, http.StatusOK, struct {
		quizStateResponse
		AnswerCorrect  bool `json:"answer_correct"`
		AdvanceAfterMS int  `json:"advance_after_ms"`
	}{
		quizStateResponse: resp,
		AnswerCorrect:     result.Correct,
		AdvanceAfterMS:    s.QuizFeedbackMS,
	})
}

func (s *Server) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	s.quizEvent(w, r, func(sess *services.Session) error {
		return sess.Quiz.Next(req.Generation)
	})
}

func (s *Server) handleQuizSkip(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	s.quizEvent(w, r, func(sess *services.Session) error {
		return sess.Quiz.Skip(req.Generation)
	})
}

func (s *Server) handleQuizEnd(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	s.quizEvent(w, r, func(sess *services.Session) error {
		return sess.Quiz.End(req.Generation)
	})
}

func (s *Server) handleQuizReset(w http.ResponseWriter, r *http.Request) {
	s.quizEvent(w, r, func(sess *services.Session) error {
		sess.Quiz.Reset()
		return nil
	})
}

func (s *Server) handleQuizState(w http.ResponseWriter, r *http.Request) {
	s.quizEvent(w, r, func(*services.Session) error { return nil })
}
