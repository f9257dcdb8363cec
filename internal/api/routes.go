package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(sessionMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/words", s.handleWords)
		r.Get("/levels", s.handleLevels)
		r.Get("/audio/cue/{name}", s.handleCueClip)
		r.Get("/audio/word/{id}", s.handleWordClip)

		r.Route("/typing", func(r chi.Router) {
			r.Post("/start", s.handleTypingStart)
			r.Post("/input", s.handleTypingInput)
			r.Post("/skip", s.handleTypingSkip)
			r.Post("/end", s.handleTypingEnd)
			r.Post("/reset", s.handleTypingReset)
			r.Get("/state", s.handleTypingState)
		})

		r.Route("/quiz", func(r chi.Router) {
			r.Post("/start", s.handleQuizStart)
			r.Post("/answer", s.handleQuizAnswer)
			r.Post("/next", s.handleQuizNext)
			r.Post("/skip", s.handleQuizSkip)
			r.Post("/end", s.handleQuizEnd)
			r.Post("/reset", s.handleQuizReset)
			r.Get("/state", s.handleQuizState)
		})
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.StaticDir))))
	return r
}
