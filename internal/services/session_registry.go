package services

import (
	"context"
	"sync"
	"time"

	"github.com/mhayashi/hskdrill/internal/audio"
	"github.com/mhayashi/hskdrill/internal/drill"
	"github.com/mhayashi/hskdrill/internal/logger"
)

// Session bundles the per-browser drill engines with their audio queue.
type Session struct {
	Typing *drill.TypingSession
	Quiz   *drill.QuizSession
	Audio  *audio.Player
}

// SessionRegistry owns the in-memory sessions, keyed by the session cookie.
// Events for one session are serialized through WithSession, which keeps each
// engine single-writer.
type SessionRegistry struct {
	ttl      time.Duration
	audioDir string

	mu      sync.Mutex
	entries map[string]*registryEntry

	log *logger.Logger
}

type registryEntry struct {
	mu         sync.Mutex
	session    *Session
	lastAccess time.Time
}

// NewSessionRegistry creates a registry whose sessions expire after ttl of
// inactivity.
func NewSessionRegistry(ttl time.Duration, audioDir string) *SessionRegistry {
	return &SessionRegistry{
		ttl:      ttl,
		audioDir: audioDir,
		entries:  map[string]*registryEntry{},
		log:      logger.Default().WithPrefix("sessions"),
	}
}

func (r *SessionRegistry) entry(id string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		player := audio.NewPlayer(r.audioDir)
		e = &registryEntry{
			session: &Session{
				Typing: drill.NewTypingSession(drill.WithCueSink(player)),
				Quiz:   drill.NewQuizSession(drill.WithCueSink(player)),
				Audio:  player,
			},
		}
		r.entries[id] = e
		r.log.Debug("created session: %s", id)
	}
	e.lastAccess = time.Now()
	return e
}

// WithSession runs fn with exclusive access to the session for id, creating
// it on first use.
func (r *SessionRegistry) WithSession(id string, fn func(*Session)) {
	e := r.entry(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops sessions idle longer than the TTL and returns how many it
// removed.
func (r *SessionRegistry) Sweep() int {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.entries {
		if e.lastAccess.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.Info("swept %d expired sessions, %d remain", removed, len(r.entries))
	}
	return removed
}

// StartSweeper runs periodic sweeps until ctx is cancelled. The ticker is
// stopped exactly once on the way out.
func (r *SessionRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.log.Debug("session sweeper stopped")
				return
			case <-ticker.C:
				r.Sweep()
			}
		}
	}()
}
