// Package audio resolves drill cues and word pronunciations to static clips
// the browser can play. Playback is best-effort: a missing clip is logged and
// swallowed, never surfaced to the session engine.
package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mhayashi/hskdrill/internal/drill"
	"github.com/mhayashi/hskdrill/internal/logger"
)

// Player implements drill.CueSink. It checks that a clip exists for each
// emitted cue and records the URL path the front end should fetch. Failures
// never propagate.
type Player struct {
	dir string
	log *logger.Logger

	mu      sync.Mutex
	pending []string
}

// NewPlayer creates a Player over the given audio directory.
func NewPlayer(dir string) *Player {
	return &Player{
		dir: dir,
		log: logger.Default().WithPrefix("audio"),
	}
}

// CuePath maps a cue name to its clip path relative to the audio directory.
func CuePath(cue drill.Cue) string {
	return fmt.Sprintf("%s.mp3", cue)
}

// WordPath maps a word ID to its pronunciation clip path.
func WordPath(wordID int64) string {
	return fmt.Sprintf("words/%d.mp3", wordID)
}

// PlayCue queues a feedback cue. Missing clips are logged and dropped.
func (p *Player) PlayCue(cue drill.Cue) {
	p.enqueue(CuePath(cue))
}

// PlayWord queues a pronunciation clip. Missing clips are logged and dropped.
func (p *Player) PlayWord(wordID int64) {
	p.enqueue(WordPath(wordID))
}

func (p *Player) enqueue(rel string) {
	full := filepath.Join(p.dir, filepath.FromSlash(rel))
	if _, err := os.Stat(full); err != nil {
		p.log.Warn("audio clip unavailable: %s (%v)", rel, err)
		return
	}
	p.mu.Lock()
	p.pending = append(p.pending, "/static/audio/"+rel)
	p.mu.Unlock()
}

// Drain returns the queued clip URLs and clears the queue. The HTTP layer
// attaches them to the next response so the browser plays them.
func (p *Player) Drain() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.pending
	p.pending = nil
	return out
}
