// Package drill implements the session engines for both practice modes: the
// pinyin typing drill and the multiple-choice quiz. Both share one state
// machine core (pool validation, cursor, stats, clock, audio cues) and differ
// only in how items are generated and resolved.
//
// Engines are headless and single-writer: the caller serializes events per
// session. All time is read through an injected Clock and all audio goes
// through a CueSink, so engines are fully deterministic under test.
package drill

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/mhayashi/hskdrill/internal/models"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateIdle State = iota
	StateConfiguring
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfiguring:
		return "configuring"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Sentinel errors for events the engine ignores. Callers treat these as
// no-ops, not failures.
var (
	ErrNotActive       = errors.New("drill: session is not active")
	ErrStaleGeneration = errors.New("drill: event for a stale session generation")
	ErrQuestionLocked  = errors.New("drill: question is already resolved")
	ErrNotRevealed     = errors.New("drill: question is not resolved yet")
)

// Cue names the audio effects a session can emit.
type Cue string

const (
	CueCorrect   Cue = "correct"
	CueIncorrect Cue = "incorrect"
	CueSuccess   Cue = "success"
)

// CueSink receives fire-and-forget audio effects. Implementations must not
// block and must swallow their own failures.
type CueSink interface {
	PlayCue(cue Cue)
	PlayWord(wordID int64)
}

// NopSink discards all cues.
type NopSink struct{}

func (NopSink) PlayCue(Cue)    {}
func (NopSink) PlayWord(int64) {}

// Clock abstracts time to keep sessions deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Direction selects which side of a word a quiz question shows.
type Direction int

const (
	DirectionChineseToMeaning Direction = iota
	DirectionMeaningToChinese
	DirectionMixed
)

func (d Direction) String() string {
	switch d {
	case DirectionChineseToMeaning:
		return "chinese_to_meaning"
	case DirectionMeaningToChinese:
		return "meaning_to_chinese"
	case DirectionMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// ParseDirection maps the wire form of a direction to its enum value.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "chinese_to_meaning", "":
		return DirectionChineseToMeaning, true
	case "meaning_to_chinese":
		return DirectionMeaningToChinese, true
	case "mixed":
		return DirectionMixed, true
	default:
		return DirectionChineseToMeaning, false
	}
}

// Config is the per-session configuration captured at start.
type Config struct {
	Count int // number of items to drill; <= 0 means the whole pool

	// Quiz only.
	Direction Direction

	// Typing only. Showing the target also enables skip tracking: in the
	// hidden-target sub-mode skips advance but are not recorded.
	ShowTarget bool

	// Audio toggles, owned by the caller and consulted by the engine.
	FeedbackSound bool
	Pronunciation bool
}

// MissedEntry records one wrong or skipped item for the end-of-session review.
type MissedEntry struct {
	Word     models.Word `json:"word"`
	Expected string      `json:"expected"`
	Entered  string      `json:"entered"`
	Skipped  bool        `json:"skipped"`
}

// Stats accumulates scoring over one session run.
type Stats struct {
	Correct   int
	Wrong     int // quiz: wrong answers; unused by typing
	Skipped   int // quiz: skips, excluded from accuracy
	Missed    []MissedEntry
	StartedAt time.Time
}

// Accuracy is the percentage of correct resolutions, rounded to the nearest
// integer, with 0 for an empty denominator.
func Accuracy(correct, wrong int) int {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// core is the shared state machine. The mode-specific sessions embed it.
type core struct {
	state      State
	generation uint64
	cfg        Config
	stats      Stats
	cursor     int
	total      int
	endedAt    time.Time
	clock      Clock
	cues       CueSink
	rng        *rand.Rand
}

// Option configures a session at construction time.
type Option func(*core)

// WithClock injects the session clock.
func WithClock(c Clock) Option {
	return func(s *core) { s.clock = c }
}

// WithCueSink injects the audio cue sink.
func WithCueSink(sink CueSink) Option {
	return func(s *core) { s.cues = sink }
}

// WithRand injects the randomness source used for shuffling and distractors.
func WithRand(rng *rand.Rand) Option {
	return func(s *core) { s.rng = rng }
}

func newCore(opts ...Option) core {
	c := core{
		state: StateConfiguring,
		clock: SystemClock{},
		cues:  NopSink{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// State returns the current lifecycle phase.
func (c *core) State() State { return c.state }

// Generation identifies the current run. Events carrying an older generation
// are ignored, which protects against late-arriving requests after a reset.
func (c *core) Generation() uint64 { return c.generation }

// Config returns the configuration captured at start.
func (c *core) Config() Config { return c.cfg }

// Stats returns a copy of the accumulated stats.
func (c *core) Stats() Stats {
	out := c.stats
	out.Missed = append([]MissedEntry(nil), c.stats.Missed...)
	return out
}

func (c *core) checkEvent(gen uint64) error {
	if c.state != StateActive {
		return ErrNotActive
	}
	if gen != c.generation {
		return ErrStaleGeneration
	}
	return nil
}

func (c *core) begin(cfg Config, total int) {
	c.cfg = cfg
	c.generation++
	c.state = StateActive
	c.cursor = 0
	c.total = total
	c.stats = Stats{StartedAt: c.clock.Now()}
	c.endedAt = time.Time{}
}

// finish transitions to Ended exactly once and freezes the elapsed clock.
func (c *core) finish() {
	if c.state != StateActive {
		return
	}
	c.state = StateEnded
	c.endedAt = c.clock.Now()
	if c.cfg.FeedbackSound {
		c.cues.PlayCue(CueSuccess)
	}
}

func (c *core) reset() {
	c.state = StateConfiguring
	c.generation++
	c.cursor = 0
	c.total = 0
	c.stats = Stats{}
	c.endedAt = time.Time{}
}

func (c *core) announceWord(id int64) {
	if c.cfg.Pronunciation {
		c.cues.PlayWord(id)
	}
}

// Elapsed recomputes wall-clock time from the stored start timestamp, so
// polling consumers never observe drift. Once ended the value is frozen.
func (c *core) Elapsed() time.Duration {
	if c.stats.StartedAt.IsZero() {
		return 0
	}
	if !c.endedAt.IsZero() {
		return c.endedAt.Sub(c.stats.StartedAt)
	}
	if c.state != StateActive {
		return 0
	}
	return c.clock.Now().Sub(c.stats.StartedAt)
}
