package drill

import (
	"strings"
	"unicode/utf8"

	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/models"
)

// MatchState classifies the current input against the target pinyin.
type MatchState int

const (
	MatchNone MatchState = iota
	MatchPartial
	MatchMismatch
	MatchExact
)

func (m MatchState) String() string {
	switch m {
	case MatchPartial:
		return "partial"
	case MatchMismatch:
		return "mismatch"
	case MatchExact:
		return "exact"
	default:
		return "none"
	}
}

// InputResult describes what one input event did.
type InputResult struct {
	Match         MatchState
	MatchedPrefix int // runes of correct prefix; meaningful for mismatch
	Advanced      bool
	Done          bool
}

// TypingSession drills pinyin transliteration: the learner types the plain
// pinyin of the shown word and the session advances on exact match or skip.
type TypingSession struct {
	core
	prompts []models.Word
	typed   string
}

// NewTypingSession creates a typing session in the Configuring state.
func NewTypingSession(opts ...Option) *TypingSession {
	return &TypingSession{core: newCore(opts...)}
}

// MinPoolSize is the smallest pool a typing session accepts.
const typingMinPool = 1

// Start validates the pool and enters Active. Only a Configuring session can
// start: an Active one would overlap, and an Ended one stays terminal until
// an explicit Reset.
func (s *TypingSession) Start(pool []models.Word, cfg Config) error {
	switch s.state {
	case StateActive:
		return errors.NewValidationError("session", "a session is already running")
	case StateEnded:
		return errors.NewValidationError("session", "finished session must be reset first")
	}
	if len(pool) < typingMinPool {
		return errors.NewValidationError("pool", "needs at least 1 word for typing practice")
	}
	prompts := GeneratePrompts(pool, cfg, s.rng)
	s.begin(cfg, len(prompts))
	s.prompts = prompts
	s.typed = ""
	s.announceWord(prompts[0].ID)
	return nil
}

// Current returns the word being drilled, or nil outside Active.
func (s *TypingSession) Current() *models.Word {
	if s.state != StateActive || s.cursor >= len(s.prompts) {
		return nil
	}
	w := s.prompts[s.cursor]
	return &w
}

// Typed returns the input accumulated for the current prompt.
func (s *TypingSession) Typed() string { return s.typed }

// Progress returns the zero-based cursor and the total prompt count.
func (s *TypingSession) Progress() (int, int) { return s.cursor, s.total }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// commonPrefixLen counts the leading runes input and target share.
func commonPrefixLen(input, target string) int {
	n := 0
	for len(input) > 0 && len(target) > 0 {
		ri, si := utf8.DecodeRuneInString(input)
		rt, st := utf8.DecodeRuneInString(target)
		if ri != rt {
			break
		}
		n++
		input = input[si:]
		target = target[st:]
	}
	return n
}

// Input feeds the full current input text. An exact match (case-normalized,
// trimmed) resolves the prompt correct and advances; a strict prefix reports
// partial; anything else reports a mismatch with the matched prefix length
// and leaves the cursor alone so the learner can keep retyping.
func (s *TypingSession) Input(gen uint64, text string) (InputResult, error) {
	if err := s.checkEvent(gen); err != nil {
		return InputResult{}, err
	}

	s.typed = text
	input := normalize(text)
	target := normalize(s.prompts[s.cursor].Pinyin)

	switch {
	case input == target:
		s.stats.Correct++
		if s.cfg.FeedbackSound {
			s.cues.PlayCue(CueCorrect)
		}
		done := s.advancePrompt()
		return InputResult{Match: MatchExact, MatchedPrefix: utf8.RuneCountInString(target), Advanced: true, Done: done}, nil
	case input != "" && strings.HasPrefix(target, input):
		return InputResult{Match: MatchPartial, MatchedPrefix: utf8.RuneCountInString(input)}, nil
	case input == "":
		return InputResult{Match: MatchNone}, nil
	default:
		return InputResult{Match: MatchMismatch, MatchedPrefix: commonPrefixLen(input, target)}, nil
	}
}

// Skip forces an advance regardless of match state. The attempt is recorded
// as missed only in the sub-mode that shows the target text; the hidden-target
// sub-mode advances without a record.
func (s *TypingSession) Skip(gen uint64) (InputResult, error) {
	if err := s.checkEvent(gen); err != nil {
		return InputResult{}, err
	}

	if s.cfg.ShowTarget {
		w := s.prompts[s.cursor]
		s.stats.Missed = append(s.stats.Missed, MissedEntry{
			Word:     w,
			Expected: w.Pinyin,
			Entered:  s.typed,
			Skipped:  true,
		})
		if s.cfg.FeedbackSound {
			s.cues.PlayCue(CueIncorrect)
		}
	}
	done := s.advancePrompt()
	return InputResult{Match: MatchNone, Advanced: true, Done: done}, nil
}

func (s *TypingSession) advancePrompt() bool {
	s.typed = ""
	s.cursor++
	if s.cursor >= s.total {
		s.finish()
		return true
	}
	s.announceWord(s.prompts[s.cursor].ID)
	return false
}

// End finishes the session early.
func (s *TypingSession) End(gen uint64) error {
	if err := s.checkEvent(gen); err != nil {
		return err
	}
	s.finish()
	return nil
}

// Reset returns the machine to Configuring with all run state cleared.
func (s *TypingSession) Reset() {
	s.reset()
	s.prompts = nil
	s.typed = ""
}

// TypingResults is the terminal summary. Skips count against accuracy: every
// non-match is either retried or skipped, so there is no separate wrong
// bucket in this mode.
type TypingResults struct {
	Correct  int           `json:"correct"`
	Skipped  int           `json:"skipped"`
	Accuracy int           `json:"accuracy"`
	Elapsed  string        `json:"elapsed"`
	Missed   []MissedEntry `json:"missed"`
}

// Results computes the summary for the current run.
func (s *TypingSession) Results() TypingResults {
	stats := s.Stats()
	return TypingResults{
		Correct:  stats.Correct,
		Skipped:  len(stats.Missed),
		Accuracy: Accuracy(stats.Correct, len(stats.Missed)),
		Elapsed:  FormatElapsed(s.Elapsed()),
		Missed:   stats.Missed,
	}
}
