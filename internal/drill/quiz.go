package drill

import (
	"github.com/mhayashi/hskdrill/internal/errors"
	"github.com/mhayashi/hskdrill/internal/models"
)

// QuizSession drills word recognition with four-choice questions. A question
// locks on the first selection; the UI shows feedback for a short delay and
// then asks the session to advance.
type QuizSession struct {
	core
	questions []Question
	revealed  bool
	chosen    int
}

const quizMinPool = 4

// NewQuizSession creates a quiz session in the Configuring state.
func NewQuizSession(opts ...Option) *QuizSession {
	return &QuizSession{core: newCore(opts...)}
}

// Start validates the pool and enters Active. Only a Configuring session can
// start: an Active one would overlap, and an Ended one stays terminal until
// an explicit Reset.
func (s *QuizSession) Start(pool []models.Word, cfg Config) error {
	switch s.state {
	case StateActive:
		return errors.NewValidationError("session", "a session is already running")
	case StateEnded:
		return errors.NewValidationError("session", "finished session must be reset first")
	}
	if len(pool) < quizMinPool {
		return errors.NewValidationError("pool", "needs at least 4 words for a quiz")
	}
	questions := GenerateQuestions(pool, cfg, s.rng)
	s.begin(cfg, len(questions))
	s.questions = questions
	s.revealed = false
	s.chosen = -1
	s.announceWord(questions[0].Word.ID)
	return nil
}

// Current returns the question being asked, or nil outside Active.
func (s *QuizSession) Current() *Question {
	if s.state != StateActive || s.cursor >= len(s.questions) {
		return nil
	}
	q := s.questions[s.cursor]
	return &q
}

// Revealed reports whether the current question is locked, and which choice
// was picked (-1 when none).
func (s *QuizSession) Revealed() (bool, int) { return s.revealed, s.chosen }

// Progress returns the zero-based cursor and the total question count.
func (s *QuizSession) Progress() (int, int) { return s.cursor, s.total }

// ChoiceResult describes the outcome of a selection.
type ChoiceResult struct {
	Correct      bool
	CorrectIndex int
}

// Choose resolves the current question with choice index idx. The question
// locks immediately; further selections are ignored until Next advances.
func (s *QuizSession) Choose(gen uint64, idx int) (ChoiceResult, error) {
	if err := s.checkEvent(gen); err != nil {
		return ChoiceResult{}, err
	}
	if s.revealed {
		return ChoiceResult{}, ErrQuestionLocked
	}
	q := s.questions[s.cursor]
	if idx < 0 || idx >= len(q.Choices) {
		return ChoiceResult{}, errors.NewValidationError("choice", "index out of range")
	}

	s.revealed = true
	s.chosen = idx
	correct := q.Choices[idx].Correct
	if correct {
		s.stats.Correct++
		if s.cfg.FeedbackSound {
			s.cues.PlayCue(CueCorrect)
		}
	} else {
		s.stats.Wrong++
		s.stats.Missed = append(s.stats.Missed, MissedEntry{
			Word:     q.Word,
			Expected: q.Choices[q.CorrectIndex()].Text,
			Entered:  q.Choices[idx].Text,
		})
		if s.cfg.FeedbackSound {
			s.cues.PlayCue(CueIncorrect)
		}
	}
	return ChoiceResult{Correct: correct, CorrectIndex: q.CorrectIndex()}, nil
}

// Next advances past a resolved question. The UI calls this after showing
// feedback for the configured delay.
func (s *QuizSession) Next(gen uint64) error {
	if err := s.checkEvent(gen); err != nil {
		return err
	}
	if !s.revealed {
		return ErrNotRevealed
	}
	s.advanceQuestion()
	return nil
}

// Skip advances immediately without a selection. Skips are recorded for the
// review list but excluded from the accuracy denominator.
func (s *QuizSession) Skip(gen uint64) error {
	if err := s.checkEvent(gen); err != nil {
		return err
	}
	if s.revealed {
		return ErrQuestionLocked
	}
	q := s.questions[s.cursor]
	s.stats.Skipped++
	s.stats.Missed = append(s.stats.Missed, MissedEntry{
		Word:     q.Word,
		Expected: q.Choices[q.CorrectIndex()].Text,
		Skipped:  true,
	})
	s.advanceQuestion()
	return nil
}

func (s *QuizSession) advanceQuestion() {
	s.revealed = false
	s.chosen = -1
	s.cursor++
	if s.cursor >= s.total {
		s.finish()
		return
	}
	s.announceWord(s.questions[s.cursor].Word.ID)
}

// End finishes the session early.
func (s *QuizSession) End(gen uint64) error {
	if err := s.checkEvent(gen); err != nil {
		return err
	}
	s.finish()
	return nil
}

// Reset returns the machine to Configuring with all run state cleared.
func (s *QuizSession) Reset() {
	s.reset()
	s.questions = nil
	s.revealed = false
	s.chosen = -1
}

// QuizResults is the terminal summary. Skips are listed for review but do not
// count against accuracy; only answered-wrong questions do.
type QuizResults struct {
	Correct  int           `json:"correct"`
	Wrong    int           `json:"wrong"`
	Skipped  int           `json:"skipped"`
	Accuracy int           `json:"accuracy"`
	Elapsed  string        `json:"elapsed"`
	Missed   []MissedEntry `json:"missed"`
}

// Results computes the summary for the current run.
func (s *QuizSession) Results() QuizResults {
	stats := s.Stats()
	return QuizResults{
		Correct:  stats.Correct,
		Wrong:    stats.Wrong,
		Skipped:  stats.Skipped,
		Accuracy: Accuracy(stats.Correct, stats.Wrong),
		Elapsed:  FormatElapsed(s.Elapsed()),
		Missed:   stats.Missed,
	}
}
