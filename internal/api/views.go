package api

import (
	"github.com/samber/lo"

	"github.com/mhayashi/hskdrill/internal/drill"
	"github.com/mhayashi/hskdrill/internal/services"
)

// ignoredEvent reports whether err is one of the engine's no-op sentinels.
// Those are answered with the current state instead of an error payload, so
// a late or duplicated request never breaks the client.
func ignoredEvent(err error) bool {
	switch err {
	case drill.ErrNotActive, drill.ErrStaleGeneration, drill.ErrQuestionLocked, drill.ErrNotRevealed:
		return true
	}
	return false
}

// typingPromptView is the word as shown during the typing drill. The plain
// pinyin is the answer, so it is only present in the show-target sub-mode.
type typingPromptView struct {
	Chinese     string `json:"chinese"`
	Meaning     string `json:"meaning"`
	Pinyin      string `json:"pinyin,omitempty"`
	PinyinToned string `json:"pinyin_toned,omitempty"`
}

type typingStateResponse struct {
	State      string               `json:"state"`
	Generation uint64               `json:"generation"`
	Index      int                  `json:"index"`
	Total      int                  `json:"total"`
	Prompt     *typingPromptView    `json:"prompt,omitempty"`
	Typed      string               `json:"typed"`
	Correct    int                  `json:"correct"`
	Skipped    int                  `json:"skipped"`
	Elapsed    string               `json:"elapsed"`
	Results    *drill.TypingResults `json:"results,omitempty"`
	Audio      []string             `json:"audio,omitempty"`
	Ignored    bool                 `json:"ignored,omitempty"`
}

func typingState(sess *services.Session) typingStateResponse {
	t := sess.Typing
	index, total := t.Progress()
	stats := t.Stats()

	resp := typingStateResponse{
		State:      t.State().String(),
		Generation: t.Generation(),
		Index:      index,
		Total:      total,
		Typed:      t.Typed(),
		Correct:    stats.Correct,
		Skipped:    len(stats.Missed),
		Elapsed:    drill.FormatElapsed(t.Elapsed()),
		Audio:      sess.Audio.Drain(),
	}

	if word := t.Current(); word != nil {
		prompt := &typingPromptView{Chinese: word.Chinese, Meaning: word.Meaning}
		if t.Config().ShowTarget {
			prompt.Pinyin = word.Pinyin
			prompt.PinyinToned = word.PinyinToned
		}
		resp.Prompt = prompt
	}

	if t.State() == drill.StateEnded {
		results := t.Results()
		resp.Results = &results
	}
	return resp
}

// quizQuestionView is the question as shown to the learner. Choice texts are
// exposed in order; which one is correct stays server-side until the question
// is resolved.
type quizQuestionView struct {
	Prompt    string   `json:"prompt"`
	Subtitle  string   `json:"subtitle,omitempty"`
	Direction string   `json:"direction"`
	Choices   []string `json:"choices"`
}

type quizStateResponse struct {
	State        string             `json:"state"`
	Generation   uint64             `json:"generation"`
	Index        int                `json:"index"`
	Total        int                `json:"total"`
	Question     *quizQuestionView  `json:"question,omitempty"`
	Revealed     bool               `json:"revealed"`
	Chosen       int                `json:"chosen"`
	CorrectIndex int                `json:"correct_index"`
	Correct      int                `json:"correct"`
	Wrong        int                `json:"wrong"`
	Skipped      int                `json:"skipped"`
	Elapsed      string             `json:"elapsed"`
	Results      *drill.QuizResults `json:"results,omitempty"`
	Audio        []string           `json:"audio,omitempty"`
	Ignored      bool               `json:"ignored,omitempty"`
}

func quizState(sess *services.Session) quizStateResponse {
	q := sess.Quiz
	index, total := q.Progress()
	stats := q.Stats()
	revealed, chosen := q.Revealed()

	resp := quizStateResponse{
		State:        q.State().String(),
		Generation:   q.Generation(),
		Index:        index,
		Total:        total,
		Revealed:     revealed,
		Chosen:       chosen,
		CorrectIndex: -1,
		Correct:      stats.Correct,
		Wrong:        stats.Wrong,
		Skipped:      stats.Skipped,
		Elapsed:      drill.FormatElapsed(q.Elapsed()),
		Audio:        sess.Audio.Drain(),
	}

	if question := q.Current(); question != nil {
		resp.Question = &quizQuestionView{
			Prompt:    question.Prompt,
			Subtitle:  question.Subtitle,
			Direction: question.Direction.String(),
			Choices: lo.Map(question.Choices, func(c drill.Choice, _ int) string {
				return c.Text
			}),
		}
		if revealed {
			resp.CorrectIndex = question.CorrectIndex()
		}
	}

	if q.State() == drill.StateEnded {
		results := q.Results()
		resp.Results = &results
	}
	return resp
}
