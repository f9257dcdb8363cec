package drill

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/mhayashi/hskdrill/internal/models"
	"github.com/mhayashi/hskdrill/internal/sample"
)

// Choice is one answer option in a quiz question.
type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"-"`
}

// Question is one quiz item: a word, the resolved presentation direction, and
// an ordered choice list with exactly one correct entry. Immutable once built.
type Question struct {
	Word      models.Word
	Direction Direction
	Prompt    string
	Subtitle  string
	Choices   []Choice
}

// CorrectIndex returns the position of the correct choice.
func (q Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c.Correct {
			return i
		}
	}
	return -1
}

// answerText extracts the text a learner must pick for the given direction.
func answerText(w models.Word, dir Direction) string {
	if dir == DirectionMeaningToChinese {
		return w.Chinese
	}
	return w.Meaning
}

// GenerateQuestions builds the quiz item sequence: a random selection of
// cfg.Count words from the pool, each with its correct answer and up to three
// distractors drawn from the rest of the pool.
func GenerateQuestions(pool []models.Word, cfg Config, rng *rand.Rand) []Question {
	selected := sample.Take(pool, cfg.Count, rng)
	questions := make([]Question, 0, len(selected))
	for _, w := range selected {
		dir := cfg.Direction
		if dir == DirectionMixed {
			if rng.Intn(2) == 0 {
				dir = DirectionChineseToMeaning
			} else {
				dir = DirectionMeaningToChinese
			}
		}
		questions = append(questions, buildQuestion(w, dir, pool, rng))
	}
	return questions
}

func buildQuestion(w models.Word, dir Direction, pool []models.Word, rng *rand.Rand) Question {
	correct := answerText(w, dir)

	candidates := lo.Filter(pool, func(c models.Word, _ int) bool {
		return c.ID != w.ID && answerText(c, dir) != correct
	})
	candidates = sample.Shuffle(candidates, rng)

	choices := []Choice{{Text: correct, Correct: true}}
	seen := map[string]bool{correct: true}
	for _, c := range candidates {
		if len(choices) == 4 {
			break
		}
		text := answerText(c, dir)
		if seen[text] {
			continue
		}
		seen[text] = true
		choices = append(choices, Choice{Text: text})
	}
	// A pool with fewer than three distinct distractor texts yields a
	// shorter choice list; never padded, never an error.
	choices = sample.Shuffle(choices, rng)

	q := Question{
		Word:      w,
		Direction: dir,
		Choices:   choices,
	}
	if dir == DirectionMeaningToChinese {
		q.Prompt = w.Meaning
	} else {
		q.Prompt = w.Chinese
		q.Subtitle = w.PinyinToned
	}
	return q
}

// GeneratePrompts builds the typing item sequence: a random selection of
// cfg.Count words, each drilled as one prompt.
func GeneratePrompts(pool []models.Word, cfg Config, rng *rand.Rand) []models.Word {
	return sample.Take(pool, cfg.Count, rng)
}
