package practice

import "github.com/lernwort/backend/internal/models"

type Mode string

const (
	ModeLearn       Mode = "learn"
	ModeReview      Mode = "review"
	ModeQuickReview Mode = "quick-review"
	ModeHardReview  Mode = "hard-review"
)

var targets = map[Mode]int{
	ModeLearn:       3,
	ModeReview:      2,
	ModeHardReview:  3,
	ModeQuickReview: 1,
}

// ParseMode accepts one of the four session modes.
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	_, ok := targets[m]
	return m, ok
}

// Target is the number of regular questions asked per word in mode.
func (m Mode) Target() int {
	return targets[m]
}

// preferredOrder is the order in which kinds are tried for a word.
var preferredOrder = []models.QuestionType{
	models.KindWriteTheWord,
	models.KindArticle,
	models.KindSentenceOrder,
	models.KindWriteSentence,
	models.KindFillInTheBlanks,
	models.KindTranslation,
	models.KindPlural,
	models.KindPronunciation,
	models.KindSynonym,
	models.KindAntonym,
}

// quickReviewKinds are the multiple-choice kinds allowed in quick review.
var quickReviewKinds = map[models.QuestionType]bool{
	models.KindTranslation: true,
	models.KindArticle:     true,
	models.KindPlural:      true,
	models.KindSynonym:     true,
	models.KindAntonym:     true,
}

// DefaultMaxAttempts bounds the kinds tried per word.
const DefaultMaxAttempts = 30

// Selector picks the questions asked about one word.
type Selector struct {
	gen         *Generators
	maxAttempts int
}

func NewSelector(gen *Generators, maxAttempts int) *Selector {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Selector{gen: gen, maxAttempts: maxAttempts}
}

// candidates returns the kinds tried for mode, in preferred order.
func candidates(mode Mode) []models.QuestionType {
	if mode != ModeQuickReview {
		return preferredOrder
	}
	out := make([]models.QuestionType, 0, len(quickReviewKinds))
	for _, k := range preferredOrder {
		if quickReviewKinds[k] {
			out = append(out, k)
		}
	}
	return out
}

// Select returns the questions for w. used records the kinds already emitted
// for w in the session and is updated in place. Fewer than the target count,
// including none, is a valid result.
func (s *Selector) Select(w models.Word, mode Mode, used map[models.QuestionType]bool) []models.Question {
	var out []models.Question

	if !w.IsReviewed {
		lead := models.KindReviewReminder
		if mode == ModeLearn {
			lead = models.KindIntro
		}
		if !used[lead] {
			if q := s.gen.Generate(lead, w); q != nil {
				used[lead] = true
				out = append(out, *q)
			}
		}
	}

	target := mode.Target()
	produced, attempts := 0, 0
	for _, kind := range candidates(mode) {
		if produced >= target || attempts >= s.maxAttempts {
			break
		}
		attempts++
		if used[kind] || !CanGenerate(w, kind) {
			continue
		}
		q := s.gen.Generate(kind, w)
		if q == nil {
			continue
		}
		used[kind] = true
		out = append(out, *q)
		produced++
	}
	return out
}
