package practice

import (
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
)

type Session struct {
	Quizzes        []models.Question `json:"quizzes"`
	CountOfQuizzes int               `json:"countOfQuizzes"`
	TitleOfLesson  string            `json:"titleOfLesson"`
	Mode           Mode              `json:"mode"`
}

// Assembler turns a batch of words into one ordered session.
type Assembler struct {
	selector *Selector
	rnd      Source
}

func NewAssembler(selector *Selector, rnd Source) *Assembler {
	if rnd == nil {
		rnd = DefaultSource()
	}
	return &Assembler{selector: selector, rnd: rnd}
}

// Assemble selects questions for every word in order, shuffles the regular
// questions and anchors each intro or reminder before its word's first
// regular question.
func (a *Assembler) Assemble(words []models.Word, mode Mode, title string) Session {
	used := make(map[uuid.UUID]map[models.QuestionType]bool, len(words))
	var all []models.Question
	for _, w := range words {
		kinds, ok := used[w.ID]
		if !ok {
			kinds = make(map[models.QuestionType]bool)
			used[w.ID] = kinds
		}
		all = append(all, a.selector.Select(w, mode, kinds)...)
	}

	isReminder := func(q models.Question, _ int) bool { return q.Type.IsReminder() }
	reminders := lo.Filter(all, isReminder)
	regular := lo.Reject(all, isReminder)
	shuffle(a.rnd, regular)

	quizzes := placeReminders(reminders, regular)
	return Session{
		Quizzes:        quizzes,
		CountOfQuizzes: len(quizzes),
		TitleOfLesson:  title,
		Mode:           mode,
	}
}

// placeReminders inserts each reminder before the first regular question
// with the same word, or at the front when there is none. Only the first
// reminder per word is kept.
func placeReminders(reminders, regular []models.Question) []models.Question {
	out := make([]models.Question, 0, len(reminders)+len(regular))
	out = append(out, regular...)
	placed := make(map[uuid.UUID]bool, len(reminders))
	for _, r := range reminders {
		if placed[r.WordID] {
			continue
		}
		placed[r.WordID] = true
		idx := slices.IndexFunc(out, func(q models.Question) bool {
			return q.WordID == r.WordID && !q.Type.IsReminder()
		})
		if idx < 0 {
			idx = 0
		}
		out = slices.Insert(out, idx, r)
	}
	return out
}
