package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Quiz is a stored multiple-choice item from the quiz bank, unrelated to
// generated practice questions.
type Quiz struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	Type           string           `json:"type" db:"type"`
	Pronunciation  string           `json:"pronunciation,omitempty" db:"pronunciation"`
	Question       string           `json:"question" db:"question"`
	Options        JSONList[string] `json:"options" db:"options"`
	Answer         string           `json:"answer" db:"answer"`
	Meaning        string           `json:"meaning" db:"meaning"`
	Rule           string           `json:"rule" db:"rule"`
	TimesAnswered  int              `json:"timesAnswered" db:"times_answered"`
	LastAnsweredAt *time.Time       `json:"lastAnsweredAt,omitempty" db:"last_answered_at"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// QuizTypeTranslation is the only quiz bank type.
const QuizTypeTranslation = "translation"

type CreateQuizRequest struct {
	Type          string   `json:"type,omitempty" validate:"omitempty,eq=translation"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,len=4,dive,required"`
	Answer        string   `json:"answer" validate:"required"`
	Meaning       string   `json:"meaning" validate:"required"`
	Rule          string   `json:"rule" validate:"required"`
}

type UpdateQuizRequest struct {
	Pronunciation *string  `json:"pronunciation,omitempty"`
	Question      *string  `json:"question,omitempty" validate:"omitempty,min=1"`
	Options       []string `json:"options,omitempty" validate:"omitempty,len=4,dive,required"`
	Answer        *string  `json:"answer,omitempty" validate:"omitempty,min=1"`
	Meaning       *string  `json:"meaning,omitempty" validate:"omitempty,min=1"`
	Rule          *string  `json:"rule,omitempty" validate:"omitempty,min=1"`
}

// Apply merges the set fields into q.
func (r UpdateQuizRequest) Apply(q *Quiz) {
	if r.Pronunciation != nil {
		q.Pronunciation = *r.Pronunciation
	}
	if r.Question != nil {
		q.Question = *r.Question
	}
	if r.Options != nil {
		q.Options = r.Options
	}
	if r.Answer != nil {
		q.Answer = *r.Answer
	}
	if r.Meaning != nil {
		q.Meaning = *r.Meaning
	}
	if r.Rule != nil {
		q.Rule = *r.Rule
	}
}

// AnswerInOptions reports whether the answer is one of the options.
func (q Quiz) AnswerInOptions() bool {
	return slices.Contains(q.Options, q.Answer)
}
