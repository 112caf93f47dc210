package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonLevel string

const (
	LevelBeginner     LessonLevel = "beginner"
	LevelIntermediate LessonLevel = "intermediate"
	LevelAdvanced     LessonLevel = "advanced"
)

type Lesson struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Level     LessonLevel `json:"level" db:"level"`
	Color     string      `json:"color" db:"color"`
	Emoji     string      `json:"emoji,omitempty" db:"emoji"`
	WordIDs   []uuid.UUID `json:"words,omitempty" db:"-"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// LessonSummary is a lesson row with the number of words that still exist.
type LessonSummary struct {
	Lesson
	WordsNumber int `json:"wordsNumber" db:"words_number"`
}

// LessonDetail is a lesson with its words resolved.
type LessonDetail struct {
	Lesson
	Words              []Word `json:"words"`
	WordsNumber        int    `json:"wordsNumber"`
	ReviewedPercentage int    `json:"reviewedPercentage"`
}

type CreateLessonRequest struct {
	Title string      `json:"title" validate:"required,min=3,max=100"`
	Level LessonLevel `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Color string      `json:"color" validate:"required,hexcolor,len=7"`
	Emoji string      `json:"emoji,omitempty" validate:"omitempty,emoji"`
}

type UpdateLessonRequest struct {
	Title   *string      `json:"title,omitempty" validate:"omitempty,min=3,max=100"`
	Level   *LessonLevel `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Color   *string      `json:"color,omitempty" validate:"omitempty,hexcolor,len=7"`
	Emoji   *string      `json:"emoji,omitempty" validate:"omitempty,emoji"`
	WordIDs []string     `json:"words,omitempty" validate:"omitempty,dive,uuid"`
}

// Apply merges the set scalar fields into l. Word membership is handled separately.
func (r UpdateLessonRequest) Apply(l *Lesson) {
	if r.Title != nil {
		l.Title = *r.Title
	}
	if r.Level != nil {
		l.Level = *r.Level
	}
	if r.Color != nil {
		l.Color = *r.Color
	}
	if r.Emoji != nil {
		l.Emoji = *r.Emoji
	}
}

// ── Lesson Groups ─────────────────────────────────────

type LessonGroup struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description,omitempty" db:"description"`
	Level       string      `json:"level,omitempty" db:"level"`
	LessonIDs   []uuid.UUID `json:"-" db:"-"`
	Lessons     []Lesson    `json:"lessons"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

type LessonGroupRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description,omitempty"`
	Level       string   `json:"level,omitempty" validate:"omitempty,max=10"`
	LessonIDs   []string `json:"lessons,omitempty" validate:"omitempty,dive,uuid"`
}
