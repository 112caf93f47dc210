package models

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Content    string    `json:"content" db:"content"`
	IsArchived bool      `json:"isArchived" db:"is_archived"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

type UpdateNoteRequest struct {
	Content    *string `json:"content,omitempty" validate:"omitempty,min=1"`
	IsArchived *bool   `json:"isArchived,omitempty"`
}

// Empty reports whether the update sets no field.
func (r UpdateNoteRequest) Empty() bool {
	return r.Content == nil && r.IsArchived == nil
}
