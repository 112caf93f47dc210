package quizbank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/lernwort/backend/internal/models"
)

const quizColumns = `id, type, pronunciation, question, options, answer, meaning, rule,
	times_answered, last_answered_at, created_at, updated_at`

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, q *models.Quiz) error {
	now := time.Now()
	q.CreatedAt, q.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, type, pronunciation, question, options, answer, meaning, rule, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		q.ID, q.Type, q.Pronunciation, q.Question, q.Options, q.Answer, q.Meaning, q.Rule, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	var q models.Quiz
	err := s.db.GetContext(ctx, &q, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return &q, nil
}

// List returns all quizzes, or only those for rule when it is non-empty.
func (s *Store) List(ctx context.Context, rule string) ([]models.Quiz, error) {
	quizzes := []models.Quiz{}
	var err error
	if rule == "" {
		err = s.db.SelectContext(ctx, &quizzes, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at`)
	} else {
		err = s.db.SelectContext(ctx, &quizzes,
			`SELECT `+quizColumns+` FROM quizzes WHERE rule = $1 ORDER BY created_at`, rule)
	}
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *Store) Update(ctx context.Context, q *models.Quiz) error {
	q.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE quizzes SET pronunciation = $2, question = $3, options = $4, answer = $5,
			meaning = $6, rule = $7, updated_at = $8
		 WHERE id = $1`,
		q.ID, q.Pronunciation, q.Question, q.Options, q.Answer, q.Meaning, q.Rule, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("quiz %s: %w", q.ID, models.ErrNotFound)
	}
	return nil
}

// RecordAnswer increments timesAnswered and stamps lastAnsweredAt.
func (s *Store) RecordAnswer(ctx context.Context, id uuid.UUID, at time.Time) (*models.Quiz, error) {
	var q models.Quiz
	err := s.db.GetContext(ctx, &q,
		`UPDATE quizzes SET times_answered = times_answered + 1, last_answered_at = $2, updated_at = $2
		 WHERE id = $1 RETURNING `+quizColumns, id, at)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("record quiz answer: %w", err)
	}
	return &q, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("quiz %s: %w", id, models.ErrNotFound)
	}
	return nil
}
