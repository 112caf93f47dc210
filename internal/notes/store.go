package notes

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

const noteColumns = `id, content, is_archived, created_at, updated_at`

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, n *models.Note) error {
	now := time.Now()
	n.CreatedAt, n.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, content, is_archived, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.Content, n.IsArchived, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var n models.Note
	err := s.db.GetContext(ctx, &n, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return &n, nil
}

// List returns notes with the given archive state, newest first.
func (s *Store) List(ctx context.Context, archived bool) ([]models.Note, error) {
	notes := []models.Note{}
	err := s.db.SelectContext(ctx, &notes,
		`SELECT `+noteColumns+` FROM notes WHERE is_archived = $1 ORDER BY created_at DESC`, archived)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *Store) Update(ctx context.Context, n *models.Note) error {
	n.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET content = $2, is_archived = $3, updated_at = $4 WHERE id = $1`,
		n.ID, n.Content, n.IsArchived, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("note %s: %w", n.ID, models.ErrNotFound)
	}
	return nil
}

// ToggleArchive flips the archive flag and returns the updated note.
func (s *Store) ToggleArchive(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	var n models.Note
	err := s.db.GetContext(ctx, &n,
		`UPDATE notes SET is_archived = NOT is_archived, updated_at = NOW()
		 WHERE id = $1 RETURNING `+noteColumns, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("note %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("toggle note archive: %w", err)
	}
	return &n, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return fmt.Errorf("note %s: %w", id, models.ErrNotFound)
	}
	return nil
}
