package lessons

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
)

const lessonColumns = `l.id, l.title, l.level, l.color, l.emoji, l.created_at, l.updated_at`

// uniqueViolation is the Postgres error code for a duplicate key.
const uniqueViolation = "23505"

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func uuidStrings(ids []uuid.UUID) any {
	return pq.Array(lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// replaceWords rewrites the lesson's word list in order. Ids with no word
// row are dropped.
func replaceWords(ctx context.Context, tx *sqlx.Tx, lessonID uuid.UUID, wordIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM lesson_words WHERE lesson_id = $1`, lessonID); err != nil {
		return fmt.Errorf("clear lesson words: %w", err)
	}
	if len(wordIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lesson_words (lesson_id, word_id, position)
		 SELECT $1, w.id, MIN(t.pos)
		 FROM unnest($2::uuid[]) WITH ORDINALITY AS t(id, pos)
		 JOIN words w ON w.id = t.id
		 GROUP BY w.id`,
		lessonID, uuidStrings(wordIDs))
	if err != nil {
		return fmt.Errorf("insert lesson words: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, l *models.Lesson) error {
	now := time.Now()
	l.CreatedAt, l.UpdatedAt = now, now
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (id, title, level, color, emoji, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, l.Title, l.Level, l.Color, l.Emoji, l.CreatedAt, l.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert lesson: %w", err)
		}
		return replaceWords(ctx, tx, l.ID, l.WordIDs)
	})
}

// GetByID returns the lesson with its word ids in lesson order.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var l models.Lesson
	err := s.db.GetContext(ctx, &l, `SELECT `+lessonColumns+` FROM lessons l WHERE l.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	l.WordIDs = []uuid.UUID{}
	if err := s.db.SelectContext(ctx, &l.WordIDs,
		`SELECT word_id FROM lesson_words WHERE lesson_id = $1 ORDER BY position`, id); err != nil {
		return nil, fmt.Errorf("get lesson words: %w", err)
	}
	return &l, nil
}

// List returns every lesson with the number of words it holds.
func (s *Store) List(ctx context.Context) ([]models.LessonSummary, error) {
	lessons := []models.LessonSummary{}
	err := s.db.SelectContext(ctx, &lessons,
		`SELECT `+lessonColumns+`, COUNT(lw.word_id) AS words_number
		 FROM lessons l
		 LEFT JOIN lesson_words lw ON lw.lesson_id = l.id
		 GROUP BY l.id
		 ORDER BY l.created_at`)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// Update saves the scalar fields and, when wordIDs is non-nil, replaces the word list.
func (s *Store) Update(ctx context.Context, l *models.Lesson, wordIDs []uuid.UUID) error {
	l.UpdatedAt = time.Now()
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE lessons SET title = $2, level = $3, color = $4, emoji = $5, updated_at = $6
			 WHERE id = $1`,
			l.ID, l.Title, l.Level, l.Color, l.Emoji, l.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update lesson: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("lesson %s: %w", l.ID, models.ErrNotFound)
		}
		if wordIDs == nil {
			return nil
		}
		return replaceWords(ctx, tx, l.ID, wordIDs)
	})
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("lesson %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	if err := s.db.GetContext(ctx, &ok, `SELECT EXISTS(SELECT 1 FROM lessons WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("lesson exists: %w", err)
	}
	return ok, nil
}

// AttachWord appends the word to the end of the lesson unless it is already there.
func (s *Store) AttachWord(ctx context.Context, lessonID, wordID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lesson_words (lesson_id, word_id, position)
		 SELECT $1, $2, COALESCE(MAX(position), 0) + 1 FROM lesson_words WHERE lesson_id = $1
		 ON CONFLICT (lesson_id, word_id) DO NOTHING`,
		lessonID, wordID)
	if err != nil {
		return fmt.Errorf("attach word: %w", err)
	}
	return nil
}

// ── Lesson Groups ─────────────────────────────────────

const groupColumns = `id, title, description, level, created_at, updated_at`

func replaceGroupLessons(ctx context.Context, tx *sqlx.Tx, groupID uuid.UUID, lessonIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM lesson_group_lessons WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("clear group lessons: %w", err)
	}
	if len(lessonIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lesson_group_lessons (group_id, lesson_id, position)
		 SELECT $1, l.id, MIN(t.pos)
		 FROM unnest($2::uuid[]) WITH ORDINALITY AS t(id, pos)
		 JOIN lessons l ON l.id = t.id
		 GROUP BY l.id`,
		groupID, uuidStrings(lessonIDs))
	if err != nil {
		return fmt.Errorf("insert group lessons: %w", err)
	}
	return nil
}

func (s *Store) CreateGroup(ctx context.Context, g *models.LessonGroup) error {
	now := time.Now()
	g.CreatedAt, g.UpdatedAt = now, now
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO lesson_groups (id, title, description, level, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			g.ID, g.Title, g.Description, g.Level, g.CreatedAt, g.UpdatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("lesson group %q: %w", g.Title, models.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("insert lesson group: %w", err)
		}
		return replaceGroupLessons(ctx, tx, g.ID, g.LessonIDs)
	})
}

func (s *Store) groupLessons(ctx context.Context, groupID uuid.UUID) ([]models.Lesson, error) {
	lessons := []models.Lesson{}
	err := s.db.SelectContext(ctx, &lessons,
		`SELECT `+lessonColumns+`
		 FROM lesson_group_lessons gl
		 JOIN lessons l ON l.id = gl.lesson_id
		 WHERE gl.group_id = $1
		 ORDER BY gl.position`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group lessons: %w", err)
	}
	return lessons, nil
}

// GetGroup returns the group with its lessons populated.
func (s *Store) GetGroup(ctx context.Context, id uuid.UUID) (*models.LessonGroup, error) {
	var g models.LessonGroup
	err := s.db.GetContext(ctx, &g, `SELECT `+groupColumns+` FROM lesson_groups WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lesson group %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lesson group: %w", err)
	}
	if g.Lessons, err = s.groupLessons(ctx, id); err != nil {
		return nil, err
	}
	g.LessonIDs = lo.Map(g.Lessons, func(l models.Lesson, _ int) uuid.UUID { return l.ID })
	return &g, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]models.LessonGroup, error) {
	groups := []models.LessonGroup{}
	if err := s.db.SelectContext(ctx, &groups,
		`SELECT `+groupColumns+` FROM lesson_groups ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list lesson groups: %w", err)
	}
	for i := range groups {
		lessons, err := s.groupLessons(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Lessons = lessons
	}
	return groups, nil
}

func (s *Store) UpdateGroup(ctx context.Context, g *models.LessonGroup) error {
	g.UpdatedAt = time.Now()
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE lesson_groups SET title = $2, description = $3, level = $4, updated_at = $5
			 WHERE id = $1`,
			g.ID, g.Title, g.Description, g.Level, g.UpdatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("lesson group %q: %w", g.Title, models.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("update lesson group: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("lesson group %s: %w", g.ID, models.ErrNotFound)
		}
		return replaceGroupLessons(ctx, tx, g.ID, g.LessonIDs)
	})
}

func (s *Store) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lesson_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson group: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("lesson group %s: %w", id, models.ErrNotFound)
	}
	return nil
}
