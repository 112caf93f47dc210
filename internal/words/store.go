package words

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
)

const wordColumns = `id, word, meaning, pronunciation, type, article, plural, plural_pronunciation,
	incorrect_plurals, examples, synonyms, antonyms, conjugation, is_reviewed, review_count,
	is_hard, is_important, last_reviewed, level, created_at, updated_at`

// RecentLimit is the number of words returned by ListRecent.
const RecentLimit = 20

// ReviewInterval is how long a reviewed word may rest before it is due again.
const ReviewInterval = 3 * 24 * time.Hour

// MinReviews is the review count below which a reviewed word is always due.
const MinReviews = 3

// Flag is a boolean word column that can be set in bulk.
type Flag string

const (
	FlagReviewed  Flag = "is_reviewed"
	FlagHard      Flag = "is_hard"
	FlagImportant Flag = "is_important"
)

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func idArray(ids []uuid.UUID) any {
	return pq.Array(lo.Map(ids, func(id uuid.UUID, _ int) string { return id.String() }))
}

func (s *Store) Create(ctx context.Context, w *models.Word) error {
	now := time.Now()
	w.CreatedAt, w.UpdatedAt = now, now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (`+wordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		w.ID, w.Word, w.Meaning, w.Pronunciation, w.Type, w.Article, w.Plural, w.PluralPronunciation,
		w.IncorrectPlurals, w.Examples, w.Synonyms, w.Antonyms, w.Conjugation, w.IsReviewed, w.ReviewCount,
		w.IsHard, w.IsImportant, w.LastReviewed, w.Level, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert word: %w", err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	var w models.Word
	err := s.db.GetContext(ctx, &w, `SELECT `+wordColumns+` FROM words WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	return &w, nil
}

// FindBySpelling returns the first word spelled exactly like word.
func (s *Store) FindBySpelling(ctx context.Context, word string) (*models.Word, error) {
	var w models.Word
	err := s.db.GetContext(ctx, &w,
		`SELECT `+wordColumns+` FROM words WHERE word = $1 ORDER BY created_at LIMIT 1`, word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %q: %w", word, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find word: %w", err)
	}
	return &w, nil
}

func (s *Store) selectWords(ctx context.Context, query string, args ...any) ([]models.Word, error) {
	words := []models.Word{}
	if err := s.db.SelectContext(ctx, &words, query, args...); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Store) List(ctx context.Context) ([]models.Word, error) {
	words, err := s.selectWords(ctx, `SELECT `+wordColumns+` FROM words ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// ListByIDs returns the words that exist among ids, in no particular order.
func (s *Store) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Word, error) {
	if len(ids) == 0 {
		return []models.Word{}, nil
	}
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE id = ANY($1::uuid[])`, idArray(ids))
	if err != nil {
		return nil, fmt.Errorf("list words by id: %w", err)
	}
	return words, nil
}

func (s *Store) Update(ctx context.Context, w *models.Word) error {
	w.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE words SET word = $2, meaning = $3, pronunciation = $4, type = $5, article = $6,
			plural = $7, plural_pronunciation = $8, incorrect_plurals = $9, examples = $10,
			synonyms = $11, antonyms = $12, conjugation = $13, is_reviewed = $14, review_count = $15,
			is_hard = $16, is_important = $17, last_reviewed = $18, level = $19, updated_at = $20
		 WHERE id = $1`,
		w.ID, w.Word, w.Meaning, w.Pronunciation, w.Type, w.Article,
		w.Plural, w.PluralPronunciation, w.IncorrectPlurals, w.Examples,
		w.Synonyms, w.Antonyms, w.Conjugation, w.IsReviewed, w.ReviewCount,
		w.IsHard, w.IsImportant, w.LastReviewed, w.Level, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}
	return requireRow(res, "word", w.ID)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	return requireRow(res, "word", id)
}

// SetFlag sets a boolean column on every listed word and returns how many
// rows actually changed.
func (s *Store) SetFlag(ctx context.Context, ids []uuid.UUID, flag Flag, value bool) (int64, error) {
	switch flag {
	case FlagReviewed, FlagHard, FlagImportant:
	default:
		return 0, fmt.Errorf("unknown word flag %q", flag)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE words SET `+string(flag)+` = $2, updated_at = NOW()
		 WHERE id = ANY($1::uuid[]) AND `+string(flag)+` IS DISTINCT FROM $2`,
		idArray(ids), value)
	if err != nil {
		return 0, fmt.Errorf("set %s: %w", flag, err)
	}
	return res.RowsAffected()
}

// RecordReview bumps the review count and stamps lastReviewed on every listed word.
func (s *Store) RecordReview(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE words SET review_count = review_count + 1, last_reviewed = $2, updated_at = $2
		 WHERE id = ANY($1::uuid[])`,
		idArray(ids), at)
	if err != nil {
		return 0, fmt.Errorf("record review: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) ListHard(ctx context.Context) ([]models.Word, error) {
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE is_hard ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list hard words: %w", err)
	}
	return words, nil
}

func (s *Store) ListUnreviewed(ctx context.Context) ([]models.Word, error) {
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE NOT is_reviewed ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list unreviewed words: %w", err)
	}
	return words, nil
}

func (s *Store) ListImportant(ctx context.Context) ([]models.Word, error) {
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE is_important ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list important words: %w", err)
	}
	return words, nil
}

func (s *Store) ListRecent(ctx context.Context) ([]models.Word, error) {
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words ORDER BY created_at DESC LIMIT $1`, RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent words: %w", err)
	}
	return words, nil
}

func (s *Store) ListByType(ctx context.Context, wt models.WordType) ([]models.Word, error) {
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words WHERE type = $1 ORDER BY word`, wt)
	if err != nil {
		return nil, fmt.Errorf("list words by type: %w", err)
	}
	return words, nil
}

// Search matches q case-insensitively against the word or its meaning.
func (s *Store) Search(ctx context.Context, q string) ([]models.Word, error) {
	pattern := "%" + escapeLike(q) + "%"
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words
		 WHERE word ILIKE $1 ESCAPE '\' OR meaning ILIKE $1 ESCAPE '\'
		 ORDER BY word`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	return words, nil
}

func (s *Store) CountHard(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words WHERE is_hard`); err != nil {
		return 0, fmt.Errorf("count hard words: %w", err)
	}
	return n, nil
}

// NeedingReview returns reviewed words that have fewer than MinReviews
// reviews, were last reviewed more than ReviewInterval before now, or carry
// no review date.
func (s *Store) NeedingReview(ctx context.Context, now time.Time) ([]models.Word, error) {
	words, err := s.selectWords(ctx,
		`SELECT `+wordColumns+` FROM words
		 WHERE is_reviewed
		   AND (review_count < $1 OR last_reviewed IS NULL OR last_reviewed < $2)
		 ORDER BY last_reviewed NULLS FIRST, created_at`,
		MinReviews, now.Add(-ReviewInterval))
	if err != nil {
		return nil, fmt.Errorf("list words needing review: %w", err)
	}
	return words, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func requireRow(res sql.Result, resource string, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", resource, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", resource, id, models.ErrNotFound)
	}
	return nil
}
