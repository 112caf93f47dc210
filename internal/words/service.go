package words

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/validation"
)

// Repository is the word persistence used by Service. *Store implements it.
type Repository interface {
	Create(ctx context.Context, w *models.Word) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Word, error)
	FindBySpelling(ctx context.Context, word string) (*models.Word, error)
	List(ctx context.Context) ([]models.Word, error)
	Update(ctx context.Context, w *models.Word) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetFlag(ctx context.Context, ids []uuid.UUID, flag Flag, value bool) (int64, error)
	RecordReview(ctx context.Context, ids []uuid.UUID, at time.Time) (int64, error)
	ListHard(ctx context.Context) ([]models.Word, error)
	ListUnreviewed(ctx context.Context) ([]models.Word, error)
	ListImportant(ctx context.Context) ([]models.Word, error)
	ListRecent(ctx context.Context) ([]models.Word, error)
	ListByType(ctx context.Context, wt models.WordType) ([]models.Word, error)
	Search(ctx context.Context, q string) ([]models.Word, error)
	CountHard(ctx context.Context) (int, error)
	NeedingReview(ctx context.Context, now time.Time) ([]models.Word, error)
}

// LessonLinker attaches words to lessons.
type LessonLinker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	AttachWord(ctx context.Context, lessonID, wordID uuid.UUID) error
}

// Suggester produces content for a word's empty optional fields.
type Suggester interface {
	Suggest(ctx context.Context, w models.Word) (*models.Suggestions, error)
}

// ErrEnrichDisabled is returned by Enrich when no suggester is configured.
var ErrEnrichDisabled = errors.New("word enrichment is not configured")

// Batch actions accepted by Service.Batch.
const (
	ActionMarkReviewed    = "mark-reviewed"
	ActionReviewStats     = "review-stats"
	ActionMarkHard        = "mark-hard"
	ActionMarkEasy        = "mark-easy"
	ActionMarkImportant   = "mark-important"
	ActionMarkUnimportant = "mark-unimportant"
)

type flagUpdate struct {
	flag    Flag
	value   bool
	message string
}

var batchFlags = map[string]flagUpdate{
	ActionMarkReviewed:    {FlagReviewed, true, "Words marked as reviewed"},
	ActionMarkHard:        {FlagHard, true, "Words marked as hard"},
	ActionMarkEasy:        {FlagHard, false, "Words marked as easy"},
	ActionMarkImportant:   {FlagImportant, true, "Words marked as important"},
	ActionMarkUnimportant: {FlagImportant, false, "Words marked as unimportant"},
}

// Filters accepted by Service.Filter.
const (
	FilterHard       = "hard"
	FilterUnreviewed = "unreviewed"
	FilterImportant  = "important"
	FilterRecent     = "recent"
)

type Service struct {
	repo      Repository
	lessons   LessonLinker
	suggester Suggester
	validate  *validation.Validator
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(repo Repository, lessons LessonLinker, suggester Suggester, v *validation.Validator, log logrus.FieldLogger) *Service {
	return &Service{
		repo:      repo,
		lessons:   lessons,
		suggester: suggester,
		validate:  v,
		log:       log,
		now:       time.Now,
	}
}

// Create stores the word and attaches it to the requested lesson. A word with
// the same spelling is reused instead of duplicated; created reports which
// happened.
func (s *Service) Create(ctx context.Context, req models.CreateWordRequest) (word *models.Word, created bool, err error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, false, err
	}
	lessonID := uuid.MustParse(req.LessonID)
	ok, err := s.lessons.Exists(ctx, lessonID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, fmt.Errorf("lesson %s: %w", lessonID, models.ErrNotFound)
	}

	existing, err := s.repo.FindBySpelling(ctx, strings.TrimSpace(req.Word))
	switch {
	case err == nil:
		word = existing
	case errors.Is(err, models.ErrNotFound):
		w := req.ToWord()
		if err := s.repo.Create(ctx, &w); err != nil {
			return nil, false, err
		}
		word, created = &w, true
	default:
		return nil, false, err
	}

	if err := s.lessons.AttachWord(ctx, lessonID, word.ID); err != nil {
		return nil, false, err
	}
	s.log.WithFields(logrus.Fields{
		"word_id":   word.ID,
		"lesson_id": lessonID,
		"created":   created,
	}).Info("word added to lesson")
	return word, created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Word, error) {
	return s.repo.List(ctx)
}

// Update merges the set fields of req into the stored word.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateWordRequest) (*models.Word, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(w)
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Batch applies a bulk action to the listed words.
func (s *Service) Batch(ctx context.Context, action string, req models.WordIDsRequest) (*models.BatchUpdateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	ids := lo.Uniq(lo.Map(req.WordIDs, func(id string, _ int) uuid.UUID { return uuid.MustParse(id) }))

	if action == ActionReviewStats {
		n, err := s.repo.RecordReview(ctx, ids, s.now())
		if err != nil {
			return nil, err
		}
		return &models.BatchUpdateResponse{Message: "Review stats updated", Modified: n}, nil
	}

	upd, ok := batchFlags[action]
	if !ok {
		return nil, fmt.Errorf("batch action %q: %w", action, models.ErrNotFound)
	}
	n, err := s.repo.SetFlag(ctx, ids, upd.flag, upd.value)
	if err != nil {
		return nil, err
	}
	return &models.BatchUpdateResponse{Message: upd.message, Modified: n}, nil
}

// Filter returns one of the named word lists.
func (s *Service) Filter(ctx context.Context, name string) ([]models.Word, error) {
	switch name {
	case FilterHard:
		return s.repo.ListHard(ctx)
	case FilterUnreviewed:
		return s.repo.ListUnreviewed(ctx)
	case FilterImportant:
		return s.repo.ListImportant(ctx)
	case FilterRecent:
		return s.repo.ListRecent(ctx)
	default:
		return nil, fmt.Errorf("filter %q: %w", name, models.ErrNotFound)
	}
}

func (s *Service) NeedsReview(ctx context.Context) (*models.NeedsReviewResponse, error) {
	words, err := s.repo.NeedingReview(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &models.NeedsReviewResponse{Count: len(words), Words: words}, nil
}

func (s *Service) Search(ctx context.Context, q string) ([]models.Word, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, validation.Field("q", "is required")
	}
	return s.repo.Search(ctx, q)
}

func (s *Service) ByType(ctx context.Context, wt models.WordType) ([]models.Word, error) {
	if !models.ValidWordTypes[wt] {
		return nil, validation.Field("type", "must be a known word type")
	}
	return s.repo.ListByType(ctx, wt)
}

func (s *Service) CountHard(ctx context.Context) (int, error) {
	return s.repo.CountHard(ctx)
}

// Enrich asks the suggester for content for the word. When apply is set the
// suggestions are merged into empty fields and the word is saved.
func (s *Service) Enrich(ctx context.Context, id uuid.UUID, apply bool) (*models.EnrichResponse, error) {
	if s.suggester == nil {
		return nil, ErrEnrichDisabled
	}
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sug, err := s.suggester.Suggest(ctx, *w)
	if err != nil {
		return nil, fmt.Errorf("enrich word %s: %w", id, err)
	}

	resp := &models.EnrichResponse{Suggestions: *sug, Applied: []string{}}
	if apply && !sug.Empty() {
		resp.Applied = sug.ApplyTo(w)
		if len(resp.Applied) > 0 {
			if err := s.repo.Update(ctx, w); err != nil {
				return nil, err
			}
		}
		s.log.WithFields(logrus.Fields{
			"word_id": id,
			"fields":  resp.Applied,
		}).Info("word enriched")
	}
	resp.Word = *w
	return resp, nil
}
