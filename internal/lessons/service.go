package lessons

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/validation"
)

// Repository is the lesson and lesson group persistence. *Store implements it.
type Repository interface {
	Create(ctx context.Context, l *models.Lesson) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	List(ctx context.Context) ([]models.LessonSummary, error)
	Update(ctx context.Context, l *models.Lesson, wordIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateGroup(ctx context.Context, g *models.LessonGroup) error
	GetGroup(ctx context.Context, id uuid.UUID) (*models.LessonGroup, error)
	ListGroups(ctx context.Context) ([]models.LessonGroup, error)
	UpdateGroup(ctx context.Context, g *models.LessonGroup) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
}

// WordLister resolves lesson word ids.
type WordLister interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Word, error)
}

type Service struct {
	repo     Repository
	words    WordLister
	validate *validation.Validator
	log      logrus.FieldLogger
}

func NewService(repo Repository, words WordLister, v *validation.Validator, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, words: words, validate: v, log: log}
}

func parseIDs(raw []string) []uuid.UUID {
	return lo.Uniq(lo.Map(raw, func(s string, _ int) uuid.UUID { return uuid.MustParse(s) }))
}

func (s *Service) Create(ctx context.Context, req models.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	l := &models.Lesson{
		ID:      uuid.New(),
		Title:   strings.TrimSpace(req.Title),
		Level:   req.Level,
		Color:   strings.ToUpper(req.Color),
		Emoji:   req.Emoji,
		WordIDs: []uuid.UUID{},
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.WithField("lesson_id", l.ID).Info("lesson created")
	return l, nil
}

// List returns every lesson with its word count. An empty catalogue is
// reported as not found.
func (s *Service) List(ctx context.Context) ([]models.LessonSummary, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(lessons) == 0 {
		return nil, fmt.Errorf("lessons: %w", models.ErrNotFound)
	}
	return lessons, nil
}

// Get returns the lesson with its words in lesson order and review progress.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.LessonDetail, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	found, err := s.words.ListByIDs(ctx, l.WordIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(found, func(w models.Word) uuid.UUID { return w.ID })
	words := lo.FilterMap(l.WordIDs, func(id uuid.UUID, _ int) (models.Word, bool) {
		w, ok := byID[id]
		return w, ok
	})
	return &models.LessonDetail{
		Lesson:             *l,
		Words:              words,
		WordsNumber:        len(words),
		ReviewedPercentage: reviewedPercentage(words),
	}, nil
}

func reviewedPercentage(words []models.Word) int {
	if len(words) == 0 {
		return 0
	}
	reviewed := lo.CountBy(words, func(w models.Word) bool { return w.IsReviewed })
	return int(math.Round(float64(reviewed) * 100 / float64(len(words))))
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateLessonRequest) (*models.Lesson, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(l)
	var wordIDs []uuid.UUID
	if req.WordIDs != nil {
		wordIDs = parseIDs(req.WordIDs)
		l.WordIDs = wordIDs
	}
	if err := s.repo.Update(ctx, l, wordIDs); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) CreateGroup(ctx context.Context, req models.LessonGroupRequest) (*models.LessonGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	g := &models.LessonGroup{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Level:       req.Level,
		LessonIDs:   parseIDs(req.LessonIDs),
	}
	if err := s.repo.CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return s.repo.GetGroup(ctx, g.ID)
}

func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*models.LessonGroup, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) ListGroups(ctx context.Context) ([]models.LessonGroup, error) {
	return s.repo.ListGroups(ctx)
}

// UpdateGroup replaces the group's fields and lesson list.
func (s *Service) UpdateGroup(ctx context.Context, id uuid.UUID, req models.LessonGroupRequest) (*models.LessonGroup, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	g := &models.LessonGroup{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Level:       req.Level,
		LessonIDs:   parseIDs(req.LessonIDs),
	}
	if err := s.repo.UpdateGroup(ctx, g); err != nil {
		return nil, err
	}
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGroup(ctx, id)
}
