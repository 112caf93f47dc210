package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/models"
)

// DefaultGroupSize applies when neither groupSize nor wordIds is given.
const DefaultGroupSize = 10

const (
	TitleCustom      = "custom questions"
	TitleReview      = "review"
	TitleQuickReview = "quick review"
	TitleHardWords   = "hard words"
)

// WordFinder is the read side of the word store used to resolve sessions.
type WordFinder interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Word, error)
	NeedingReview(ctx context.Context, now time.Time) ([]models.Word, error)
	ListHard(ctx context.Context) ([]models.Word, error)
}

type LessonFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
}

// Request describes one practice session.
type Request struct {
	LessonID    string   `json:"lessonId,omitempty"`
	Mode        string   `json:"mode"`
	GroupSize   *int     `json:"groupSize,omitempty"`
	GroupNumber *int     `json:"groupNumber,omitempty"`
	WordIDs     []string `json:"wordIds,omitempty"`
}

type Service struct {
	words            WordFinder
	lessons          LessonFinder
	assembler        *Assembler
	defaultGroupSize int
	log              logrus.FieldLogger
	now              func() time.Time
}

type Option func(*Service)

func WithDefaultGroupSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultGroupSize = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(words WordFinder, lessons LessonFinder, assembler *Assembler, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		words:            words,
		lessons:          lessons,
		assembler:        assembler,
		defaultGroupSize: DefaultGroupSize,
		log:              log,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Build resolves the word source, selects the requested group and assembles
// the session.
func (s *Service) Build(ctx context.Context, req Request) (*Session, error) {
	if req.Mode == "" {
		return nil, &ValidationError{Field: "mode", Message: "is required"}
	}
	mode, ok := ParseMode(req.Mode)
	if !ok {
		return nil, &ValidationError{Field: "mode", Message: "must be one of learn, review, quick-review, hard-review"}
	}

	ids, err := parseIDs(req.WordIDs)
	if err != nil {
		return nil, err
	}

	groupSize := s.defaultGroupSize
	switch {
	case req.GroupSize != nil:
		groupSize = *req.GroupSize
	case len(ids) > 0:
		groupSize = len(ids)
	}
	groupNumber := 1
	if req.GroupNumber != nil {
		groupNumber = *req.GroupNumber
	}

	words, title, err := s.resolve(ctx, mode, req.LessonID, ids)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, &NotFoundError{Resource: "words"}
	}

	groups, err := Partition(words, groupSize)
	if err != nil {
		return nil, err
	}
	group, err := SelectGroup(groups, groupNumber)
	if err != nil {
		return nil, err
	}

	session := s.assembler.Assemble(group, mode, title)
	s.log.WithFields(logrus.Fields{
		"mode":    mode,
		"words":   len(group),
		"group":   fmt.Sprintf("%d/%d", groupNumber, len(groups)),
		"quizzes": session.CountOfQuizzes,
	}).Debug("practice session assembled")
	return &session, nil
}

func (s *Service) resolve(ctx context.Context, mode Mode, lessonID string, ids []uuid.UUID) ([]models.Word, string, error) {
	if len(ids) > 0 {
		words, err := s.words.ListByIDs(ctx, ids)
		if err != nil {
			return nil, "", fmt.Errorf("list words by id: %w", err)
		}
		return orderByIDs(words, ids), TitleCustom, nil
	}

	switch mode {
	case ModeLearn:
		if lessonID == "" {
			return nil, "", &ValidationError{Field: "lessonId", Message: "is required in learn mode"}
		}
		id, err := uuid.Parse(lessonID)
		if err != nil {
			return nil, "", &ValidationError{Field: "lessonId", Message: "must be a valid id"}
		}
		lesson, err := s.lessons.GetByID(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", &NotFoundError{Resource: "lesson", ID: lessonID}
		}
		if err != nil {
			return nil, "", fmt.Errorf("get lesson: %w", err)
		}
		if len(lesson.WordIDs) == 0 {
			return nil, lesson.Title, nil
		}
		words, err := s.words.ListByIDs(ctx, lesson.WordIDs)
		if err != nil {
			return nil, "", fmt.Errorf("list lesson words: %w", err)
		}
		return orderByIDs(words, lesson.WordIDs), lesson.Title, nil

	case ModeReview, ModeQuickReview:
		words, err := s.words.NeedingReview(ctx, s.now())
		if err != nil {
			return nil, "", fmt.Errorf("list words needing review: %w", err)
		}
		title := TitleReview
		if mode == ModeQuickReview {
			title = TitleQuickReview
		}
		return words, title, nil

	case ModeHardReview:
		words, err := s.words.ListHard(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("list hard words: %w", err)
		}
		return words, TitleHardWords, nil
	}
	return nil, "", &ValidationError{Field: "mode", Message: "is not supported"}
}

// parseIDs parses and dedupes word ids, keeping first-seen order.
func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, &ValidationError{Field: "wordIds", Message: fmt.Sprintf("invalid word id %q", r)}
		}
		ids = append(ids, id)
	}
	return lo.Uniq(ids), nil
}

// orderByIDs returns words in the order of ids, dropping ids with no word.
func orderByIDs(words []models.Word, ids []uuid.UUID) []models.Word {
	byID := lo.KeyBy(words, func(w models.Word) uuid.UUID { return w.ID })
	return lo.FilterMap(ids, func(id uuid.UUID, _ int) (models.Word, bool) {
		w, ok := byID[id]
		return w, ok
	})
}
