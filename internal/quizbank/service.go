// Package quizbank manages the stored multiple-choice quizzes.
package quizbank

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/validation"
)

// Repository is implemented by *Store.
type Repository interface {
	Create(ctx context.Context, q *models.Quiz) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	List(ctx context.Context, rule string) ([]models.Quiz, error)
	Update(ctx context.Context, q *models.Quiz) error
	RecordAnswer(ctx context.Context, id uuid.UUID, at time.Time) (*models.Quiz, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AnswerRequest optionally carries the chosen option so it can be graded.
type AnswerRequest struct {
	Answer string `json:"answer,omitempty"`
}

type AnswerResult struct {
	Quiz    *models.Quiz `json:"quiz"`
	Correct *bool        `json:"correct,omitempty"`
}

type Service struct {
	repo     Repository
	validate *validation.Validator
	now      func() time.Time
}

func NewService(repo Repository, v *validation.Validator) *Service {
	return &Service{repo: repo, validate: v, now: time.Now}
}

func trimAll(ss []string) []string {
	return lo.Map(ss, func(s string, _ int) string { return strings.TrimSpace(s) })
}

func checkQuiz(q *models.Quiz) error {
	if len(lo.Uniq(q.Options)) != len(q.Options) {
		return validation.Field("options", "must not contain duplicates")
	}
	if !q.AnswerInOptions() {
		return validation.Field("answer", "must be one of the options")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, req models.CreateQuizRequest) (*models.Quiz, error) {
	req.Options = trimAll(req.Options)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	q := &models.Quiz{
		ID:            uuid.New(),
		Type:          models.QuizTypeTranslation,
		Pronunciation: strings.TrimSpace(req.Pronunciation),
		Question:      strings.TrimSpace(req.Question),
		Options:       req.Options,
		Answer:        strings.TrimSpace(req.Answer),
		Meaning:       strings.TrimSpace(req.Meaning),
		Rule:          strings.TrimSpace(req.Rule),
	}
	if err := checkQuiz(q); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, rule string) ([]models.Quiz, error) {
	return s.repo.List(ctx, strings.TrimSpace(rule))
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.UpdateQuizRequest) (*models.Quiz, error) {
	if req.Options != nil {
		req.Options = trimAll(req.Options)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(q)
	if err := checkQuiz(q); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Answer records that the quiz was answered. When the request names an
// option, the result says whether it was correct.
func (s *Service) Answer(ctx context.Context, id uuid.UUID, req AnswerRequest) (*AnswerResult, error) {
	q, err := s.repo.RecordAnswer(ctx, id, s.now())
	if err != nil {
		return nil, err
	}
	res := &AnswerResult{Quiz: q}
	if a := strings.TrimSpace(req.Answer); a != "" {
		res.Correct = lo.ToPtr(a == q.Answer)
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
