package quizbank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/validation"
)

type memRepo map[uuid.UUID]models.Quiz

func (m memRepo) Create(_ context.Context, q *models.Quiz) error {
	m[q.ID] = *q
	return nil
}

func (m memRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Quiz, error) {
	q, ok := m[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &q, nil
}

func (m memRepo) List(_ context.Context, rule string) ([]models.Quiz, error) {
	out := []models.Quiz{}
	for _, q := range m {
		if rule == "" || q.Rule == rule {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m memRepo) Update(_ context.Context, q *models.Quiz) error {
	if _, ok := m[q.ID]; !ok {
		return models.ErrNotFound
	}
	m[q.ID] = *q
	return nil
}

func (m memRepo) RecordAnswer(_ context.Context, id uuid.UUID, at time.Time) (*models.Quiz, error) {
	q, ok := m[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	q.TimesAnswered++
	q.LastAnsweredAt = &at
	m[id] = q
	return &q, nil
}

func (m memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m[id]; !ok {
		return models.ErrNotFound
	}
	delete(m, id)
	return nil
}

func validRequest() models.CreateQuizRequest {
	return models.CreateQuizRequest{
		Question: "Ich ___ nach Hause.",
		Options:  []string{"gehe", "gehst", "geht", "gehen"},
		Answer:   "gehe",
		Meaning:  "أنا أذهب إلى البيت.",
		Rule:     "present tense",
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CreateQuizRequest)
		field  string
	}{
		{"ok", func(*models.CreateQuizRequest) {}, ""},
		{"three options", func(r *models.CreateQuizRequest) { r.Options = r.Options[:3] }, "options"},
		{"blank option", func(r *models.CreateQuizRequest) { r.Options[3] = " " }, "options[3]"},
		{"answer not an option", func(r *models.CreateQuizRequest) { r.Answer = "ging" }, "answer"},
		{"duplicate options", func(r *models.CreateQuizRequest) { r.Options[1] = "gehe" }, "options"},
		{"missing rule", func(r *models.CreateQuizRequest) { r.Rule = "" }, "rule"},
		{"wrong type", func(r *models.CreateQuizRequest) { r.Type = "article" }, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			svc := NewService(memRepo{}, validation.New())
			q, err := svc.Create(context.Background(), req)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Create() error = %v", err)
				}
				if q.Type != models.QuizTypeTranslation {
					t.Errorf("Create() type = %q, want %q", q.Type, models.QuizTypeTranslation)
				}
				return
			}
			var verr *validation.Errors
			if !errors.As(err, &verr) {
				t.Fatalf("Create() error = %v, want *validation.Errors", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want %q", verr.Fields, tt.field)
			}
		})
	}
}

func TestUpdateKeepsAnswerInOptions(t *testing.T) {
	repo := memRepo{}
	svc := NewService(repo, validation.New())
	q, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	opts := []string{"bin", "bist", "ist", "sind"}
	if _, err := svc.Update(context.Background(), q.ID, models.UpdateQuizRequest{Options: opts}); err == nil {
		t.Error("Update(options without answer) error = nil, want validation error")
	}
	answer := "bin"
	got, err := svc.Update(context.Background(), q.ID, models.UpdateQuizRequest{Options: opts, Answer: &answer})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Answer != "bin" || repo[q.ID].Options[0] != "bin" {
		t.Errorf("Update() = %+v, want answer bin stored", got)
	}
}

func TestAnswer(t *testing.T) {
	repo := memRepo{}
	svc := NewService(repo, validation.New())
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }
	q, _ := svc.Create(context.Background(), validRequest())

	res, err := svc.Answer(context.Background(), q.ID, AnswerRequest{Answer: "geht"})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if res.Correct == nil || *res.Correct {
		t.Errorf("Answer(geht).Correct = %v, want false", res.Correct)
	}
	res, _ = svc.Answer(context.Background(), q.ID, AnswerRequest{})
	if res.Correct != nil {
		t.Errorf("Answer(no answer).Correct = %v, want nil", *res.Correct)
	}
	if res.Quiz.TimesAnswered != 2 || !res.Quiz.LastAnsweredAt.Equal(at) {
		t.Errorf("after two answers = (%d, %v), want (2, %v)", res.Quiz.TimesAnswered, res.Quiz.LastAnsweredAt, at)
	}
	if _, err := svc.Answer(context.Background(), uuid.New(), AnswerRequest{}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Answer(missing) error = %v, want ErrNotFound", err)
	}
}

func TestHandlerRoutes(t *testing.T) {
	repo := memRepo{}
	svc := NewService(repo, validation.New())
	q, _ := svc.Create(context.Background(), validRequest())
	other := validRequest()
	other.Rule = "articles"
	svc.Create(context.Background(), other)

	log, _ := test.NewNullLogger()
	r := mux.NewRouter()
	NewHandler(svc, respond.Responder{Log: log}).Routes(r, r)

	body, _ := json.Marshal(validRequest())
	tests := []struct {
		method, target, body string
		want                 int
	}{
		{"POST", "/quiz-bank", string(body), http.StatusCreated},
		{"POST", "/quiz-bank", `{"question":"x"}`, http.StatusBadRequest},
		{"GET", "/quiz-bank/" + q.ID.String(), "", http.StatusOK},
		{"GET", "/quiz-bank/" + uuid.NewString(), "", http.StatusNotFound},
		{"POST", "/quiz-bank/" + q.ID.String() + "/answer", "", http.StatusOK},
		{"POST", "/quiz-bank/" + q.ID.String() + "/answer", `{"answer":"gehe"}`, http.StatusOK},
		{"POST", "/quiz-bank/" + q.ID.String() + "/answer", `{`, http.StatusBadRequest},
		{"PUT", "/quiz-bank/" + q.ID.String(), `{"rule":"verbs"}`, http.StatusOK},
		{"DELETE", "/quiz-bank/bad", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
		if rec.Code != tt.want {
			t.Errorf("%s %s status = %d, want %d: %s", tt.method, tt.target, rec.Code, tt.want, rec.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/quiz-bank?rule=articles", nil))
	var got []models.Quiz
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Rule != "articles" {
		t.Errorf("GET ?rule=articles = %d quizzes, want 1", len(got))
	}
}
