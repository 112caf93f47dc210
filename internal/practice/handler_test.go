package practice

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
)

func newTestRouter(t *testing.T, words *fakeWords, lessons fakeLessons, expose bool) *mux.Router {
	log, _ := test.NewNullLogger()
	h := NewHandler(newTestService(t, words, lessons), respond.Responder{Log: log, ExposeErrors: expose})
	r := mux.NewRouter()
	h.Routes(r)
	return r
}

func TestGetSessionOK(t *testing.T) {
	words := reviewedWords(3)
	store := &fakeWords{byID: map[uuid.UUID]models.Word{}}
	for _, w := range words {
		store.byID[w.ID] = w
	}
	r := newTestRouter(t, store, nil, false)

	target := "/quizzes?mode=review&wordIds=" + words[0].ID.String() + "," + words[1].ID.String() +
		"&wordIds=" + words[2].ID.String()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, want 200: %s", target, rec.Code, rec.Body.String())
	}
	var body struct {
		Quizzes        []map[string]any `json:"quizzes"`
		CountOfQuizzes int              `json:"countOfQuizzes"`
		TitleOfLesson  string           `json:"titleOfLesson"`
		Mode           string           `json:"mode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.TitleOfLesson != TitleCustom || body.Mode != "review" {
		t.Errorf("header = (%q, %q), want (%q, review)", body.TitleOfLesson, body.Mode, TitleCustom)
	}
	if body.CountOfQuizzes != len(body.Quizzes) || body.CountOfQuizzes != 6 {
		t.Errorf("countOfQuizzes = %d with %d quizzes, want 6", body.CountOfQuizzes, len(body.Quizzes))
	}
	for _, q := range body.Quizzes {
		if _, ok := q["wordId"]; !ok {
			t.Errorf("quiz %v has no wordId", q)
		}
	}
}

func TestCreateSessionOK(t *testing.T) {
	r := newTestRouter(t, &fakeWords{hard: reviewedWords(2)}, nil, false)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/quizzes/session", strings.NewReader(`{"mode":"hard-review","groupSize":1,"groupNumber":2}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /quizzes/session status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestSessionErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		words  *fakeWords
		want   int
	}{
		{"missing mode", "GET", "/quizzes", "", &fakeWords{}, http.StatusBadRequest},
		{"bad groupSize", "GET", "/quizzes?mode=review&groupSize=ten", "", &fakeWords{}, http.StatusBadRequest},
		{"group out of range", "GET", "/quizzes?mode=review&groupNumber=5", "", &fakeWords{review: reviewedWords(3)}, http.StatusBadRequest},
		{"missing lesson", "GET", "/quizzes?mode=learn&lessonId=7f1c7a4e-5b7e-4c1e-9d8f-1a2b3c4d5e6f", "", &fakeWords{}, http.StatusNotFound},
		{"empty source", "GET", "/quizzes?mode=hard-review", "", &fakeWords{}, http.StatusNotFound},
		{"store failure", "GET", "/quizzes?mode=hard-review", "", &fakeWords{err: errors.New("db down")}, http.StatusInternalServerError},
		{"bad body", "POST", "/quizzes/session", "{", &fakeWords{}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		r := newTestRouter(t, tt.words, fakeLessons{}, false)
		rec := httptest.NewRecorder()
		var req *http.Request
		if tt.body != "" {
			req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
		} else {
			req = httptest.NewRequest(tt.method, tt.target, nil)
		}
		r.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d (%s)", tt.name, rec.Code, tt.want, rec.Body.String())
		}
	}
}

func TestInternalErrorDetailOnlyWhenExposed(t *testing.T) {
	for _, expose := range []bool{false, true} {
		r := newTestRouter(t, &fakeWords{err: errors.New("db down")}, nil, expose)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/quizzes?mode=hard-review", nil))

		var body models.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		hasDetail := strings.Contains(body.Detail, "db down")
		if hasDetail != expose {
			t.Errorf("expose=%v: detail = %q", expose, body.Detail)
		}
	}
}
