package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lernwort/backend/internal/auth"
	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/validation"
)

type memRepo map[uuid.UUID]models.User

func (m memRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m memRepo) List(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m {
		out = append(out, u)
	}
	return out, nil
}

func (m memRepo) Update(_ context.Context, u *models.User) error {
	m[u.ID] = *u
	return nil
}

func (m memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m[id]; !ok {
		return models.ErrNotFound
	}
	delete(m, id)
	return nil
}

// asUser injects an authenticated caller without a token.
func asUser(id uuid.UUID, admin bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), id, admin)))
		})
	}
}

func TestUserRoutes(t *testing.T) {
	lena := models.User{ID: uuid.New(), Username: "lena", Email: "lena@example.com", Password: "hash"}
	omar := models.User{ID: uuid.New(), Username: "omar", Email: "omar@example.com", Password: "hash"}
	admin := uuid.New()

	tests := []struct {
		name    string
		caller  uuid.UUID
		isAdmin bool
		method  string
		target  string
		body    string
		want    int
	}{
		{"list as user", lena.ID, false, "GET", "/users", "", http.StatusForbidden},
		{"list as admin", admin, true, "GET", "/users", "", http.StatusOK},
		{"get self", lena.ID, false, "GET", "/users/" + lena.ID.String(), "", http.StatusOK},
		{"get other", lena.ID, false, "GET", "/users/" + omar.ID.String(), "", http.StatusForbidden},
		{"get other as admin", admin, true, "GET", "/users/" + omar.ID.String(), "", http.StatusOK},
		{"get bad id", admin, true, "GET", "/users/7", "", http.StatusBadRequest},
		{"update self", lena.ID, false, "PUT", "/users/" + lena.ID.String(), `{"username":"lenchen"}`, http.StatusOK},
		{"update invalid", lena.ID, false, "PUT", "/users/" + lena.ID.String(), `{"email":"nope"}`, http.StatusBadRequest},
		{"delete other", lena.ID, false, "DELETE", "/users/" + omar.ID.String(), "", http.StatusForbidden},
		{"delete missing as admin", admin, true, "DELETE", "/users/" + uuid.NewString(), "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := test.NewNullLogger()
			r := mux.NewRouter()
			r.Use(asUser(tt.caller, tt.isAdmin))
			NewHandler(memRepo{lena.ID: lena, omar.ID: omar}, validation.New(), respond.Responder{Log: log}).Routes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("%s %s status = %d, want %d: %s", tt.method, tt.target, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestUpdatePasswordIsHashed(t *testing.T) {
	lena := models.User{ID: uuid.New(), Username: "lena", Email: "lena@example.com", Password: "old"}
	repo := memRepo{lena.ID: lena}
	log, _ := test.NewNullLogger()
	r := mux.NewRouter()
	r.Use(asUser(lena.ID, false))
	NewHandler(repo, validation.New(), respond.Responder{Log: log}).Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("PUT", "/users/"+lena.ID.String(), strings.NewReader(`{"password":"neues1234"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if got := repo[lena.ID].Password; got == "old" || got == "neues1234" || !strings.HasPrefix(got, "$2") {
		t.Errorf("stored password = %q, want a bcrypt hash", got)
	}
}
