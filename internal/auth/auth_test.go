package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/validation"
)

type memUsers map[uuid.UUID]*models.User

func (m memUsers) Create(_ context.Context, u *models.User) error {
	for _, other := range m {
		if other.Email == u.Email || other.Username == u.Username {
			return models.ErrConflict
		}
	}
	cp := *u
	m[u.ID] = &cp
	return nil
}

func (m memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := m[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	u := &models.User{ID: uuid.New(), IsAdmin: true}

	token, err := issuer.Issue(u)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.UserID != u.ID.String() || !claims.IsAdmin {
		t.Errorf("Parse() = (%s, %v), want (%s, true)", claims.UserID, claims.IsAdmin, u.ID)
	}
}

func TestParseRejects(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	u := &models.User{ID: uuid.New()}

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue(u)

	otherToken, _ := NewIssuer("other", time.Hour).Issue(u)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: u.ID.String()})
	noneToken, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	badID := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "42"})
	badIDToken, _ := badID.SignedString([]byte("secret"))

	tests := map[string]string{
		"expired":      expiredToken,
		"wrong secret": otherToken,
		"alg none":     noneToken,
		"bad user id":  badIDToken,
		"garbage":      "a.b.c",
	}
	for name, token := range tests {
		if _, err := issuer.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Parse(%s) error = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestMiddleware(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	user := &models.User{ID: uuid.New()}
	admin := &models.User{ID: uuid.New(), IsAdmin: true}
	userToken, _ := issuer.Issue(user)
	adminToken, _ := issuer.Issue(admin)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserID(r.Context())
		w.Write([]byte(id.String()))
	})

	tests := []struct {
		name    string
		handler http.Handler
		header  string
		want    int
	}{
		{"no header", Middleware(issuer)(ok), "", http.StatusUnauthorized},
		{"not bearer", Middleware(issuer)(ok), "Basic abc", http.StatusUnauthorized},
		{"bad token", Middleware(issuer)(ok), "Bearer nope", http.StatusUnauthorized},
		{"user", Middleware(issuer)(ok), "Bearer " + userToken, http.StatusOK},
		{"admin route as user", Middleware(issuer)(RequireAdmin(ok)), "Bearer " + userToken, http.StatusForbidden},
		{"admin route as admin", Middleware(issuer)(RequireAdmin(ok)), "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func newAuthRouter(users memUsers, issuer *Issuer) *mux.Router {
	log, _ := test.NewNullLogger()
	h := NewHandler(users, issuer, validation.New(), respond.Responder{Log: log})
	r := mux.NewRouter()
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	me := r.PathPrefix("").Subrouter()
	me.Use(Middleware(issuer))
	me.HandleFunc("/auth/me", h.GetCurrentUser).Methods("GET")
	return r
}

func post(r http.Handler, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", target, strings.NewReader(body)))
	return rec
}

func TestRegisterLoginMe(t *testing.T) {
	users := memUsers{}
	issuer := NewIssuer("secret", time.Hour)
	r := newAuthRouter(users, issuer)

	rec := post(r, "/auth/register", `{"username":"lena","email":" Lena@Example.com ","password":"geheim123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var reg models.AuthResponse
	json.Unmarshal(rec.Body.Bytes(), &reg)
	if reg.User.Email != "lena@example.com" || reg.Token == "" {
		t.Errorf("register = %+v, want normalized email and a token", reg)
	}
	if strings.Contains(rec.Body.String(), "geheim123") || strings.Contains(rec.Body.String(), "password") {
		t.Error("register response leaks the password")
	}

	if rec := post(r, "/auth/register", `{"username":"lena2","email":"lena@example.com","password":"geheim123"}`); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	rec = post(r, "/auth/login", `{"email":"LENA@example.com","password":"geheim123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var login models.AuthResponse
	json.Unmarshal(rec.Body.Bytes(), &login)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", rec.Code)
	}
	var me models.User
	json.Unmarshal(rec.Body.Bytes(), &me)
	if me.ID != reg.User.ID {
		t.Errorf("me id = %s, want %s", me.ID, reg.User.ID)
	}
}

func TestRegisterAndLoginErrors(t *testing.T) {
	users := memUsers{}
	issuer := NewIssuer("secret", time.Hour)
	r := newAuthRouter(users, issuer)
	post(r, "/auth/register", `{"username":"lena","email":"lena@example.com","password":"geheim123"}`)

	tests := []struct {
		name, target, body string
		want               int
	}{
		{"short username", "/auth/register", `{"username":"le","email":"a@b.de","password":"geheim123"}`, http.StatusBadRequest},
		{"bad email", "/auth/register", `{"username":"anna","email":"nope","password":"geheim123"}`, http.StatusBadRequest},
		{"letters only password", "/auth/register", `{"username":"anna","email":"a@b.de","password":"geheimnis"}`, http.StatusBadRequest},
		{"bad json", "/auth/register", `{`, http.StatusBadRequest},
		{"wrong password", "/auth/login", `{"email":"lena@example.com","password":"falsch123"}`, http.StatusUnauthorized},
		{"unknown email", "/auth/login", `{"email":"x@example.com","password":"geheim123"}`, http.StatusUnauthorized},
		{"missing password", "/auth/login", `{"email":"lena@example.com"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := post(r, tt.target, tt.body); rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d: %s", tt.name, rec.Code, tt.want, rec.Body.String())
		}
	}
}
