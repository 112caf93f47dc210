package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/validation"
)

// UserStore is the user persistence needed for authentication.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Handler struct {
	users    UserStore
	issuer   *Issuer
	validate *validation.Validator
	respond.Responder
}

func NewHandler(users UserStore, issuer *Issuer, v *validation.Validator, rs respond.Responder) *Handler {
	return &Handler{users: users, issuer: issuer, validate: v, Responder: rs}
}

// HashPassword returns the bcrypt hash stored for a password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = models.NormalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := h.validate.Struct(req); err != nil {
		h.Fail(w, r, err)
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		h.Internal(w, r, err)
		return
	}
	user := &models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, models.ErrConflict) {
			respond.Error(w, http.StatusConflict, "An account with this username or email already exists")
			return
		}
		h.Fail(w, r, err)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		h.Internal(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = models.NormalizeEmail(req.Email)
	if err := h.validate.Struct(req); err != nil {
		h.Fail(w, r, err)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, models.ErrNotFound) {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		h.Internal(w, r, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		h.Internal(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *Handler) Routes(public, protected *mux.Router) {
	public.HandleFunc("/auth/register", h.Register).Methods("POST")
	public.HandleFunc("/auth/login", h.Login).Methods("POST")
	protected.HandleFunc("/auth/me", h.GetCurrentUser).Methods("GET")
}
