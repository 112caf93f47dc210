package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lernwort/backend/internal/auth"
	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/validation"
)

// Repository is implemented by *Store.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	repo     Repository
	validate *validation.Validator
	respond.Responder
}

func NewHandler(repo Repository, v *validation.Validator, rs respond.Responder) *Handler {
	return &Handler{repo: repo, validate: v, Responder: rs}
}

// target resolves the {id} path variable and checks that the caller is that
// user or an admin.
func (h *Handler) target(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	caller, _ := auth.UserID(r.Context())
	if caller != id && !auth.IsAdmin(r.Context()) {
		respond.Error(w, http.StatusForbidden, "Not allowed")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.target(w, r)
	if !ok {
		return
	}
	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.target(w, r)
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.Fail(w, r, err)
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	if req.Username != nil {
		u.Username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil {
		u.Email = models.NormalizeEmail(*req.Email)
	}
	if req.Password != nil {
		if u.Password, err = auth.HashPassword(*req.Password); err != nil {
			h.Internal(w, r, err)
			return
		}
	}
	if err := h.repo.Update(r.Context(), u); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// Routes registers user management on an authenticated router. Listing all
// users is admin only.
func (h *Handler) Routes(protected *mux.Router) {
	protected.Handle("/users", auth.RequireAdmin(http.HandlerFunc(h.List))).Methods("GET")
	protected.HandleFunc("/users/{id}", h.Get).Methods("GET")
	protected.HandleFunc("/users/{id}", h.Update).Methods("PUT")
	protected.HandleFunc("/users/{id}", h.Delete).Methods("DELETE")
}
