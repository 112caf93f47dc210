package notes

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/validation"
)

// NoteStore is implemented by *Store.
type NoteStore interface {
	Create(ctx context.Context, n *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	List(ctx context.Context, archived bool) ([]models.Note, error)
	Update(ctx context.Context, n *models.Note) error
	ToggleArchive(ctx context.Context, id uuid.UUID) (*models.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	store    NoteStore
	validate *validation.Validator
	respond.Responder
}

func NewHandler(store NoteStore, v *validation.Validator, rs respond.Responder) *Handler {
	return &Handler{store: store, validate: v, Responder: rs}
}

func (h *Handler) noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid note ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := h.validate.Struct(req); err != nil {
		h.Fail(w, r, err)
		return
	}

	n := &models.Note{ID: uuid.New(), Content: req.Content}
	if err := h.store.Create(r.Context(), n); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, n)
}

func (h *Handler) list(archived bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := h.store.List(r.Context(), archived)
		if err != nil {
			h.Fail(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, notes)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}
	n, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, n)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}
	var req models.UpdateNoteRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Empty() {
		h.Fail(w, r, validation.Field("content", "is required"))
		return
	}
	if req.Content != nil {
		trimmed := strings.TrimSpace(*req.Content)
		req.Content = &trimmed
	}
	if err := h.validate.Struct(req); err != nil {
		h.Fail(w, r, err)
		return
	}

	n, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.IsArchived != nil {
		n.IsArchived = *req.IsArchived
	}
	if err := h.store.Update(r.Context(), n); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, n)
}

func (h *Handler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}
	n, err := h.store.ToggleArchive(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, n)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}

func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/notes", h.list(false)).Methods("GET")
	r.HandleFunc("/notes", h.Create).Methods("POST")
	r.HandleFunc("/notes/archived/list", h.list(true)).Methods("GET")
	r.HandleFunc("/notes/{id}", h.Get).Methods("GET")
	r.HandleFunc("/notes/{id}", h.Update).Methods("PUT")
	r.HandleFunc("/notes/{id}", h.Delete).Methods("DELETE")
	r.HandleFunc("/notes/{id}/archive", h.ToggleArchive).Methods("PATCH")
}
