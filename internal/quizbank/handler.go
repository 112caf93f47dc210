package quizbank

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/respond"
)

type Handler struct {
	service *Service
	respond.Responder
}

func NewHandler(service *Service, rs respond.Responder) *Handler {
	return &Handler{service: service, Responder: rs}
}

func quizID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	q, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, q)
}

// List handles GET /quiz-bank?rule=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.List(r.Context(), r.URL.Query().Get("rule"))
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := quizID(w, r)
	if !ok {
		return
	}
	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, q)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := quizID(w, r)
	if !ok {
		return
	}
	var req models.UpdateQuizRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	q, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, q)
}

// Answer handles POST /quiz-bank/{id}/answer. The body is optional.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := quizID(w, r)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := respond.Decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	res, err := h.service.Answer(r.Context(), id, req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := quizID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted"})
}

func (h *Handler) Routes(public, protected *mux.Router) {
	public.HandleFunc("/quiz-bank", h.List).Methods("GET")
	public.HandleFunc("/quiz-bank/{id}", h.Get).Methods("GET")
	public.HandleFunc("/quiz-bank/{id}/answer", h.Answer).Methods("POST")
	protected.HandleFunc("/quiz-bank", h.Create).Methods("POST")
	protected.HandleFunc("/quiz-bank/{id}", h.Update).Methods("PUT")
	protected.HandleFunc("/quiz-bank/{id}", h.Delete).Methods("DELETE")
}
