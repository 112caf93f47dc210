package lessons

import (
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

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLessonRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	lesson, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, lesson)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.List(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, lessons)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	lesson, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, lesson)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.UpdateLessonRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	lesson, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, lesson)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Lesson deleted"})
}

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.LessonGroupRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	group, err := h.service.CreateGroup(r.Context(), req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, group)
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, groups)
}

func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	group, err := h.service.GetGroup(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, group)
}

func (h *Handler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.LessonGroupRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	group, err := h.service.UpdateGroup(r.Context(), id, req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, group)
}

func (h *Handler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteGroup(r.Context(), id); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Lesson group deleted"})
}

// Routes registers lesson and lesson group endpoints. Reads go on public,
// writes on protected.
func (h *Handler) Routes(public, protected *mux.Router) {
	public.HandleFunc("/lessons", h.List).Methods("GET")
	public.HandleFunc("/lessons/{id}", h.Get).Methods("GET")
	protected.HandleFunc("/lessons", h.Create).Methods("POST")
	protected.HandleFunc("/lessons/{id}", h.Update).Methods("PUT")
	protected.HandleFunc("/lessons/{id}", h.Delete).Methods("DELETE")

	public.HandleFunc("/lesson-groups", h.ListGroups).Methods("GET")
	public.HandleFunc("/lesson-groups/{id}", h.GetGroup).Methods("GET")
	protected.HandleFunc("/lesson-groups", h.CreateGroup).Methods("POST")
	protected.HandleFunc("/lesson-groups/{id}", h.UpdateGroup).Methods("PUT")
	protected.HandleFunc("/lesson-groups/{id}", h.DeleteGroup).Methods("DELETE")
}
