package words

import (
	"errors"
	"net/http"
	"strconv"

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

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWordRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	word, created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond.JSON(w, status, word)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.List(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, words)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid word ID")
		return
	}
	word, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, word)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid word ID")
		return
	}
	var req models.UpdateWordRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	word, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, word)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid word ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Word deleted"})
}

// Batch handles PATCH /words/batch/{action}.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req models.WordIDsRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	resp, err := h.service.Batch(r.Context(), mux.Vars(r)["action"], req)
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

// Filter handles GET /words/filter/{name}.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.Filter(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, words)
}

func (h *Handler) NeedsReview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.NeedsReview(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, words)
}

func (h *Handler) ByType(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.ByType(r.Context(), models.WordType(mux.Vars(r)["type"]))
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, words)
}

func (h *Handler) CountHard(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.CountHard(r.Context())
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]int{"count": n})
}

// Enrich handles POST /words/{id}/enrich?apply=true.
func (h *Handler) Enrich(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond.Error(w, http.StatusBadRequest, "Invalid word ID")
		return
	}
	apply, _ := strconv.ParseBool(r.URL.Query().Get("apply"))
	resp, err := h.service.Enrich(r.Context(), id, apply)
	if errors.Is(err, ErrEnrichDisabled) {
		respond.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		h.Fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

// Routes registers the word endpoints. Reads go on public, writes on protected.
func (h *Handler) Routes(public, protected *mux.Router) {
	const id = "/words/{id:[0-9a-fA-F-]{36}}"

	public.HandleFunc("/words", h.List).Methods("GET")
	public.HandleFunc("/words/needs-review", h.NeedsReview).Methods("GET")
	public.HandleFunc("/words/search", h.Search).Methods("GET")
	public.HandleFunc("/words/hard/count", h.CountHard).Methods("GET")
	public.HandleFunc("/words/filter/{name}", h.Filter).Methods("GET")
	public.HandleFunc("/words/type/{type}", h.ByType).Methods("GET")
	public.HandleFunc(id, h.Get).Methods("GET")

	protected.HandleFunc("/words", h.Create).Methods("POST")
	protected.HandleFunc("/words/batch/{action}", h.Batch).Methods("PATCH")
	protected.HandleFunc(id, h.Update).Methods("PUT")
	protected.HandleFunc(id, h.Delete).Methods("DELETE")
	protected.HandleFunc(id+"/enrich", h.Enrich).Methods("POST")
}
