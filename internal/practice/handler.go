package practice

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

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

// GetSession builds a session from query parameters. wordIds may be repeated
// or comma-separated.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.serve(w, r, req)
}

// CreateSession builds a session from a JSON body.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.serve(w, r, req)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, req Request) {
	session, err := h.service.Build(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, session)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	var rerr *OutOfRangeError
	var nerr *NotFoundError
	switch {
	case errors.As(err, &verr):
		respond.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  verr.Error(),
			Fields: map[string]string{verr.Field: verr.Message},
		})
	case errors.As(err, &rerr):
		respond.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error:  rerr.Error(),
			Fields: map[string]string{"groupNumber": "out of range"},
		})
	case errors.As(err, &nerr):
		respond.Error(w, http.StatusNotFound, nerr.Error())
	default:
		h.Internal(w, r, err)
	}
}

func requestFromQuery(q url.Values) (Request, error) {
	req := Request{
		LessonID: q.Get("lessonId"),
		Mode:     q.Get("mode"),
	}
	var err error
	if req.GroupSize, err = optionalInt(q, "groupSize"); err != nil {
		return req, err
	}
	if req.GroupNumber, err = optionalInt(q, "groupNumber"); err != nil {
		return req, err
	}
	for _, v := range q["wordIds"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.WordIDs = append(req.WordIDs, id)
			}
		}
	}
	return req, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, &ValidationError{Field: key, Message: "must be an integer"}
	}
	return &n, nil
}

func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/quizzes", h.GetSession).Methods("GET")
	r.HandleFunc("/quizzes/session", h.CreateSession).Methods("POST")
}
