// Package respond writes JSON responses and maps domain errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/validation"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, models.ErrorResponse{Error: msg})
}

func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// Responder carries the logger and the development flag shared by handlers.
type Responder struct {
	Log          logrus.FieldLogger
	ExposeErrors bool
}

// Fail maps err to a status code and writes it. Unknown errors are logged and
// reported as 500 with the detail hidden unless ExposeErrors is set.
func (rs Responder) Fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Errors
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, models.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrConflict):
		Error(w, http.StatusConflict, err.Error())
	default:
		rs.Internal(w, r, err)
	}
}

// Internal logs err and writes a 500.
func (rs Responder) Internal(w http.ResponseWriter, r *http.Request, err error) {
	if rs.Log != nil {
		rs.Log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("request failed")
	}
	resp := models.ErrorResponse{Error: "Internal server error"}
	if rs.ExposeErrors {
		resp.Detail = err.Error()
	}
	JSON(w, http.StatusInternalServerError, resp)
}
