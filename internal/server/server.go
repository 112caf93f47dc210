// Package server assembles the HTTP API and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/auth"
	"github.com/lernwort/backend/internal/lessons"
	"github.com/lernwort/backend/internal/notes"
	"github.com/lernwort/backend/internal/practice"
	"github.com/lernwort/backend/internal/quizbank"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/users"
	"github.com/lernwort/backend/internal/words"
)

// Handlers groups the domain handlers mounted under /api/v1.
type Handlers struct {
	Auth     *auth.Handler
	Users    *users.Handler
	Words    *words.Handler
	Lessons  *lessons.Handler
	Notes    *notes.Handler
	QuizBank *quizbank.Handler
	Practice *practice.Handler
}

// NewRouter wires every endpoint. Reads of shared content are public, writes
// and personal data need a bearer token.
func NewRouter(h Handlers, issuer *auth.Issuer, origins []string, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	public := api.NewRoute().Subrouter()
	protected := api.NewRoute().Subrouter()
	protected.Use(auth.Middleware(issuer))

	h.Auth.Routes(public, protected)
	h.Words.Routes(public, protected)
	h.Lessons.Routes(public, protected)
	h.QuizBank.Routes(public, protected)
	h.Practice.Routes(public)
	h.Notes.Routes(protected)
	h.Users.Routes(protected)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, http.StatusNotFound, "Route not found")
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(AccessLog(log)(r))
}

// Server wraps the HTTP listener.
type Server struct {
	httpServer *http.Server
	log        logrus.FieldLogger
}

func New(port int, handler http.Handler, log logrus.FieldLogger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Start blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.log.Infof("HTTP server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("HTTP server shutting down")
	return s.httpServer.Shutdown(ctx)
}
