package cmd

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/auth"
	"github.com/lernwort/backend/internal/config"
	"github.com/lernwort/backend/internal/enrich"
	"github.com/lernwort/backend/internal/lessons"
	"github.com/lernwort/backend/internal/notes"
	"github.com/lernwort/backend/internal/practice"
	"github.com/lernwort/backend/internal/quizbank"
	"github.com/lernwort/backend/internal/respond"
	"github.com/lernwort/backend/internal/server"
	"github.com/lernwort/backend/internal/users"
	"github.com/lernwort/backend/internal/validation"
	"github.com/lernwort/backend/internal/words"
)

const devJWTSecret = "lernwort-development-secret"

// services holds the stores and services built on one database handle.
type services struct {
	validator *validation.Validator
	users     *users.Store
	notes     *notes.Store
	words     *words.Service
	lessons   *lessons.Service
	quizBank  *quizbank.Service
	practice  *practice.Service
}

func newServices(cfg *config.Config, db *sqlx.DB, log logrus.FieldLogger) (*services, error) {
	v := validation.New()
	wordStore := words.NewStore(db)
	lessonStore := lessons.NewStore(db)

	var suggester words.Suggester
	if cfg.Enrich.Provider != "none" {
		llm, err := enrich.NewClient(cfg.Enrich, log.WithField("component", "enrich"))
		if err != nil {
			return nil, fmt.Errorf("enrichment client: %w", err)
		}
		suggester = enrich.NewEnricher(llm, log.WithField("component", "enrich"))
	}

	pools, err := practice.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("load distractor pools: %w", err)
	}
	rnd := practice.DefaultSource()
	selector := practice.NewSelector(practice.NewGenerators(pools, rnd), cfg.Practice.MaxAttempts)

	return &services{
		validator: v,
		users:     users.NewStore(db),
		notes:     notes.NewStore(db),
		words:     words.NewService(wordStore, lessonStore, suggester, v, log.WithField("component", "words")),
		lessons:   lessons.NewService(lessonStore, wordStore, v, log.WithField("component", "lessons")),
		quizBank:  quizbank.NewService(quizbank.NewStore(db), v),
		practice: practice.NewService(wordStore, lessonStore, practice.NewAssembler(selector, rnd),
			log.WithField("component", "practice"),
			practice.WithDefaultGroupSize(cfg.Practice.DefaultGroupSize),
		),
	}, nil
}

func (s *services) handlers(issuer *auth.Issuer, rs respond.Responder) server.Handlers {
	return server.Handlers{
		Auth:     auth.NewHandler(s.users, issuer, s.validator, rs),
		Users:    users.NewHandler(s.users, s.validator, rs),
		Words:    words.NewHandler(s.words, rs),
		Lessons:  lessons.NewHandler(s.lessons, rs),
		Notes:    notes.NewHandler(s.notes, s.validator, rs),
		QuizBank: quizbank.NewHandler(s.quizBank, rs),
		Practice: practice.NewHandler(s.practice, rs),
	}
}

// jwtSecret returns the configured signing secret. Development falls back to
// a fixed secret; any other environment must set auth.jwt_secret.
func jwtSecret(cfg *config.Config, log logrus.FieldLogger) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}
	if cfg.IsDevelopment() {
		log.Warn("auth.jwt_secret not set, using the development secret")
		return devJWTSecret, nil
	}
	return "", errors.New("auth.jwt_secret (AUTH_JWT_SECRET) is required outside development")
}
