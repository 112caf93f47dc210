package enrich

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/config"
)

// Prompt is one single-turn request to a model.
type Prompt struct {
	System string
	User   string
}

// Completion is the model's text answer plus token usage when known.
type Completion struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
}

// LLMClient is satisfied by every enrichment backend.
type LLMClient interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)
}

// NewClient picks the backend named by cfg.Provider.
func NewClient(cfg config.EnrichConfig, log logrus.FieldLogger) (LLMClient, error) {
	switch cfg.Provider {
	case "mock":
		log.Info("word enrichment answers with canned suggestions")
		return NewMockClient(), nil
	case "cli":
		log.WithField("path", cfg.CLIPath).Info("word enrichment runs through the local CLI")
		return NewCLIClient(cfg.CLIPath), nil
	case "api":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("enrich.api_key is required for the api provider")
		}
		log.WithField("model", cfg.Model).Info("word enrichment uses the Anthropic API")
		return NewAnthropicClient(cfg.APIKey, cfg.Model, log), nil
	default:
		return nil, fmt.Errorf("unknown enrichment provider %q", cfg.Provider)
	}
}
