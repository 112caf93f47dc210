// Package enrich asks a language model for synonyms, antonyms, wrong plural
// forms and example sentences for stored words.
package enrich

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lernwort/backend/internal/models"
)

// Enricher turns words into prompts and model replies into suggestions.
type Enricher struct {
	llm LLMClient
	log logrus.FieldLogger
}

func NewEnricher(llm LLMClient, log logrus.FieldLogger) *Enricher {
	return &Enricher{llm: llm, log: log}
}

func (e *Enricher) Suggest(ctx context.Context, w models.Word) (*models.Suggestions, error) {
	start := time.Now()
	resp, err := e.llm.Complete(ctx, Prompt{System: SystemPrompt(), User: BuildUserPrompt(w)})
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	sug, err := ParseResponse(resp.Text, w)
	if err != nil {
		return nil, fmt.Errorf("parse suggestions: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"word_id":       w.ID,
		"input_tokens":  resp.InputTokens,
		"output_tokens": resp.OutputTokens,
		"duration":      time.Since(start).String(),
		"synonyms":      len(sug.Synonyms),
		"antonyms":      len(sug.Antonyms),
		"examples":      len(sug.Examples),
	}).Debug("word suggestions generated")
	return sug, nil
}
