package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
)

// ParseResponse decodes an LLM reply and drops entries unusable for w.
func ParseResponse(reply string, w models.Word) (*models.Suggestions, error) {
	var sug models.Suggestions
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &sug); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	sug.Synonyms = cleanRelated(sug.Synonyms, w)
	sug.Antonyms = cleanRelated(sug.Antonyms, w)
	sug.IncorrectPlurals = cleanPlurals(sug.IncorrectPlurals, w)
	sug.Examples = lo.Filter(sug.Examples, func(ex models.Example, _ int) bool {
		return exampleUsable(ex, w)
	})
	return &sug, nil
}

// stripCodeFences removes a Markdown fence, with or without a language tag,
// around the reply.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		} else {
			rest = strings.TrimPrefix(rest, "json")
		}
		s = strings.TrimSuffix(strings.TrimSpace(rest), "```")
	}
	return strings.TrimSpace(s)
}

// cleanRelated trims entries and removes blanks, the word itself and repeats.
func cleanRelated(entries []models.RelatedWord, w models.Word) []models.RelatedWord {
	out := lo.FilterMap(entries, func(e models.RelatedWord, _ int) (models.RelatedWord, bool) {
		e.Word = strings.TrimSpace(e.Word)
		e.Meaning = strings.TrimSpace(e.Meaning)
		if e.Word == "" || e.Meaning == "" || strings.EqualFold(e.Word, w.Word) {
			return e, false
		}
		return e, true
	})
	return lo.UniqBy(out, func(e models.RelatedWord) string { return strings.ToLower(e.Word) })
}

// cleanPlurals keeps distinct wrong plural forms. Only nouns have plurals.
func cleanPlurals(forms []string, w models.Word) []string {
	if w.Type != models.WordTypeNoun {
		return nil
	}
	out := lo.FilterMap(forms, func(f string, _ int) (string, bool) {
		f = strings.TrimSpace(f)
		return f, f != "" && f != w.Plural && !lo.Contains(w.IncorrectPlurals, f)
	})
	return lo.Uniq(out)
}
