package enrich

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
)

const (
	minSentenceRunes = 8
	maxSentenceRunes = 160
)

// exampleUsable reports whether a generated example can be stored for w: it
// has a meaning, a sensible length, ends in punctuation, mentions the word and
// is not already present.
func exampleUsable(ex models.Example, w models.Word) bool {
	sentence := strings.TrimSpace(ex.Sentence)
	if strings.TrimSpace(ex.Meaning) == "" {
		return false
	}
	n := utf8.RuneCountInString(sentence)
	if n < minSentenceRunes || n > maxSentenceRunes {
		return false
	}
	if !strings.ContainsAny(sentence[len(sentence)-1:], ".!?") {
		return false
	}
	if !mentions(sentence, w) {
		return false
	}
	return !lo.ContainsBy(w.Examples, func(e models.Example) bool {
		return strings.EqualFold(strings.TrimSpace(e.Sentence), sentence)
	})
}

// mentions matches the word, its plural or a conjugated form. Verbs are
// matched on their stem since the infinitive rarely appears verbatim.
func mentions(sentence string, w models.Word) bool {
	lower := strings.ToLower(sentence)
	forms := []string{w.Word, w.Plural}
	if w.Type == models.WordTypeVerb {
		forms = append(forms, verbStem(w.Word))
		if w.Conjugation != nil {
			forms = append(forms, lo.Values(w.Conjugation.Present)...)
			forms = append(forms, lo.Values(w.Conjugation.Past)...)
		}
	}
	return lo.ContainsBy(forms, func(f string) bool {
		f = strings.ToLower(strings.TrimSpace(f))
		return f != "" && strings.Contains(lower, f)
	})
}

func verbStem(infinitive string) string {
	for _, suffix := range []string{"en", "n"} {
		if stem, ok := strings.CutSuffix(infinitive, suffix); ok && utf8.RuneCountInString(stem) >= 2 {
			return stem
		}
	}
	return infinitive
}
