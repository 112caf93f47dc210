package enrich

import (
	"fmt"
	"strings"

	"github.com/lernwort/backend/internal/models"
)

const wordLinePrefix = "Word: "

// examplesWanted is how many extra example sentences are requested.
const examplesWanted = 2

func SystemPrompt() string {
	return `You are a German teacher writing study material for Arabic-speaking learners.
You receive one German vocabulary entry and fill in the fields that are missing.

Rules:
- German text uses standard spelling with correct capitalisation and umlauts.
- Every "meaning" is a short Arabic gloss.
- Synonyms and antonyms are single German words of the same word type, never the word itself.
- Incorrect plurals are plausible but wrong plural forms a learner might guess; never the correct plural.
- Example sentences are short (under 12 words), use the word, and end with punctuation.
- Leave a list empty when nothing fits. Do not invent rare or archaic words.

Respond with a single JSON object and nothing else:
{
  "synonyms": [{"word": "...", "meaning": "..."}],
  "antonyms": [{"word": "...", "meaning": "..."}],
  "incorrectPlurals": ["..."],
  "examples": [{"sentence": "...", "meaning": "..."}]
}`
}

// MissingFields lists the JSON names of the fields the prompt asks for.
func MissingFields(w models.Word) []string {
	var fields []string
	if len(w.Synonyms) == 0 {
		fields = append(fields, "synonyms")
	}
	if len(w.Antonyms) == 0 {
		fields = append(fields, "antonyms")
	}
	if w.Type == models.WordTypeNoun && w.Plural != "" && len(w.IncorrectPlurals) == 0 {
		fields = append(fields, "incorrectPlurals")
	}
	return append(fields, "examples")
}

// BuildUserPrompt describes the word and the fields to fill in.
func BuildUserPrompt(w models.Word) string {
	var b strings.Builder
	b.WriteString(wordLinePrefix + w.Word + "\n")
	fmt.Fprintf(&b, "Type: %s\n", w.Type)
	fmt.Fprintf(&b, "Meaning: %s\n", w.Meaning)
	if w.HasArticle() {
		fmt.Fprintf(&b, "Article: %s\n", w.Article)
	}
	if w.Plural != "" {
		fmt.Fprintf(&b, "Plural: %s\n", w.Plural)
	}
	if len(w.Examples) > 0 {
		b.WriteString("Existing examples:\n")
		for _, ex := range w.Examples {
			fmt.Fprintf(&b, "- %s (%s)\n", ex.Sentence, ex.Meaning)
		}
	}

	missing := MissingFields(w)
	fmt.Fprintf(&b, "\nFill in: %s.\n", strings.Join(missing, ", "))
	fmt.Fprintf(&b, "Write %d new examples that differ from the existing ones.\n", examplesWanted)
	b.WriteString("Return an empty list for any field not requested.")
	return b.String()
}

// promptWord recovers the word from a prompt built by BuildUserPrompt.
func promptWord(prompt string) string {
	line, _, _ := strings.Cut(prompt, "\n")
	return strings.TrimSpace(strings.TrimPrefix(line, wordLinePrefix))
}
