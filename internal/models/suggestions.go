package models

// Suggestions holds generated content for a word's optional fields.
type Suggestions struct {
	Synonyms         []RelatedWord `json:"synonyms"`
	Antonyms         []RelatedWord `json:"antonyms"`
	IncorrectPlurals []string      `json:"incorrectPlurals"`
	Examples         []Example     `json:"examples"`
}

// Empty reports whether nothing was suggested.
func (s Suggestions) Empty() bool {
	return len(s.Synonyms) == 0 && len(s.Antonyms) == 0 &&
		len(s.IncorrectPlurals) == 0 && len(s.Examples) == 0
}

// ApplyTo copies suggestions into the fields of w that are still empty and
// returns the JSON names of the fields it filled. Examples are appended since
// a word always has at least one.
func (s Suggestions) ApplyTo(w *Word) []string {
	var filled []string
	if len(w.Synonyms) == 0 && len(s.Synonyms) > 0 {
		w.Synonyms = s.Synonyms
		filled = append(filled, "synonyms")
	}
	if len(w.Antonyms) == 0 && len(s.Antonyms) > 0 {
		w.Antonyms = s.Antonyms
		filled = append(filled, "antonyms")
	}
	if w.Type == WordTypeNoun && len(w.IncorrectPlurals) == 0 && len(s.IncorrectPlurals) > 0 {
		w.IncorrectPlurals = s.IncorrectPlurals
		filled = append(filled, "incorrectPlurals")
	}
	if len(s.Examples) > 0 {
		w.Examples = append(w.Examples, s.Examples...)
		filled = append(filled, "examples")
	}
	return filled
}

// EnrichResponse is returned by the word enrichment endpoint.
type EnrichResponse struct {
	Word        Word        `json:"word"`
	Suggestions Suggestions `json:"suggestions"`
	Applied     []string    `json:"applied"`
}
