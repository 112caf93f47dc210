package enrich

import (
	"context"
	"encoding/json"

	"github.com/lernwort/backend/internal/models"
)

// MockClient answers every prompt with suggestions derived from the word
// named on its first line.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (MockClient) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	word := promptWord(p.User)
	sug := models.Suggestions{
		Synonyms:         []models.RelatedWord{{Word: word + "-Synonym", Meaning: "مرادف"}},
		Antonyms:         []models.RelatedWord{{Word: word + "-Antonym", Meaning: "ضد"}},
		IncorrectPlurals: []string{word + "en", word + "er"},
		Examples:         []models.Example{{Sentence: "Hier steht " + word + ".", Meaning: "هنا " + word + "."}},
	}
	body, err := json.Marshal(sug)
	if err != nil {
		return nil, err
	}
	return &Completion{Text: string(body), InputTokens: int64(len(p.User) / 4), OutputTokens: int64(len(body) / 4)}, nil
}
