package practice

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"

	"github.com/lernwort/backend/internal/models"
)

func seeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed*7+1))
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry() error = %v", err)
	}
	return reg
}

func noun() models.Word {
	return models.Word{
		ID:               uuid.New(),
		Word:             "Hund",
		Meaning:          "كلب",
		Pronunciation:    "hʊnt",
		Type:             models.WordTypeNoun,
		Article:          "der",
		Plural:           "Hunde",
		IncorrectPlurals: []string{"Hunden", "Hundes"},
		Examples: []models.Example{
			{Sentence: "Der Hund  bellt laut.", Meaning: "الكلب ينبح بصوت عال."},
		},
		Synonyms: []models.RelatedWord{{Word: "Köter", Meaning: "كلب"}},
		Antonyms: []models.RelatedWord{{Word: "Katze", Meaning: "قطة"}},
	}
}

func verb() models.Word {
	return models.Word{
		ID:       uuid.New(),
		Word:     "gehen",
		Meaning:  "يذهب",
		Type:     models.WordTypeVerb,
		Examples: []models.Example{{Sentence: "Ich gehe nach Hause.", Meaning: "أذهب إلى البيت."}},
		Conjugation: &models.Conjugation{
			Present: models.ConjugationTable{
				models.PersonIch: "gehe", models.PersonDu: "gehst", models.PersonEr: "geht",
				models.PersonSieShe: "geht", models.PersonEs: "geht", models.PersonWir: "gehen",
				models.PersonIhr: "geht", models.PersonSieThey: "gehen", models.PersonSie: "gehen",
			},
		},
		IsReviewed: true,
	}
}

// bare has only the fields every word carries.
func bare() models.Word {
	return models.Word{
		ID:       uuid.New(),
		Word:     "schnell",
		Meaning:  "سريع",
		Type:     models.WordTypeAdjective,
		Examples: []models.Example{{Sentence: "", Meaning: ""}},
	}
}
