package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type WordType string

const (
	WordTypeNoun        WordType = "noun"
	WordTypeVerb        WordType = "verb"
	WordTypeAdjective   WordType = "adjective"
	WordTypePronoun     WordType = "pronoun"
	WordTypeAdverb      WordType = "adverb"
	WordTypePreposition WordType = "preposition"
	WordTypeConjunction WordType = "conjunction"
)

var ValidWordTypes = map[WordType]bool{
	WordTypeNoun:        true,
	WordTypeVerb:        true,
	WordTypeAdjective:   true,
	WordTypePronoun:     true,
	WordTypeAdverb:      true,
	WordTypePreposition: true,
	WordTypeConjunction: true,
}

// Articles is the fixed set of German definite articles offered as options.
var Articles = []string{"der", "die", "das"}

// ArticleNone is stored by some clients to mark a noun without an article.
const ArticleNone = "none"

type Person string

const (
	PersonIch     Person = "ich"
	PersonDu      Person = "du"
	PersonEr      Person = "er"
	PersonSieShe  Person = "sieShe"
	PersonEs      Person = "es"
	PersonWir     Person = "wir"
	PersonIhr     Person = "ihr"
	PersonSieThey Person = "sieThey"
	PersonSie     Person = "Sie"
)

// Persons lists the nine conjugation slots in display order.
var Persons = []Person{
	PersonIch, PersonDu, PersonEr, PersonSieShe, PersonEs,
	PersonWir, PersonIhr, PersonSieThey, PersonSie,
}

type Example struct {
	Sentence      string `json:"sentence" validate:"required"`
	Meaning       string `json:"meaning" validate:"required"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// RelatedWord is a synonym or antonym entry.
type RelatedWord struct {
	Word          string `json:"word" validate:"required"`
	Meaning       string `json:"meaning" validate:"required"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

type ConjugationTable map[Person]string

type Conjugation struct {
	Infinitive string           `json:"infinitive,omitempty"`
	Present    ConjugationTable `json:"present,omitempty"`
	Past       ConjugationTable `json:"past,omitempty"`
}

// HasPresent reports whether at least one present tense form is filled in.
func (c *Conjugation) HasPresent() bool {
	if c == nil {
		return false
	}
	for _, form := range c.Present {
		if strings.TrimSpace(form) != "" {
			return true
		}
	}
	return false
}

type Word struct {
	ID                  uuid.UUID             `json:"id" db:"id"`
	Word                string                `json:"word" db:"word"`
	Meaning             string                `json:"meaning" db:"meaning"`
	Pronunciation       string                `json:"pronunciation,omitempty" db:"pronunciation"`
	Type                WordType              `json:"type" db:"type"`
	Article             string                `json:"article,omitempty" db:"article"`
	Plural              string                `json:"plural,omitempty" db:"plural"`
	PluralPronunciation string                `json:"pluralPronunciation,omitempty" db:"plural_pronunciation"`
	IncorrectPlurals    JSONList[string]      `json:"incorrectPlurals,omitempty" db:"incorrect_plurals"`
	Examples            JSONList[Example]     `json:"examples" db:"examples"`
	Synonyms            JSONList[RelatedWord] `json:"synonyms,omitempty" db:"synonyms"`
	Antonyms            JSONList[RelatedWord] `json:"antonyms,omitempty" db:"antonyms"`
	Conjugation         *Conjugation          `json:"conjugation,omitempty" db:"conjugation"`
	IsReviewed          bool                  `json:"isReviewed" db:"is_reviewed"`
	ReviewCount         int                   `json:"reviewCount" db:"review_count"`
	IsHard              bool                  `json:"isHard" db:"is_hard"`
	IsImportant         bool                  `json:"isImportant" db:"is_important"`
	LastReviewed        *time.Time            `json:"lastReviewed,omitempty" db:"last_reviewed"`
	Level               string                `json:"level,omitempty" db:"level"`
	CreatedAt           time.Time             `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time             `json:"updatedAt" db:"updated_at"`
}

// HasArticle reports whether the word carries a real article (not empty, not "none").
func (w Word) HasArticle() bool {
	return w.Article != "" && w.Article != ArticleNone
}

// ── Request Types ─────────────────────────────────────

type CreateWordRequest struct {
	LessonID            string        `json:"lessonId" validate:"required,uuid"`
	Word                string        `json:"word" validate:"required,max=30"`
	Meaning             string        `json:"meaning" validate:"required"`
	Pronunciation       string        `json:"pronunciation,omitempty"`
	Type                WordType      `json:"type" validate:"required,wordtype"`
	Article             string        `json:"article,omitempty" validate:"omitempty,article"`
	Plural              string        `json:"plural,omitempty"`
	PluralPronunciation string        `json:"pluralPronunciation,omitempty"`
	IncorrectPlurals    []string      `json:"incorrectPlurals,omitempty"`
	Examples            []Example     `json:"examples" validate:"required,min=1,dive"`
	Synonyms            []RelatedWord `json:"synonyms,omitempty" validate:"omitempty,dive"`
	Antonyms            []RelatedWord `json:"antonyms,omitempty" validate:"omitempty,dive"`
	Conjugation         *Conjugation  `json:"conjugation,omitempty"`
	IsReviewed          bool          `json:"isReviewed,omitempty"`
	ReviewCount         int           `json:"reviewCount,omitempty" validate:"gte=0"`
	IsHard              bool          `json:"isHard,omitempty"`
	LastReviewed        *time.Time    `json:"lastReviewed,omitempty"`
	Level               string        `json:"level,omitempty"`
}

// ToWord builds a new word record from the request, trimming text fields.
func (r CreateWordRequest) ToWord() Word {
	return Word{
		ID:                  uuid.New(),
		Word:                strings.TrimSpace(r.Word),
		Meaning:             strings.TrimSpace(r.Meaning),
		Pronunciation:       strings.TrimSpace(r.Pronunciation),
		Type:                r.Type,
		Article:             r.Article,
		Plural:              strings.TrimSpace(r.Plural),
		PluralPronunciation: strings.TrimSpace(r.PluralPronunciation),
		IncorrectPlurals:    r.IncorrectPlurals,
		Examples:            r.Examples,
		Synonyms:            r.Synonyms,
		Antonyms:            r.Antonyms,
		Conjugation:         r.Conjugation,
		IsReviewed:          r.IsReviewed,
		ReviewCount:         r.ReviewCount,
		IsHard:              r.IsHard,
		LastReviewed:        r.LastReviewed,
		Level:               r.Level,
	}
}

// UpdateWordRequest is a partial update; nil fields keep their stored value.
type UpdateWordRequest struct {
	Word                *string       `json:"word,omitempty" validate:"omitempty,min=1,max=30"`
	Meaning             *string       `json:"meaning,omitempty" validate:"omitempty,min=1"`
	Pronunciation       *string       `json:"pronunciation,omitempty"`
	Type                *WordType     `json:"type,omitempty" validate:"omitempty,wordtype"`
	Article             *string       `json:"article,omitempty" validate:"omitempty,article"`
	Plural              *string       `json:"plural,omitempty"`
	PluralPronunciation *string       `json:"pluralPronunciation,omitempty"`
	IncorrectPlurals    []string      `json:"incorrectPlurals,omitempty"`
	Examples            []Example     `json:"examples,omitempty" validate:"omitempty,min=1,dive"`
	Synonyms            []RelatedWord `json:"synonyms,omitempty" validate:"omitempty,dive"`
	Antonyms            []RelatedWord `json:"antonyms,omitempty" validate:"omitempty,dive"`
	Conjugation         *Conjugation  `json:"conjugation,omitempty"`
	IsReviewed          *bool         `json:"isReviewed,omitempty"`
	ReviewCount         *int          `json:"reviewCount,omitempty" validate:"omitempty,gte=0"`
	IsHard              *bool         `json:"isHard,omitempty"`
	LastReviewed        *time.Time    `json:"lastReviewed,omitempty"`
}

// Apply merges the set fields of the request into w.
func (r UpdateWordRequest) Apply(w *Word) {
	if r.Word != nil {
		w.Word = strings.TrimSpace(*r.Word)
	}
	if r.Meaning != nil {
		w.Meaning = strings.TrimSpace(*r.Meaning)
	}
	if r.Pronunciation != nil {
		w.Pronunciation = strings.TrimSpace(*r.Pronunciation)
	}
	if r.Type != nil {
		w.Type = *r.Type
	}
	if r.Article != nil {
		w.Article = *r.Article
	}
	if r.Plural != nil {
		w.Plural = strings.TrimSpace(*r.Plural)
	}
	if r.PluralPronunciation != nil {
		w.PluralPronunciation = strings.TrimSpace(*r.PluralPronunciation)
	}
	if r.IncorrectPlurals != nil {
		w.IncorrectPlurals = r.IncorrectPlurals
	}
	if r.Examples != nil {
		w.Examples = r.Examples
	}
	if r.Synonyms != nil {
		w.Synonyms = r.Synonyms
	}
	if r.Antonyms != nil {
		w.Antonyms = r.Antonyms
	}
	if r.Conjugation != nil {
		w.Conjugation = r.Conjugation
	}
	if r.IsReviewed != nil {
		w.IsReviewed = *r.IsReviewed
	}
	if r.ReviewCount != nil {
		w.ReviewCount = *r.ReviewCount
	}
	if r.IsHard != nil {
		w.IsHard = *r.IsHard
	}
	if r.LastReviewed != nil {
		w.LastReviewed = r.LastReviewed
	}
}

type WordIDsRequest struct {
	WordIDs []string `json:"wordIds" validate:"required,min=1,dive,uuid"`
}

type BatchUpdateResponse struct {
	Message  string `json:"message"`
	Modified int64  `json:"modified"`
}

type NeedsReviewResponse struct {
	Count int    `json:"count"`
	Words []Word `json:"words"`
}
