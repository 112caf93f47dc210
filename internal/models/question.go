package models

import "github.com/google/uuid"

// QuestionType names a generated question archetype as it appears on the wire.
type QuestionType string

const (
	KindIntro           QuestionType = "intro"
	KindReviewReminder  QuestionType = "reviewReminder"
	KindTranslation     QuestionType = "translation"
	KindArticle         QuestionType = "article"
	KindPlural          QuestionType = "plural"
	KindPronunciation   QuestionType = "pronunciation"
	KindWriteTheWord    QuestionType = "writeWord"
	KindSynonym         QuestionType = "synonym"
	KindAntonym         QuestionType = "antonym"
	KindSentenceOrder   QuestionType = "sentenceOrder"
	KindWriteSentence   QuestionType = "writeSentence"
	KindFillInTheBlanks QuestionType = "fillInTheBlanks"
)

// IsReminder reports whether the kind is anchored to its word's first regular question.
func (k QuestionType) IsReminder() bool {
	return k == KindIntro || k == KindReviewReminder
}

// Blank is one conjugation slot of a fill-in-the-blanks question.
type Blank struct {
	Pronoun Person `json:"pronoun"`
	Answer  string `json:"answer"`
}

// Question is a generated practice item. It is never persisted.
type Question struct {
	WordID        uuid.UUID    `json:"wordId"`
	Type          QuestionType `json:"type"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	Question      string       `json:"question,omitempty"`
	Options       []string     `json:"options,omitempty"`
	Words         []string     `json:"words,omitempty"`
	Verb          string       `json:"verb,omitempty"`
	Blanks        []Blank      `json:"blanks,omitempty"`
	// Answer is a string for every kind except fillInTheBlanks, where it
	// maps each person to its present tense form.
	Answer  any    `json:"answer"`
	Meaning string `json:"meaning,omitempty"`

	// intro payload
	Word       string        `json:"word,omitempty"`
	Article    string        `json:"article,omitempty"`
	Plural     string        `json:"plural,omitempty"`
	Examples   []Example     `json:"examples,omitempty"`
	Synonyms   []RelatedWord `json:"synonyms,omitempty"`
	Antonyms   []RelatedWord `json:"antonyms,omitempty"`
	IsReviewed *bool         `json:"isReviewed,omitempty"`
}

// AnswerText returns the answer of single-answer kinds, or "" for fillInTheBlanks.
func (q Question) AnswerText() string {
	s, _ := q.Answer.(string)
	return s
}
