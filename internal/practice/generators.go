package practice

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/lernwort/backend/internal/models"
)

// distractorCount is the number of wrong options drawn for multiple-choice kinds.
const distractorCount = 3

// Generators builds questions of every kind from a word. Each method returns
// nil when the word lacks the data its kind needs.
type Generators struct {
	pools *Registry
	rnd   Source
}

func NewGenerators(pools *Registry, rnd Source) *Generators {
	if rnd == nil {
		rnd = DefaultSource()
	}
	return &Generators{pools: pools, rnd: rnd}
}

// Generate dispatches to the generator for kind.
func (g *Generators) Generate(kind models.QuestionType, w models.Word) *models.Question {
	switch kind {
	case models.KindIntro:
		return g.Intro(w)
	case models.KindReviewReminder:
		return g.ReviewReminder(w)
	case models.KindTranslation:
		return g.Translation(w)
	case models.KindArticle:
		return g.Article(w)
	case models.KindPlural:
		return g.Plural(w)
	case models.KindPronunciation:
		return g.Pronunciation(w)
	case models.KindWriteTheWord:
		return g.WriteTheWord(w)
	case models.KindSynonym:
		return g.Synonym(w)
	case models.KindAntonym:
		return g.Antonym(w)
	case models.KindSentenceOrder:
		return g.SentenceOrder(w)
	case models.KindWriteSentence:
		return g.WriteSentence(w)
	case models.KindFillInTheBlanks:
		return g.FillInTheBlanks(w)
	default:
		return nil
	}
}

// distractors draws up to n distinct pool words of wt whose word and meaning
// both differ from exclude.
func (g *Generators) distractors(wt models.WordType, exclude string, n int) []string {
	candidates := lo.FilterMap(g.pools.Pool(wt), func(e PoolEntry, _ int) (string, bool) {
		if e.Word == "" || e.Word == exclude || e.Meaning == exclude {
			return "", false
		}
		return e.Word, true
	})
	return sample(g.rnd, lo.Uniq(candidates), n)
}

// choices returns the correct answer mixed into up to three distractors.
func (g *Generators) choices(wt models.WordType, answer string) []string {
	options := append(g.distractors(wt, answer, distractorCount), answer)
	shuffle(g.rnd, options)
	return options
}

func (g *Generators) Intro(w models.Word) *models.Question {
	reviewed := w.IsReviewed
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindIntro,
		Pronunciation: w.Pronunciation,
		Word:          w.Word,
		Meaning:       w.Meaning,
		Article:       w.Article,
		Plural:        w.Plural,
		Examples:      w.Examples,
		Synonyms:      w.Synonyms,
		Antonyms:      w.Antonyms,
		IsReviewed:    &reviewed,
		Answer:        w.Word,
	}
}

func (g *Generators) ReviewReminder(w models.Word) *models.Question {
	if w.IsReviewed {
		return nil
	}
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindReviewReminder,
		Pronunciation: w.Pronunciation,
		Question:      fmt.Sprintf("\n\"%s\" = \"%s\"", w.Word, w.Meaning),
		Answer:        w.Word,
	}
}

// Translation asks for the German word given its meaning.
func (g *Generators) Translation(w models.Word) *models.Question {
	if strings.TrimSpace(w.Word) == "" || strings.TrimSpace(w.Meaning) == "" {
		return nil
	}
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindTranslation,
		Pronunciation: w.Pronunciation,
		Question:      fmt.Sprintf("ما هي الترجمة الألمانية لكلمة \"%s\"؟", w.Meaning),
		Options:       g.choices(w.Type, w.Word),
		Answer:        w.Word,
		Meaning:       w.Meaning,
	}
}

func (g *Generators) Article(w models.Word) *models.Question {
	if w.Type == models.WordTypeVerb || !w.HasArticle() {
		return nil
	}
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindArticle,
		Pronunciation: w.Pronunciation,
		Question:      fmt.Sprintf("ما المقال الصحيح للكلمة \"%s\"؟", w.Word),
		Options:       append([]string(nil), models.Articles...),
		Answer:        w.Article,
	}
}

func (g *Generators) Plural(w models.Word) *models.Question {
	plural := strings.TrimSpace(w.Plural)
	if plural == "" {
		return nil
	}
	wrong := lo.Filter(w.IncorrectPlurals, func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})
	options := lo.Uniq(append([]string{plural}, wrong...))
	shuffle(g.rnd, options)
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindPlural,
		Pronunciation: w.Pronunciation,
		Question:      fmt.Sprintf("ما هي صيغة الجمع للكلمة \"%s\"؟", w.Word),
		Options:       options,
		Answer:        plural,
	}
}

// Pronunciation plays the word's audio and asks which spelling was heard.
func (g *Generators) Pronunciation(w models.Word) *models.Question {
	if len(g.pools.Pool(w.Type)) == 0 {
		return nil
	}
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindPronunciation,
		Pronunciation: w.Pronunciation,
		Question:      "استمع إلى النطق واختر الكلمة الصحيحة:",
		Options:       g.choices(w.Type, w.Word),
		Answer:        w.Word,
		Meaning:       w.Meaning,
	}
}

func (g *Generators) WriteTheWord(w models.Word) *models.Question {
	full, meaning := w.Word, w.Meaning
	if w.HasArticle() {
		full = w.Article + " " + w.Word
		meaning = "ال" + w.Meaning
	}
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindWriteTheWord,
		Pronunciation: w.Pronunciation,
		Question:      fmt.Sprintf("اكتب الكلمة الألمانية التي معناها \"%s\"", meaning),
		Answer:        full,
		Meaning:       meaning,
	}
}

func (g *Generators) Synonym(w models.Word) *models.Question {
	if len(w.Synonyms) == 0 {
		return nil
	}
	correct := pick(g.rnd, w.Synonyms)
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindSynonym,
		Pronunciation: correct.Pronunciation,
		Question:      fmt.Sprintf("ما هو مرادف الكلمة \"%s\"؟", w.Word),
		Options:       g.choices(w.Type, correct.Word),
		Answer:        correct.Word,
		Meaning:       w.Meaning,
	}
}

// Antonym reports the antonym's own meaning, not the word's.
func (g *Generators) Antonym(w models.Word) *models.Question {
	if len(w.Antonyms) == 0 {
		return nil
	}
	correct := pick(g.rnd, w.Antonyms)
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindAntonym,
		Pronunciation: correct.Pronunciation,
		Question:      fmt.Sprintf("ما هو عكس الكلمة \"%s\"؟", w.Word),
		Options:       g.choices(w.Type, correct.Word),
		Answer:        correct.Word,
		Meaning:       correct.Meaning,
	}
}

// SentenceOrder scrambles the tokens of an example sentence. The answer is the
// tokens joined by single spaces.
func (g *Generators) SentenceOrder(w models.Word) *models.Question {
	usable := lo.Filter(w.Examples, func(e models.Example, _ int) bool {
		return strings.TrimSpace(e.Sentence) != ""
	})
	if len(usable) == 0 {
		return nil
	}
	ex := pick(g.rnd, usable)
	tokens := strings.Fields(ex.Sentence)
	scrambled := append([]string(nil), tokens...)
	shuffle(g.rnd, scrambled)
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindSentenceOrder,
		Pronunciation: ex.Pronunciation,
		Words:         scrambled,
		Answer:        strings.Join(tokens, " "),
		Meaning:       ex.Meaning,
	}
}

func (g *Generators) WriteSentence(w models.Word) *models.Question {
	usable := lo.Filter(w.Examples, func(e models.Example, _ int) bool {
		return strings.TrimSpace(e.Sentence) != "" && strings.TrimSpace(e.Meaning) != ""
	})
	if len(usable) == 0 {
		return nil
	}
	ex := pick(g.rnd, usable)
	return &models.Question{
		WordID:        w.ID,
		Type:          models.KindWriteSentence,
		Pronunciation: ex.Pronunciation,
		Question:      fmt.Sprintf("اكتب الجملة الألمانية التي معناها: \"%s\"", ex.Meaning),
		Answer:        strings.TrimSpace(ex.Sentence),
	}
}

// FillInTheBlanks asks for the present tense form of a verb for every person.
func (g *Generators) FillInTheBlanks(w models.Word) *models.Question {
	if w.Type != models.WordTypeVerb || !w.Conjugation.HasPresent() {
		return nil
	}
	blanks := lo.Map(models.Persons, func(p models.Person, _ int) models.Blank {
		return models.Blank{Pronoun: p}
	})
	answer := make(map[models.Person]string, len(models.Persons))
	for _, p := range models.Persons {
		answer[p] = w.Conjugation.Present[p]
	}
	return &models.Question{
		WordID: w.ID,
		Type:   models.KindFillInTheBlanks,
		Verb:   w.Word,
		Blanks: blanks,
		Answer: answer,
	}
}
