package practice

import "github.com/lernwort/backend/internal/models"

// requirements lists the kinds that need specific word data. Kinds absent
// from the table apply to every word.
var requirements = map[models.QuestionType]func(models.Word) bool{
	models.KindArticle: func(w models.Word) bool {
		return w.Type != models.WordTypeVerb && w.HasArticle()
	},
	models.KindPlural: func(w models.Word) bool {
		return w.Plural != ""
	},
	models.KindSynonym: func(w models.Word) bool {
		return len(w.Synonyms) > 0
	},
	models.KindAntonym: func(w models.Word) bool {
		return len(w.Antonyms) > 0
	},
	models.KindWriteSentence: func(w models.Word) bool {
		return len(w.Examples) > 0
	},
	models.KindFillInTheBlanks: func(w models.Word) bool {
		return w.Type == models.WordTypeVerb && w.Conjugation.HasPresent()
	},
}

// CanGenerate reports whether w carries the data kind needs.
func CanGenerate(w models.Word, kind models.QuestionType) bool {
	if ok, found := requirements[kind]; found {
		return ok(w)
	}
	return true
}
