package words

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lernwort/backend/internal/models"
	"github.com/lernwort/backend/internal/validation"
)

type fakeRepo struct {
	words   map[uuid.UUID]*models.Word
	failAll error
}

func newFakeRepo(words ...models.Word) *fakeRepo {
	r := &fakeRepo{words: map[uuid.UUID]*models.Word{}}
	for i := range words {
		w := words[i]
		r.words[w.ID] = &w
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, w *models.Word) error {
	if r.failAll != nil {
		return r.failAll
	}
	cp := *w
	r.words[w.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Word, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	w, ok := r.words[id]
	if !ok {
		return nil, fmt.Errorf("word %s: %w", id, models.ErrNotFound)
	}
	cp := *w
	return &cp, nil
}

func (r *fakeRepo) FindBySpelling(_ context.Context, word string) (*models.Word, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, w := range r.words {
		if w.Word == word {
			cp := *w
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeRepo) all(keep func(models.Word) bool) ([]models.Word, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	out := []models.Word{}
	for _, w := range r.words {
		if keep(*w) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	return out, nil
}

func (r *fakeRepo) List(context.Context) ([]models.Word, error) {
	return r.all(func(models.Word) bool { return true })
}

func (r *fakeRepo) Update(_ context.Context, w *models.Word) error {
	if _, ok := r.words[w.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *w
	r.words[w.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.words[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.words, id)
	return nil
}

func (r *fakeRepo) SetFlag(_ context.Context, ids []uuid.UUID, flag Flag, value bool) (int64, error) {
	var n int64
	for _, id := range ids {
		w, ok := r.words[id]
		if !ok {
			continue
		}
		field := map[Flag]*bool{FlagReviewed: &w.IsReviewed, FlagHard: &w.IsHard, FlagImportant: &w.IsImportant}[flag]
		if *field != value {
			*field = value
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) RecordReview(_ context.Context, ids []uuid.UUID, at time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		if w, ok := r.words[id]; ok {
			w.ReviewCount++
			w.LastReviewed = &at
			n++
		}
	}
	return n, nil
}

func (r *fakeRepo) ListHard(context.Context) ([]models.Word, error) {
	return r.all(func(w models.Word) bool { return w.IsHard })
}

func (r *fakeRepo) ListUnreviewed(context.Context) ([]models.Word, error) {
	return r.all(func(w models.Word) bool { return !w.IsReviewed })
}

func (r *fakeRepo) ListImportant(context.Context) ([]models.Word, error) {
	return r.all(func(w models.Word) bool { return w.IsImportant })
}

func (r *fakeRepo) ListRecent(context.Context) ([]models.Word, error) {
	return r.all(func(models.Word) bool { return true })
}

func (r *fakeRepo) ListByType(_ context.Context, wt models.WordType) ([]models.Word, error) {
	return r.all(func(w models.Word) bool { return w.Type == wt })
}

func (r *fakeRepo) Search(_ context.Context, q string) ([]models.Word, error) {
	q = strings.ToLower(q)
	return r.all(func(w models.Word) bool {
		return strings.Contains(strings.ToLower(w.Word), q) || strings.Contains(strings.ToLower(w.Meaning), q)
	})
}

func (r *fakeRepo) CountHard(ctx context.Context) (int, error) {
	hard, err := r.ListHard(ctx)
	return len(hard), err
}

func (r *fakeRepo) NeedingReview(_ context.Context, now time.Time) ([]models.Word, error) {
	return r.all(func(w models.Word) bool {
		if !w.IsReviewed {
			return false
		}
		return w.ReviewCount < MinReviews || w.LastReviewed == nil || w.LastReviewed.Before(now.Add(-ReviewInterval))
	})
}

type fakeLessons struct {
	known    map[uuid.UUID]bool
	attached map[uuid.UUID][]uuid.UUID
}

func newFakeLessons(ids ...uuid.UUID) *fakeLessons {
	l := &fakeLessons{known: map[uuid.UUID]bool{}, attached: map[uuid.UUID][]uuid.UUID{}}
	for _, id := range ids {
		l.known[id] = true
	}
	return l
}

func (l *fakeLessons) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return l.known[id], nil
}

func (l *fakeLessons) AttachWord(_ context.Context, lessonID, wordID uuid.UUID) error {
	l.attached[lessonID] = append(l.attached[lessonID], wordID)
	return nil
}

type fakeSuggester struct {
	sug *models.Suggestions
	err error
}

func (f fakeSuggester) Suggest(context.Context, models.Word) (*models.Suggestions, error) {
	return f.sug, f.err
}

func newTestService(repo *fakeRepo, lessons *fakeLessons, sug Suggester) *Service {
	log, _ := test.NewNullLogger()
	return NewService(repo, lessons, sug, validation.New(), log)
}

func word(spelling string, mutate ...func(*models.Word)) models.Word {
	w := models.Word{
		ID:       uuid.New(),
		Word:     spelling,
		Meaning:  "meaning of " + spelling,
		Type:     models.WordTypeNoun,
		Article:  "der",
		Examples: models.JSONList[models.Example]{{Sentence: spelling + " ist hier.", Meaning: "..."}},
	}
	for _, m := range mutate {
		m(&w)
	}
	return w
}

func createRequest(lessonID uuid.UUID, spelling string) models.CreateWordRequest {
	return models.CreateWordRequest{
		LessonID: lessonID.String(),
		Word:     spelling,
		Meaning:  "كلب",
		Type:     models.WordTypeNoun,
		Article:  "der",
		Examples: []models.Example{{Sentence: "Der Hund bellt.", Meaning: "الكلب ينبح."}},
	}
}

func TestCreateNewWord(t *testing.T) {
	lessonID := uuid.New()
	repo, lessons := newFakeRepo(), newFakeLessons(lessonID)
	svc := newTestService(repo, lessons, nil)

	w, created, err := svc.Create(context.Background(), createRequest(lessonID, " Hund "))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !created {
		t.Error("Create() created = false, want true")
	}
	if w.Word != "Hund" {
		t.Errorf("Create() word = %q, want trimmed %q", w.Word, "Hund")
	}
	if _, ok := repo.words[w.ID]; !ok {
		t.Error("Create() did not store the word")
	}
	if got := lessons.attached[lessonID]; len(got) != 1 || got[0] != w.ID {
		t.Errorf("attached = %v, want [%s]", got, w.ID)
	}
}

func TestCreateReusesExistingSpelling(t *testing.T) {
	lessonID := uuid.New()
	existing := word("Hund")
	repo, lessons := newFakeRepo(existing), newFakeLessons(lessonID)
	svc := newTestService(repo, lessons, nil)

	w, created, err := svc.Create(context.Background(), createRequest(lessonID, "Hund"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created {
		t.Error("Create() created = true, want false")
	}
	if w.ID != existing.ID {
		t.Errorf("Create() id = %s, want existing %s", w.ID, existing.ID)
	}
	if len(repo.words) != 1 {
		t.Errorf("repo has %d words, want 1", len(repo.words))
	}
	if got := lessons.attached[lessonID]; len(got) != 1 || got[0] != existing.ID {
		t.Errorf("attached = %v, want [%s]", got, existing.ID)
	}
}

func TestCreateErrors(t *testing.T) {
	lessonID := uuid.New()
	tests := []struct {
		name    string
		req     models.CreateWordRequest
		wantNF  bool
		wantVal string
	}{
		{"missing lesson", createRequest(uuid.New(), "Hund"), true, ""},
		{"bad lesson id", func() models.CreateWordRequest {
			r := createRequest(lessonID, "Hund")
			r.LessonID = "nope"
			return r
		}(), false, "lessonId"},
		{"no examples", func() models.CreateWordRequest {
			r := createRequest(lessonID, "Hund")
			r.Examples = nil
			return r
		}(), false, "examples"},
		{"bad type", func() models.CreateWordRequest {
			r := createRequest(lessonID, "Hund")
			r.Type = "noun-ish"
			return r
		}(), false, "type"},
		{"bad article", func() models.CreateWordRequest {
			r := createRequest(lessonID, "Hund")
			r.Article = "den"
			return r
		}(), false, "article"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeRepo(), newFakeLessons(lessonID), nil)
			_, _, err := svc.Create(context.Background(), tt.req)
			if err == nil {
				t.Fatal("Create() error = nil, want error")
			}
			if tt.wantNF && !errors.Is(err, models.ErrNotFound) {
				t.Errorf("Create() error = %v, want ErrNotFound", err)
			}
			if tt.wantVal != "" {
				var verr *validation.Errors
				if !errors.As(err, &verr) {
					t.Fatalf("Create() error = %v, want *validation.Errors", err)
				}
				if _, ok := verr.Fields[tt.wantVal]; !ok {
					t.Errorf("fields = %v, want key %q", verr.Fields, tt.wantVal)
				}
			}
		})
	}
}

func TestUpdateMergesFields(t *testing.T) {
	w := word("Hund", func(w *models.Word) { w.Plural = "Hunde" })
	repo := newFakeRepo(w)
	svc := newTestService(repo, newFakeLessons(), nil)

	meaning := "كلب"
	got, err := svc.Update(context.Background(), w.ID, models.UpdateWordRequest{Meaning: &meaning})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Meaning != meaning || got.Plural != "Hunde" || got.Word != "Hund" {
		t.Errorf("Update() = (%q, %q, %q), want (%q, Hunde, Hund)", got.Meaning, got.Plural, got.Word, meaning)
	}
	if repo.words[w.ID].Meaning != meaning {
		t.Error("Update() did not persist")
	}

	if _, err := svc.Update(context.Background(), uuid.New(), models.UpdateWordRequest{Meaning: &meaning}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestBatch(t *testing.T) {
	a := word("Hund")
	b := word("Katze", func(w *models.Word) { w.IsHard = true })
	ids := models.WordIDsRequest{WordIDs: []string{a.ID.String(), b.ID.String(), a.ID.String()}}

	tests := []struct {
		action       string
		wantModified int64
		check        func(r *fakeRepo) bool
	}{
		{ActionMarkHard, 1, func(r *fakeRepo) bool { return r.words[a.ID].IsHard && r.words[b.ID].IsHard }},
		{ActionMarkEasy, 1, func(r *fakeRepo) bool { return !r.words[a.ID].IsHard && !r.words[b.ID].IsHard }},
		{ActionMarkReviewed, 2, func(r *fakeRepo) bool { return r.words[a.ID].IsReviewed }},
		{ActionMarkImportant, 2, func(r *fakeRepo) bool { return r.words[b.ID].IsImportant }},
		{ActionMarkUnimportant, 0, func(r *fakeRepo) bool { return !r.words[b.ID].IsImportant }},
		{ActionReviewStats, 2, func(r *fakeRepo) bool {
			return r.words[a.ID].ReviewCount == 1 && r.words[a.ID].LastReviewed != nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			repo := newFakeRepo(a, b)
			svc := newTestService(repo, newFakeLessons(), nil)
			resp, err := svc.Batch(context.Background(), tt.action, ids)
			if err != nil {
				t.Fatalf("Batch(%s) error = %v", tt.action, err)
			}
			if resp.Modified != tt.wantModified {
				t.Errorf("Batch(%s) modified = %d, want %d", tt.action, resp.Modified, tt.wantModified)
			}
			if !tt.check(repo) {
				t.Errorf("Batch(%s) did not update the words", tt.action)
			}
		})
	}
}

func TestBatchRejectsEmptyIDs(t *testing.T) {
	svc := newTestService(newFakeRepo(), newFakeLessons(), nil)
	_, err := svc.Batch(context.Background(), ActionMarkHard, models.WordIDsRequest{})
	var verr *validation.Errors
	if !errors.As(err, &verr) {
		t.Fatalf("Batch(empty) error = %v, want *validation.Errors", err)
	}
	if _, ok := verr.Fields["wordIds"]; !ok {
		t.Errorf("fields = %v, want wordIds", verr.Fields)
	}
}

func TestFilterAndSearch(t *testing.T) {
	hard := word("Hund", func(w *models.Word) { w.IsHard = true; w.IsReviewed = true })
	imp := word("Katze", func(w *models.Word) { w.IsImportant = true; w.Meaning = "قطة" })
	verb := word("gehen", func(w *models.Word) { w.Type = models.WordTypeVerb; w.Article = "" })
	svc := newTestService(newFakeRepo(hard, imp, verb), newFakeLessons(), nil)
	ctx := context.Background()

	tests := []struct {
		filter string
		want   int
	}{
		{FilterHard, 1},
		{FilterUnreviewed, 2},
		{FilterImportant, 1},
		{FilterRecent, 3},
	}
	for _, tt := range tests {
		got, err := svc.Filter(ctx, tt.filter)
		if err != nil {
			t.Fatalf("Filter(%s) error = %v", tt.filter, err)
		}
		if len(got) != tt.want {
			t.Errorf("Filter(%s) = %d words, want %d", tt.filter, len(got), tt.want)
		}
	}
	if _, err := svc.Filter(ctx, "bogus"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Filter(bogus) error = %v, want ErrNotFound", err)
	}

	got, err := svc.Search(ctx, "قط")
	if err != nil || len(got) != 1 || got[0].ID != imp.ID {
		t.Errorf("Search(قط) = %v, %v, want [Katze]", got, err)
	}
	if _, err := svc.Search(ctx, "  "); err == nil {
		t.Error("Search(blank) error = nil, want validation error")
	}

	verbs, err := svc.ByType(ctx, models.WordTypeVerb)
	if err != nil || len(verbs) != 1 {
		t.Errorf("ByType(verb) = %d words, %v, want 1", len(verbs), err)
	}
	if _, err := svc.ByType(ctx, "thing"); err == nil {
		t.Error("ByType(thing) error = nil, want validation error")
	}

	n, err := svc.CountHard(ctx)
	if err != nil || n != 1 {
		t.Errorf("CountHard() = %d, %v, want 1", n, err)
	}
}

func TestNeedsReview(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)
	old := now.Add(-4 * 24 * time.Hour)
	words := []models.Word{
		word("fresh", func(w *models.Word) { w.IsReviewed = true; w.ReviewCount = 5; w.LastReviewed = &recent }),
		word("stale", func(w *models.Word) { w.IsReviewed = true; w.ReviewCount = 5; w.LastReviewed = &old }),
		word("young", func(w *models.Word) { w.IsReviewed = true; w.ReviewCount = 1; w.LastReviewed = &recent }),
		word("undated", func(w *models.Word) { w.IsReviewed = true; w.ReviewCount = 5 }),
		word("new"),
	}
	svc := newTestService(newFakeRepo(words...), newFakeLessons(), nil)
	svc.now = func() time.Time { return now }

	resp, err := svc.NeedsReview(context.Background())
	if err != nil {
		t.Fatalf("NeedsReview() error = %v", err)
	}
	if resp.Count != 3 || len(resp.Words) != 3 {
		t.Fatalf("NeedsReview() count = %d, want 3", resp.Count)
	}
	for _, w := range resp.Words {
		if w.Word == "fresh" || w.Word == "new" {
			t.Errorf("NeedsReview() included %q", w.Word)
		}
	}
}

func TestEnrich(t *testing.T) {
	sug := &models.Suggestions{
		Synonyms:         []models.RelatedWord{{Word: "Köter", Meaning: "كلب"}},
		IncorrectPlurals: []string{"Hunden"},
		Examples:         []models.Example{{Sentence: "Der Hund schläft.", Meaning: "الكلب نائم."}},
	}
	tests := []struct {
		name        string
		apply       bool
		wantApplied []string
		wantStored  int
	}{
		{"preview", false, []string{}, 1},
		{"apply", true, []string{"synonyms", "incorrectPlurals", "examples"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := word("Hund")
			repo := newFakeRepo(w)
			svc := newTestService(repo, newFakeLessons(), fakeSuggester{sug: sug})

			resp, err := svc.Enrich(context.Background(), w.ID, tt.apply)
			if err != nil {
				t.Fatalf("Enrich() error = %v", err)
			}
			if fmt.Sprint(resp.Applied) != fmt.Sprint(tt.wantApplied) {
				t.Errorf("Enrich() applied = %v, want %v", resp.Applied, tt.wantApplied)
			}
			if got := len(repo.words[w.ID].Examples); got != tt.wantStored {
				t.Errorf("stored examples = %d, want %d", got, tt.wantStored)
			}
		})
	}
}

func TestEnrichErrors(t *testing.T) {
	w := word("Hund")
	svc := newTestService(newFakeRepo(w), newFakeLessons(), nil)
	if _, err := svc.Enrich(context.Background(), w.ID, false); !errors.Is(err, ErrEnrichDisabled) {
		t.Errorf("Enrich(no suggester) error = %v, want ErrEnrichDisabled", err)
	}

	boom := errors.New("llm down")
	svc = newTestService(newFakeRepo(w), newFakeLessons(), fakeSuggester{err: boom})
	if _, err := svc.Enrich(context.Background(), w.ID, true); !errors.Is(err, boom) {
		t.Errorf("Enrich(failing) error = %v, want %v", err, boom)
	}
}
