package practice

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/lernwort/backend/internal/models"
)

func TestDefaultRegistryCoversEveryWordType(t *testing.T) {
	reg := testRegistry(t)
	for wt := range models.ValidWordTypes {
		if got := len(reg.Pool(wt)); got < distractorCount+1 {
			t.Errorf("Pool(%s) has %d entries, want at least %d", wt, got, distractorCount+1)
		}
	}
}

func TestPoolUnknownTypeIsEmpty(t *testing.T) {
	reg := testRegistry(t)
	if got := reg.Pool("interjection"); len(got) != 0 {
		t.Errorf("Pool(interjection) = %v, want empty", got)
	}
	var nilReg *Registry
	if got := nilReg.Pool(models.WordTypeNoun); len(got) != 0 {
		t.Errorf("nil Registry Pool(noun) = %v, want empty", got)
	}
}

func TestPoolEntryAcceptsStringsAndObjects(t *testing.T) {
	var entries []PoolEntry
	data := `["Hund", {"word": "Katze", "meaning": "قطة"}]`
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []PoolEntry{{Word: "Hund"}, {Word: "Katze", Meaning: "قطة"}}
	if len(entries) != len(want) {
		t.Fatalf("len = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestLoadRegistryRejectsUnknownType(t *testing.T) {
	fsys := fstest.MapFS{
		"pools/noun.json":  {Data: []byte(`["Hund"]`)},
		"pools/nouns.json": {Data: []byte(`["Katze"]`)},
	}
	if _, err := LoadRegistry(fsys); err == nil {
		t.Error("LoadRegistry(pools/nouns.json) = nil error, want error")
	}
}

func TestNewRegistryCopiesInput(t *testing.T) {
	src := map[models.WordType][]PoolEntry{models.WordTypeNoun: {{Word: "Hund"}}}
	reg := NewRegistry(src)
	src[models.WordTypeNoun][0].Word = "Katze"
	if got := reg.Pool(models.WordTypeNoun)[0].Word; got != "Hund" {
		t.Errorf("Pool(noun)[0].Word = %q after caller mutation, want %q", got, "Hund")
	}
}
