package practice

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/lernwort/backend/internal/models"
)

//go:embed pools/*.json
var poolFiles embed.FS

// PoolEntry is a reference word used as a distractor. Pool files may list
// plain strings or {word, meaning} objects.
type PoolEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning,omitempty"`
}

func (e *PoolEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Word = s
		e.Meaning = ""
		return nil
	}
	type plain PoolEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = PoolEntry(p)
	return nil
}

// Registry maps a word type to its distractor pool. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	pools map[models.WordType][]PoolEntry
}

func NewRegistry(pools map[models.WordType][]PoolEntry) *Registry {
	cp := make(map[models.WordType][]PoolEntry, len(pools))
	for k, v := range pools {
		cp[k] = append([]PoolEntry(nil), v...)
	}
	return &Registry{pools: cp}
}

// LoadRegistry reads every pools/<type>.json file from fsys.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	files, err := fs.Glob(fsys, "pools/*.json")
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	pools := make(map[models.WordType][]PoolEntry, len(files))
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read pool %s: %w", f, err)
		}
		var entries []PoolEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parse pool %s: %w", f, err)
		}
		wt := models.WordType(strings.TrimSuffix(path.Base(f), ".json"))
		if !models.ValidWordTypes[wt] {
			return nil, fmt.Errorf("pool %s: unknown word type %q", f, wt)
		}
		pools[wt] = entries
	}
	return &Registry{pools: pools}, nil
}

// DefaultRegistry loads the pools compiled into the binary.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(poolFiles)
}

// Pool returns the entries for wt, or nil for an unknown type.
func (r *Registry) Pool(wt models.WordType) []PoolEntry {
	if r == nil {
		return nil
	}
	return r.pools[wt]
}
