package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// record is the disk envelope. The schema and version stamps gate the
// payload so records written by older builds read as misses.
type record[V any] struct {
	Schema  int    `json:"schema"`
	Version string `json:"version"`
	Parsed  V      `json:"parsed"`
}

// Disk persists parse results as one JSON record per key. Writes go through
// a temp file and an atomic rename, so concurrent readers never observe a
// partial record and concurrent writers of the same key leave one winner.
type Disk[V any] struct {
	dir      string
	validate func(V) bool
}

// NewDisk creates the tier rooted at dir, creating the directory if needed.
// validate, when non-nil, gates loaded payloads: records failing it read as
// misses even when their version stamps match.
func NewDisk[V any](dir string, validate func(V) bool) (*Disk[V], error) {
	if dir == "" {
		return nil, errors.New("cache: empty disk cache directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create cache directory: %w", err)
	}
	return &Disk[V]{dir: dir, validate: validate}, nil
}

// Dir returns the cache root directory.
func (d *Disk[V]) Dir() string { return d.dir }

// Load reads the record stored under k. Every failure shape reads as a
// plain miss: missing file, unreadable bytes, malformed JSON, mismatched
// schema or version, payload failing validation. Stale or broken records
// are left in place to be overwritten by the next Store.
func (d *Disk[V]) Load(k Key) (V, bool) {
	var zero V

	data, err := os.ReadFile(filepath.Join(d.dir, k.Filename()))
	if err != nil {
		return zero, false
	}

	var rec record[V]
	if err := json.Unmarshal(data, &rec); err != nil {
		return zero, false
	}
	if rec.Schema != k.Schema || rec.Version != k.Version {
		return zero, false
	}
	if d.validate != nil && !d.validate(rec.Parsed) {
		return zero, false
	}
	return rec.Parsed, true
}

// Store writes the record for k atomically: the encoded record goes to a
// temp file in the cache directory, then an os.Rename moves it over the
// final name. The temp file is removed when any step fails.
func (d *Disk[V]) Store(k Key, v V) error {
	data, err := json.Marshal(record[V]{Schema: k.Schema, Version: k.Version, Parsed: v})
	if err != nil {
		return fmt.Errorf("cache: encode record: %w", err)
	}

	tmp, err := os.CreateTemp(d.dir, "record-*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(d.dir, k.Filename())); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache: publish record: %w", err)
	}
	return nil
}
