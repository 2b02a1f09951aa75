// Package storage implements the file-backed collection store: one JSON
// array document per collection, rewritten in full on every mutation.
//
// Each table serializes its mutating operations behind a mutex, so two
// writers can never interleave a read-modify-write on the same collection.
// Sequences spanning two tables (cart then product) remain non-atomic; that
// is the documented worst case the services are built around.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrDuplicateID is returned by Create when a record with the same id
// already exists in the collection.
var ErrDuplicateID = errors.New("duplicate record id")

// Record is any entity the store can persist. Implementations return the
// opaque unique id assigned at creation time.
type Record interface {
	RecordID() string
}

// Table is a named collection of like-typed records persisted as a single
// JSON array document.
type Table[T Record] struct {
	mu   sync.RWMutex
	path string
}

// NewTable creates a table persisted at <dir>/<collection>.json. The file is
// created lazily on the first write; a missing file reads as empty.
func NewTable[T Record](dir, collection string) *Table[T] {
	return &Table[T]{path: filepath.Join(dir, collection+".json")}
}

// FindAll returns every record in insertion order. A missing or corrupt
// document is treated as an empty collection, never an error.
func (t *Table[T]) FindAll() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.read()
}

// FindByID returns the record with the given id, if present.
func (t *Table[T]) FindByID(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, rec := range t.read() {
		if rec.RecordID() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// FindBy returns all records matching the predicate, in original order.
// The predicate must be a pure comparison over record fields.
func (t *Table[T]) FindBy(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []T
	for _, rec := range t.read() {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Count returns the number of records in the collection.
func (t *Table[T]) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.read())
}

// Create appends the record. The caller supplies a pre-generated unique id;
// an id collision fails with ErrDuplicateID rather than silently duplicating.
func (t *Table[T]) Create(rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.read()
	for _, existing := range records {
		if existing.RecordID() == rec.RecordID() {
			return fmt.Errorf("create %q: %w", rec.RecordID(), ErrDuplicateID)
		}
	}
	return t.write(append(records, rec))
}

// Update applies the mutator to the record with the given id and persists
// the collection. Fields the mutator does not touch are preserved. Returns
// the updated record and false if no record matched.
func (t *Table[T]) Update(id string, apply func(*T)) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.read()
	for i := range records {
		if records[i].RecordID() == id {
			apply(&records[i])
			if err := t.write(records); err != nil {
				var zero T
				return zero, false, err
			}
			return records[i], true, nil
		}
	}
	var zero T
	return zero, false, nil
}

// Delete removes the record with the given id. Reports whether a record was
// removed.
func (t *Table[T]) Delete(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.read()
	for i := range records {
		if records[i].RecordID() == id {
			records = append(records[:i], records[i+1:]...)
			if err := t.write(records); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Clear rewrites the collection as empty.
func (t *Table[T]) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.write([]T{})
}

// read loads the whole collection. Fail-open: any read or parse failure
// yields an empty collection. Callers must hold at least the read lock.
func (t *Table[T]) read() []T {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

// write rewrites the whole collection document. The payload is staged in a
// temp file and renamed into place so readers never observe a partial write.
// Callers must hold the write lock.
func (t *Table[T]) write(records []T) error {
	dir := filepath.Dir(t.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage collection write: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close collection write: %w", err)
	}

	if err := os.Rename(tmp.Name(), t.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit collection write: %w", err)
	}
	return nil
}
