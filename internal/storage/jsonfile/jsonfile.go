// Package jsonfile provides a Store backed by a single JSON array file,
// the interchange format expense collections are shared in.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tripsplit/tripsplit/internal/models"
	"github.com/tripsplit/tripsplit/internal/storage"
)

// Ensure JSONFileStore implements storage.Store
var _ storage.Store = (*JSONFileStore)(nil)

// JSONFileStore implements storage.Store on top of one JSON file holding an
// array of expense records. The whole file is rewritten on every mutation;
// collections are small enough that this is the simplest correct thing.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
}

// New creates a JSONFileStore at the given path, creating parent
// directories as needed. A missing file reads as an empty collection.
func New(path string) (*JSONFileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create expense file directory: %w", err)
	}
	return &JSONFileStore{path: path}, nil
}

// List returns every stored record in file order.
func (s *JSONFileStore) List(_ context.Context) ([]models.RawExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends one record and rewrites the file.
func (s *JSONFileStore) Add(_ context.Context, record models.RawExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(records, record))
}

// ReplaceAll swaps the whole collection for the given records.
func (s *JSONFileStore) ReplaceAll(_ context.Context, records []models.RawExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

// Clear resets the file to an empty array.
func (s *JSONFileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(nil)
}

// Close is a no-op; the file is only held open during reads and writes.
func (s *JSONFileStore) Close() error {
	return nil
}

// load reads and decodes the backing file. Callers hold the mutex.
func (s *JSONFileStore) load() ([]models.RawExpense, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read expense file: %w", err)
	}

	records, err := models.DecodeRaw(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense file: %w", err)
	}
	return records, nil
}

// save writes the collection atomically via a temp file and rename, so a
// crash mid-write never leaves a truncated collection behind.
func (s *JSONFileStore) save(records []models.RawExpense) error {
	if records == nil {
		records = []models.RawExpense{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".expenses-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write expenses: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace expense file: %w", err)
	}
	return nil
}
