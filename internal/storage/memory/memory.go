// Package memory provides an in-memory Store, used in tests and as a
// throwaway backend for local development.
package memory

import (
	"context"
	"sync"

	"github.com/tripsplit/tripsplit/internal/models"
	"github.com/tripsplit/tripsplit/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps the expense collection in a mutex-guarded slice.
type MemoryStore struct {
	mu      sync.Mutex
	records []models.RawExpense
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{}
}

// List returns a copy of the collection in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]models.RawExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.RawExpense(nil), s.records...), nil
}

// Add appends one record.
func (s *MemoryStore) Add(_ context.Context, record models.RawExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// ReplaceAll swaps the whole collection.
func (s *MemoryStore) ReplaceAll(_ context.Context, records []models.RawExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]models.RawExpense(nil), records...)
	return nil
}

// Clear removes every record.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
