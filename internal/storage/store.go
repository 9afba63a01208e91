// Package storage provides abstractions for persisting the expense
// collection.
package storage

import (
	"context"

	"github.com/tripsplit/tripsplit/internal/models"
)

// Store defines the interface for expense collection storage. Records are
// stored in the loose raw form they arrived in; normalization happens in
// the calculator at read time, never in the store. This abstraction allows
// swapping backends (JSON file, SQLite, in-memory) without changing the
// server layer.
//
// Implementations must serialize access to their backing state: the
// collection is bulk-replaced and bulk-cleared, and concurrent sessions
// may target the same store.
type Store interface {
	// List returns every stored record in insertion order.
	List(ctx context.Context) ([]models.RawExpense, error)

	// Add appends one record to the collection.
	Add(ctx context.Context, record models.RawExpense) error

	// ReplaceAll swaps the entire collection for the given records.
	// Used by file import.
	ReplaceAll(ctx context.Context, records []models.RawExpense) error

	// Clear removes every record. Destructive; callers gate it behind an
	// explicit confirmation step.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
