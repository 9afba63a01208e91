// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/tripsplit/tripsplit/internal/models"
	"github.com/tripsplit/tripsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// List returns every stored record in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]models.RawExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payer, amount, description, participants FROM expenses ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var records []models.RawExpense
	for rows.Next() {
		var payer, amount, description, participants []byte
		if err := rows.Scan(&payer, &amount, &description, &participants); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		record, err := decodeRecord(payer, amount, description, participants)
		if err != nil {
			return nil, fmt.Errorf("failed to decode expense: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return records, nil
}

// Add persists one record.
func (s *SQLiteStore) Add(ctx context.Context, record models.RawExpense) error {
	payer, amount, description, participants, err := encodeRecord(record)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO expenses (id, payer, amount, description, participants, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New().String(), payer, amount, description, participants, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole collection inside one transaction.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, records []models.RawExpense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	now := time.Now().Unix()
	for _, record := range records {
		payer, amount, description, participants, err := encodeRecord(record)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expenses (id, payer, amount, description, participants, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.New().String(), payer, amount, description, participants, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Clear removes every record.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM expenses"); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}
	return nil
}

// encodeRecord serializes each loose field to its JSON fragment.
func encodeRecord(record models.RawExpense) (payer, amount, description, participants []byte, err error) {
	if payer, err = json.Marshal(record.Payer); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode payer: %w", err)
	}
	if amount, err = json.Marshal(record.Amount); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode amount: %w", err)
	}
	if description, err = json.Marshal(record.Description); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode description: %w", err)
	}
	if participants, err = json.Marshal(record.Participants); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to encode participants: %w", err)
	}
	return payer, amount, description, participants, nil
}

// decodeRecord rebuilds a raw record from its stored JSON fragments.
func decodeRecord(payer, amount, description, participants []byte) (models.RawExpense, error) {
	var record models.RawExpense
	if err := json.Unmarshal(payer, &record.Payer); err != nil {
		return record, fmt.Errorf("payer: %w", err)
	}
	if err := json.Unmarshal(amount, &record.Amount); err != nil {
		return record, fmt.Errorf("amount: %w", err)
	}
	if err := json.Unmarshal(description, &record.Description); err != nil {
		return record, fmt.Errorf("description: %w", err)
	}
	if err := json.Unmarshal(participants, &record.Participants); err != nil {
		return record, fmt.Errorf("participants: %w", err)
	}
	return record, nil
}
