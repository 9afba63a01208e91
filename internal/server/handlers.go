package server

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/tripsplit/tripsplit/internal/calculator"
	"github.com/tripsplit/tripsplit/internal/models"
)

// maxBodyBytes caps request bodies; expense collections are small.
const maxBodyBytes = 4 << 20

// handleListExpenses returns the stored collection as-is.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	if records == nil {
		records = []models.RawExpense{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": records})
}

// handleAddExpense stores one record. The record is kept in the shape it
// arrived in; the response includes the canonical form so clients can see
// how it will be interpreted.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	var record models.RawExpense
	if err := json.Unmarshal(body, &record); err != nil {
		writeError(w, http.StatusBadRequest, "expense must be a JSON object")
		return
	}

	canonical := calculator.Sanitize(record)
	if canonical.Payer == "" {
		writeError(w, http.StatusBadRequest, "payer is required")
		return
	}
	if canonical.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := s.store.Add(r.Context(), record); err != nil {
		slog.Error("AddExpense failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store expense")
		return
	}

	slog.Info("Expense added", "payer", canonical.Payer, "amount", canonical.Amount)
	writeJSON(w, http.StatusCreated, map[string]any{
		"expense":   record,
		"canonical": canonical,
	})
}

// handleClearExpenses deletes the whole collection. The operation is
// destructive, so it refuses to run without confirm=true.
func (s *Server) handleClearExpenses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "clearing deletes all expenses and cannot be undone; pass confirm=true to proceed")
		return
	}

	if err := s.store.Clear(r.Context()); err != nil {
		slog.Error("ClearExpenses failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear expenses")
		return
	}

	slog.Info("All expenses cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleImport replaces the collection with an uploaded JSON array.
// Entries that are not valid record objects are skipped, never fatal.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	records, err := models.DecodeRaw(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "upload must be a JSON array of expense records")
		return
	}

	if err := s.store.ReplaceAll(r.Context(), records); err != nil {
		slog.Error("Import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store imported expenses")
		return
	}

	slog.Info("Expenses imported", "count", len(records))
	writeJSON(w, http.StatusOK, map[string]int{"imported": len(records)})
}

// handleExport downloads the collection as JSON (verbatim) or CSV
// (flattened from the sanitized records).
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("Export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		if records == nil {
			records = []models.RawExpense{}
		}
		data, err := json.MarshalIndent(records, "", "    ")
		if err != nil {
			slog.Error("Export encoding failed", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to encode expenses")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="expenses.json"`)
		w.Write(data)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
		if err := writeCSV(w, calculator.SanitizeAll(records)); err != nil {
			slog.Error("CSV export failed", "error", err)
		}

	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown export format '%s': must be json or csv", format))
	}
}

// writeCSV flattens sanitized expenses into rows. Equal splits list names
// separated by ';', custom splits list name=share pairs.
func writeCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"payer", "amount", "description", "split_type", "participants"}); err != nil {
		return err
	}

	for _, e := range expenses {
		var splitType, participants string
		if e.Split.Kind == models.SplitCustom {
			splitType = "custom"
			parts := make([]string, len(e.Split.Shares))
			for i, share := range e.Split.Shares {
				parts[i] = fmt.Sprintf("%s=%.2f", share.Name, share.Amount)
			}
			participants = strings.Join(parts, ";")
		} else {
			splitType = "equal"
			participants = strings.Join(e.Split.Names, ";")
		}

		row := []string{
			e.Payer,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Description,
			splitType,
			participants,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// handleBalances computes net balances over the stored collection.
func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("Balances failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	balances := calculator.CalculateBalances(records)
	writeJSON(w, http.StatusOK, map[string]any{"balances": balances})
}

// handleSettlements computes balances and the settlement plan in one shot.
func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("Settlements failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	balances := calculator.CalculateBalances(records)
	transfers := calculator.SuggestPayments(balances)
	if transfers == nil {
		transfers = []models.Transfer{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"balances":    balances,
		"settlements": transfers,
	})
}
