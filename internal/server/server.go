// Package server exposes the expense collection and the settlement core
// over a JSON HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tripsplit/tripsplit/internal/storage"
)

// Server holds the handler dependencies. All state lives behind the Store;
// the calculation core is pure, so handlers are safe for concurrent use.
type Server struct {
	store storage.Store
}

// New creates a Server backed by the given store.
func New(store storage.Store) *Server {
	return &Server{store: store}
}

// Routes returns the API mux. Callers wrap it with middleware.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleAddExpense)
	mux.HandleFunc("DELETE /api/expenses", s.handleClearExpenses)
	mux.HandleFunc("POST /api/expenses/import", s.handleImport)
	mux.HandleFunc("GET /api/expenses/export", s.handleExport)
	mux.HandleFunc("GET /api/balances", s.handleBalances)
	mux.HandleFunc("GET /api/settlements", s.handleSettlements)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError sends a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
