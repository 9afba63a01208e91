package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/tripsplit/tripsplit/internal/config"
	"github.com/tripsplit/tripsplit/internal/server"
	"github.com/tripsplit/tripsplit/internal/storage"
	"github.com/tripsplit/tripsplit/internal/storage/jsonfile"
	"github.com/tripsplit/tripsplit/internal/storage/memory"
	"github.com/tripsplit/tripsplit/internal/storage/sqlite"
	"github.com/tripsplit/tripsplit/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "backend", cfg.DataBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.DataBackend, "data_dir", cfg.DataDir())

	srv := server.New(store)
	handler := server.LoggingMiddleware(
		server.CORSMiddleware(
			server.MetricsMiddleware(srv.Routes()),
		),
	)

	// h2c gives HTTP/2 without TLS; local deployments sit behind no proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// openStore selects the storage backend from configuration.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case "sqlite":
		return sqlite.New(cfg.SQLiteDBPath)
	case "memory":
		return memory.New(), nil
	default:
		return jsonfile.New(cfg.ExpenseFilePath)
	}
}
