// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds every tunable of the server binary.
type Config struct {
	// HTTP Server
	Port string

	// Backend selection: jsonfile, sqlite or memory.
	DataBackend string

	// JSON file backend
	ExpenseFilePath string

	// SQLite backend
	SQLiteDBPath string
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		DataBackend:     getEnv("DATA_BACKEND", "jsonfile"),
		ExpenseFilePath: getEnv("EXPENSE_FILE", "./data/trip_expenses.json"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/tripsplit.db"),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "jsonfile":
		if c.ExpenseFilePath == "" {
			problems = append(problems, "expense file path cannot be empty when using jsonfile backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	case "memory":
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of [jsonfile sqlite memory]", c.DataBackend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DataDir returns the directory the active backend writes under, or empty
// for the memory backend.
func (c *Config) DataDir() string {
	switch c.DataBackend {
	case "jsonfile":
		return filepath.Dir(c.ExpenseFilePath)
	case "sqlite":
		return filepath.Dir(c.SQLiteDBPath)
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
