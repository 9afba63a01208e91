package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DataBackend != "jsonfile" {
		t.Errorf("default backend = %q, want jsonfile", cfg.DataBackend)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")

	cfg := Load()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config invalid: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Errorf("backend = %q, want sqlite", cfg.DataBackend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Port = "not-a-port" }, true},
		{"port out of range", func(c *Config) { c.Port = "70000" }, true},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, true},
		{"jsonfile without path", func(c *Config) { c.ExpenseFilePath = "" }, true},
		{"sqlite without path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, true},
		{"memory needs no paths", func(c *Config) { c.DataBackend = "memory"; c.ExpenseFilePath = ""; c.SQLiteDBPath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
