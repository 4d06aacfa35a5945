package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				ReportCacheSize: 64,
				ReportCacheTTL:  5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:            "abc",
				SQLiteDBPath:    "./test.db",
				ReportCacheSize: 64,
				ReportCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:            "70000",
				SQLiteDBPath:    "./test.db",
				ReportCacheSize: 64,
				ReportCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty db path",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "",
				ReportCacheSize: 64,
				ReportCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "cache size too small",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				ReportCacheSize: 0,
				ReportCacheTTL:  5 * time.Minute,
			},
			wantErr:     true,
			errorString: "invalid report cache size 0",
		},
		{
			name: "cache TTL too small",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				ReportCacheSize: 64,
				ReportCacheTTL:  100 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "invalid report cache TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateCreatesDBDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := Config{
		Port:            "8081",
		SQLiteDBPath:    filepath.Join(dir, "ledger.db"),
		ReportCacheSize: 64,
		ReportCacheTTL:  time.Minute,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("expected default port 8081, got %s", cfg.Port)
	}
	if cfg.SQLiteDBPath != "./data/kakeibo.db" {
		t.Fatalf("unexpected default db path %s", cfg.SQLiteDBPath)
	}
	if cfg.ReportCacheSize != 64 || cfg.ReportCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected cache defaults: %d / %v", cfg.ReportCacheSize, cfg.ReportCacheTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SQLITE_DB_PATH", "/tmp/other.db")
	t.Setenv("REPORT_CACHE_SIZE", "16")
	t.Setenv("REPORT_CACHE_TTL", "30s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.SQLiteDBPath != "/tmp/other.db" {
		t.Fatalf("unexpected db path %s", cfg.SQLiteDBPath)
	}
	if cfg.ReportCacheSize != 16 || cfg.ReportCacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache config: %d / %v", cfg.ReportCacheSize, cfg.ReportCacheTTL)
	}
}
