package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
fetch:
  user_agent: test-agent/1.0
  timeout: 5s
  min_bytes: 100
sources:
  tpex:
    url: https://example.com/tpex.php
storage:
  listed_dir: /tmp/listed
  otc_dir: /tmp/otc
scheduler:
  concurrency: 3
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Fetch.UserAgent != "test-agent/1.0" {
		t.Errorf("Fetch.UserAgent = %q, want %q", cfg.Fetch.UserAgent, "test-agent/1.0")
	}
	if cfg.Fetch.Timeout != 5*time.Second {
		t.Errorf("Fetch.Timeout = %v, want %v", cfg.Fetch.Timeout, 5*time.Second)
	}
	if cfg.Fetch.MinBytes != 100 {
		t.Errorf("Fetch.MinBytes = %d, want 100", cfg.Fetch.MinBytes)
	}
	if cfg.Sources.TPEX.URL != "https://example.com/tpex.php" {
		t.Errorf("Sources.TPEX.URL = %q, want %q", cfg.Sources.TPEX.URL, "https://example.com/tpex.php")
	}
	if cfg.Scheduler.Concurrency != 3 {
		t.Errorf("Scheduler.Concurrency = %d, want 3", cfg.Scheduler.Concurrency)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DATA_DIR", "/srv/chips")

	yaml := `
storage:
  listed_dir: ${TEST_DATA_DIR}/twse_raw
  otc_dir: ${TEST_DATA_DIR}/tpex_raw
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.ListedDir != "/srv/chips/twse_raw" {
		t.Errorf("Storage.ListedDir = %q, want %q", cfg.Storage.ListedDir, "/srv/chips/twse_raw")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "scheduler:\n  concurrency: 2\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	// Check defaults were applied
	if cfg.Fetch.Timeout != DefaultTimeout {
		t.Errorf("Fetch.Timeout = %v, want default %v", cfg.Fetch.Timeout, DefaultTimeout)
	}
	if cfg.Fetch.MinBytes != DefaultMinBytes {
		t.Errorf("Fetch.MinBytes = %d, want default %d", cfg.Fetch.MinBytes, DefaultMinBytes)
	}
	if cfg.Sources.TWSE.ForeignURL != DefaultForeignURL {
		t.Errorf("Sources.TWSE.ForeignURL = %q, want default %q", cfg.Sources.TWSE.ForeignURL, DefaultForeignURL)
	}
	if cfg.Storage.ListedDir != DefaultListedDir {
		t.Errorf("Storage.ListedDir = %q, want default %q", cfg.Storage.ListedDir, DefaultListedDir)
	}
	// Explicit values survive
	if cfg.Scheduler.Concurrency != 2 {
		t.Errorf("Scheduler.Concurrency = %d, want 2", cfg.Scheduler.Concurrency)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GathererConfig)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *GathererConfig) {},
		},
		{
			name:    "negative min_bytes",
			mutate:  func(c *GathererConfig) { c.Fetch.MinBytes = -1 },
			wantErr: "fetch.min_bytes must be >= 0, got -1",
		},
		{
			name:    "missing tpex url",
			mutate:  func(c *GathererConfig) { c.Sources.TPEX.URL = "" },
			wantErr: "sources.tpex.url is required",
		},
		{
			name:    "non-http url",
			mutate:  func(c *GathererConfig) { c.Sources.TWSE.ForeignURL = "ftp://example.com" },
			wantErr: `sources.twse.foreign_url must be an http(s) URL, got "ftp://example.com"`,
		},
		{
			name:    "identical market dirs",
			mutate:  func(c *GathererConfig) { c.Storage.OTCDir = c.Storage.ListedDir },
			wantErr: "storage.listed_dir and storage.otc_dir must differ",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *GathererConfig) { c.Scheduler.Concurrency = -2 },
			wantErr: "scheduler.concurrency must be >= 1, got -2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error containing %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
