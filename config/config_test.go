package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.ListingURL != DefaultListingURL {
			t.Errorf("Expected ListingURL to be %s, got %s", DefaultListingURL, cfg.ListingURL)
		}
		if cfg.SearchURL != DefaultSearchURL {
			t.Errorf("Expected SearchURL to be %s, got %s", DefaultSearchURL, cfg.SearchURL)
		}
		if cfg.UserAgent == "" {
			t.Error("Expected UserAgent to have a default value")
		}
		if cfg.DataDir == "" {
			t.Error("Expected DataDir to have a default value")
		}
		if cfg.RequestTimeout != 0 {
			t.Errorf("Expected no request timeout by default, got %s", cfg.RequestTimeout)
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		cfg := Config{
			ListingURL:     "http://localhost/fetch",
			SearchURL:      "http://localhost/search",
			UserAgent:      "custom-agent",
			DataDir:        "/tmp/somewhere",
			RequestTimeout: 3 * time.Second,
		}
		processConfigDefaults(&cfg)

		if cfg.ListingURL != "http://localhost/fetch" {
			t.Errorf("Expected ListingURL to stay, got %s", cfg.ListingURL)
		}
		if cfg.SearchURL != "http://localhost/search" {
			t.Errorf("Expected SearchURL to stay, got %s", cfg.SearchURL)
		}
		if cfg.UserAgent != "custom-agent" {
			t.Errorf("Expected UserAgent to stay custom-agent, got %s", cfg.UserAgent)
		}
		if cfg.DataDir != "/tmp/somewhere" {
			t.Errorf("Expected DataDir to stay, got %s", cfg.DataDir)
		}
		if cfg.RequestTimeout != 3*time.Second {
			t.Errorf("Expected RequestTimeout to stay 3s, got %s", cfg.RequestTimeout)
		}
	})

	t.Run("negative timeout disabled", func(t *testing.T) {
		cfg := Config{RequestTimeout: -time.Second}
		processConfigDefaults(&cfg)
		if cfg.RequestTimeout != 0 {
			t.Errorf("Expected RequestTimeout to be reset to 0, got %s", cfg.RequestTimeout)
		}
	})
}

func TestValidateAndEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing data dir", func(t *testing.T) {
		cfg := Config{DataDir: ""}
		if err := validateAndEnsureDirectories(&cfg); err == nil {
			t.Error("Expected error for missing DataDir")
		}
	})

	t.Run("creates directory and derives database path", func(t *testing.T) {
		dataDir := filepath.Join(tmpDir, "nested", "data")
		cfg := Config{DataDir: dataDir}
		if err := validateAndEnsureDirectories(&cfg); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if _, err := os.Stat(dataDir); os.IsNotExist(err) {
			t.Errorf("Directory %s was not created", dataDir)
		}
		if cfg.DatabasePath != filepath.Join(dataDir, "scripthub.db") {
			t.Errorf("Unexpected DatabasePath %s", cfg.DatabasePath)
		}
	})
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	envFile := "SCRIPTHUB_SEARCH_URL=http://example.test/search\n" +
		"USERAGENT=tests/1.0\n" +
		"REQUEST_TIMEOUT=2s\n" +
		"SCRIPTHUB_DATA_DIR=" + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(envFile), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SearchURL != "http://example.test/search" {
		t.Errorf("SearchURL = %s", cfg.SearchURL)
	}
	if cfg.ListingURL != DefaultListingURL {
		t.Errorf("ListingURL = %s, want default", cfg.ListingURL)
	}
	if cfg.UserAgent != "tests/1.0" {
		t.Errorf("UserAgent = %s", cfg.UserAgent)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %s", cfg.RequestTimeout)
	}
	if cfg.DatabasePath != filepath.Join(dataDir, "scripthub.db") {
		t.Errorf("DatabasePath = %s", cfg.DatabasePath)
	}
}
