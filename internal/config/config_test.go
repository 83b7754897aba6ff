package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://api.jsonbin.io/v3/b" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.SaveDebounce != 2*time.Second {
		t.Fatalf("SaveDebounce = %v", cfg.SaveDebounce)
	}
	if cfg.DBPath == "" {
		t.Fatal("DBPath not resolved")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MEDTRACKER_SAVE_DEBOUNCE", "5s")
	t.Setenv("MEDTRACKER_BASE_URL", "http://localhost:9999")
	t.Setenv("MEDTRACKER_DB_PATH", "/tmp/medtracker-test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SaveDebounce != 5*time.Second {
		t.Fatalf("SaveDebounce = %v", cfg.SaveDebounce)
	}
	if cfg.BaseURL != "http://localhost:9999" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.DBPath != "/tmp/medtracker-test.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}
