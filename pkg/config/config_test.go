package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	defaults := DefaultConfig()
	if *cfg != *defaults {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, defaults)
	}
}

func TestLoadPartialFileBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_base_url: https://docchat.example.com\nchat_timeout_seconds: 300\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIBaseURL != "https://docchat.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.ChatTimeoutSeconds != 300 {
		t.Errorf("ChatTimeoutSeconds = %d", cfg.ChatTimeoutSeconds)
	}
	// Zeroed values get backfilled with defaults
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("RequestTimeoutSeconds = %d, want 30", cfg.RequestTimeoutSeconds)
	}
	if cfg.NotificationSeconds != 6 {
		t.Errorf("NotificationSeconds = %d, want 6", cfg.NotificationSeconds)
	}
	if cfg.ColorTheme != "auto" {
		t.Errorf("ColorTheme = %q, want auto", cfg.ColorTheme)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{{not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.APIBaseURL = "http://localhost:9999"
	cfg.WatchDebounceMS = 250

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, cfg)
	}
}
