package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIBaseURL is the backend root, e.g. http://localhost:8000.
	APIBaseURL string `yaml:"api_base_url"`

	// Timeouts in seconds. Chat answers can take a while; registry
	// calls should not.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	ChatTimeoutSeconds    int `yaml:"chat_timeout_seconds"`

	// NotificationSeconds is how long a status message stays on screen
	// before auto-dismissing.
	NotificationSeconds int `yaml:"notification_seconds"`

	// UI Settings
	ColorTheme string `yaml:"color_theme"`

	// Watch Settings
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:            "http://localhost:8000",
		RequestTimeoutSeconds: 30,
		ChatTimeoutSeconds:    120,
		NotificationSeconds:   6,
		ColorTheme:            "auto",
		WatchDebounceMS:       500,
		LogLevel:              "info",
	}
}

// DefaultPath returns the config file location, XDG-compliant on Unix
// with an AppData fallback on Windows.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "docchat", "config.yaml"), nil
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "docchat", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "docchat", "config.yaml"), nil
}

// Load reads configuration from the specified file path. A missing
// file yields the defaults, not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Backfill essential values if the file zeroed them out.
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:8000"
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 30
	}
	if cfg.ChatTimeoutSeconds <= 0 {
		cfg.ChatTimeoutSeconds = 120
	}
	if cfg.NotificationSeconds <= 0 {
		cfg.NotificationSeconds = 6
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.ColorTheme == "" {
		cfg.ColorTheme = "auto"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
