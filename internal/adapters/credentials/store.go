package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the bearer token as a single file under the data
// directory, mode 0600. "A credential exists" is exactly "the file
// exists and is non-empty".
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the token location following the XDG Base
// Directory spec, with an AppData fallback on Windows.
func DefaultPath() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "docchat", "token"), nil
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "docchat", "token"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "docchat", "token"), nil
}

func (s *Store) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an absent token is fine.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

func (s *Store) Exists() bool {
	tok, err := s.Token()
	return err == nil && tok != ""
}
