package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "docchat", "token"))
}

func TestStoreSaveAndToken(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("jwt-token"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tok, err := store.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok != "jwt-token" {
		t.Errorf("token = %q", tok)
	}
	if !store.Exists() {
		t.Error("Exists() = false after save")
	}
}

func TestStoreTokenFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewStore(path)

	if err := store.Save("secret"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %o, want 600", info.Mode().Perm())
	}
}

func TestStoreMissingToken(t *testing.T) {
	store := newTestStore(t)

	tok, err := store.Token()
	if err != nil {
		t.Fatalf("missing token must not error: %v", err)
	}
	if tok != "" {
		t.Errorf("token = %q, want empty", tok)
	}
	if store.Exists() {
		t.Error("Exists() = true with no token file")
	}
}

func TestStoreClear(t *testing.T) {
	store := newTestStore(t)

	// Clearing an absent token is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on missing token failed: %v", err)
	}

	if err := store.Save("tok"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Exists() {
		t.Error("token survived Clear")
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	t.Setenv("APPDATA", "")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	want := filepath.Join("/custom/data", "docchat", "token")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}
