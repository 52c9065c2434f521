package portal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorage_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal", "session.json")

	s, err := OpenFileStorage(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Get(KeyAccessToken) != "" {
		t.Fatalf("expected empty storage")
	}
	if err := s.Set(KeyAccessToken, "a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	reopened, err := OpenFileStorage(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Get(KeyAccessToken) != "a" || reopened.Get(KeyTheme) != "dark" {
		t.Fatalf("values not persisted")
	}

	if err := reopened.Delete(KeyAccessToken, KeyRefreshToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	again, _ := OpenFileStorage(path)
	if again.Get(KeyAccessToken) != "" || again.Get(KeyTheme) != "dark" {
		t.Fatalf("delete must only drop the given keys")
	}
}

func TestFileStorage_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFileStorage(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTokenSourceReadsAccessToken(t *testing.T) {
	s := NewMemoryStorage()
	ts := TokenSource(s)
	if ts.AccessToken() != "" {
		t.Fatalf("expected empty token")
	}
	_ = s.Set(KeyAccessToken, "tok")
	if ts.AccessToken() != "tok" {
		t.Fatalf("expected token from storage")
	}
}
