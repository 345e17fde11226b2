package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFileTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key")
	if err := os.WriteFile(path, []byte("  file-secret \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	got, err := Load(Source{Name: "api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "file-secret" {
		t.Fatalf("expected trimmed file secret, got %q", got)
	}
}

func TestLoadFallsBackToEnv(t *testing.T) {
	t.Setenv("INTERVIEWD_TEST_SECRET", "env-secret")

	got, err := Load(Source{Name: "api key", Env: "INTERVIEWD_TEST_SECRET"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "env-secret" {
		t.Fatalf("expected env secret, got %q", got)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatal("expected error for empty source")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "empty")
	if err := os.WriteFile(path, []byte("   "), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}

	if _, err := Load(Source{File: filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("expected error for missing secret file")
	}
}
