package registryconfig

import (
	"path/filepath"
	"testing"
)

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	want := Config{URL: "https://registry.example.com", Token: "tok-123"}

	if err := Write(path, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.URL != want.URL || got.Token != want.Token {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestReadMissingFileIsNotAnError(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil config for missing file, got %+v", got)
	}
}
