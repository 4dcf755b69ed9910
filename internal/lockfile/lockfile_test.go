package lockfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saravenpi/knot/internal/model"
)

func sampleResolved() map[model.PackageId]model.PackageVersion {
	a := model.LocalPackageId("a")
	widgets := model.RemotePackageId("@acme/widgets", "registry-a")
	return map[model.PackageId]model.PackageVersion{
		a: {
			ID:       a,
			Version:  model.MustParseVersion("1.0.0"),
			Metadata: model.PackageMetadata{Integrity: "sha256-abc"},
		},
		widgets: {
			ID:      widgets,
			Version: model.MustParseVersion("2.1.0"),
		},
	}
}

func TestDocumentIsDeterministic(t *testing.T) {
	result := model.ResolutionResult{Resolved: sampleResolved()}

	first, err := Document(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Document(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("expected identical documents across calls, got:\n%s\nvs\n%s", first, second)
	}
	if Hash(first) != Hash(second) {
		t.Fatalf("expected identical hashes across calls")
	}
}

func TestWriteAndRead(t *testing.T) {
	result := model.ResolutionResult{Resolved: sampleResolved()}
	path := filepath.Join(t.TempDir(), FileName)

	hash, err := Write(path, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty lockfile hash")
	}

	readBack, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error reading lock file: %v", err)
	}
	if len(readBack) != len(result.Resolved) {
		t.Fatalf("expected %d packages, got %d", len(result.Resolved), len(readBack))
	}

	a := model.LocalPackageId("a")
	pv, ok := readBack[a]
	if !ok {
		t.Fatalf("expected package 'a' in read-back lock")
	}
	if pv.Version.String() != "1.0.0" {
		t.Fatalf("expected version 1.0.0, got %s", pv.Version.String())
	}
	if pv.Metadata.Integrity != "sha256-abc" {
		t.Fatalf("expected integrity to round-trip, got %q", pv.Metadata.Integrity)
	}

	widgets := model.RemotePackageId("@acme/widgets", "registry-a")
	if _, ok := readBack[widgets]; !ok {
		t.Fatalf("expected remote package in read-back lock")
	}
}

func TestReadRejectsInvalidVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := []byte("version = 1\n\n[[package]]\nname = \"a\"\nsource = \"local\"\nversion = \"not-a-version\"\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("unexpected error setting up fixture: %v", err)
	}

	if _, err := Read(path); err == nil || err.Kind != model.ErrConfiguration {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
