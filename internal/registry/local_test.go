package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/saravenpi/knot/internal/model"
)

func writePackage(t *testing.T, root, name, version string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "name: " + name + "\nversion: " + version + "\n"
	if err := os.WriteFile(filepath.Join(dir, "package.yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalRegistryListVersions(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "pkg-a", "1.0.0")

	reg, err := NewLocal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	versions, err := reg.ListVersions(context.Background(), model.LocalPackageId("pkg-a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 1 || versions[0].Version.String() != "1.0.0" {
		t.Fatalf("got %v", versions)
	}
}

func TestLocalRegistryMissingPackageEmpty(t *testing.T) {
	root := t.TempDir()
	reg, err := NewLocal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	versions, err := reg.ListVersions(context.Background(), model.LocalPackageId("does-not-exist"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(versions) != 0 {
		t.Fatalf("expected no versions, got %v", versions)
	}
}

func TestLocalRegistryMaterializeSymlinks(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "pkg-a", "1.0.0")

	reg, err := NewLocal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dest := filepath.Join(t.TempDir(), "materialized")
	v := model.MustParseVersion("1.0.0")
	if mErr := reg.Materialize(context.Background(), model.LocalPackageId("pkg-a"), v, dest); mErr != nil {
		t.Fatalf("unexpected error: %v", mErr)
	}
	if _, statErr := os.Stat(filepath.Join(dest, "package.yml")); statErr != nil {
		t.Fatalf("expected materialized package.yml, got %v", statErr)
	}
}

func TestLocalRegistrySearchRanksByDistance(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, "react-router", "1.0.0")
	writePackage(t, root, "react", "1.0.0")

	reg, err := NewLocal(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names, err := reg.Search(context.Background(), "react")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 || names[0] != "react" {
		t.Fatalf("expected exact match first, got %v", names)
	}
}
