package link

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/saravenpi/knot/internal/model"
)

// fakeRegistry writes an empty marker file at dest so materialize can
// be observed without any real package tree.
type fakeRegistry struct{}

func (fakeRegistry) ListVersions(context.Context, model.PackageId) ([]model.PackageVersion, *model.Error) {
	return nil, nil
}
func (fakeRegistry) Metadata(context.Context, model.PackageId, model.Version) (model.PackageMetadata, *model.Error) {
	return model.PackageMetadata{}, nil
}
func (fakeRegistry) Materialize(_ context.Context, id model.PackageId, v model.Version, dest string) *model.Error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return model.IOError("mkdir", dest, err)
	}
	if err := os.WriteFile(filepath.Join(dest, "marker"), []byte(id.Name), 0o644); err != nil {
		return model.IOError("write", dest, err)
	}
	return nil
}
func (fakeRegistry) Search(context.Context, string) ([]string, *model.Error) { return nil, nil }

func TestLinkIdempotence(t *testing.T) {
	appDir := t.TempDir()
	engine := New(fakeRegistry{}, fakeRegistry{}, true)

	resolved := map[model.PackageId]model.PackageVersion{
		model.LocalPackageId("utils"): {ID: model.LocalPackageId("utils"), Version: model.MustParseVersion("1.0.0")},
	}

	for i := 0; i < 2; i++ {
		if err := engine.Link(context.Background(), appDir, resolved, "#"); err != nil {
			t.Fatalf("link #%d failed: %v", i, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(appDir, "tsconfig.json"))
	if err != nil {
		t.Fatalf("expected tsconfig.json, got %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}

	compilerOptions := doc["compilerOptions"].(map[string]interface{})
	paths := compilerOptions["paths"].(map[string]interface{})
	if len(paths) != 1 {
		t.Fatalf("expected exactly one path entry, got %v", paths)
	}
	entries, ok := paths["#utils/*"].([]interface{})
	if !ok || len(entries) != 1 || entries[0] != "./knot_packages/utils/*" {
		t.Fatalf("expected #utils/* -> ./knot_packages/utils/*, got %v", paths)
	}

	include := doc["include"].([]interface{})
	if len(include) != 2 {
		t.Fatalf("expected exactly 2 include entries, got %v", include)
	}

	markerPath := filepath.Join(appDir, "knot_packages", "utils", "marker")
	if _, statErr := os.Stat(markerPath); statErr != nil {
		t.Fatalf("expected materialized marker, got %v", statErr)
	}
}

func TestLinkSkipsRemotePackagesForAliases(t *testing.T) {
	appDir := t.TempDir()
	engine := New(fakeRegistry{}, fakeRegistry{}, true)

	resolved := map[model.PackageId]model.PackageVersion{
		model.RemotePackageId("@acme/widgets", "r1"): {ID: model.RemotePackageId("@acme/widgets", "r1"), Version: model.MustParseVersion("1.0.0")},
	}

	if err := engine.Link(context.Background(), appDir, resolved, "#"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(appDir, "tsconfig.json"))
	if err != nil {
		t.Fatalf("expected tsconfig.json, got %v", err)
	}
	var doc map[string]interface{}
	json.Unmarshal(data, &doc)
	compilerOptions := doc["compilerOptions"].(map[string]interface{})
	paths := compilerOptions["paths"].(map[string]interface{})
	if len(paths) != 0 {
		t.Fatalf("expected no alias entries for remote packages, got %v", paths)
	}
}

func TestLinkNoAliasPrefixSkipsTsconfig(t *testing.T) {
	appDir := t.TempDir()
	engine := New(fakeRegistry{}, fakeRegistry{}, true)

	resolved := map[model.PackageId]model.PackageVersion{
		model.LocalPackageId("utils"): {ID: model.LocalPackageId("utils"), Version: model.MustParseVersion("1.0.0")},
	}

	if err := engine.Link(context.Background(), appDir, resolved, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(appDir, "tsconfig.json")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no tsconfig.json without an alias prefix")
	}
}

func TestLinkReservedWordAliasAborts(t *testing.T) {
	appDir := t.TempDir()
	engine := New(fakeRegistry{}, fakeRegistry{}, true)

	resolved := map[model.PackageId]model.PackageVersion{
		model.LocalPackageId("class"): {ID: model.LocalPackageId("class"), Version: model.MustParseVersion("1.0.0")},
	}

	err := engine.Link(context.Background(), appDir, resolved, "#")
	if err == nil || err.Kind != model.ErrConfiguration {
		t.Fatalf("expected ConfigurationError for reserved-word alias, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(appDir, "tsconfig.json")); !os.IsNotExist(statErr) {
		t.Fatalf("expected tsconfig.json not written when alias validation fails")
	}
}

func TestValidateAliasAcceptsHashPrefix(t *testing.T) {
	if err := validateAlias("#utils"); err != nil {
		t.Fatalf("unexpected error for #utils: %v", err)
	}
	if err := validateAlias("#class"); err == nil {
		t.Fatalf("expected reserved-word rejection for #class")
	}
	if err := validateAlias("#1abc"); err == nil {
		t.Fatalf("expected identifier rejection for #1abc")
	}
}

func TestStripJSONComments(t *testing.T) {
	raw := `{
  // comment
  "compilerOptions": {
    "paths": {}, /* trailing */
  },
  "include": ["src/**/*"],
}`
	doc, err := parseTsconfig([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["compilerOptions"]; !ok {
		t.Fatalf("expected compilerOptions to survive comment stripping, got %v", doc)
	}
}
