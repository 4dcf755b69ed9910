package resolver

import (
	"context"
	"testing"

	"github.com/saravenpi/knot/internal/cache"
	"github.com/saravenpi/knot/internal/model"
)

func newTestResolver(t *testing.T, local *fakeRegistry, ctx model.ResolutionContext) *Resolver {
	t.Helper()
	c := cache.New(cache.Options{Root: t.TempDir()})
	now := int64(1000)
	return New(local, newFakeRegistry(), c, ctx, func() int64 { return now })
}

// S1 — simple local resolution.
func TestResolveSimple(t *testing.T) {
	local := newFakeRegistry()
	local.add("a", "1.0.0", dep("b", "^1"))
	local.add("b", "1.0.0")
	local.add("c", "1.0.0")

	r := newTestResolver(t, local, model.DefaultResolutionContext())
	result, err := r.Resolve(context.Background(), []model.DependencySpec{dep("a", "^1"), dep("c", "^1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Resolved) != 3 {
		t.Fatalf("expected 3 resolved packages, got %d: %v", len(result.Resolved), result.Resolved)
	}
	for _, name := range []string{"a", "b", "c"} {
		id := model.LocalPackageId(name)
		if _, ok := result.Resolved[id]; !ok {
			t.Fatalf("expected %s resolved", name)
		}
	}

	indexOf := func(id model.PackageId) int {
		for i, o := range result.Order {
			if o == id {
				return i
			}
		}
		return -1
	}
	if indexOf(model.LocalPackageId("b")) >= indexOf(model.LocalPackageId("a")) {
		t.Fatalf("expected b before a in order, got %v", result.Order)
	}
}

// S2 — version conflict.
func TestResolveVersionConflict(t *testing.T) {
	local := newFakeRegistry()
	local.add("a", "1.0.0", dep("b", "^1"))
	local.add("c", "1.0.0", dep("b", "^2"))
	local.add("b", "1.0.0")
	local.add("b", "2.0.0")

	ctx := model.DefaultResolutionContext()
	ctx.Strategy = model.Strict
	r := newTestResolver(t, local, ctx)

	_, err := r.Resolve(context.Background(), []model.DependencySpec{dep("a", "^1"), dep("c", "^1")})
	if err == nil || err.Kind != model.ErrVersionConflict {
		t.Fatalf("expected VersionConflict, got %v", err)
	}
	if err.PackageID == nil || err.PackageID.Name != "b" {
		t.Fatalf("expected conflict on package b, got %v", err.PackageID)
	}
}

// S3 — cycle.
func TestResolveCycle(t *testing.T) {
	local := newFakeRegistry()
	local.add("x", "1.0.0", dep("y", "^1"))
	local.add("y", "1.0.0", dep("x", "^1"))

	r := newTestResolver(t, local, model.DefaultResolutionContext())
	_, err := r.Resolve(context.Background(), []model.DependencySpec{dep("x", "^1")})
	if err == nil || err.Kind != model.ErrCircularDependency {
		t.Fatalf("expected CircularDependency, got %v", err)
	}
	if len(err.Cycle) < 2 || err.Cycle[0] != err.Cycle[len(err.Cycle)-1] {
		t.Fatalf("expected closed cycle, got %v", err.Cycle)
	}
}

// S4 — cache hit, permutation-stable.
func TestResolveCacheHit(t *testing.T) {
	local := newFakeRegistry()
	local.add("a", "1.0.0")
	local.add("c", "1.0.0")

	r := newTestResolver(t, local, model.DefaultResolutionContext())
	ctx := context.Background()

	first, err := r.Resolve(ctx, []model.DependencySpec{dep("a", "^1"), dep("c", "^1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := r.Resolve(ctx, []model.DependencySpec{dep("c", "^1"), dep("a", "^1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Resolved) != len(first.Resolved) {
		t.Fatalf("expected cache hit to return the same resolved set")
	}

	stats := r.Cache.Stats()
	if stats.TotalHits != 1 {
		t.Fatalf("expected 1 cache hit, got %d", stats.TotalHits)
	}
}

// S5 — prerelease warning.
func TestResolvePrereleaseWarning(t *testing.T) {
	local := newFakeRegistry()
	local.add("a", "1.0.0-alpha.1")

	ctx := model.DefaultResolutionContext()
	ctx.AllowPrerelease = true
	r := newTestResolver(t, local, ctx)

	result, err := r.Resolve(context.Background(), []model.DependencySpec{dep("a", "^1.0.0-alpha.1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range result.Warnings {
		if w == "Using prerelease version 1.0.0-alpha.1 for package 'a'" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected prerelease warning, got %v", result.Warnings)
	}
}

func TestResolvePackageNotFound(t *testing.T) {
	local := newFakeRegistry()
	r := newTestResolver(t, local, model.DefaultResolutionContext())

	_, err := r.Resolve(context.Background(), []model.DependencySpec{dep("missing", "^1")})
	if err == nil || err.Kind != model.ErrResolutionNotFound {
		t.Fatalf("expected ResolutionNotFound, got %v", err)
	}
}

func TestGenerateWarningsMultipleMajors(t *testing.T) {
	r := newTestResolver(t, newFakeRegistry(), model.DefaultResolutionContext())

	local := model.LocalPackageId("shared")
	remote := model.RemotePackageId("shared", "registry-a")
	resolved := map[model.PackageId]model.PackageVersion{
		local:  {ID: local, Version: model.MustParseVersion("1.0.0")},
		remote: {ID: remote, Version: model.MustParseVersion("2.0.0")},
	}

	warnings := r.generateWarnings(resolved)
	found := false
	for _, w := range warnings {
		if w == "Multiple major versions of 'shared' in dependency tree: 1, 2" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected multiple-majors warning, got %v", warnings)
	}
}
