package cache

import (
	"testing"
	"time"

	"github.com/saravenpi/knot/internal/model"
)

func sampleResult(name string) model.ResolutionResult {
	id := model.LocalPackageId(name)
	return model.ResolutionResult{
		Resolved: map[model.PackageId]model.PackageVersion{
			id: {ID: id, Version: model.MustParseVersion("1.0.0")},
		},
		Order:        []model.PackageId{id},
		LockfileHash: "deadbeef",
	}
}

func TestCacheMissThenHit(t *testing.T) {
	c := New(Options{Root: t.TempDir()})
	now := int64(1000)

	if _, ok, err := c.Get("k1", now); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put("k1", sampleResult("pkg-a"), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, ok, err := c.Get("k1", now+1)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if result.LockfileHash != "deadbeef" {
		t.Fatalf("got %v", result)
	}

	stats := c.Stats()
	if stats.TotalHits != 1 || stats.TotalMisses != 1 {
		t.Fatalf("got stats %+v", stats)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(Options{Root: t.TempDir(), TTL: 10 * time.Second})
	now := int64(1000)

	if err := c.Put("k1", sampleResult("pkg-a"), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, err := c.Get("k1", now+11); err != nil || ok {
		t.Fatalf("expected expired miss, got ok=%v err=%v", ok, err)
	}
}

func TestCacheEvictsByEntryCount(t *testing.T) {
	c := New(Options{Root: t.TempDir(), MaxEntries: 2})
	now := int64(1000)

	c.Put("k1", sampleResult("pkg-a"), now)
	c.Put("k2", sampleResult("pkg-b"), now+1)
	c.Put("k3", sampleResult("pkg-c"), now+2)

	if _, ok := c.memory.get("k1"); ok {
		t.Fatalf("expected k1 evicted as oldest")
	}
	if _, ok := c.memory.get("k3"); !ok {
		t.Fatalf("expected k3 still present")
	}
}

func TestCacheInvalidateByPackage(t *testing.T) {
	c := New(Options{Root: t.TempDir()})
	now := int64(1000)

	c.Put("k1", sampleResult("pkg-a"), now)
	c.Put("k2", sampleResult("pkg-b"), now)

	if err := c.InvalidateByPackage("pkg-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := c.Get("k1", now); ok {
		t.Fatalf("expected k1 invalidated")
	}
	if _, ok, _ := c.Get("k2", now); !ok {
		t.Fatalf("expected k2 untouched")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(Options{Root: t.TempDir()})
	now := int64(1000)

	c.Put("k1", sampleResult("pkg-a"), now)
	if err := c.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok, _ := c.Get("k1", now); ok {
		t.Fatalf("expected empty cache after clear")
	}
}

func TestCacheDiskPromotesToMemory(t *testing.T) {
	root := t.TempDir()
	now := int64(1000)

	writer := New(Options{Root: root})
	if err := writer.Put("k1", sampleResult("pkg-a"), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader := New(Options{Root: root})
	if _, ok := reader.memory.get("k1"); ok {
		t.Fatalf("expected fresh cache to start with empty memory tier")
	}

	result, ok, err := reader.Get("k1", now+1)
	if err != nil || !ok {
		t.Fatalf("expected disk hit, got ok=%v err=%v", ok, err)
	}
	if result.LockfileHash != "deadbeef" {
		t.Fatalf("got %v", result)
	}

	if _, ok := reader.memory.get("k1"); !ok {
		t.Fatalf("expected disk hit promoted into memory tier")
	}
}

func TestCacheCleanupExpired(t *testing.T) {
	c := New(Options{Root: t.TempDir(), TTL: 5 * time.Second})
	now := int64(1000)

	c.Put("k1", sampleResult("pkg-a"), now)
	c.Put("k2", sampleResult("pkg-b"), now+100)

	removed, err := c.CleanupExpired(now + 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, ok, _ := c.Get("k2", now+100); !ok {
		t.Fatalf("expected k2 to survive cleanup")
	}
}
