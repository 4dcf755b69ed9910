package cache

import (
	"time"

	"github.com/saravenpi/knot/internal/model"
)

const (
	defaultMaxEntries = 1000
	defaultMaxBytes   = 100 * 1024 * 1024
	defaultTTL        = 3600 * time.Second
)

// Options configures a Cache's bounds; zero values fall back to the
// spec's defaults (§4.5).
type Options struct {
	Root       string
	MaxEntries int
	MaxBytes   int
	TTL        time.Duration
}

// Cache is the two-tier resolution cache facade: memory is checked
// first, a miss falls through to disk and promotes the hit back into
// memory, matching original_source's get_cached_resolution flow.
type Cache struct {
	memory *memoryTier
	disk   *diskTier
	ttl    time.Duration
	root   string
}

func New(opts Options) *Cache {
	maxEntries := opts.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{
		memory: newMemoryTier(maxEntries, maxBytes),
		disk:   newDiskTier(opts.Root),
		ttl:    ttl,
		root:   opts.Root,
	}
}

// Get returns the cached result for key if present and not expired
// (§4.5 TTL). An expired entry is evicted from both tiers and reported
// as a miss, not surfaced as an error.
func (c *Cache) Get(key string, now int64) (model.ResolutionResult, bool, *model.Error) {
	if entry, ok := c.memory.get(key); ok {
		if c.expired(entry, now) {
			c.memory.remove(key)
			c.disk.remove(key)
			return model.ResolutionResult{}, false, nil
		}
		c.memory.touch(key, now)
		return entry.Result, true, nil
	}

	entry, ok, err := c.disk.get(key)
	if err != nil {
		return model.ResolutionResult{}, false, model.CacheError("get", err)
	}
	if !ok {
		return model.ResolutionResult{}, false, nil
	}
	if c.expired(entry, now) {
		c.disk.remove(key)
		return model.ResolutionResult{}, false, nil
	}

	entry.LastAccess = now
	entry.AccessCount++
	c.memory.put(key, entry)
	return entry.Result, true, nil
}

func (c *Cache) expired(entry model.CacheEntry, now int64) bool {
	return now-entry.CreatedAt > int64(c.ttl.Seconds())
}

// Put stores result under key in both tiers, stamping CreatedAt and
// LastAccess to now and estimating ApproxSizeBytes from the encoded
// record length.
func (c *Cache) Put(key string, result model.ResolutionResult, now int64) *model.Error {
	entry := model.CacheEntry{
		Result:      result,
		CreatedAt:   now,
		LastAccess:  now,
		AccessCount: 1,
	}
	if data, err := marshalEntry(entry); err == nil {
		entry.ApproxSizeBytes = len(data)
	}

	c.memory.put(key, entry)
	if err := c.disk.put(key, entry); err != nil {
		return model.CacheError("put", err)
	}
	return nil
}

// InvalidateByPackage drops every cached entry whose resolved set
// mentions name, used when a single package's manifest changes and a
// full cache Clear would be wasteful (§4.5 "targeted invalidation").
func (c *Cache) InvalidateByPackage(name string) *model.Error {
	matches := func(_ string, entry model.CacheEntry) bool {
		for id := range entry.Result.Resolved {
			if id.Name == name {
				return true
			}
		}
		return false
	}
	c.memory.removeIf(matches)
	if err := c.disk.removeIf(matches); err != nil {
		return model.CacheError("invalidate", err)
	}
	return nil
}

// CleanupExpired removes entries whose age exceeds the TTL from both
// tiers, returning the number removed.
func (c *Cache) CleanupExpired(now int64) (int, *model.Error) {
	removed := 0
	expired := func(_ string, entry model.CacheEntry) bool {
		if c.expired(entry, now) {
			removed++
			return true
		}
		return false
	}
	c.memory.removeIf(expired)
	if err := c.disk.removeIf(func(key string, entry model.CacheEntry) bool {
		return c.expired(entry, now)
	}); err != nil {
		return removed, model.CacheError("cleanup", err)
	}
	return removed, nil
}

// Clear empties both tiers and resets counters.
func (c *Cache) Clear() *model.Error {
	c.memory.clear()
	if err := c.disk.clear(); err != nil {
		return model.CacheError("clear", err)
	}
	return nil
}

// Stats returns a snapshot enriched with the tiers' static config.
func (c *Cache) Stats() Stats {
	s := c.memory.snapshotStats()
	s.DiskPath = c.disk.root
	s.TTL = c.ttl
	return s
}
