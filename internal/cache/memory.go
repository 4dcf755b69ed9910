package cache

import (
	"sync"

	"github.com/saravenpi/knot/internal/model"
)

// memoryTier is the bounded in-memory LRU tier (§4.5). All mutation is
// serialized by a single RWMutex, matching the reader-writer lock the
// spec requires over the memory tier.
type memoryTier struct {
	mu         sync.RWMutex
	entries    map[string]model.CacheEntry
	maxEntries int
	maxBytes   int
	sizeBytes  int

	hits       uint64
	misses     uint64
	evictions  uint64
	requests   uint64
}

func newMemoryTier(maxEntries, maxBytes int) *memoryTier {
	return &memoryTier{
		entries:    map[string]model.CacheEntry{},
		maxEntries: maxEntries,
		maxBytes:   maxBytes,
	}
}

func (m *memoryTier) get(key string) (model.CacheEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	entry, ok := m.entries[key]
	if !ok {
		m.misses++
		return model.CacheEntry{}, false
	}
	m.hits++
	return entry, true
}

// touch records an access against key, bumping its AccessCount and
// LastAccess in place (callers pass the already-fresh `now`).
func (m *memoryTier) touch(key string, now int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return
	}
	entry.AccessCount++
	entry.LastAccess = now
	m.entries[key] = entry
}

// put admits entry under key, evicting by smallest LastAccess until
// both the entry-count and byte-size bounds are satisfied (§4.5).
func (m *memoryTier) put(key string, entry model.CacheEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.entries[key]; ok {
		m.sizeBytes -= existing.ApproxSizeBytes
	}

	for len(m.entries) >= m.maxEntries && len(m.entries) > 0 {
		m.evictOneLocked()
	}
	for m.sizeBytes+entry.ApproxSizeBytes > m.maxBytes && len(m.entries) > 0 {
		m.evictOneLocked()
	}

	m.entries[key] = entry
	m.sizeBytes += entry.ApproxSizeBytes
}

// evictOneLocked removes the entry with the smallest LastAccess.
// Caller must hold mu.
func (m *memoryTier) evictOneLocked() {
	var victim string
	var oldest int64 = -1
	for k, e := range m.entries {
		if oldest == -1 || e.LastAccess < oldest {
			oldest = e.LastAccess
			victim = k
		}
	}
	if victim == "" {
		return
	}
	m.sizeBytes -= m.entries[victim].ApproxSizeBytes
	delete(m.entries, victim)
	m.evictions++
}

func (m *memoryTier) remove(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok {
		m.sizeBytes -= e.ApproxSizeBytes
		delete(m.entries, key)
	}
}

func (m *memoryTier) removeIf(pred func(key string, entry model.CacheEntry) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if pred(k, e) {
			m.sizeBytes -= e.ApproxSizeBytes
			delete(m.entries, k)
		}
	}
}

func (m *memoryTier) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string]model.CacheEntry{}
	m.sizeBytes = 0
	m.hits, m.misses, m.evictions, m.requests = 0, 0, 0, 0
}

func (m *memoryTier) snapshotStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	hitRate := 0.0
	if m.requests > 0 {
		hitRate = float64(m.hits) / float64(m.requests) * 100.0
	}
	return Stats{
		MemoryEntries:   len(m.entries),
		MemorySizeBytes: m.sizeBytes,
		HitRate:         hitRate,
		TotalHits:       m.hits,
		TotalMisses:     m.misses,
		TotalEvictions:  m.evictions,
		TotalRequests:   m.requests,
	}
}
