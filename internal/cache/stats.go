// Package cache implements the two-tier resolution cache of §4.5: a
// bounded in-memory LRU tier and a content-addressed disk tier, with
// TTL expiry and package-scoped invalidation.
package cache

import (
	"fmt"
	"time"
)

// Stats is a read-only snapshot of cache performance, grounded on
// original_source/apps/cli/src/dependency/cache.rs's CacheStats.
type Stats struct {
	MemoryEntries   int
	MemorySizeBytes int
	DiskPath        string
	TTL             time.Duration
	HitRate         float64
	TotalHits       uint64
	TotalMisses     uint64
	TotalEvictions  uint64
	TotalRequests   uint64
}

// FormatSize renders MemorySizeBytes as a human-scaled B/KB/MB string.
func (s Stats) FormatSize() string {
	switch {
	case s.MemorySizeBytes < 1024:
		return fmt.Sprintf("%d B", s.MemorySizeBytes)
	case s.MemorySizeBytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(s.MemorySizeBytes)/1024.0)
	default:
		return fmt.Sprintf("%.1f MB", float64(s.MemorySizeBytes)/(1024.0*1024.0))
	}
}

// FormatTTL renders TTL as a coarse s/m/h string.
func (s Stats) FormatTTL() string {
	secs := int64(s.TTL.Seconds())
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm", secs/60)
	default:
		return fmt.Sprintf("%dh", secs/3600)
	}
}

// EfficiencyScore blends hit rate and eviction pressure into a single
// 0-1 figure.
func (s Stats) EfficiencyScore() float64 {
	hitRateScore := s.HitRate / 100.0
	memoryEfficiency := 1.0
	if s.MemoryEntries > 0 {
		ratio := float64(s.TotalEvictions) / float64(s.MemoryEntries)
		if ratio > 1.0 {
			ratio = 1.0
		}
		memoryEfficiency = 1.0 - ratio
	}
	return hitRateScore*0.7 + memoryEfficiency*0.3
}
