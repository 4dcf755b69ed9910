// Package registry implements the two package sources named in §4.4:
// a local filesystem registry backed by a workspace's packages/ tree,
// and a remote HTTP registry.
package registry

import (
	"context"

	"github.com/saravenpi/knot/internal/model"
)

// Registry is the four-operation contract every package source
// implements (§4.4).
type Registry interface {
	ListVersions(ctx context.Context, id model.PackageId) ([]model.PackageVersion, *model.Error)
	Metadata(ctx context.Context, id model.PackageId, v model.Version) (model.PackageMetadata, *model.Error)
	Materialize(ctx context.Context, id model.PackageId, v model.Version, dest string) *model.Error
	Search(ctx context.Context, query string) ([]string, *model.Error)
}

// bestMatches ranks candidates by Levenshtein distance to query and
// returns at most limit names (§4.4 "best-effort, ≤5 suggestions").
func bestMatches(query string, candidates []string, limit int) []string {
	type scored struct {
		name     string
		distance int
	}
	scoredCandidates := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		scoredCandidates = append(scoredCandidates, scored{c, levenshtein(query, c)})
	}
	for i := 1; i < len(scoredCandidates); i++ {
		for j := i; j > 0 && scoredCandidates[j-1].distance > scoredCandidates[j].distance; j-- {
			scoredCandidates[j-1], scoredCandidates[j] = scoredCandidates[j], scoredCandidates[j-1]
		}
	}
	if limit > len(scoredCandidates) {
		limit = len(scoredCandidates)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = scoredCandidates[i].name
	}
	return out
}

// levenshtein computes plain edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
