// Package match provides the fuzzy filtering and ranking helpers shared by
// the picker delegates.
package match

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Ranked pairs a candidate index with its fuzzy match distance. Lower
// distances are better.
type Ranked struct {
	Index    int
	Distance int
}

// Rank returns the candidates matching query, best first. An empty query
// matches everything in original order with distance zero.
func Rank(candidates []string, query string) []Ranked {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		all := make([]Ranked, len(candidates))
		for i := range candidates {
			all[i] = Ranked{Index: i}
		}
		return all
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, candidates)
	out := make([]Ranked, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, Ranked{Index: rank.OriginalIndex, Distance: rank.Distance})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// Filter returns the indices of candidates matching query, preserving the
// original candidate order.
func Filter(candidates []string, query string) []int {
	ranked := Rank(candidates, query)
	indices := make([]int, 0, len(ranked))
	for _, r := range ranked {
		indices = append(indices, r.Index)
	}
	sort.Ints(indices)
	return indices
}

// BestIndex returns the position within matches whose candidate fits query
// best, preferring exact matches, then prefixes, then substrings, then the
// lowest fuzzy distance. Returns -1 when matches is empty.
func BestIndex(candidates []string, query string) int {
	if len(candidates) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, candidate := range candidates {
		if strings.EqualFold(candidate, trimmed) {
			return i
		}
	}
	for i, candidate := range candidates {
		if strings.HasPrefix(strings.ToLower(candidate), lower) {
			return i
		}
	}
	for i, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), lower) {
			return i
		}
	}
	best := 0
	bestDistance := -1
	for _, r := range Rank(candidates, trimmed) {
		if bestDistance < 0 || r.Distance < bestDistance {
			best = r.Index
			bestDistance = r.Distance
		}
	}
	return best
}
