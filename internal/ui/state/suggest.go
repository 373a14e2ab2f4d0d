package state

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RankSuggestions returns up to limit candidates matching query, best first.
// An empty query returns the first candidates in their original order.
func RankSuggestions(candidates []string, query string, limit int) []string {
	trimmed := strings.TrimSpace(query)
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}
	if trimmed == "" {
		if len(candidates) < limit {
			limit = len(candidates)
		}
		return append([]string(nil), candidates[:limit]...)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, candidates)
	if len(ranks) == 0 {
		// Typed paths are often absolute; match on the base name as well.
		base := filepath.Base(trimmed)
		if base != trimmed && base != "." && base != string(filepath.Separator) {
			ranks = fuzzy.RankFindNormalizedFold(base, candidates)
		}
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})
	out := make([]string, 0, limit)
	for _, rank := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, candidates[rank.OriginalIndex])
	}
	return out
}
