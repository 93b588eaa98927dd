package rank

import "sort"

// Rank orders scored sections descending by relevance and assigns dense
// 1-based importance ranks. Ties break by document input order, then page
// ascending, then outline order, so the result is a stable total order.
// The input slice is not modified and scores are never mutated; limit <= 0
// means no truncation.
func Rank(scored []ScoredSection, limit int) []ScoredSection {
	ranked := make([]ScoredSection, len(scored))
	copy(ranked, scored)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.DocIndex != b.DocIndex {
			return a.DocIndex < b.DocIndex
		}
		if a.Section.Page != b.Section.Page {
			return a.Section.Page < b.Section.Page
		}
		return a.Index < b.Index
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
