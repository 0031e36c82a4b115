package match

import (
	"sort"
	"strings"
)

// DefaultSuggestScore is the minimum IdentSimilarity a candidate needs to be suggested.
const DefaultSuggestScore = 0.6

// Suggest returns up to limit candidates most similar to name, best first.
// Candidates scoring below minScore are dropped. Ties are broken by name so
// the result is deterministic.
func Suggest(name string, candidates []string, limit int, minScore float64) []string {
	type scored struct {
		name  string
		score float64
	}

	// Qualified names ("basic.Foo") are compared by their last element.
	short := name
	if i := strings.LastIndex(short, "."); i >= 0 {
		short = short[i+1:]
	}

	seen := make(map[string]struct{}, len(candidates))

	var ranked []scored

	for _, c := range candidates {
		if _, ok := seen[c]; ok || c == name {
			continue
		}

		seen[c] = struct{}{}

		cs := c
		if i := strings.LastIndex(cs, "."); i >= 0 {
			cs = cs[i+1:]
		}

		if s := IdentSimilarity(short, cs); s >= minScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
