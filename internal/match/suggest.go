package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for a name to be suggested.
const DefaultThreshold = 0.5

// NormalizeName lower-cases s and drops '-', '_', '/' and spaces, so that
// "Page_Two" and "page-two" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(s) {
		switch r {
		case '-', '_', '/', ' ':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit names from known whose normalized similarity to
// name reaches DefaultThreshold, best first. Ties keep the order of known.
func Suggest(name string, known []string, limit int) []string {
	target := NormalizeName(name)

	var ranked []scored

	for _, k := range known {
		if k == name {
			continue
		}

		s := Similarity(target, NormalizeName(k))
		if s >= DefaultThreshold {
			ranked = append(ranked, scored{name: k, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
