package internal

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SuggestNames returns up to limit registered names that look like target.
// Subsequence matches (e.g. "usr" for "user") rank first, ordered by
// fuzzy score; typo matches within an edit-distance threshold fill the rest.
func SuggestNames(target string, candidates []string, limit int) []string {
	if target == StringValueEmpty || len(candidates) == 0 || limit <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	add := func(name string) bool {
		if _, ok := seen[name]; ok || name == target {
			return len(out) < limit
		}
		seen[name] = struct{}{}
		out = append(out, name)
		return len(out) < limit
	}

	for _, m := range fuzzy.Find(target, candidates) {
		if !add(m.Str) {
			return out
		}
	}

	for _, name := range closeByEditDistance(target, candidates) {
		if !add(name) {
			return out
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// FormatSuggestions quotes names and joins them as "'a', 'b' or 'c'"
func FormatSuggestions(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	switch len(quoted) {
	case 0:
		return StringValueEmpty
	case 1:
		return quoted[0]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
	}
}

// closeByEditDistance returns candidates within max(2, len(target)/2) edits
// of target, closest first. Comparison is case-insensitive.
func closeByEditDistance(target string, candidates []string) []string {
	threshold := len(target) / 2
	if threshold < 2 {
		threshold = 2
	}

	type scored struct {
		name     string
		distance int
	}
	var similar []scored
	lower := strings.ToLower(target)
	for _, c := range candidates {
		if d := levenshtein(lower, strings.ToLower(c)); d <= threshold {
			similar = append(similar, scored{name: c, distance: d})
		}
	}
	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].distance < similar[j].distance
	})

	names := make([]string, len(similar))
	for i, s := range similar {
		names[i] = s.name
	}
	return names
}

// levenshtein computes the byte-wise edit distance between a and b
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
