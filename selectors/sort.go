package selectors

import (
	"slices"
	"strings"
)

// SortKey returns string selectors are ordered by: part before the first
// pseudo, lowercased, without leading category punctuation ("#", "." or "[").
// The key is only used for comparison, selector value is never changed.
func SortKey(selector string) string {
	before, _, _ := cutPseudo(selector)
	key := strings.ToLower(before)
	if len(selector) > 0 && strings.IndexByte("#.[", selector[0]) >= 0 && len(key) > 0 {
		key = key[1:]
	}
	return key
}

// Unique removes repeated strings keeping first occurrences in order.
func Unique(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Canonical deduplicates list and stable sorts it by SortKey. Selectors with
// equal keys keep their relative input order. Result is never nil.
func Canonical(list []string) []string {
	type keyed struct {
		key, value string
	}

	uniq := Unique(list)
	items := make([]keyed, len(uniq))
	for i, s := range uniq {
		items[i] = keyed{key: SortKey(s), value: s}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.value
	}
	return out
}
