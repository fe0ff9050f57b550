package catalog

import "github.com/sahilm/fuzzy"

// idSource implements fuzzy.Source over card ids.
type idSource []string

func (s idSource) Len() int            { return len(s) }
func (s idSource) String(i int) string { return s[i] }

func fuzzyIDs(ids []string, query string, n int) []string {
	if query == "" || n <= 0 {
		return nil
	}
	matches := fuzzy.FindFrom(query, idSource(ids))
	// A mistyped version or episode breaks subsequence matching, retry on the
	// rarity, group and idol part alone.
	if len(matches) == 0 && len(query) > 5 {
		matches = fuzzy.FindFrom(query[:5], idSource(ids))
	}

	out := make([]string, 0, n)
	for _, m := range matches {
		if len(out) == n {
			break
		}
		out = append(out, ids[m.Index])
	}
	return out
}
