package catalog

import (
	"sort"
	"strings"
)

// Apply filters and sorts one loaded page according to q.
// The input slice is never modified; relevance order returns the server order.
func Apply(entries []ScriptEntry, q QueryState) []ScriptEntry {
	terms := strictTerms(q)
	out := make([]ScriptEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e, q.Filters, terms) {
			out = append(out, e)
		}
	}
	sortEntries(out, q.SortMode)
	return out
}

// strictTerms returns the lowercase search terms when strict search is active.
func strictTerms(q QueryState) []string {
	if !q.Filters.Strict {
		return nil
	}
	return strings.Fields(strings.ToLower(q.SearchText))
}

func keep(e ScriptEntry, f Filters, terms []string) bool {
	if len(terms) > 0 {
		haystack := strings.ToLower(e.Title + " " + e.Game.Name)
		for _, t := range terms {
			if !strings.Contains(haystack, t) {
				return false
			}
		}
	}
	if f.VerifiedOnly && !e.Verified {
		return false
	}
	if f.KeylessOnly && e.RequiresKey {
		return false
	}
	if f.UniversalOnly && (e.IsUniversal == nil || !*e.IsUniversal) {
		return false
	}
	// Unknown patch status is excluded, only an explicit false passes.
	if f.NotPatchedOnly && (e.IsPatched == nil || *e.IsPatched) {
		return false
	}
	return true
}

func sortEntries(entries []ScriptEntry, mode SortMode) {
	switch mode {
	case SortNewest:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	case SortMostViewed:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ViewCount > entries[j].ViewCount
		})
	}
}
