// Package pool implements search over the shared reference pool that
// backs the add-reference workflow.
package pool

import (
	"sort"
	"strings"

	"github.com/sprite-ai/daf/internal/model"
)

// SortBy selects the ordering of search results.
type SortBy string

const (
	// SortRelevance orders by relevanceScore descending. Entries
	// without a score sort as 0.
	SortRelevance SortBy = "relevance"

	// SortSource orders lexicographically by source.
	SortSource SortBy = "source"

	// SortRecent orders lexicographically by id. Id order is only an
	// approximation of recency.
	SortRecent SortBy = "recent"
)

// Query filters and orders pool entries.
type Query struct {
	// Text matches case-insensitively as a substring of the entry's
	// text or source. Empty passes everything.
	Text string

	// Tags must all be present on the entry. Empty passes everything.
	Tags []string

	// SortBy defaults to SortRelevance.
	SortBy SortBy
}

// Search returns the entries matching the query in the requested
// order. The pool slice is never modified.
func Search(entries []model.PoolEntry, q Query) []model.PoolEntry {
	needle := strings.ToLower(q.Text)

	var out []model.PoolEntry
	for _, e := range entries {
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Text), needle) &&
			!strings.Contains(strings.ToLower(e.Source), needle) {
			continue
		}
		if !hasAllTags(e.Tags, q.Tags) {
			continue
		}
		out = append(out, e)
	}

	switch q.SortBy {
	case SortSource:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RelevanceScore > out[j].RelevanceScore })
	}
	return out
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Tags returns the sorted union of tags across the pool, for building
// filter controls.
func Tags(entries []model.PoolEntry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
