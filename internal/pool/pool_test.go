package pool

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sprite-ai/daf/internal/model"
)

func testPool() []model.PoolEntry {
	return []model.PoolEntry{
		{ID: "p3", Text: "Retrieval depends on chunking", Source: "blog", Tags: []string{"retrieval", "chunking"}, RelevanceScore: 0.4},
		{ID: "p1", Text: "RAG combines search and generation", Source: "Survey Paper", Tags: []string{"retrieval"}, RelevanceScore: 0.9},
		{ID: "p2", Text: "Embeddings map text to vectors", Source: "textbook", Tags: []string{"embeddings"}},
	}
}

func resultIDs(entries []model.PoolEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestSearchTextMatchesTextOrSource(t *testing.T) {
	entries := testPool()

	// Case-insensitive substring on text.
	got := Search(entries, Query{Text: "rag combines"})
	if diff := cmp.Diff([]string{"p1"}, resultIDs(got)); diff != "" {
		t.Errorf("text match:\n%s", diff)
	}

	// Matches on source too.
	got = Search(entries, Query{Text: "survey"})
	if diff := cmp.Diff([]string{"p1"}, resultIDs(got)); diff != "" {
		t.Errorf("source match:\n%s", diff)
	}

	// Empty filter passes everything, relevance order by default.
	got = Search(entries, Query{})
	if diff := cmp.Diff([]string{"p1", "p3", "p2"}, resultIDs(got)); diff != "" {
		t.Errorf("empty filter:\n%s", diff)
	}
}

func TestSearchTagsConjunctive(t *testing.T) {
	entries := testPool()

	got := Search(entries, Query{Tags: []string{"retrieval"}})
	if len(got) != 2 {
		t.Fatalf("single tag matched %d entries", len(got))
	}

	got = Search(entries, Query{Tags: []string{"retrieval", "chunking"}})
	if diff := cmp.Diff([]string{"p3"}, resultIDs(got)); diff != "" {
		t.Errorf("all tags required:\n%s", diff)
	}

	if got := Search(entries, Query{Tags: []string{"retrieval", "embeddings"}}); len(got) != 0 {
		t.Errorf("conjunctive tags should not OR, got %v", resultIDs(got))
	}
}

func TestSearchSortModes(t *testing.T) {
	entries := testPool()

	// Missing relevanceScore sorts as 0.
	got := Search(entries, Query{SortBy: SortRelevance})
	if diff := cmp.Diff([]string{"p1", "p3", "p2"}, resultIDs(got)); diff != "" {
		t.Errorf("relevance:\n%s", diff)
	}

	got = Search(entries, Query{SortBy: SortSource})
	if diff := cmp.Diff([]string{"p1", "p3", "p2"}, resultIDs(got)); diff != "" {
		t.Errorf("source:\n%s", diff)
	}

	got = Search(entries, Query{SortBy: SortRecent})
	if diff := cmp.Diff([]string{"p1", "p2", "p3"}, resultIDs(got)); diff != "" {
		t.Errorf("recent:\n%s", diff)
	}
}

func TestSearchDoesNotMutatePool(t *testing.T) {
	entries := testPool()
	before := append([]model.PoolEntry(nil), entries...)

	Search(entries, Query{SortBy: SortRecent})
	Search(entries, Query{Text: "rag"})

	if diff := cmp.Diff(before, entries); diff != "" {
		t.Errorf("pool mutated by search:\n%s", diff)
	}
}

func TestTagsUnion(t *testing.T) {
	got := Tags(testPool())
	want := []string{"chunking", "embeddings", "retrieval"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
	if got := Tags(nil); len(got) != 0 {
		t.Errorf("empty pool tags = %v", got)
	}
}
