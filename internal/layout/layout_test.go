package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sprite-ai/daf/internal/model"
)

func layoutSample() *model.Sample {
	return &model.Sample{
		ID:             "s1",
		CentralBlockID: "gen_1",
		Generations: []model.Generation{
			{ID: "gen_1", Query: "Q", Answer: "A"},
			{ID: "gen_2", Query: "Q", Answer: "A2"},
		},
		Snippets: []model.Snippet{
			{ID: "r1", Text: "a"},
			{ID: "r2", Text: "b"},
			{ID: "r3", Text: "c"},
		},
		Commentaries: []model.Commentary{
			{ID: "1", Comment: "good"},
		},
		MetricsBlocks: []model.MetricsBlock{
			{ID: "m1", Values: map[string]model.MetricValue{"f1": model.Num(0.5)}},
		},
	}
}

func ids(items []model.DisplayItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDistributeRoundRobin(t *testing.T) {
	items := make([]model.DisplayItem, 6)
	for i := range items {
		items[i] = model.DisplayItem{ID: string(rune('a' + i))}
	}
	q := Distribute(items)

	if diff := cmp.Diff([]string{"a", "e"}, ids(q.Top)); diff != "" {
		t.Errorf("top:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b", "f"}, ids(q.Right)); diff != "" {
		t.Errorf("right:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, ids(q.Bottom)); diff != "" {
		t.Errorf("bottom:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"d"}, ids(q.Left)); diff != "" {
		t.Errorf("left:\n%s", diff)
	}
}

func TestDistributeDeterministic(t *testing.T) {
	items := []model.DisplayItem{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	first := Distribute(items)
	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, Distribute(items)); diff != "" {
			t.Fatalf("distribution varied across calls:\n%s", diff)
		}
	}
}

func TestDistributeEmpty(t *testing.T) {
	q := Distribute(nil)
	if q.Count() != 0 {
		t.Errorf("count = %d", q.Count())
	}
}

func TestSurroundingItemsOrderAndExclusions(t *testing.T) {
	s := layoutSample()
	items := SurroundingItems(s, nil)

	want := []string{"gen_2", "r1", "r2", "r3", "commentary:1", "m1"}
	if diff := cmp.Diff(want, ids(items)); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestSurroundingItemsHidden(t *testing.T) {
	s := layoutSample()
	hidden := map[string]bool{"r2": true, "commentary:1": true}
	items := SurroundingItems(s, hidden)

	want := []string{"gen_2", "r1", "r3", "m1"}
	if diff := cmp.Diff(want, ids(items)); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestHiddenCardShiftsLaterPositions(t *testing.T) {
	s := layoutSample()

	before := Distribute(SurroundingItems(s, nil))
	after := Distribute(SurroundingItems(s, map[string]bool{"gen_2": true}))

	if before.Count()-after.Count() != 1 {
		t.Fatalf("counts: before %d, after %d", before.Count(), after.Count())
	}
	// The next item slides into the freed slot.
	if len(after.Top) == 0 || after.Top[0].ID != "r1" {
		t.Errorf("top after hide = %v", ids(after.Top))
	}
}

func TestCentralView(t *testing.T) {
	s := layoutSample()

	central, ok := CentralView(s)
	if !ok || central.Kind != model.KindGeneration || central.ID != "gen_1" {
		t.Fatalf("central = %+v, ok=%v", central, ok)
	}

	s.CentralBlockID = "r2"
	central, ok = CentralView(s)
	if !ok || central.Kind != model.KindSnippet {
		t.Fatalf("snippet central = %+v, ok=%v", central, ok)
	}
	// A snippet serving as central is excluded from the quadrants.
	for _, id := range ids(SurroundingItems(s, nil)) {
		if id == "r2" {
			t.Error("central snippet should not appear in the surround")
		}
	}

	s.CentralBlockID = "1"
	central, ok = CentralView(s)
	if !ok || central.Kind != model.KindCommentary || central.ID != "commentary:1" {
		t.Fatalf("commentary central = %+v, ok=%v", central, ok)
	}

	s.CentralBlockID = "m1"
	central, ok = CentralView(s)
	if !ok || central.Kind != model.KindMetrics {
		t.Fatalf("metrics central = %+v, ok=%v", central, ok)
	}
}

func TestCentralViewDangling(t *testing.T) {
	s := layoutSample()
	s.CentralBlockID = "gone"
	if _, ok := CentralView(s); ok {
		t.Error("dangling central id should report ok=false")
	}

	s.CentralBlockID = ""
	if _, ok := CentralView(s); ok {
		t.Error("empty central id should report ok=false")
	}
}

func TestCentralFallsBackAfterDeletion(t *testing.T) {
	// Deleting the central snippet leaves the reference dangling; the
	// layout degrades to the explicit no-central state.
	s := layoutSample()
	s.CentralBlockID = "r1"
	s.Snippets = append(s.Snippets[:0], s.Snippets[1:]...)

	central, ok, q := Arrange(s, nil)
	if ok {
		t.Errorf("central = %+v, want no-central state", central)
	}
	want := []string{"gen_1", "gen_2", "r2", "r3", "commentary:1", "m1"}
	all := append(append(append(ids(q.Top), ids(q.Right)...), ids(q.Bottom)...), ids(q.Left)...)
	if len(all) != len(want) {
		t.Errorf("distributed %d cards, want %d", len(all), len(want))
	}
}
