package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sprite-ai/daf/internal/model"
)

func testBatch() *model.Batch {
	return &model.Batch{
		Source: "test",
		Samples: []model.Sample{
			{
				ID:             "s1",
				CentralBlockID: "gen_1",
				Generations: []model.Generation{{
					ID:     "gen_1",
					Query:  "Q1",
					Answer: "A1",
					AutomatedMetrics: map[string]model.MetricValue{
						"f1":    model.Num(0.8),
						"judge": model.Str("gpt-4"),
					},
				}},
				Snippets: []model.Snippet{
					{ID: "r1", Text: "alpha", Source: "src1", Page: "1"},
					{ID: "r2", Text: "beta", Source: "src2", Page: "2"},
				},
				Commentaries: []model.Commentary{
					{ID: "e1", Comment: "fine", Grade: "B"},
				},
				MockAnswers: map[string]string{
					"0": "none", "1-2": "few", "3": "three", "4+": "many",
				},
			},
			{
				ID:             "s2",
				CentralBlockID: "gen_2",
				Generations:    []model.Generation{{ID: "gen_2", Query: "Q2", Answer: "A2"}},
			},
		},
		ReferencePool: []model.PoolEntry{
			{ID: "p1", Text: "pooled text", Source: "book", Page: "7"},
		},
	}
}

func TestNewSelectsFirstSample(t *testing.T) {
	s := New(testBatch())
	if s.SelectedID() != "s1" {
		t.Errorf("selected = %q, want s1", s.SelectedID())
	}
}

func TestSelectSampleResetsViewState(t *testing.T) {
	s := New(testBatch())
	s.ToggleHidden("r1")
	s.ToggleExpanded("e1")

	s.SelectSample("s2")
	if s.SelectedID() != "s2" {
		t.Fatalf("selected = %q", s.SelectedID())
	}
	if s.IsHidden("r1") || s.IsExpanded("e1") {
		t.Error("view state should reset on sample switch")
	}

	// Unknown id is a no-op.
	s.SelectSample("nope")
	if s.SelectedID() != "s2" {
		t.Errorf("unknown id changed selection to %q", s.SelectedID())
	}
}

func TestToggleIdempotentPairs(t *testing.T) {
	s := New(testBatch())

	s.ToggleHidden("r1")
	if !s.IsHidden("r1") {
		t.Error("toggle should hide")
	}
	s.ToggleHidden("r1")
	if s.IsHidden("r1") {
		t.Error("double toggle should restore")
	}

	s.ToggleExpanded("e1")
	s.ToggleExpanded("e1")
	if s.IsExpanded("e1") {
		t.Error("double toggle should restore")
	}
}

func TestShowAllHidden(t *testing.T) {
	s := New(testBatch())
	s.ToggleHidden("r1")
	s.ToggleHidden("r2")
	if s.HiddenCount() != 2 {
		t.Fatalf("hidden = %d", s.HiddenCount())
	}
	s.ShowAllHidden()
	if s.HiddenCount() != 0 {
		t.Error("show all should clear the hidden set")
	}
}

func TestDeleteSnippet(t *testing.T) {
	s := New(testBatch())
	before, _ := s.Sample("s1")

	s.DeleteSnippet("s1", "r1")
	after, _ := s.Sample("s1")
	if len(after.Snippets) != 1 || after.Snippets[0].ID != "r2" {
		t.Fatalf("snippets = %+v", after.Snippets)
	}

	// Copy-on-write: the earlier snapshot is untouched.
	if len(before.Snippets) != 2 {
		t.Error("snapshot handed out before the delete was mutated")
	}
}

func TestDeleteSnippetAbsentIsTotal(t *testing.T) {
	s := New(testBatch())
	before, _ := s.Sample("s1")

	s.DeleteSnippet("s1", "missing")
	s.DeleteSnippet("no-such-sample", "r1")

	after, _ := s.Sample("s1")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("sample changed on absent delete (-before +after):\n%s", diff)
	}
}

func TestDeleteCommentary(t *testing.T) {
	s := New(testBatch())
	s.DeleteCommentary("s1", "e1")
	after, _ := s.Sample("s1")
	if len(after.Commentaries) != 0 {
		t.Errorf("commentaries = %+v", after.Commentaries)
	}
	// Absent again: no-op.
	s.DeleteCommentary("s1", "e1")
}

func TestEditField(t *testing.T) {
	s := New(testBatch())

	if !s.EditField("s1", "query", "edited query") {
		t.Fatal("query edit rejected")
	}
	if !s.EditField("s1", "snippets/r1/text", "edited text") {
		t.Fatal("snippet text edit rejected")
	}
	if !s.EditField("s1", "snippets/r1/page", "99") {
		t.Fatal("snippet page edit rejected")
	}

	got, _ := s.Sample("s1")
	if got.Query() != "edited query" {
		t.Errorf("query = %q", got.Query())
	}
	if got.Snippets[0].Text != "edited text" || got.Snippets[0].Page != "99" {
		t.Errorf("snippet = %+v", got.Snippets[0])
	}
}

func TestEditFieldUnknownPathIsNoOp(t *testing.T) {
	s := New(testBatch())
	before, _ := s.Sample("s1")

	for _, path := range []string{"bogus", "snippets/r1/id", "snippets/missing/text", "a/b/c/d"} {
		if s.EditField("s1", path, "x") {
			t.Errorf("path %q should be rejected", path)
		}
	}
	if s.EditField("missing", "query", "x") {
		t.Error("unknown sample should be rejected")
	}

	after, _ := s.Sample("s1")
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("sample changed on rejected edits:\n%s", diff)
	}
}

func TestAddReferenceFromPool(t *testing.T) {
	n := 0
	s := New(testBatch(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("%04d", n)
	}))

	id, ok := s.AddReferenceFromPool("s1", "p1")
	if !ok {
		t.Fatal("add rejected")
	}
	if id != "ref_added_0001" {
		t.Errorf("id = %q", id)
	}

	got, _ := s.Sample("s1")
	last := got.Snippets[len(got.Snippets)-1]
	if last.Text != "pooled text" || last.Source != "book" || last.Page != "7" {
		t.Errorf("added snippet = %+v", last)
	}

	// The pool is reusable: the entry is still there and can be added
	// to another sample.
	if len(s.ReferencePool()) != 1 {
		t.Fatal("pool entry should not be consumed")
	}
	if _, ok := s.AddReferenceFromPool("s2", "p1"); !ok {
		t.Error("second add from pool rejected")
	}

	if _, ok := s.AddReferenceFromPool("s1", "no-such-ref"); ok {
		t.Error("unknown pool id should be rejected")
	}
}

func TestAnswerBucket(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"}, {1, "1-2"}, {2, "1-2"}, {3, "3"}, {4, "4+"}, {5, "4+"}, {12, "4+"},
	}
	for _, tt := range tests {
		if got := AnswerBucket(tt.n); got != tt.want {
			t.Errorf("AnswerBucket(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestApplyRegenerateBucketSelection(t *testing.T) {
	s := New(testBatch(), WithRandom(func() float64 { return 0.5 }))

	// Two snippets -> "1-2".
	s.ApplyRegenerate("s1")
	got, _ := s.Sample("s1")
	if got.Answer() != "few" {
		t.Errorf("answer = %q, want few", got.Answer())
	}

	// Delete one -> one snippet, still "1-2"; delete both -> "0".
	s.DeleteSnippet("s1", "r1")
	s.DeleteSnippet("s1", "r2")
	s.ApplyRegenerate("s1")
	got, _ = s.Sample("s1")
	if got.Answer() != "none" {
		t.Errorf("answer = %q, want none", got.Answer())
	}
}

func TestApplyRegenerateMissingBucket(t *testing.T) {
	b := testBatch()
	b.Samples[0].MockAnswers = map[string]string{"0": "none"}
	s := New(b)

	s.ApplyRegenerate("s1") // two snippets, bucket "1-2" absent
	got, _ := s.Sample("s1")
	if got.Answer() != "" {
		t.Errorf("answer = %q, want empty for missing bucket", got.Answer())
	}
}

func TestRandomizeMetricsBounds(t *testing.T) {
	for _, r := range []float64{0, 0.25, 0.5, 0.99} {
		s := New(testBatch(), WithRandom(func() float64 { return r }))
		s.ApplyRegenerate("s1")
		got, _ := s.Sample("s1")

		v := got.Generations[0].AutomatedMetrics["f1"]
		if !v.IsNumber {
			t.Fatalf("f1 lost its numeric type")
		}
		lo, hi := 0.6*0.8, 0.9*0.8
		if v.Number < lo-0.005 || v.Number > hi+0.005 {
			t.Errorf("rand=%v: f1 = %v, want within [%v, %v]", r, v.Number, lo, hi)
		}
		// Two decimal places.
		if v.Number != float64(int(v.Number*100+0.5))/100 {
			t.Errorf("f1 = %v not rounded to 2dp", v.Number)
		}

		// Non-numeric values pass through unchanged.
		if j := got.Generations[0].AutomatedMetrics["judge"]; j.Text != "gpt-4" {
			t.Errorf("judge = %+v", j)
		}
	}
}

func TestRegenerateAnswerAsync(t *testing.T) {
	done := make(chan struct{}, 4)
	s := New(testBatch(),
		WithDelay(time.Millisecond),
		WithHighlightWindow(5*time.Millisecond),
		WithNotify(func() { done <- struct{}{} }),
	)

	s.RegenerateAnswer("s1")
	if !s.IsRegenerating() {
		t.Error("IsRegenerating should be observable while pending")
	}

	<-done // completion
	if s.IsRegenerating() {
		t.Error("IsRegenerating should clear on completion")
	}
	if !s.HighlightMetrics() {
		t.Error("HighlightMetrics should be set right after completion")
	}
	got, _ := s.Sample("s1")
	if got.Answer() != "few" {
		t.Errorf("answer = %q", got.Answer())
	}

	<-done // highlight expiry
	if s.HighlightMetrics() {
		t.Error("HighlightMetrics should clear after the window")
	}
}

func TestRegenerateAnswerSupersession(t *testing.T) {
	calls := 0
	done := make(chan struct{}, 4)
	s := New(testBatch(),
		WithDelay(5*time.Millisecond),
		WithHighlightWindow(time.Millisecond),
		WithRandom(func() float64 { calls++; return 0.5 }),
		WithNotify(func() { done <- struct{}{} }),
	)

	s.RegenerateAnswer("s1")
	s.RegenerateAnswer("s1") // supersedes the first
	<-done

	time.Sleep(10 * time.Millisecond) // let the superseded timer fire
	if calls != 1 {
		t.Errorf("regenerate applied %d times, want 1 (last write wins)", calls)
	}
}

func TestRegenerateUnknownSample(t *testing.T) {
	s := New(testBatch(), WithDelay(0))
	s.RegenerateAnswer("missing")
	if s.IsRegenerating() {
		t.Error("unknown sample should not start a regeneration")
	}
}

func TestReloadResetsEverything(t *testing.T) {
	s := New(testBatch())
	s.SelectSample("s2")
	s.ToggleHidden("x")

	s.Reload(&model.Batch{Samples: []model.Sample{{ID: "n1", CentralBlockID: "g", Generations: []model.Generation{{ID: "g"}}}}})
	if s.SelectedID() != "n1" {
		t.Errorf("selected = %q", s.SelectedID())
	}
	if s.HiddenCount() != 0 {
		t.Error("hidden set should reset on reload")
	}
}
