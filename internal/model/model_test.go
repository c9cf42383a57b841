package model

import (
	"encoding/json"
	"testing"
)

func TestCardKindString(t *testing.T) {
	tests := []struct {
		kind CardKind
		want string
	}{
		{KindGeneration, "generation"},
		{KindSnippet, "snippet"},
		{KindCommentary, "commentary"},
		{KindMetrics, "metrics"},
		{CardKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("CardKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestMetricValueUnmarshal(t *testing.T) {
	var m map[string]MetricValue
	raw := `{"citation_f1": 0.82, "judge": "gpt-4", "flagged": true}`
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if v := m["citation_f1"]; !v.IsNumber || v.Number != 0.82 {
		t.Errorf("citation_f1 = %+v, want numeric 0.82", v)
	}
	if v := m["judge"]; v.IsNumber || v.Text != "gpt-4" {
		t.Errorf("judge = %+v, want text gpt-4", v)
	}
	// Non-string, non-number values pass through as raw text.
	if v := m["flagged"]; v.IsNumber || v.Text != "true" {
		t.Errorf("flagged = %+v, want raw text true", v)
	}
}

func TestMetricValueMarshal(t *testing.T) {
	b, err := json.Marshal(map[string]MetricValue{"score": Num(0.75)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"score":0.75}` {
		t.Errorf("marshal = %s", b)
	}
}

func TestSampleClone(t *testing.T) {
	s := Sample{
		ID:             "s1",
		CentralBlockID: "gen_1",
		Generations: []Generation{{
			ID:               "gen_1",
			Query:            "Q",
			Answer:           "A",
			AutomatedMetrics: map[string]MetricValue{"f1": Num(0.5)},
		}},
		Snippets: []Snippet{{ID: "r1", Text: "t", Source: "src", Page: "3"}},
	}

	c := s.Clone()
	c.Generations[0].Answer = "changed"
	c.Generations[0].AutomatedMetrics["f1"] = Num(0.9)
	c.Snippets[0].Text = "changed"

	if s.Generations[0].Answer != "A" {
		t.Error("clone mutation leaked into original generation")
	}
	if s.Generations[0].AutomatedMetrics["f1"].Number != 0.5 {
		t.Error("clone mutation leaked into original metrics")
	}
	if s.Snippets[0].Text != "t" {
		t.Error("clone mutation leaked into original snippet")
	}
}

func TestSampleQueryAnswerFallback(t *testing.T) {
	s := Sample{
		CentralBlockID: "r1", // central is a snippet, not a generation
		Generations:    []Generation{{ID: "gen_1", Query: "Q1", Answer: "A1"}},
	}
	if got := s.Query(); got != "Q1" {
		t.Errorf("Query() = %q, want fallback to first generation", got)
	}
	if got := s.Answer(); got != "A1" {
		t.Errorf("Answer() = %q, want fallback to first generation", got)
	}

	empty := Sample{}
	if empty.Query() != "" || empty.Answer() != "" {
		t.Error("empty sample should yield empty query/answer")
	}
}

func TestCommentaryDisplayID(t *testing.T) {
	if got := CommentaryDisplayID("3"); got != "commentary:3" {
		t.Errorf("CommentaryDisplayID = %q", got)
	}
}
