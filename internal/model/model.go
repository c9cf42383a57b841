// Package model defines the core data types shared across daf.
package model

import "encoding/json"

// CardKind categorizes a display card.
type CardKind int

const (
	KindGeneration CardKind = iota
	KindSnippet
	KindCommentary
	KindMetrics
)

func (k CardKind) String() string {
	switch k {
	case KindGeneration:
		return "generation"
	case KindSnippet:
		return "snippet"
	case KindCommentary:
		return "commentary"
	case KindMetrics:
		return "metrics"
	default:
		return "unknown"
	}
}

// MetricValue is a single metric that may be numeric or free-form text.
// Only numeric values are subject to randomization on regenerate.
type MetricValue struct {
	Number   float64
	Text     string
	IsNumber bool
}

// Num returns a numeric MetricValue.
func Num(f float64) MetricValue { return MetricValue{Number: f, IsNumber: true} }

// Str returns a textual MetricValue.
func Str(s string) MetricValue { return MetricValue{Text: s} }

func (v *MetricValue) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		v.Number = f
		v.IsNumber = true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.Text = s
		return nil
	}
	// Anything else (bool, null, nested) passes through as raw text.
	v.Text = string(b)
	return nil
}

func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v.IsNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// Snippet is a quoted source passage with provenance.
type Snippet struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Source string `json:"source"`
	Page   string `json:"page"`
}

// Commentary is an evaluator's qualitative judgment, optionally graded.
type Commentary struct {
	ID        string `json:"id"`
	Comment   string `json:"comment"`
	Grade     string `json:"grade,omitempty"`
	Evaluator string `json:"evaluator,omitempty"`
	Criteria  string `json:"criteria,omitempty"`
}

// Generation is one generated answer for a query, with its automated metrics.
type Generation struct {
	ID               string                 `json:"id"`
	Query            string                 `json:"query"`
	Answer           string                 `json:"answer"` // opaque HTML fragment, not sanitized here
	AutomatedMetrics map[string]MetricValue `json:"automated_metrics,omitempty"`
}

// MetricsBlock is a standalone card of named metric values.
type MetricsBlock struct {
	ID     string                 `json:"id"`
	Values map[string]MetricValue `json:"values"`
}

// Sample is one query-centric evaluation unit: generations plus the
// snippets, commentaries, and metric blocks that surround them.
type Sample struct {
	ID             string         `json:"id"`
	CentralBlockID string         `json:"central_block_id"`
	Generations    []Generation   `json:"generations,omitempty"`
	Snippets       []Snippet      `json:"snippets,omitempty"`
	Commentaries   []Commentary   `json:"commentaries,omitempty"`
	MetricsBlocks  []MetricsBlock `json:"metrics,omitempty"`

	// MockAnswers simulates answer regeneration without a model call,
	// keyed by a bucket label derived from snippet count.
	MockAnswers map[string]string `json:"mock_answers,omitempty"`
}

// GenerationIndex returns the index of the generation with the given id, or -1.
func (s *Sample) GenerationIndex(id string) int {
	for i := range s.Generations {
		if s.Generations[i].ID == id {
			return i
		}
	}
	return -1
}

// SnippetIndex returns the index of the snippet with the given id, or -1.
func (s *Sample) SnippetIndex(id string) int {
	for i := range s.Snippets {
		if s.Snippets[i].ID == id {
			return i
		}
	}
	return -1
}

// CommentaryIndex returns the index of the commentary with the given id, or -1.
func (s *Sample) CommentaryIndex(id string) int {
	for i := range s.Commentaries {
		if s.Commentaries[i].ID == id {
			return i
		}
	}
	return -1
}

// Query returns the query of the central generation, or of the first
// generation when the central block is not a generation.
func (s *Sample) Query() string {
	if i := s.GenerationIndex(s.CentralBlockID); i >= 0 {
		return s.Generations[i].Query
	}
	if len(s.Generations) > 0 {
		return s.Generations[0].Query
	}
	return ""
}

// Answer returns the answer of the central generation, or of the first
// generation when the central block is not a generation.
func (s *Sample) Answer() string {
	if i := s.GenerationIndex(s.CentralBlockID); i >= 0 {
		return s.Generations[i].Answer
	}
	if len(s.Generations) > 0 {
		return s.Generations[0].Answer
	}
	return ""
}

// Clone returns a deep copy of the sample. Mutating operations work on
// clones so that previously handed-out samples stay stable snapshots.
func (s Sample) Clone() Sample {
	out := s
	out.Generations = append([]Generation(nil), s.Generations...)
	for i := range out.Generations {
		out.Generations[i].AutomatedMetrics = cloneMetrics(out.Generations[i].AutomatedMetrics)
	}
	out.Snippets = append([]Snippet(nil), s.Snippets...)
	out.Commentaries = append([]Commentary(nil), s.Commentaries...)
	out.MetricsBlocks = append([]MetricsBlock(nil), s.MetricsBlocks...)
	for i := range out.MetricsBlocks {
		out.MetricsBlocks[i].Values = cloneMetrics(out.MetricsBlocks[i].Values)
	}
	if s.MockAnswers != nil {
		out.MockAnswers = make(map[string]string, len(s.MockAnswers))
		for k, v := range s.MockAnswers {
			out.MockAnswers[k] = v
		}
	}
	return out
}

func cloneMetrics(m map[string]MetricValue) map[string]MetricValue {
	if m == nil {
		return nil
	}
	out := make(map[string]MetricValue, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// PoolEntry is a candidate snippet in the shared reference pool.
type PoolEntry struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Source         string   `json:"source"`
	Page           string   `json:"page"`
	Tags           []string `json:"tags,omitempty"`
	RelevanceScore float64  `json:"relevanceScore,omitempty"`
}

// Batch is one loaded payload: samples in input order plus the shared
// reference pool. Warnings records lines dropped during JSONL parsing.
type Batch struct {
	Samples       []Sample
	ReferencePool []PoolEntry
	Source        string
	Warnings      []string
}

// SampleIndex returns the index of the sample with the given id, or -1.
func (b *Batch) SampleIndex(id string) int {
	for i := range b.Samples {
		if b.Samples[i].ID == id {
			return i
		}
	}
	return -1
}

// DisplayItem is one card in the quadrant layout. Exactly one of the
// data pointers is set, matching Kind.
type DisplayItem struct {
	Kind       CardKind
	ID         string // unique within the sample's display namespace
	Generation *Generation
	Snippet    *Snippet
	Commentary *Commentary
	Metrics    *MetricsBlock
}

// CommentaryDisplayID namespaces a commentary id for the display layer.
// Commentary ids in the wild are often small integers and collide with
// snippet ids once the collections are unioned for quadrant placement.
func CommentaryDisplayID(id string) string {
	return "commentary:" + id
}
