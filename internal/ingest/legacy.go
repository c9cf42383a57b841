package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/sprite-ai/daf/internal/model"
)

type documentWire struct {
	Query            *string                      `json:"query"`
	Answer           *string                      `json:"answer"`
	Snippets         json.RawMessage              `json:"snippets"`
	Commentary       []json.RawMessage            `json:"commentary"`
	AutomatedMetrics map[string]model.MetricValue `json:"automated_metrics"`
	MockAnswers      map[string]string            `json:"mockAnswers"`
	ReferencePool    []json.RawMessage            `json:"referencePool"`
}

type poolWire struct {
	ID             flexString `json:"id"`
	Text           string     `json:"text"`
	Source         string     `json:"source"`
	Page           flexString `json:"page"`
	Tags           []string   `json:"tags"`
	RelevanceScore float64    `json:"relevanceScore"`
}

// parseDocument parses a single JSON document. Unlike JSONL, any
// structural problem here fails the whole load.
func parseDocument(data []byte, locator string) (*model.Batch, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", locator, err)
	}

	// A single generation-centric record saved as .json.
	if _, ok := probe["generations"]; ok {
		sample, err := normalizeRecord(data, 1)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", locator, err)
		}
		return &model.Batch{Samples: []model.Sample{sample}, Source: locator}, nil
	}

	// Legacy single-sample viewer document.
	var missing []string
	for _, f := range []string{"query", "answer", "snippets"} {
		if _, ok := probe[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("parsing %s: %w", locator, &MissingFieldsError{Fields: missing})
	}

	var w documentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", locator, err)
	}

	snippets, err := decodeSnippetsField(w.Snippets)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", locator, err)
	}

	sample := model.Sample{
		ID:             "sample_1",
		CentralBlockID: "gen_1",
		Generations: []model.Generation{{
			ID:               "gen_1",
			Query:            *w.Query,
			Answer:           *w.Answer,
			AutomatedMetrics: w.AutomatedMetrics,
		}},
		Snippets:     snippets,
		Commentaries: decodeCommentaries(w.Commentary),
		MockAnswers:  w.MockAnswers,
	}

	return &model.Batch{
		Samples:       []model.Sample{sample},
		ReferencePool: decodePool(w.ReferencePool),
		Source:        locator,
	}, nil
}

func decodePool(raws []json.RawMessage) []model.PoolEntry {
	out := make([]model.PoolEntry, 0, len(raws))
	for i, raw := range raws {
		var w poolWire
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		id := string(w.ID)
		if id == "" {
			id = fmt.Sprintf("pool_%d", i+1)
		}
		out = append(out, model.PoolEntry{
			ID:             id,
			Text:           w.Text,
			Source:         w.Source,
			Page:           string(w.Page),
			Tags:           w.Tags,
			RelevanceScore: w.RelevanceScore,
		})
	}
	return out
}
