package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sprite-ai/daf/internal/model"
)

type recordWire struct {
	SampleID         flexString                   `json:"sample_id"`
	CentralBlockID   flexString                   `json:"central_block_id"`
	Query            *string                      `json:"query"`
	Answer           *string                      `json:"answer"`
	Generations      []json.RawMessage            `json:"generations"`
	Snippets         json.RawMessage              `json:"snippets"`
	Commentaries     []json.RawMessage            `json:"commentaries"`
	Commentary       []json.RawMessage            `json:"commentary"` // older field name
	Metrics          []json.RawMessage            `json:"metrics"`
	AutomatedMetrics map[string]model.MetricValue `json:"automated_metrics"`
	MockAnswers      map[string]string            `json:"mockAnswers"`
	MockAnswersSnake map[string]string            `json:"mock_answers"`
}

// parseJSONL splits the payload on line boundaries and parses each
// non-blank line independently. A malformed line is dropped with a
// warning; parsing continues.
func parseJSONL(data []byte, locator string) (*model.Batch, error) {
	batch := &model.Batch{Source: locator}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024) // 10MB max line

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		sample, err := normalizeRecord(line, len(batch.Samples)+1)
		if err != nil {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}

		if seen[sample.ID] {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("line %d: duplicate sample id %q dropped", lineNo, sample.ID))
			continue
		}
		seen[sample.ID] = true
		batch.Samples = append(batch.Samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", locator, err)
	}

	if len(batch.Samples) == 0 {
		return nil, fmt.Errorf("%s: %w", locator, ErrEmptyBatch)
	}
	return batch, nil
}

// normalizeRecord turns one raw JSONL record into the canonical
// Sample. Both the generation-centric shape and the older
// query/answer shape are accepted.
func normalizeRecord(line []byte, ordinal int) (model.Sample, error) {
	var w recordWire
	if err := json.Unmarshal(line, &w); err != nil {
		return model.Sample{}, fmt.Errorf("invalid JSON: %v", err)
	}

	gens := decodeGenerations(w.Generations)

	if len(gens) == 0 {
		// Older records carry query/answer at the top level; synthesize
		// a single generation so downstream code sees one shape.
		var missing []string
		if w.Query == nil {
			missing = append(missing, "query")
		}
		if w.Answer == nil {
			missing = append(missing, "answer")
		}
		if len(missing) > 0 {
			return model.Sample{}, &MissingFieldsError{Fields: missing}
		}
		gens = []model.Generation{{
			ID:               "gen_1",
			Query:            *w.Query,
			Answer:           *w.Answer,
			AutomatedMetrics: w.AutomatedMetrics,
		}}
	}

	snippets, err := decodeSnippetsField(w.Snippets)
	if err != nil {
		return model.Sample{}, err
	}

	commentaries := w.Commentaries
	if len(commentaries) == 0 {
		commentaries = w.Commentary
	}

	central := string(w.CentralBlockID)
	if central == "" {
		central = gens[0].ID
	}

	id := string(w.SampleID)
	if id == "" {
		id = central
	}
	if id == "" {
		id = fmt.Sprintf("sample_%d", ordinal)
	}

	mock := w.MockAnswers
	if mock == nil {
		mock = w.MockAnswersSnake
	}

	return model.Sample{
		ID:             id,
		CentralBlockID: central,
		Generations:    gens,
		Snippets:       snippets,
		Commentaries:   decodeCommentaries(commentaries),
		MetricsBlocks:  decodeMetricsBlocks(w.Metrics),
		MockAnswers:    mock,
	}, nil
}
