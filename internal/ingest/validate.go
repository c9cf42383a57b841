package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sprite-ai/daf/internal/model"
)

// MissingFieldsError reports required top-level fields absent from a record.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// MalformedSnippetError reports a snippet entry missing required fields.
type MalformedSnippetError struct {
	RefID   string
	Index   int
	Missing []string
}

func (e *MalformedSnippetError) Error() string {
	ref := e.RefID
	if ref == "" {
		ref = "snippets"
	}
	return fmt.Sprintf("snippet %s[%d] missing fields: %s", ref, e.Index, strings.Join(e.Missing, ", "))
}

// flexString accepts a JSON string or number. Ids, grades, and page
// numbers appear as both across the historical data files.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(bytes.TrimSpace(b))
	return nil
}

type snippetWire struct {
	ID     flexString `json:"id"`
	Text   string     `json:"text"`
	Source string     `json:"source"`
	Page   flexString `json:"page"`
}

type commentaryWire struct {
	ID        flexString `json:"id"`
	Comment   string     `json:"comment"`
	Grade     flexString `json:"grade"`
	Evaluator string     `json:"evaluator"`
	Criteria  string     `json:"criteria"`
}

type generationWire struct {
	ID               flexString                   `json:"id"`
	Query            string                       `json:"query"`
	Answer           string                       `json:"answer"`
	AutomatedMetrics map[string]model.MetricValue `json:"automated_metrics"`
}

var requiredSnippetFields = []string{"text", "source", "page"}

// decodeSnippetList validates and decodes one ordered list of snippet
// objects. refID is the legacy map key the list was found under, if any.
func decodeSnippetList(refID string, raws []json.RawMessage) ([]model.Snippet, error) {
	out := make([]model.Snippet, 0, len(raws))
	for i, raw := range raws {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, &MalformedSnippetError{RefID: refID, Index: i, Missing: requiredSnippetFields}
		}
		var missing []string
		for _, f := range requiredSnippetFields {
			if _, ok := fields[f]; !ok {
				missing = append(missing, f)
			}
		}
		if len(missing) > 0 {
			return nil, &MalformedSnippetError{RefID: refID, Index: i, Missing: missing}
		}

		var w snippetWire
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, &MalformedSnippetError{RefID: refID, Index: i, Missing: requiredSnippetFields}
		}

		id := string(w.ID)
		if id == "" {
			switch {
			case refID != "" && len(raws) == 1:
				id = refID
			case refID != "":
				id = fmt.Sprintf("%s_%d", refID, i)
			default:
				id = fmt.Sprintf("snippet_%d", i+1)
			}
		}
		out = append(out, model.Snippet{ID: id, Text: w.Text, Source: w.Source, Page: string(w.Page)})
	}
	return out, nil
}

// decodeSnippetsField accepts both historical shapes: an ordered array
// of snippet objects, or a map of refId -> snippet array. Map keys are
// sorted so the flattened order is deterministic.
func decodeSnippetsField(raw json.RawMessage) ([]model.Snippet, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return decodeSnippetList("", list)
	}

	var keyed map[string][]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("snippets must be an array or a map of arrays")
	}

	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []model.Snippet
	for _, k := range keys {
		snips, err := decodeSnippetList(k, keyed[k])
		if err != nil {
			return nil, err
		}
		out = append(out, snips...)
	}
	return out, nil
}

func decodeCommentaries(raws []json.RawMessage) []model.Commentary {
	out := make([]model.Commentary, 0, len(raws))
	for i, raw := range raws {
		var w commentaryWire
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		id := string(w.ID)
		if id == "" {
			id = fmt.Sprintf("eval_%d", i+1)
		}
		out = append(out, model.Commentary{
			ID:        id,
			Comment:   w.Comment,
			Grade:     string(w.Grade),
			Evaluator: w.Evaluator,
			Criteria:  w.Criteria,
		})
	}
	return out
}

// decodeMetricsBlocks decodes standalone metric cards: flat objects
// holding an id plus arbitrary metric keys.
func decodeMetricsBlocks(raws []json.RawMessage) []model.MetricsBlock {
	out := make([]model.MetricsBlock, 0, len(raws))
	for i, raw := range raws {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		block := model.MetricsBlock{Values: make(map[string]model.MetricValue)}
		for k, v := range fields {
			if k == "id" {
				var id flexString
				if err := json.Unmarshal(v, &id); err == nil {
					block.ID = string(id)
				}
				continue
			}
			var mv model.MetricValue
			if err := json.Unmarshal(v, &mv); err == nil {
				block.Values[k] = mv
			}
		}
		if block.ID == "" {
			block.ID = fmt.Sprintf("metrics_%d", i+1)
		}
		out = append(out, block)
	}
	return out
}

func decodeGenerations(raws []json.RawMessage) []model.Generation {
	out := make([]model.Generation, 0, len(raws))
	for i, raw := range raws {
		var w generationWire
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		id := string(w.ID)
		if id == "" {
			id = fmt.Sprintf("gen_%d", i+1)
		}
		out = append(out, model.Generation{
			ID:               id,
			Query:            w.Query,
			Answer:           w.Answer,
			AutomatedMetrics: w.AutomatedMetrics,
		})
	}
	return out
}
