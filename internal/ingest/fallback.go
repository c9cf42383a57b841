package ingest

import "github.com/sprite-ai/daf/internal/model"

// FallbackBatch returns the built-in placeholder batch used when a
// load fails or yields nothing, so the viewer never renders blank.
func FallbackBatch() *model.Batch {
	return &model.Batch{
		Source: "builtin:fallback",
		Samples: []model.Sample{{
			ID:             "fallback_1",
			CentralBlockID: "gen_1",
			Generations: []model.Generation{{
				ID:     "gen_1",
				Query:  "No data loaded",
				Answer: "<p>The configured data source could not be loaded. " +
					"Check the file path or URL and reload.</p>",
			}},
			Snippets: []model.Snippet{{
				ID:     "r1",
				Text:   "This placeholder snippet is shown because no sample data was available.",
				Source: "daf",
				Page:   "1",
			}},
			Commentaries: []model.Commentary{{
				ID:      "eval_1",
				Comment: "Placeholder sample. Load a JSON or JSONL batch to begin.",
			}},
			MockAnswers: map[string]string{
				"0":   "<p>No snippets are attached to this sample.</p>",
				"1-2": "<p>Answer regenerated from a small snippet set.</p>",
				"3":   "<p>Answer regenerated from three snippets.</p>",
				"4+":  "<p>Answer regenerated from a large snippet set.</p>",
			},
		}},
	}
}
