package analysis

import (
	"fmt"

	"github.com/sprite-ai/daf/internal/model"
)

// DuplicateIDPass flags sample ids reused across the batch and card
// ids reused within a sample's own collection. Duplicate sample ids
// make selection ambiguous; duplicate card ids break toggling and
// deletion, which address cards by id.
func DuplicateIDPass(batch *model.Batch) []Finding {
	var findings []Finding

	seen := make(map[string]int)
	for _, s := range batch.Samples {
		seen[s.ID]++
	}
	for _, s := range batch.Samples {
		if seen[s.ID] > 1 {
			findings = append(findings, Finding{
				Pass:    "ids",
				Sample:  s.ID,
				Message: fmt.Sprintf("sample id %q appears %d times in the batch", s.ID, seen[s.ID]),
				Risk:    RiskHigh,
			})
			seen[s.ID] = 0 // report once
		}
	}

	for _, s := range batch.Samples {
		findings = append(findings, duplicateCards(s.ID, "snippet", snippetIDs(s.Snippets))...)
		findings = append(findings, duplicateCards(s.ID, "commentary", commentaryIDs(s.Commentaries))...)
	}

	return findings
}

func duplicateCards(sampleID, kind string, ids []string) []Finding {
	var findings []Finding
	seen := make(map[string]int)
	for _, id := range ids {
		seen[id]++
	}
	for _, id := range ids {
		if seen[id] > 1 {
			findings = append(findings, Finding{
				Pass:    "ids",
				Sample:  sampleID,
				Card:    id,
				Message: fmt.Sprintf("%s id %q appears %d times in its collection", kind, id, seen[id]),
				Risk:    RiskHigh,
			})
			seen[id] = 0
		}
	}
	return findings
}

func snippetIDs(snippets []model.Snippet) []string {
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = s.ID
	}
	return out
}

func commentaryIDs(commentaries []model.Commentary) []string {
	out := make([]string, len(commentaries))
	for i, c := range commentaries {
		out[i] = c.ID
	}
	return out
}
