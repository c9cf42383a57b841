package analysis

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/daf/internal/model"
)

// ProvenancePass flags snippets whose source or page is empty. A
// snippet without provenance cannot be traced back to its document,
// which defeats the point of showing retrieval evidence.
func ProvenancePass(batch *model.Batch) []Finding {
	var findings []Finding
	for _, s := range batch.Samples {
		for _, sn := range s.Snippets {
			var missing []string
			if strings.TrimSpace(sn.Source) == "" {
				missing = append(missing, "source")
			}
			if strings.TrimSpace(sn.Page) == "" {
				missing = append(missing, "page")
			}
			if len(missing) == 0 {
				continue
			}
			findings = append(findings, Finding{
				Pass:    "provenance",
				Sample:  s.ID,
				Card:    sn.ID,
				Message: fmt.Sprintf("snippet missing %s", strings.Join(missing, ", ")),
				Risk:    RiskMedium,
			})
		}
	}
	return findings
}
