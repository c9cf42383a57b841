package analysis

import (
	"fmt"

	"github.com/sprite-ai/daf/internal/layout"
	"github.com/sprite-ai/daf/internal/model"
)

// CentralRefPass flags samples whose central_block_id does not resolve
// to any card. The viewer degrades to an empty central panel for
// these, which usually means the batch was exported wrong.
func CentralRefPass(batch *model.Batch) []Finding {
	var findings []Finding
	for i := range batch.Samples {
		s := &batch.Samples[i]
		if s.CentralBlockID == "" {
			findings = append(findings, Finding{
				Pass:    "central",
				Sample:  s.ID,
				Message: "no central_block_id set",
				Risk:    RiskMedium,
			})
			continue
		}
		if _, ok := layout.CentralView(s); !ok {
			findings = append(findings, Finding{
				Pass:    "central",
				Sample:  s.ID,
				Message: fmt.Sprintf("central_block_id %q does not match any card", s.CentralBlockID),
				Risk:    RiskHigh,
			})
		}
	}
	return findings
}
