package analysis

import "github.com/sprite-ai/daf/internal/model"

// GradePass flags commentaries without a grade. Ungraded commentary
// still renders, so this is informational only.
func GradePass(batch *model.Batch) []Finding {
	var findings []Finding
	for _, s := range batch.Samples {
		for _, c := range s.Commentaries {
			if c.Grade != "" {
				continue
			}
			findings = append(findings, Finding{
				Pass:    "grades",
				Sample:  s.ID,
				Card:    c.ID,
				Message: "commentary has no grade",
				Risk:    RiskInfo,
			})
		}
	}
	return findings
}
