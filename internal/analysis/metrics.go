package analysis

import (
	"fmt"
	"sort"

	"github.com/sprite-ai/daf/internal/model"
)

// MetricRangePass flags numeric metrics outside [0, 1]. All the
// automated metrics in this corpus (f1, rouge, precision, recall,
// faithfulness) are normalized scores, so anything outside the unit
// interval is almost certainly an export bug.
func MetricRangePass(batch *model.Batch) []Finding {
	var findings []Finding
	for _, s := range batch.Samples {
		for _, g := range s.Generations {
			findings = append(findings, checkMetrics(s.ID, g.ID, g.AutomatedMetrics)...)
		}
		for _, mb := range s.MetricsBlocks {
			findings = append(findings, checkMetrics(s.ID, mb.ID, mb.Values)...)
		}
	}
	return findings
}

func checkMetrics(sampleID, cardID string, values map[string]model.MetricValue) []Finding {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var findings []Finding
	for _, name := range names {
		v := values[name]
		if !v.IsNumber {
			continue
		}
		if v.Number < 0 || v.Number > 1 {
			findings = append(findings, Finding{
				Pass:    "metrics",
				Sample:  sampleID,
				Card:    cardID,
				Message: fmt.Sprintf("metric %q = %v is outside [0, 1]", name, v.Number),
				Risk:    RiskMedium,
			})
		}
	}
	return findings
}
