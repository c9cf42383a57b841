// Package analysis implements QA passes over a loaded batch.
package analysis

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/daf/internal/model"
)

// RiskLevel categorizes the severity of a finding.
type RiskLevel int

const (
	RiskInfo RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskInfo:
		return "info"
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalJSON renders risk levels as their names.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", r.String())), nil
}

// Finding is a single QA finding attached to a sample and optionally a card.
type Finding struct {
	Pass    string    `json:"pass"`
	Sample  string    `json:"sample"`
	Card    string    `json:"card,omitempty"` // card id within the sample, "" if sample-level
	Message string    `json:"message"`
	Risk    RiskLevel `json:"risk"`
}

func (f Finding) String() string {
	loc := f.Sample
	if f.Card != "" {
		loc = fmt.Sprintf("%s/%s", f.Sample, f.Card)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Pass, loc, f.Message)
}

// Results holds all findings from running QA passes.
type Results struct {
	Findings []Finding `json:"findings"`
}

// BySample returns findings grouped by sample id.
func (r *Results) BySample() map[string][]Finding {
	m := make(map[string][]Finding)
	for _, f := range r.Findings {
		m[f.Sample] = append(m[f.Sample], f)
	}
	return m
}

// ByRisk returns findings at or above the given risk level.
func (r *Results) ByRisk(minRisk RiskLevel) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.Risk >= minRisk {
			result = append(result, f)
		}
	}
	return result
}

// MaxRisk returns the highest risk level among all findings.
func (r *Results) MaxRisk() RiskLevel {
	max := RiskInfo
	for _, f := range r.Findings {
		if f.Risk > max {
			max = f.Risk
		}
	}
	return max
}

// Summary returns a one-line summary of findings.
func (r *Results) Summary() string {
	if len(r.Findings) == 0 {
		return "No issues found"
	}

	counts := make(map[RiskLevel]int)
	for _, f := range r.Findings {
		counts[f.Risk]++
	}

	var parts []string
	for _, level := range []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow, RiskInfo} {
		if c := counts[level]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, level))
		}
	}
	return strings.Join(parts, ", ")
}

// Pass is a function that inspects a batch and returns findings.
type Pass func(batch *model.Batch) []Finding

// PassNames maps pass names to their functions (for --skip).
var PassNames = map[string]Pass{
	"ids":        DuplicateIDPass,
	"central":    CentralRefPass,
	"provenance": ProvenancePass,
	"grades":     GradePass,
	"metrics":    MetricRangePass,
}

// Run executes all passes (or a subset) and returns the aggregated results.
func Run(batch *model.Batch, skip []string) *Results {
	skipSet := make(map[string]bool)
	for _, s := range skip {
		skipSet[s] = true
	}

	results := &Results{}

	for name, pass := range PassNames {
		if skipSet[name] {
			continue
		}
		findings := pass(batch)
		results.Findings = append(results.Findings, findings...)
	}

	return results
}
