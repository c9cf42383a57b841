package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sprite-ai/daf/internal/analysis"
	"github.com/sprite-ai/daf/internal/ingest"
	"github.com/sprite-ai/daf/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check [source]",
	Short: "Run QA passes on a batch and output a report (non-interactive)",
	Long: `Run all QA passes over a batch and output a structured report.
Useful for CI, pre-publish hooks, and piping into other tools.

Exit codes:
  0 — clean, no issues found
  1 — warnings found
  2 — high risk items found`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json, markdown")
	checkCmd.Flags().StringSlice("skip", nil, "QA passes to skip")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source := resolveSource(args, cfg)
	if source == "" {
		return fmt.Errorf("no source given and none configured")
	}

	// check is for CI; a batch that fails to load is a hard error, not
	// a fallback.
	loader := &ingest.Loader{Cache: ingest.NewCache()}
	batch, err := loader.Load(source)
	if err != nil {
		return fmt.Errorf("loading %s: %w", source, err)
	}

	skip, _ := cmd.Flags().GetStringSlice("skip")
	results := analysis.Run(batch, skip)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		return outputJSON(batch, results)
	case "markdown":
		return outputMarkdown(batch, results)
	default:
		return outputText(batch, results)
	}
}

func outputText(batch *model.Batch, results *analysis.Results) error {
	fmt.Printf("%d sample(s) in %s\n", len(batch.Samples), batch.Source)
	fmt.Printf("Analysis: %s\n\n", results.Summary())

	if len(results.Findings) == 0 {
		fmt.Println("No issues found.")
		return nil
	}

	bySample := results.BySample()
	for sample, findings := range bySample {
		fmt.Printf("  %s\n", sample)
		for _, f := range findings {
			icon := riskIcon(f.Risk)
			loc := sample
			if f.Card != "" {
				loc = fmt.Sprintf("%s/%s", sample, f.Card)
			}
			fmt.Printf("    %s [%s] %s: %s\n", icon, f.Pass, loc, f.Message)
		}
		fmt.Println()
	}

	exitForRisk(results.MaxRisk())
	return nil
}

func outputJSON(batch *model.Batch, results *analysis.Results) error {
	type jsonOutput struct {
		Source   string             `json:"source"`
		Samples  int                `json:"samples"`
		Summary  string             `json:"summary"`
		MaxRisk  string             `json:"max_risk"`
		Total    int                `json:"total"`
		Findings []analysis.Finding `json:"findings"`
	}

	out := jsonOutput{
		Source:   batch.Source,
		Samples:  len(batch.Samples),
		Summary:  results.Summary(),
		MaxRisk:  results.MaxRisk().String(),
		Total:    len(results.Findings),
		Findings: results.Findings,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func outputMarkdown(batch *model.Batch, results *analysis.Results) error {
	fmt.Printf("## Batch QA Report\n\n")
	fmt.Printf("**%d sample(s)** in `%s`\n\n", len(batch.Samples), batch.Source)
	fmt.Printf("**Risk:** %s | **Findings:** %d\n\n", results.MaxRisk(), len(results.Findings))

	if len(results.Findings) == 0 {
		fmt.Println("No issues found.")
		return nil
	}

	fmt.Println("| Risk | Pass | Location | Message |")
	fmt.Println("|------|------|----------|---------|")
	for _, f := range results.Findings {
		loc := f.Sample
		if f.Card != "" {
			loc = fmt.Sprintf("%s/%s", f.Sample, f.Card)
		}
		fmt.Printf("| %s | %s | `%s` | %s |\n", f.Risk, f.Pass, loc, f.Message)
	}

	exitForRisk(results.MaxRisk())
	return nil
}

func exitForRisk(maxRisk analysis.RiskLevel) {
	if maxRisk >= analysis.RiskHigh {
		os.Exit(2)
	} else if maxRisk >= analysis.RiskLow {
		os.Exit(1)
	}
}

func riskIcon(r analysis.RiskLevel) string {
	switch r {
	case analysis.RiskCritical:
		return "!!"
	case analysis.RiskHigh:
		return "! "
	case analysis.RiskMedium:
		return "* "
	case analysis.RiskLow:
		return "- "
	default:
		return "  "
	}
}
