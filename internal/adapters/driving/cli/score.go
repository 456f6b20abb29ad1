package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

var scoreJSON bool

var scoreCmd = &cobra.Command{
	Use:   "score [original] [anonymized]",
	Short: "Score an anonymized document against its original",
	Long: `Runs the full re-identification probe battery and the strategic
value analysis, then combines both into the overall quality verdict.

The contextual reconstruction probe needs a reachable Ollama server;
without one it degrades to a zero score instead of failing the run.`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(scoreCmd)
}

// scoreReport is the JSON shape of a full scoring run.
type scoreReport struct {
	Original   string                                  `json:"original"`
	Anonymized string                                  `json:"anonymized"`
	Overall    domain.OverallScore                     `json:"overall"`
	Probes     map[domain.ProbeName]domain.ProbeResult `json:"probes"`
	Risk       domain.RiskAssessment                   `json:"risk"`
	Advice     []string                                `json:"recommendations"`
}

func runScore(cmd *cobra.Command, args []string) error {
	if resistanceService == nil || scoringService == nil {
		return errors.New("scoring services not initialised")
	}

	original, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read original %q: %w", args[0], err)
	}
	anonymized, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read anonymized %q: %w", args[1], err)
	}

	logger.Section("Resistance battery")
	report := resistanceService.RunAll(cmd.Context(), string(original), string(anonymized))

	logger.Section("Strategic value")
	subs := scoringService.StrategicValue(string(original), string(anonymized))
	overall := scoringService.CalculateOverallScore(report, subs)

	result := scoreReport{
		Original:   args[0],
		Anonymized: args[1],
		Overall:    overall,
		Probes:     report.Results,
		Risk:       report.Risk,
		Advice:     report.Recommendations,
	}

	if scoreJSON {
		return outputScoreJSON(cmd, result)
	}
	return outputScoreReport(cmd, result)
}

func outputScoreJSON(cmd *cobra.Command, result scoreReport) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func outputScoreReport(cmd *cobra.Command, result scoreReport) error {
	cmd.Printf("Overall score: %.1f/100 (%s)\n", result.Overall.Overall, result.Overall.Quality.Tier)
	cmd.Printf("  %s\n", result.Overall.Quality.Description)
	cmd.Printf("  %s\n\n", result.Overall.Quality.Recommendation)

	cmd.Printf("Re-identification resistance: %.1f/100 (risk: %s)\n", result.Overall.Resistance, result.Risk.Overall)
	for _, name := range domain.ProbeNames() {
		probe := result.Probes[name]
		cmd.Printf("  %-28s %6.1f  %s", probeLabel(name), probe.Score, probe.RiskTier)
		if probe.Err != "" {
			cmd.Printf("  (%s)", probe.Err)
		}
		cmd.Println()
	}

	cmd.Printf("\nStrategic value: %.1f/100\n", result.Overall.StrategicValue)
	cmd.Printf("  %-28s %6.1f\n", "legal principles", result.Overall.SubScores.LegalPrincipleRetention)
	cmd.Printf("  %-28s %6.1f\n", "educational value", result.Overall.SubScores.EducationalValue)
	cmd.Printf("  %-28s %6.1f\n", "business intelligence", result.Overall.SubScores.BusinessIntelligence)
	cmd.Printf("  %-28s %6.1f\n", "procedural guidance", result.Overall.SubScores.ProceduralGuidance)

	if len(result.Advice) > 0 {
		cmd.Println("\nRecommendations:")
		for _, line := range result.Advice {
			cmd.Printf("  - %s\n", line)
		}
	}
	return nil
}

// probeLabel turns a probe name into a display label.
func probeLabel(name domain.ProbeName) string {
	return strings.ReplaceAll(string(name), "_", " ")
}
