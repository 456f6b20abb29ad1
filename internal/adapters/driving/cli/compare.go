package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

var compareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare [file]",
	Short: "Compare anonymization strategies on one document",
	Long: `Anonymizes the document once per built-in strategy (traditional,
strategic, educational), scores every result, and ranks the
strategies by overall score. A strategy whose anonymization fails is
reported and excluded from the ranking.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "output the comparison as JSON")
	rootCmd.AddCommand(compareCmd)
}

// strategyOutcome is one strategy's scored anonymization run.
type strategyOutcome struct {
	Strategy   domain.StrategyName `json:"strategy"`
	Overall    domain.OverallScore `json:"overall"`
	Resistance float64             `json:"resistance"`
	Strategic  float64             `json:"strategic_value"`
	Err        string              `json:"error,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	if processorService == nil || anonymizerService == nil ||
		resistanceService == nil || scoringService == nil {
		return errors.New("comparison services not initialised")
	}

	logger.Section("Processing")
	doc, err := processorService.ProcessFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	strategies := []domain.StrategyName{
		domain.StrategyTraditional,
		domain.StrategyStrategic,
		domain.StrategyEducational,
	}

	outcomes := make([]strategyOutcome, 0, len(strategies))
	for _, name := range strategies {
		logger.Section(fmt.Sprintf("Strategy: %s", name))
		outcomes = append(outcomes, runStrategy(cmd, doc, name))
	}

	// Ranked best first; failed runs sink to the bottom.
	sort.SliceStable(outcomes, func(i, j int) bool {
		if (outcomes[i].Err == "") != (outcomes[j].Err == "") {
			return outcomes[i].Err == ""
		}
		return outcomes[i].Overall.Overall > outcomes[j].Overall.Overall
	})

	if compareJSON {
		out, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal comparison: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}
	return outputComparison(cmd, outcomes)
}

func runStrategy(cmd *cobra.Command, doc *domain.Document, name domain.StrategyName) strategyOutcome {
	strategy, err := domain.NewStrategy(name, "")
	if err != nil {
		return strategyOutcome{Strategy: name, Err: err.Error()}
	}

	result, err := anonymizerService.Anonymize(cmd.Context(), doc, strategy)
	if err != nil {
		return strategyOutcome{Strategy: name, Err: err.Error()}
	}

	report := resistanceService.RunAll(cmd.Context(), doc.Text, result.Text)
	subs := scoringService.StrategicValue(doc.Text, result.Text)
	overall := scoringService.CalculateOverallScore(report, subs)

	return strategyOutcome{
		Strategy:   name,
		Overall:    overall,
		Resistance: overall.Resistance,
		Strategic:  overall.StrategicValue,
	}
}

func outputComparison(cmd *cobra.Command, outcomes []strategyOutcome) error {
	cmd.Printf("%-14s %8s %12s %11s  %s\n", "strategy", "overall", "resistance", "strategic", "tier")
	for _, outcome := range outcomes {
		if outcome.Err != "" {
			cmd.Printf("%-14s failed: %s\n", outcome.Strategy, outcome.Err)
			continue
		}
		cmd.Printf("%-14s %8.1f %12.1f %11.1f  %s\n",
			outcome.Strategy, outcome.Overall.Overall, outcome.Resistance,
			outcome.Strategic, outcome.Overall.Quality.Tier)
	}

	for _, outcome := range outcomes {
		if outcome.Err == "" {
			cmd.Printf("\nBest strategy: %s (%.1f/100)\n", outcome.Strategy, outcome.Overall.Overall)
			break
		}
	}
	return nil
}
