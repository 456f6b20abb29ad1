package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

var (
	anonymizeStrategy   string
	anonymizeGuidelines string
	anonymizeOutput     string
	anonymizeScore      bool
)

var anonymizeCmd = &cobra.Command{
	Use:   "anonymize [file]",
	Short: "Anonymize a document through the local LLM",
	Long: `Processes a document (clean, chunk, extract, register in the corpus)
and rewrites it chunk by chunk through the LLM using the chosen
strategy. With --score, the result is immediately scored against the
original.

Strategies: traditional, strategic, educational, custom (custom
requires --guidelines).`,
	Args: cobra.ExactArgs(1),
	RunE: runAnonymize,
}

func init() {
	anonymizeCmd.Flags().StringVar(&anonymizeStrategy, "strategy", string(domain.StrategyStrategic), "anonymization strategy")
	anonymizeCmd.Flags().StringVar(&anonymizeGuidelines, "guidelines", "", "guidelines for the custom strategy")
	anonymizeCmd.Flags().StringVarP(&anonymizeOutput, "output", "o", "", "write the anonymized text to this file instead of stdout")
	anonymizeCmd.Flags().BoolVar(&anonymizeScore, "score", false, "score the result against the original")
	rootCmd.AddCommand(anonymizeCmd)
}

func runAnonymize(cmd *cobra.Command, args []string) error {
	if processorService == nil || anonymizerService == nil {
		return errors.New("anonymization services not initialised")
	}

	strategy, err := domain.NewStrategy(domain.StrategyName(anonymizeStrategy), anonymizeGuidelines)
	if err != nil {
		return err
	}

	logger.Section("Processing")
	doc, err := processorService.ProcessFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	logger.Debug("Document %s: %d words, %d chunks", doc.Filename, doc.WordCount, len(doc.Chunks))

	logger.Section("Anonymizing")
	result, err := anonymizerService.Anonymize(cmd.Context(), doc, strategy)
	if err != nil {
		return err
	}

	for _, failed := range result.FailedChunks {
		cmd.PrintErrf("Warning: chunk %d failed: %s\n", failed.Sequence, failed.Reason)
	}

	if anonymizeOutput != "" {
		if err := os.WriteFile(anonymizeOutput, []byte(result.Text), 0o600); err != nil {
			return fmt.Errorf("write %q: %w", anonymizeOutput, err)
		}
		cmd.Printf("Anonymized %d/%d chunks with the %s strategy -> %s\n",
			result.ChunksProcessed, len(doc.Chunks), result.Strategy, anonymizeOutput)
	} else {
		cmd.Println(result.Text)
	}

	if anonymizeScore {
		return scoreAnonymized(cmd, doc.Text, result.Text)
	}
	return nil
}

// scoreAnonymized runs the probe battery and strategic value analysis
// on a freshly anonymized document.
func scoreAnonymized(cmd *cobra.Command, original, anonymized string) error {
	if resistanceService == nil || scoringService == nil {
		return errors.New("scoring services not initialised")
	}

	logger.Section("Scoring")
	report := resistanceService.RunAll(cmd.Context(), original, anonymized)
	subs := scoringService.StrategicValue(original, anonymized)
	overall := scoringService.CalculateOverallScore(report, subs)

	return outputScoreReport(cmd, scoreReport{
		Overall: overall,
		Probes:  report.Results,
		Risk:    report.Risk,
		Advice:  report.Recommendations,
	})
}
