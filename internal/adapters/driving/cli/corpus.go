package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veilworks/anoncheck-cli/internal/logger"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the cross-reference corpus",
	Long: `The corpus holds every processed document. The cross-reference probe
compares anonymized text against it, so a richer corpus means a
stricter probe.`,
}

var corpusAddCmd = &cobra.Command{
	Use:   "add [files...]",
	Short: "Process files and add them to the corpus",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCorpusAdd,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List corpus entries",
	Args:  cobra.NoArgs,
	RunE:  runCorpusList,
}

var corpusCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of corpus entries",
	Args:  cobra.NoArgs,
	RunE:  runCorpusCount,
}

func init() {
	corpusCmd.AddCommand(corpusAddCmd)
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusCountCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusAdd(cmd *cobra.Command, args []string) error {
	if processorService == nil {
		return errors.New("processor service not initialised")
	}

	logger.Section("Processing batch")
	results := processorService.ProcessBatch(cmd.Context(), args)

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			cmd.PrintErrf("Failed: %s: %v\n", result.Path, result.Err)
			continue
		}
		cmd.Printf("Added %s (%d words, %d chunks)\n",
			result.Document.Filename, result.Document.WordCount, len(result.Document.Chunks))
	}

	if failed > 0 {
		cmd.Printf("%d of %d files failed\n", failed, len(results))
	}
	return nil
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("corpus store not initialised")
	}

	entries, err := corpusStore.All(cmd.Context())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("Corpus is empty.")
		return nil
	}

	for _, entry := range entries {
		cmd.Printf("%s  %s (%d words, %d patterns)\n",
			entry.ID, entry.Filename, len(strings.Fields(entry.Text)), len(entry.LegalPatterns))
	}
	return nil
}

func runCorpusCount(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("corpus store not initialised")
	}

	count, err := corpusStore.Count(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("%d entries\n", count)
	return nil
}
