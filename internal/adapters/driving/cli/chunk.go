package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

var chunkJSON bool

var chunkCmd = &cobra.Command{
	Use:   "chunk [file]",
	Short: "Preview how a document splits into chunks",
	Long: `Splits a document into token-budgeted chunks without touching the
corpus. Paragraphs are packed up to the chunk budget; oversized
paragraphs fall back to sentence granularity. Consecutive chunks
overlap so context survives the boundaries.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().BoolVar(&chunkJSON, "json", false, "output chunks as JSON")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	if chunkerService == nil {
		return errors.New("chunker not initialised")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %q: %w", args[0], err)
	}

	chunks := chunkerService.Chunk(string(data))

	if chunkJSON {
		return outputChunksJSON(cmd, chunks)
	}
	return outputChunksTable(cmd, chunks)
}

func outputChunksJSON(cmd *cobra.Command, chunks []domain.Chunk) error {
	out, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chunks: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func outputChunksTable(cmd *cobra.Command, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		cmd.Println("No chunks produced (empty document).")
		return nil
	}

	cmd.Printf("%d chunks:\n\n", len(chunks))
	for _, chunk := range chunks {
		cmd.Printf("  [%d] ~%d tokens\n", chunk.Sequence, chunk.EstimatedTokens)
		cmd.Printf("      %s\n\n", preview(chunk.Text, 80))
	}
	return nil
}

// preview shortens text to a single display line.
func preview(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
