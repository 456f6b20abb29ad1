// Package cli provides the command-line interface for anoncheck.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/veilworks/anoncheck-cli/internal/adapters/driven/config/file"
	"github.com/veilworks/anoncheck-cli/internal/adapters/driven/llm/ollama"
	"github.com/veilworks/anoncheck-cli/internal/adapters/driven/storage/sqlite"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driving"
	"github.com/veilworks/anoncheck-cli/internal/core/services"
	"github.com/veilworks/anoncheck-cli/internal/extractors/regex"
	"github.com/veilworks/anoncheck-cli/internal/logger"
	"github.com/veilworks/anoncheck-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags.
var (
	verboseFlag bool
	configDir   string
	offlineFlag bool
)

// Services wired at startup. Tests replace these directly.
var (
	configStore       *file.ConfigStore
	store             *sqlite.Store
	corpusStore       driven.CorpusStore
	llmService        driven.LLMService
	processorService  driving.ProcessorService
	resistanceService driving.ResistanceService
	scoringService    driving.ScoringService
	anonymizerService driving.AnonymizerService
	chunkerService    driven.Chunker

	servicesReady bool
)

var rootCmd = &cobra.Command{
	Use:   "anoncheck",
	Short: "Anonymization quality scoring for legal documents",
	Long: `Anoncheck chunks legal documents, anonymizes them through a local
LLM, and scores anonymization quality by running a battery of
re-identification probes against the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return initServices(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.anoncheck)")
	rootCmd.PersistentFlags().BoolVar(&offlineFlag, "offline", false, "skip the LLM; LLM-backed features degrade")
}

// initServices wires the adapters and services from configuration.
// Idempotent so that tests can pre-install fakes.
func initServices(cmd *cobra.Command) error {
	if servicesReady {
		return nil
	}

	var err error
	configStore, err = file.NewConfigStore(configDir)
	if err != nil {
		return err
	}
	logger.Debug("Config: %s", configStore.Path())

	scoring, err := configStore.ScoringConfig()
	if err != nil {
		return err
	}
	limits := configStore.Limits()

	store, err = sqlite.NewStore(configDir)
	if err != nil {
		return err
	}
	corpusStore = store.CorpusStore()

	extractor := regex.New()
	chunkerService = chunker.New(
		chunker.WithChunkBudget(limits.ChunkBudget),
		chunker.WithOverlapBudget(limits.OverlapBudget),
	)

	llmService = connectLLM(cmd)

	processorService = services.NewProcessorService(chunkerService, extractor, corpusStore,
		services.WithMaxWordCount(limits.MaxWordCount))
	resistanceService, err = services.NewResistanceService(extractor, corpusStore, llmService, scoring)
	if err != nil {
		return err
	}
	scoringService, err = services.NewScoringService(scoring)
	if err != nil {
		return err
	}
	anonymizerService = services.NewAnonymizerService(llmService)

	servicesReady = true
	return nil
}

// connectLLM builds the Ollama client and checks it is reachable.
// An unreachable service degrades to nil: anonymization and the
// contextual reconstruction probe then report their own failures.
func connectLLM(cmd *cobra.Command) driven.LLMService {
	if offlineFlag {
		logger.Debug("Offline mode, skipping LLM")
		return nil
	}

	ollamaCfg := configStore.Ollama()
	svc := ollama.NewLLMService(ollama.LLMConfig{
		BaseURL: ollamaCfg.Endpoint,
		Model:   ollamaCfg.Model,
		Timeout: ollamaCfg.Timeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		cmd.PrintErrf("Warning: LLM unavailable at %s (%v); LLM-backed features degrade\n",
			ollamaCfg.Endpoint, err)
		return nil
	}
	logger.Debug("LLM: %s at %s", ollamaCfg.Model, ollamaCfg.Endpoint)
	return svc
}

// Execute runs the root command and releases resources afterwards.
func Execute() error {
	defer func() {
		if store != nil {
			_ = store.Close()
		}
		if llmService != nil {
			_ = llmService.Close()
		}
	}()
	return rootCmd.Execute()
}
