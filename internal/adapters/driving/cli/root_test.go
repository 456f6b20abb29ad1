package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driving"
)

// setupTestServices installs mock services so commands can execute
// without configuration, a database or an LLM. The returned cleanup
// restores the previous wiring.
func setupTestServices() func() {
	oldProcessor := processorService
	oldResistance := resistanceService
	oldScoring := scoringService
	oldAnonymizer := anonymizerService
	oldChunker := chunkerService
	oldCorpus := corpusStore
	oldReady := servicesReady

	processorService = &mockProcessorService{}
	resistanceService = &mockResistanceService{}
	scoringService = &mockScoringService{}
	anonymizerService = &mockAnonymizerService{}
	chunkerService = &mockChunkerService{}
	corpusStore = &mockCorpusStore{}
	servicesReady = true

	return func() {
		processorService = oldProcessor
		resistanceService = oldResistance
		scoringService = oldScoring
		anonymizerService = oldAnonymizer
		chunkerService = oldChunker
		corpusStore = oldCorpus
		servicesReady = oldReady
	}
}

type mockProcessorService struct {
	err error
}

func (m *mockProcessorService) ProcessText(_ context.Context, filename, text string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{
		ID:        "doc-1",
		Filename:  filename,
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Chunks:    []domain.Chunk{{Sequence: 0, Text: text, EstimatedTokens: len(text) / 4}},
	}, nil
}

func (m *mockProcessorService) ProcessFile(ctx context.Context, path string) (*domain.Document, error) {
	return m.ProcessText(ctx, path, "Mock document content for testing.")
}

func (m *mockProcessorService) ProcessBatch(ctx context.Context, paths []string) []driving.BatchResult {
	results := make([]driving.BatchResult, 0, len(paths))
	for _, path := range paths {
		doc, err := m.ProcessFile(ctx, path)
		results = append(results, driving.BatchResult{Path: path, Document: doc, Err: err})
	}
	return results
}

type mockResistanceService struct{}

func (m *mockResistanceService) RunAll(_ context.Context, _, _ string) *domain.ResistanceReport {
	results := make(map[domain.ProbeName]domain.ProbeResult, len(domain.ProbeNames()))
	for _, name := range domain.ProbeNames() {
		results[name] = domain.NewProbeResult(95, nil)
	}
	return &domain.ResistanceReport{
		Results:         results,
		ResistanceScore: 95,
		Risk: domain.RiskAssessment{
			LowRisk: domain.ProbeNames(),
			Overall: domain.RiskLow,
		},
		Recommendations: []string{"Anonymization quality is good - no major improvements needed"},
	}
}

type mockScoringService struct{}

func (m *mockScoringService) StrategicValue(_, _ string) domain.StrategicSubScores {
	return domain.StrategicSubScores{
		LegalPrincipleRetention: 90,
		EducationalValue:        90,
		BusinessIntelligence:    90,
		ProceduralGuidance:      90,
	}
}

func (m *mockScoringService) CalculateOverallScore(report *domain.ResistanceReport, _ domain.StrategicSubScores) domain.OverallScore {
	return domain.OverallScore{
		Overall:        93,
		Resistance:     report.ResistanceScore,
		StrategicValue: 90,
		Quality: domain.TierInfo{
			Tier:           domain.TierExcellent,
			Description:    "Excellent anonymization with preserved strategic value",
			Recommendation: "Ready for production use",
		},
	}
}

type mockAnonymizerService struct {
	err error
}

func (m *mockAnonymizerService) Anonymize(_ context.Context, doc *domain.Document, strategy domain.Strategy) (*driving.AnonymizationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.AnonymizationResult{
		Text:            "The [PARTY_A] filed a claim against [PARTY_B].",
		Strategy:        strategy.Name(),
		ChunksProcessed: len(doc.Chunks),
	}, nil
}

type mockChunkerService struct{}

func (m *mockChunkerService) Name() string { return "mock" }

func (m *mockChunkerService) Chunk(text string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []domain.Chunk{{Sequence: 0, Text: text, EstimatedTokens: len(text) / 4}}
}

type mockCorpusStore struct {
	entries []domain.CorpusEntry
}

func (m *mockCorpusStore) Append(_ context.Context, entry domain.CorpusEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockCorpusStore) All(_ context.Context) ([]domain.CorpusEntry, error) {
	return m.entries, nil
}

func (m *mockCorpusStore) Count(_ context.Context) (int, error) {
	return len(m.entries), nil
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "anoncheck", rootCmd.Use)
}

func TestRootCmd_HasPersistentFlags(t *testing.T) {
	verbose := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("offline"))
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "chunk")
	assert.Contains(t, commandNames, "score")
	assert.Contains(t, commandNames, "anonymize")
	assert.Contains(t, commandNames, "compare")
	assert.Contains(t, commandNames, "corpus")
	assert.Contains(t, commandNames, "version")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"nonexistent"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
