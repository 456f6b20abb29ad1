package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
}

func TestNewConfigStore_NoFile(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())

	cfg, err := store.ScoringConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultScoringConfig(), cfg)

	assert.Equal(t, DefaultOllamaEndpoint, store.Ollama().Endpoint)
	assert.Equal(t, DefaultChunkBudget, store.Limits().ChunkBudget)
}

func TestConfigStore_PartialOverride(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[ollama]
model = "mistral"

[limits]
chunk_budget = 1000
`)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Overridden keys.
	assert.Equal(t, "mistral", store.Ollama().Model)
	assert.Equal(t, 1000, store.Limits().ChunkBudget)

	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultOllamaEndpoint, store.Ollama().Endpoint)
	assert.Equal(t, DefaultOverlapBudget, store.Limits().OverlapBudget)

	cfg, err := store.ScoringConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.30, cfg.Resistance.DirectIdentifier, 1e-9)
}

func TestConfigStore_ScoringOverride(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[scoring.overall]
resistance = 0.5
strategic_value = 0.5

[scoring.vocabulary]
legal_terms = ["lien", "estoppel"]
`)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	cfg, err := store.ScoringConfig()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Overall.Resistance, 1e-9)
	assert.Equal(t, []string{"lien", "estoppel"}, cfg.Vocabulary.LegalTerms)

	// Lists the file does not mention fall back to the defaults.
	assert.Equal(t, domain.DefaultVocabulary().ReasoningTerms, cfg.Vocabulary.ReasoningTerms)
}

func TestConfigStore_InvalidWeightsRejected(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
[scoring.overall]
resistance = 0.9
strategic_value = 0.9
`)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, err = store.ScoringConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeights)
}

func TestConfigStore_MalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "not [valid toml")

	_, err := NewConfigStore(tmpDir)
	require.Error(t, err)
}

func TestOllamaConfig_Timeout(t *testing.T) {
	cfg := OllamaConfig{TimeoutSeconds: 30}
	assert.Equal(t, "30s", cfg.Timeout().String())
}
