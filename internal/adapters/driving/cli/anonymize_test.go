package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

func writeAnonymizeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.txt")
	require.NoError(t, os.WriteFile(path, []byte("John Smith sued Acme Corp."), 0o600))
	return path
}

func TestAnonymizeCmd_Use(t *testing.T) {
	assert.Equal(t, "anonymize [file]", anonymizeCmd.Use)
}

func TestAnonymizeCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"anonymize"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAnonymizeCmd_DefaultStrategy(t *testing.T) {
	flag := anonymizeCmd.Flags().Lookup("strategy")
	require.NotNil(t, flag)
	assert.Equal(t, "strategic", flag.DefValue)
}

func TestAnonymizeCmd_ExecutesToStdout(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"anonymize", writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[PARTY_A]")
}

func TestAnonymizeCmd_WritesOutputFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := filepath.Join(t.TempDir(), "out.txt")
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"anonymize", "--output", out, writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		anonymizeOutput = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Anonymized 1/1 chunks with the strategic strategy")

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "[PARTY_A]")
}

func TestAnonymizeCmd_UnknownStrategy(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"anonymize", "--strategy", "aggressive", writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		anonymizeStrategy = string(domain.StrategyStrategic)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestAnonymizeCmd_CustomStrategyRequiresGuidelines(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"anonymize", "--strategy", "custom", writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		anonymizeStrategy = string(domain.StrategyStrategic)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrGuidelinesRequired)
}

func TestAnonymizeCmd_WithScore(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"anonymize", "--score", writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		anonymizeScore = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "[PARTY_A]")
	assert.Contains(t, buf.String(), "Overall score: 93.0/100")
}

func TestAnonymizeCmd_AnonymizerError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	anonymizerService = &mockAnonymizerService{err: errors.New("llm down")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"anonymize", writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "llm down")
}

func TestAnonymizeCmd_ServicesNotInitialised(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	anonymizerService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"anonymize", writeAnonymizeInput(t)})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialised")
}
