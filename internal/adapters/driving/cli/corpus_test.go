package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

func TestCorpusCmd_HasSubcommands(t *testing.T) {
	commands := corpusCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "count")
}

func TestCorpusAddCmd_RequiresAtLeastOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"corpus", "add"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestCorpusAddCmd_ProcessesFiles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"corpus", "add", "a.txt", "b.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Added a.txt")
	assert.Contains(t, buf.String(), "Added b.txt")
}

func TestCorpusAddCmd_ReportsFailures(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	processorService = &mockProcessorService{err: domain.ErrEmptyDocument}

	buf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs([]string{"corpus", "add", filepath.Join(t.TempDir(), "empty.txt")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, errBuf.String(), "Failed:")
	assert.Contains(t, buf.String(), "1 of 1 files failed")
}

func TestCorpusListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"corpus", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Corpus is empty.")
}

func TestCorpusListCmd_ShowsEntries(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusStore = &mockCorpusStore{entries: []domain.CorpusEntry{
		{ID: "entry-1", Filename: "smith-v-acme.txt", Text: "one two three"},
	}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"corpus", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "entry-1")
	assert.Contains(t, buf.String(), "smith-v-acme.txt (3 words, 0 patterns)")
}

func TestCorpusCountCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusStore = &mockCorpusStore{entries: []domain.CorpusEntry{{ID: "a"}, {ID: "b"}}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"corpus", "count"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "2 entries")
}

func TestCorpusListCmd_StoreNotInitialised(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	corpusStore = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"corpus", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialised")
}
