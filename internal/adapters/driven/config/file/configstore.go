package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Default application settings.
const (
	DefaultOllamaEndpoint = "http://localhost:11434"
	DefaultOllamaModel    = "llama3:8b-instruct"
	DefaultOllamaTimeout  = 120

	DefaultChunkBudget   = 4000
	DefaultOverlapBudget = 200
	DefaultMaxWordCount  = 50000
)

// OllamaConfig holds the LLM connection settings.
type OllamaConfig struct {
	Endpoint       string `toml:"endpoint"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (c OllamaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LimitsConfig holds document intake and chunking limits.
type LimitsConfig struct {
	ChunkBudget   int `toml:"chunk_budget"`
	OverlapBudget int `toml:"overlap_budget"`
	MaxWordCount  int `toml:"max_word_count"`
}

// fileConfig is the full on-disk configuration shape. Absent keys
// keep their defaults.
type fileConfig struct {
	Ollama  OllamaConfig         `toml:"ollama"`
	Limits  LimitsConfig         `toml:"limits"`
	Scoring domain.ScoringConfig `toml:"scoring"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Ollama: OllamaConfig{
			Endpoint:       DefaultOllamaEndpoint,
			Model:          DefaultOllamaModel,
			TimeoutSeconds: DefaultOllamaTimeout,
		},
		Limits: LimitsConfig{
			ChunkBudget:   DefaultChunkBudget,
			OverlapBudget: DefaultOverlapBudget,
			MaxWordCount:  DefaultMaxWordCount,
		},
		Scoring: domain.DefaultScoringConfig(),
	}
}

// ConfigStore is a file-based configuration store using TOML.
// Values from the file are merged onto the built-in defaults at load
// time; a missing file means all defaults.
type ConfigStore struct {
	filePath string
	cfg      fileConfig
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.anoncheck/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".anoncheck")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		cfg:      defaultFileConfig(),
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

// load merges the config file onto the defaults. A missing file is
// not an error.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	// Unmarshal on top of the defaults: only keys present in the
	// file are overwritten.
	if err := toml.Unmarshal(data, &s.cfg); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.cfg.Scoring.Vocabulary = mergeVocabulary(s.cfg.Scoring.Vocabulary)
	return nil
}

// mergeVocabulary restores the default term lists for any list the
// file left empty.
func mergeVocabulary(v domain.Vocabulary) domain.Vocabulary {
	defaults := domain.DefaultVocabulary()
	if len(v.LegalTerms) == 0 {
		v.LegalTerms = defaults.LegalTerms
	}
	if len(v.ReasoningTerms) == 0 {
		v.ReasoningTerms = defaults.ReasoningTerms
	}
	if len(v.EducationalTerms) == 0 {
		v.EducationalTerms = defaults.EducationalTerms
	}
	if len(v.AbstractTerms) == 0 {
		v.AbstractTerms = defaults.AbstractTerms
	}
	if len(v.BusinessTerms) == 0 {
		v.BusinessTerms = defaults.BusinessTerms
	}
	if len(v.StrategicPhrases) == 0 {
		v.StrategicPhrases = defaults.StrategicPhrases
	}
	if len(v.ProceduralTerms) == 0 {
		v.ProceduralTerms = defaults.ProceduralTerms
	}
	if len(v.ConfidenceIndicators) == 0 {
		v.ConfidenceIndicators = defaults.ConfidenceIndicators
	}
	if len(v.DetailCategories) == 0 {
		v.DetailCategories = defaults.DetailCategories
	}
	return v
}

// ScoringConfig returns the validated scoring configuration.
func (s *ConfigStore) ScoringConfig() (domain.ScoringConfig, error) {
	if err := s.cfg.Scoring.Validate(); err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("config %s: %w", s.filePath, err)
	}
	return s.cfg.Scoring, nil
}

// Ollama returns the LLM connection settings.
func (s *ConfigStore) Ollama() OllamaConfig {
	return s.cfg.Ollama
}

// Limits returns the document intake and chunking limits.
func (s *ConfigStore) Limits() LimitsConfig {
	return s.cfg.Limits
}

// Path returns the backing file path, for display.
func (s *ConfigStore) Path() string {
	return s.filePath
}
