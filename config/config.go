package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AIConfig configures the OpenAI-compatible embedding and judge backends.
type AIConfig struct {
	EmbeddingHost  string `yaml:"embedding_host"`
	JudgeHost      string `yaml:"judge_host"`
	EmbeddingModel string `yaml:"embedding_model"`
	JudgeModel     string `yaml:"judge_model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	EmbeddingDim   int    `yaml:"embedding_dim"`
	JudgeEnabled   bool   `yaml:"judge_enabled"`
}

// RetrievalConfig tunes the candidate funnel.
type RetrievalConfig struct {
	LexicalTopK   int     `yaml:"lexical_top_k"`
	RerankTopK    int     `yaml:"rerank_top_k"`
	MinSimilarity float64 `yaml:"min_similarity"`
}

// AdjudicationConfig tunes the LLM adjudication stage.
type AdjudicationConfig struct {
	PoolSize    int           `yaml:"pool_size"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	CorpusPath   string             `yaml:"corpus_path"`
	CachePath    string             `yaml:"cache_path"`
	AI           AIConfig           `yaml:"ai"`
	Retrieval    RetrievalConfig    `yaml:"retrieval"`
	Adjudication AdjudicationConfig `yaml:"adjudication"`
}

// Load reads a config from the given path. A missing file returns defaults;
// a present but malformed file is an error.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

// APIKey resolves the API key from the configured environment variable.
func (c *AppConfig) APIKey() string {
	if c.AI.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.AI.APIKeyEnv)
}

func applyDefaults(cfg *AppConfig) {
	if cfg.CorpusPath == "" {
		cfg.CorpusPath = "corpus.json"
	}
	if cfg.AI.EmbeddingHost == "" {
		cfg.AI.EmbeddingHost = "http://localhost:11434/v1"
	}
	if cfg.AI.JudgeHost == "" {
		cfg.AI.JudgeHost = cfg.AI.EmbeddingHost
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "embeddinggemma"
	}
	if cfg.AI.JudgeModel == "" {
		cfg.AI.JudgeModel = "gpt-4o-mini"
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = "CLAUSECHECK_API_KEY"
	}
	if cfg.AI.EmbeddingDim == 0 {
		cfg.AI.EmbeddingDim = 384
	}
	if cfg.Retrieval.LexicalTopK == 0 {
		cfg.Retrieval.LexicalTopK = 200
	}
	if cfg.Retrieval.RerankTopK == 0 {
		cfg.Retrieval.RerankTopK = 20
	}
	if cfg.Retrieval.MinSimilarity == 0 {
		cfg.Retrieval.MinSimilarity = 0.70
	}
	if cfg.Adjudication.PoolSize == 0 {
		cfg.Adjudication.PoolSize = 8
	}
	if cfg.Adjudication.MaxAttempts == 0 {
		cfg.Adjudication.MaxAttempts = 3
	}
	if cfg.Adjudication.RetryDelay == 0 {
		cfg.Adjudication.RetryDelay = 500 * time.Millisecond
	}
}
