package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataConfig locates the complaint datasets and controls sampling.
type DataConfig struct {
	RawCSV            string   `yaml:"raw_csv"`
	FilteredCSV       string   `yaml:"filtered_csv"`
	SamplePerCategory int      `yaml:"sample_per_category"`
	SampleSeed        int64    `yaml:"sample_seed"`
	TargetProducts    []string `yaml:"target_products"`
}

// ChunkerConfig configures how narratives are split into chunks.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Dir    string        `yaml:"dir"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// LLMConfig configures the chat-completion endpoint used for answers.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// RetrieverConfig controls evidence retrieval for the answer chain.
type RetrieverConfig struct {
	TopK int `yaml:"top_k"`
}

// SummarizerConfig controls the post-ingest corpus digest.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data        DataConfig        `yaml:"data"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	LLM         LLMConfig         `yaml:"llm"`
	Retriever   RetrieverConfig   `yaml:"retriever"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults. The returned config is always validated.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/creditrust/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configurations the pipeline cannot run with. Invalid
// chunking parameters are a startup failure, not a call-time one.
func (cfg *AppConfig) Validate() error {
	if cfg.Chunker.ChunkSize <= 0 {
		return fmt.Errorf("chunker: chunk_size must be positive, got %d", cfg.Chunker.ChunkSize)
	}
	if cfg.Chunker.ChunkOverlap < 0 {
		return fmt.Errorf("chunker: chunk_overlap must not be negative, got %d", cfg.Chunker.ChunkOverlap)
	}
	if cfg.Chunker.ChunkOverlap >= cfg.Chunker.ChunkSize {
		return fmt.Errorf("chunker: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			cfg.Chunker.ChunkOverlap, cfg.Chunker.ChunkSize)
	}
	if cfg.Data.SamplePerCategory <= 0 {
		return fmt.Errorf("data: sample_per_category must be positive, got %d", cfg.Data.SamplePerCategory)
	}
	if cfg.Retriever.TopK <= 0 {
		return fmt.Errorf("retriever: top_k must be positive, got %d", cfg.Retriever.TopK)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "creditrust", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Data.RawCSV == "" {
		cfg.Data.RawCSV = filepath.Join("data", "raw", "complaints.csv")
	}
	if cfg.Data.FilteredCSV == "" {
		cfg.Data.FilteredCSV = filepath.Join("data", "processed", "filtered_complaints.csv")
	}
	if cfg.Data.SamplePerCategory == 0 {
		cfg.Data.SamplePerCategory = 300
	}
	if cfg.Data.SampleSeed == 0 {
		cfg.Data.SampleSeed = 42
	}
	if len(cfg.Data.TargetProducts) == 0 {
		cfg.Data.TargetProducts = []string{
			"Credit card",
			"Credit card or prepaid card",
			"Checking or savings account",
			"Money transfer, virtual currency, or money service",
			"Personal loan",
		}
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 500
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = 50
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Dir == "" {
		cfg.VectorStore.Dir = filepath.Join("data", "processed", "vector_store")
	}
	if cfg.VectorStore.Type == "qdrant" && cfg.VectorStore.Qdrant != nil {
		if cfg.VectorStore.Qdrant.Collection == "" {
			cfg.VectorStore.Qdrant.Collection = "complaints"
		}
		if cfg.VectorStore.Qdrant.TimeoutSecs == 0 {
			cfg.VectorStore.Qdrant.TimeoutSecs = 15
		}
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://router.huggingface.co/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "deepseek-ai/DeepSeek-R1"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "HUGGINGFACEHUB_API_TOKEN"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 500
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 120
	}
	if cfg.Retriever.TopK == 0 {
		cfg.Retriever.TopK = 3
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 5
	}
}
