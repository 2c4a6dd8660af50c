// Package config loads runtime configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration for opsmind.
type Config struct {
	// Vector store
	DBPath           string `yaml:"db_path"`
	StaticCollection string `yaml:"static_collection"`
	MemoryCollection string `yaml:"memory_collection"`

	// Generation backend: "ollama" or "anthropic"
	Generator    string `yaml:"generator"`
	OllamaHost   string `yaml:"ollama_host"`
	Model        string `yaml:"model"`
	AnthropicKey string `yaml:"anthropic_api_key"`

	// Embedding provider: "ollama" or "openai"
	EmbedProvider   string `yaml:"embed_provider"`
	EmbeddingModel  string `yaml:"embedding_model"`
	EmbeddingDims   int    `yaml:"embedding_dims"`
	OpenAIKey       string `yaml:"openai_api_key"`
	EmbedCacheSize  int64  `yaml:"embed_cache_size"`

	// Context assembly
	MaxContextDocs int `yaml:"max_context_docs"`
	MemorySize     int `yaml:"memory_size"`
	RecallTopK     int `yaml:"recall_top_k"`

	// Surfaces
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns a Config populated with safe defaults.
func Default() Config {
	return Config{
		DBPath:           "./opsmind-db",
		StaticCollection: "devops-kb",
		MemoryCollection: "memory-devops",
		Generator:        "ollama",
		OllamaHost:       "http://localhost:11434",
		Model:            "llama3",
		EmbedProvider:    "ollama",
		EmbeddingModel:   "nomic-embed-text",
		EmbeddingDims:    768,
		EmbedCacheSize:   4096,
		MaxContextDocs:   5,
		MemorySize:       3,
		RecallTopK:       3,
		ListenAddr:       ":8080",
		LogLevel:         "info",
	}
}

// Load loads config from disk; if path is empty or does not exist, the
// defaults are used. Environment variables override the file in either
// case.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setStr(&c.DBPath, "OPSMIND_DB_PATH")
	setStr(&c.StaticCollection, "OPSMIND_STATIC_COLLECTION")
	setStr(&c.MemoryCollection, "OPSMIND_MEMORY_COLLECTION")
	setStr(&c.Generator, "OPSMIND_GENERATOR")
	setStr(&c.OllamaHost, "OLLAMA_HOST")
	setStr(&c.Model, "OPSMIND_MODEL")
	setStr(&c.AnthropicKey, "ANTHROPIC_API_KEY")
	setStr(&c.EmbedProvider, "OPSMIND_EMBED_PROVIDER")
	setStr(&c.EmbeddingModel, "OPSMIND_EMBEDDING_MODEL")
	setInt(&c.EmbeddingDims, "OPSMIND_EMBEDDING_DIMS")
	setStr(&c.OpenAIKey, "OPENAI_API_KEY")
	setInt64(&c.EmbedCacheSize, "OPSMIND_EMBED_CACHE_SIZE")
	setInt(&c.MaxContextDocs, "OPSMIND_MAX_CONTEXT_DOCS")
	setInt(&c.MemorySize, "OPSMIND_MEMORY_SIZE")
	setInt(&c.RecallTopK, "OPSMIND_RECALL_TOP_K")
	setStr(&c.ListenAddr, "OPSMIND_LISTEN_ADDR")
	setStr(&c.LogLevel, "OPSMIND_LOG_LEVEL")
}

// Validate checks configuration sanity.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if c.StaticCollection == "" {
		return errors.New("static_collection must not be empty")
	}
	if c.MemoryCollection == "" {
		return errors.New("memory_collection must not be empty")
	}
	if c.StaticCollection == c.MemoryCollection {
		return errors.New("static_collection and memory_collection must differ")
	}
	switch c.Generator {
	case "ollama", "anthropic":
	default:
		return fmt.Errorf("generator must be ollama or anthropic, got %q", c.Generator)
	}
	switch c.EmbedProvider {
	case "ollama", "openai":
	default:
		return fmt.Errorf("embed_provider must be ollama or openai, got %q", c.EmbedProvider)
	}
	if c.MaxContextDocs < 1 {
		return errors.New("max_context_docs must be > 0")
	}
	if c.MemorySize < 1 {
		return errors.New("memory_size must be > 0")
	}
	if c.RecallTopK < 1 {
		return errors.New("recall_top_k must be > 0")
	}
	return nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = i
		}
	}
}
