package commands

import (
	"errors"
	"fmt"

	"github.com/opsmind/opsmind/agent"
	"github.com/opsmind/opsmind/config"
	"github.com/opsmind/opsmind/llm"
	"github.com/opsmind/opsmind/memory"
	"github.com/opsmind/opsmind/memory/embedder/cached"
	embedollama "github.com/opsmind/opsmind/memory/embedder/ollama"
	embedopenai "github.com/opsmind/opsmind/memory/embedder/openai"
	"github.com/opsmind/opsmind/retrieval"
	"github.com/opsmind/opsmind/store"
	"github.com/opsmind/opsmind/store/chromem"
)

// buildAgent wires the full pipeline from config: vector store,
// embedder, memory manager, retriever, and generation backend.
//
// The static KB collection must already exist (built by `opsmind
// ingest`); its absence is a startup error. The memory collection is
// created lazily on first run.
func buildAgent(cfg config.Config) (*agent.Agent, error) {
	db, err := chromem.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	static, err := db.Collection(cfg.StaticCollection)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			return nil, fmt.Errorf("static collection %q not found in %s; run `opsmind ingest` first", cfg.StaticCollection, cfg.DBPath)
		}
		return nil, err
	}
	logger.Info("static collection loaded", "name", cfg.StaticCollection, "docs", static.Count())

	memCol, err := db.EnsureCollection(cfg.MemoryCollection)
	if err != nil {
		return nil, err
	}
	logger.Info("memory collection ready", "name", cfg.MemoryCollection, "records", memCol.Count())

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, err
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		return nil, err
	}

	manager := memory.NewManager(memCol, embedder, logger, &memory.Config{
		RecallTopK: cfg.RecallTopK,
	})
	retriever := retrieval.NewRetriever(static, embedder, logger, cfg.MaxContextDocs)

	return agent.New(manager, retriever, generator, logger, &agent.Config{
		MemorySize: cfg.MemorySize,
		RecallTopK: cfg.RecallTopK,
	}), nil
}

func buildEmbedder(cfg config.Config) (memory.Embedder, error) {
	var (
		inner memory.Embedder
		err   error
	)
	switch cfg.EmbedProvider {
	case "openai":
		inner, err = embedopenai.New(cfg.OpenAIKey)
	default:
		inner, err = embedollama.New(cfg.OllamaHost, cfg.EmbeddingModel, cfg.EmbeddingDims)
	}
	if err != nil {
		return nil, err
	}
	return cached.New(inner, cfg.EmbedCacheSize)
}

func buildGenerator(cfg config.Config) (llm.Generator, error) {
	switch cfg.Generator {
	case "anthropic":
		return llm.NewAnthropic(llm.AnthropicConfig{
			APIKey: cfg.AnthropicKey,
			Model:  cfg.Model,
		})
	default:
		return llm.NewOllama(llm.OllamaConfig{
			Host:  cfg.OllamaHost,
			Model: cfg.Model,
		})
	}
}
