package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"creditrust/internal/config"
	"creditrust/internal/domain"
	"creditrust/internal/embedding/openai"
	"creditrust/internal/embedding/tfidf"
	"creditrust/internal/llm"
	"creditrust/internal/service"
	"creditrust/internal/tui"
	"creditrust/internal/vectorstore/memory"
	"creditrust/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		e := tfidf.NewEmbedder()
		if err := e.LoadState(cfg.VectorStore.Dir); err != nil {
			log.Error("tfidf model not found; run ingestion first", "error", err)
			os.Exit(1)
		}
		emb = e
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Error("openai embedder config missing")
			os.Exit(1)
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			log.Error("openai embedder init failed", "error", err)
			os.Exit(1)
		}
		emb = client
	default:
		log.Error("unknown embedder", "type", cfg.Embedder.Type)
		os.Exit(1)
	}

	var st domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		store := memory.NewStore(cfg.VectorStore.Dir)
		if err := store.Load(); err != nil {
			log.Error("vector index not found; run ingestion first", "error", err)
			os.Exit(1)
		}
		log.Info("vector index loaded", "documents", store.Len())
		st = store
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Error("qdrant config missing")
			os.Exit(1)
		}
		st = qdrant.NewStore(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Error("unknown vector store", "type", cfg.VectorStore.Type)
		os.Exit(1)
	}

	gen := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	}, log)

	svc := service.NewRAGService(emb, st, gen, cfg.Retriever.TopK, log)

	m := tui.New(svc, cfg.Data.TargetProducts)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Error("chat interface failed", "error", err)
		os.Exit(1)
	}
}
