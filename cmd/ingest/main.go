package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"creditrust/internal/chunker"
	"creditrust/internal/config"
	"creditrust/internal/dataset"
	"creditrust/internal/domain"
	"creditrust/internal/embedding/openai"
	"creditrust/internal/embedding/tfidf"
	"creditrust/internal/service"
	"creditrust/internal/summarizer"
	"creditrust/internal/vectorstore/memory"
	"creditrust/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var runETL bool
	var reset bool
	var workers int
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	flag.BoolVar(&runETL, "etl", false, "Filter the raw complaint CSV before ingesting")
	flag.BoolVar(&reset, "reset", true, "Delete the existing index before ingesting")
	flag.IntVar(&workers, "workers", 4, "Concurrent embedding workers")
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

	if runETL {
		if _, err := dataset.FilterRaw(cfg.Data.RawCSV, cfg.Data.FilteredCSV, cfg.Data.TargetProducts, log); err != nil {
			log.Error("raw complaint filter failed", "error", err)
			os.Exit(1)
		}
	}

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
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
		st = memory.NewStore(cfg.VectorStore.Dir)
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

	ch := chunker.NewRecursiveSplitter(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	sum := summarizer.NewFrequencySummarizer()

	pipeline := service.NewIngestPipeline(ch, emb, st, sum, log)
	err = pipeline.Run(context.Background(), service.IngestOptions{
		FilteredCSV:     cfg.Data.FilteredCSV,
		PerCategory:     cfg.Data.SamplePerCategory,
		Seed:            cfg.Data.SampleSeed,
		Reset:           reset,
		Workers:         workers,
		StateDir:        cfg.VectorStore.Dir,
		DigestSentences: cfg.Summarizer.MaxSentences,
	})
	if err != nil {
		log.Error("ingestion failed", "error", err)
		os.Exit(1)
	}
}
