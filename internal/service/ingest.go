package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"creditrust/internal/dataset"
	"creditrust/internal/domain"
)

// IngestPipeline rebuilds the vector index from the filtered complaint CSV:
// stratified sampling, document building, chunking, embedding, persistence.
// It takes an exclusive-write stance on the index; runs must not overlap
// with each other or with live readers. A failure partway guarantees
// nothing about partial persistence.
type IngestPipeline struct {
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	summarizer domain.Summarizer
	log        *slog.Logger
}

// IngestOptions carries per-run parameters.
type IngestOptions struct {
	FilteredCSV     string
	PerCategory     int
	Seed            int64
	Reset           bool
	Workers         int
	StateDir        string
	DigestSentences int
}

// NewIngestPipeline assembles the offline ingestion path.
func NewIngestPipeline(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, summarizer domain.Summarizer, log *slog.Logger) *IngestPipeline {
	return &IngestPipeline{
		chunker:    chunker,
		embedder:   embedder,
		store:      store,
		summarizer: summarizer,
		log:        log,
	}
}

// stateful is implemented by embedders whose model must survive the
// process, such as TF-IDF.
type stateful interface {
	SaveState(dir string) error
}

// flusher is implemented by stores that snapshot to disk.
type flusher interface {
	Flush() error
}

// Run executes the full ingestion sequence. The filtered CSV is a
// precondition produced by the raw-filter step; its absence aborts the run.
func (p *IngestPipeline) Run(ctx context.Context, opts IngestOptions) error {
	records, _, err := dataset.ReadCSV(opts.FilteredCSV)
	if err != nil {
		var missing *domain.MissingInputError
		if errors.As(err, &missing) {
			return &domain.MissingInputError{
				Path: opts.FilteredCSV,
				Hint: "run the raw complaint filter step first",
			}
		}
		return err
	}
	p.log.Info("loaded filtered complaints", "rows", len(records))

	sampled, err := dataset.StratifiedSample(records, dataset.ColProduct, opts.PerCategory, opts.Seed)
	if err != nil {
		return err
	}
	p.log.Info("stratified sample drawn", "rows", len(sampled), "per_category", opts.PerCategory)

	var docs []domain.Document
	for _, rec := range sampled {
		doc, err := dataset.BuildDocument(rec)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	var chunks []domain.Document
	var texts []string
	for _, doc := range docs {
		parts, err := p.chunker.Split(doc)
		if err != nil {
			return err
		}
		for _, part := range parts {
			chunks = append(chunks, part)
			texts = append(texts, part.Content)
		}
	}
	if len(chunks) == 0 {
		return errors.New("no chunks produced from sampled complaints")
	}
	p.log.Info("narratives chunked", "documents", len(docs), "chunks", len(chunks))

	if err := p.embedder.Prepare(texts); err != nil {
		return fmt.Errorf("prepare embedder: %w", err)
	}

	if opts.Reset {
		p.log.Warn("resetting existing index")
		if err := p.store.Reset(); err != nil {
			return fmt.Errorf("reset index: %w", err)
		}
	}

	vectors := make([][]float64, len(chunks))
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range chunks {
		i := i
		g.Go(func() error {
			vec, err := p.embedder.Embed(chunks[i].Content)
			if err != nil {
				return fmt.Errorf("embed chunk %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := p.store.Init(len(vectors[0])); err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	if err := p.store.Upsert(chunks, vectors); err != nil {
		return fmt.Errorf("persist chunks: %w", err)
	}
	if fl, ok := p.store.(flusher); ok {
		if err := fl.Flush(); err != nil {
			return fmt.Errorf("flush index: %w", err)
		}
	}
	if st, ok := p.embedder.(stateful); ok && opts.StateDir != "" {
		if err := st.SaveState(opts.StateDir); err != nil {
			return fmt.Errorf("save embedder state: %w", err)
		}
	}

	if p.summarizer != nil {
		var corpus strings.Builder
		for _, doc := range docs {
			corpus.WriteString(doc.Content)
			corpus.WriteString("\n")
		}
		digest, err := p.summarizer.Summarize(corpus.String(), opts.DigestSentences)
		if err == nil && digest != "" {
			p.log.Info("ingested corpus digest", "digest", digest)
		}
	}

	p.log.Info("ingestion complete", "chunks", len(chunks), "dimension", len(vectors[0]))
	return nil
}
