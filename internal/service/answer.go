// Package service composes the complaint-intelligence pipelines: the
// offline ingestion path that builds the vector index and the online answer
// chain that turns a question into a grounded response with evidence.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"creditrust/internal/domain"
)

// AllCategories is the filter sentinel meaning no category qualification.
const AllCategories = "All Products"

// RAGService is the online query path: retrieve evidence, assemble the
// grounded prompt, call the model, return text plus evidence. Safe for
// concurrent use; the index is read-only during querying.
type RAGService struct {
	embedder  domain.Embedder
	store     domain.VectorStore
	generator domain.Generator
	topK      int
	log       *slog.Logger
}

// NewRAGService assembles the answer chain.
func NewRAGService(embedder domain.Embedder, store domain.VectorStore, generator domain.Generator, topK int, log *slog.Logger) *RAGService {
	if topK <= 0 {
		topK = 3
	}
	return &RAGService{
		embedder:  embedder,
		store:     store,
		generator: generator,
		topK:      topK,
		log:       log,
	}
}

// Answer runs the query-to-answer transformation. It is total: retrieval
// and model failures degrade to error text in Result rather than escaping,
// so the chat loop never breaks on a transient hiccup. The returned Result
// is the raw model text; callers split out any reasoning block before
// display.
func (s *RAGService) Answer(ctx context.Context, query, categoryFilter string) domain.Answer {
	qualified := query
	if categoryFilter != "" && categoryFilter != AllCategories {
		// A soft re-ranking nudge, not a hard filter on the index.
		qualified = fmt.Sprintf("%s (Context: %s)", query, categoryFilter)
	}

	vec, err := s.embedder.Embed(qualified)
	if err != nil {
		s.log.Error("query embedding failed", "error", err)
		return domain.Answer{Result: fmt.Sprintf("Error retrieving evidence: %v", err)}
	}
	results, err := s.store.Search(vec, s.topK)
	if err != nil {
		s.log.Error("evidence search failed", "error", err)
		return domain.Answer{Result: fmt.Sprintf("Error retrieving evidence: %v", err)}
	}

	docs := make([]domain.Document, 0, len(results))
	contents := make([]string, 0, len(results))
	for _, r := range results {
		docs = append(docs, r.Document)
		contents = append(contents, r.Document.Content)
	}
	contextBlock := strings.Join(contents, "\n\n")

	prompt := renderPrompt(contextBlock, qualified)
	text, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		// The fault's Error() is the display message by contract.
		text = err.Error()
	}
	s.log.Debug("answer generated", "evidence", len(docs), "chars", len(text))
	return domain.Answer{Result: text, SourceDocuments: docs}
}
