package domain

import "context"

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Chunker splits a document into bounded, overlapping evidence units.
// Chunks inherit the parent document's metadata verbatim.
type Chunker interface {
	Split(doc Document) ([]Document, error)
}

// VectorStore persists vectors and supports similarity search. Reset drops
// the whole index; there is no partial-merge mode.
type VectorStore interface {
	Init(dimension int) error
	Upsert(docs []Document, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Reset() error
}

// Generator produces a chat completion for a prompt. A non-nil error carries
// a user-presentable message in Error(); callers on the query path flatten it
// to text rather than propagating it.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}
