// Package memory implements a brute-force cosine vector store persisted as
// a single snapshot file inside the index directory. Writes happen only
// during ingestion; the query path loads once and reads concurrently.
package memory

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"creditrust/internal/domain"
)

const indexFile = "index.gob"

// Store keeps embedded evidence documents in memory and snapshots them to
// its directory on Flush.
type Store struct {
	mu        sync.RWMutex
	dir       string
	dimension int
	docs      []domain.Document
	vectors   [][]float64
}

// NewStore creates a store rooted at dir. Nothing is read until Load.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Init sets the vector dimension and discards any in-memory state.
func (s *Store) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.docs = nil
	s.vectors = nil
	return nil
}

// Upsert appends documents with their vectors.
func (s *Store) Upsert(docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return errors.New("docs and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

// Search returns the topK most similar documents by descending score.
// Vectors are assumed L2-normalized, so the dot product is the cosine.
func (s *Store) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 3
	}
	idxs := make([]int, len(s.vectors))
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		idxs[i] = i
		scores[i] = dot(s.vectors[i], vector)
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{Document: s.docs[j], Score: scores[j]})
	}
	return results, nil
}

// Reset discards in-memory state and deletes the index directory tree.
// A rebuild replaces the index wholesale; there is no partial merge.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	s.vectors = nil
	return os.RemoveAll(s.dir)
}

// snapshot is the gob-serializable form of the store.
type snapshot struct {
	Dimension int
	Docs      []domain.Document
	Vectors   [][]float64
}

// Flush writes the current state into the index directory.
func (s *Store) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.dir, indexFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(snapshot{
		Dimension: s.dimension,
		Docs:      s.docs,
		Vectors:   s.vectors,
	})
}

// Load reads a previously flushed index. Returns MissingInputError when the
// index has not been built yet.
func (s *Store) Load() error {
	path := filepath.Join(s.dir, indexFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &domain.MissingInputError{Path: path, Hint: "run ingestion first"}
		}
		return err
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("decode index at %s: %w", path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = snap.Dimension
	s.docs = snap.Docs
	s.vectors = snap.Vectors
	return nil
}

// Len reports the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
