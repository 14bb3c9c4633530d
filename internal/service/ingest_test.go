package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditrust/internal/chunker"
	"creditrust/internal/dataset"
	"creditrust/internal/domain"
	"creditrust/internal/embedding/tfidf"
	"creditrust/internal/summarizer"
	"creditrust/internal/vectorstore/memory"
)

func writeFilteredFixture(t *testing.T, path string) {
	t.Helper()
	header := []string{dataset.ColProduct, dataset.ColNarrative, dataset.ColCompany}
	records := []domain.Record{
		{dataset.ColProduct: "Credit card", dataset.ColNarrative: "I was charged twice for one purchase. The bank refused to refund the duplicate charge.", dataset.ColCompany: "Example Bank"},
		{dataset.ColProduct: "Credit card", dataset.ColNarrative: "A late fee appeared even though my payment posted on time. Support was unhelpful.", dataset.ColCompany: "Example Bank"},
		{dataset.ColProduct: "Personal loan", dataset.ColNarrative: "My loan payment was misapplied to another account. It took three months to correct.", dataset.ColCompany: "Loan Co"},
		{dataset.ColProduct: "Personal loan", dataset.ColNarrative: "Hidden origination fees were added to the loan balance without any disclosure.", dataset.ColCompany: ""},
	}
	require.NoError(t, dataset.WriteCSV(path, header, records))
}

func TestIngestPipelineBuildsQueryableIndex(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "filtered.csv")
	indexDir := filepath.Join(dir, "vector_store")
	writeFilteredFixture(t, csvPath)

	emb := tfidf.NewEmbedder()
	store := memory.NewStore(indexDir)
	pipeline := NewIngestPipeline(chunker.NewRecursiveSplitter(500, 50), emb, store, summarizer.NewFrequencySummarizer(), testLogger())

	err := pipeline.Run(context.Background(), IngestOptions{
		FilteredCSV:     csvPath,
		PerCategory:     300,
		Seed:            42,
		Reset:           true,
		Workers:         2,
		StateDir:        indexDir,
		DigestSentences: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, store.Len(), "short narratives produce one chunk each")

	// A fresh process must be able to load both the index and the
	// embedder model and answer a query.
	queryEmb := tfidf.NewEmbedder()
	require.NoError(t, queryEmb.LoadState(indexDir))
	queryStore := memory.NewStore(indexDir)
	require.NoError(t, queryStore.Load())

	vec, err := queryEmb.Embed("duplicate charge refund")
	require.NoError(t, err)
	results, err := queryStore.Search(vec, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Document.Content, "charged twice")
	assert.Equal(t, "Example Bank", results[0].Document.Metadata[domain.MetaCompany])
}

func TestIngestPipelineNormalizesMissingMetadata(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "filtered.csv")
	indexDir := filepath.Join(dir, "vector_store")
	writeFilteredFixture(t, csvPath)

	emb := tfidf.NewEmbedder()
	store := memory.NewStore(indexDir)
	pipeline := NewIngestPipeline(chunker.NewRecursiveSplitter(500, 50), emb, store, nil, testLogger())

	require.NoError(t, pipeline.Run(context.Background(), IngestOptions{
		FilteredCSV: csvPath,
		PerCategory: 300,
		Seed:        42,
		Reset:       true,
		StateDir:    indexDir,
	}))

	vec, err := emb.Embed("hidden origination fees disclosure")
	require.NoError(t, err)
	results, err := store.Search(vec, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.MetaUnknown, results[0].Document.Metadata[domain.MetaCompany])
	assert.Equal(t, domain.MetaUnknown, results[0].Document.Metadata[domain.MetaState])
}

func TestIngestPipelineSamplingCapsCategories(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "filtered.csv")
	indexDir := filepath.Join(dir, "vector_store")

	header := []string{dataset.ColProduct, dataset.ColNarrative}
	var records []domain.Record
	for i := 0; i < 10; i++ {
		records = append(records, domain.Record{
			dataset.ColProduct:   "Credit card",
			dataset.ColNarrative: strings.Repeat("short narrative. ", 3),
		})
	}
	require.NoError(t, dataset.WriteCSV(csvPath, header, records))

	store := memory.NewStore(indexDir)
	pipeline := NewIngestPipeline(chunker.NewRecursiveSplitter(500, 50), tfidf.NewEmbedder(), store, nil, testLogger())

	require.NoError(t, pipeline.Run(context.Background(), IngestOptions{
		FilteredCSV: csvPath,
		PerCategory: 3,
		Seed:        42,
		Reset:       true,
		StateDir:    indexDir,
	}))
	assert.Equal(t, 3, store.Len())
}

func TestIngestPipelineMissingInput(t *testing.T) {
	dir := t.TempDir()
	pipeline := NewIngestPipeline(chunker.NewRecursiveSplitter(500, 50), tfidf.NewEmbedder(), memory.NewStore(dir), nil, testLogger())

	err := pipeline.Run(context.Background(), IngestOptions{
		FilteredCSV: filepath.Join(dir, "absent.csv"),
		PerCategory: 10,
		Seed:        42,
	})
	var missing *domain.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "filter step")
}
