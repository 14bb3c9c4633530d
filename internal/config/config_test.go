package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 300, cfg.Data.SamplePerCategory)
	assert.Equal(t, int64(42), cfg.Data.SampleSeed)
	assert.Equal(t, 3, cfg.Retriever.TopK)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, "memory", cfg.VectorStore.Type)
	assert.Equal(t, "deepseek-ai/DeepSeek-R1", cfg.LLM.Model)
	assert.Equal(t, 120, cfg.LLM.TimeoutSecs)
	assert.Len(t, cfg.Data.TargetProducts, 5)
}

func TestLoadAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker:\n  chunk_size: 800\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 3, cfg.Retriever.TopK)
}

func TestLoadRejectsOverlapNotSmallerThanSize(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"overlap equals size", "chunker:\n  chunk_size: 100\n  chunk_overlap: 100\n"},
		{"overlap exceeds size", "chunker:\n  chunk_size: 100\n  chunk_overlap: 150\n"},
		{"negative overlap", "chunker:\n  chunk_size: 100\n  chunk_overlap: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err, "invalid chunking must fail at startup")
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Retriever.TopK = 7
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Retriever.TopK)
}
