package tfidf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"The bank charged a duplicate fee on my credit card.",
	"My loan payment was misapplied and never corrected.",
	"The money transfer failed but the funds were withdrawn.",
}

func TestPrepareAndEmbed(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	assert.Greater(t, e.Dimension(), 0)

	vec, err := e.Embed("duplicate fee on my card")
	require.NoError(t, err)
	assert.Len(t, vec, e.Dimension())

	// L2 norm of a non-empty embedding is 1.
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestEmbedBeforePrepareFails(t *testing.T) {
	_, err := NewEmbedder().Embed("anything")
	assert.Error(t, err)
}

func TestPrepareEmptyCorpusFails(t *testing.T) {
	assert.Error(t, NewEmbedder().Prepare(nil))
}

func TestEmbedUnknownTokensYieldsZeroVector(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	vec, err := e.Embed("zzz qqq xxx")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestSaveLoadStateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	e := NewEmbedder()
	require.NoError(t, e.Prepare(corpus))
	require.NoError(t, e.SaveState(dir))

	restored := NewEmbedder()
	require.NoError(t, restored.LoadState(dir))
	assert.Equal(t, e.Dimension(), restored.Dimension())

	query := "loan payment misapplied"
	want, err := e.Embed(query)
	require.NoError(t, err)
	got, err := restored.Embed(query)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadStateMissingModel(t *testing.T) {
	assert.Error(t, NewEmbedder().LoadState(t.TempDir()))
}
