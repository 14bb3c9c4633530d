package qdrant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditrust/internal/domain"
)

func TestUpsertSendsContentAndMetadataPayload(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/collections/complaints/points" {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "complaints"})
	require.NoError(t, s.Init(2))

	docs := []domain.Document{
		{Content: "charged twice", Metadata: map[string]string{domain.MetaProduct: "Credit card"}},
	}
	require.NoError(t, s.Upsert(docs, [][]float64{{0.1, 0.9}}))

	points, ok := captured["points"].([]any)
	require.True(t, ok)
	require.Len(t, points, 1)
	payload := points[0].(map[string]any)["payload"].(map[string]any)
	assert.Equal(t, "charged twice", payload["content"])
}

func TestSearchRebuildsEvidenceDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/complaints/points/search", r.URL.Path)
		fmt.Fprint(w, `{"result":[{"score":0.91,"payload":{"content":"late fee dispute","metadata":{"product":"Credit card"}}}]}`)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "complaints"})
	results, err := s.Search([]float64{0.1, 0.9}, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "late fee dispute", results[0].Document.Content)
	assert.Equal(t, "Credit card", results[0].Document.Metadata[domain.MetaProduct])
	assert.InDelta(t, 0.91, results[0].Score, 1e-9)
}

func TestInitPropagatesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewStore(Config{URL: srv.URL, Collection: "complaints"})
	assert.Error(t, s.Init(2))
}
