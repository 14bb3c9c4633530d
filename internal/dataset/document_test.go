package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditrust/internal/domain"
)

func TestBuildDocumentCopiesNarrativeVerbatim(t *testing.T) {
	rec := domain.Record{
		ColNarrative:    "I was charged twice for the same transaction.",
		ColProduct:      "Credit card",
		ColSubProduct:   "General-purpose credit card",
		ColDateReceived: "2024-01-15",
		ColState:        "CA",
		ColCompany:      "Example Bank",
		ColComplaintID:  "1234567",
	}
	doc, err := BuildDocument(rec)
	require.NoError(t, err)
	assert.Equal(t, rec[ColNarrative], doc.Content)
	assert.Equal(t, map[string]string{
		domain.MetaProduct:     "Credit card",
		domain.MetaSubProduct:  "General-purpose credit card",
		domain.MetaDate:        "2024-01-15",
		domain.MetaState:       "CA",
		domain.MetaCompany:     "Example Bank",
		domain.MetaComplaintID: "1234567",
	}, doc.Metadata)
}

func TestBuildDocumentMissingFieldsGetSentinel(t *testing.T) {
	tests := []struct {
		name string
		rec  domain.Record
	}{
		{"fields absent", domain.Record{ColNarrative: "text", ColProduct: "Credit card"}},
		{"fields empty", domain.Record{ColNarrative: "text", ColProduct: "Credit card", ColState: "", ColCompany: ""}},
		{"pandas nan", domain.Record{ColNarrative: "text", ColProduct: "Credit card", ColSubProduct: "NaN", ColState: "n/a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := BuildDocument(tt.rec)
			require.NoError(t, err)
			for _, key := range []string{domain.MetaSubProduct, domain.MetaDate, domain.MetaState, domain.MetaCompany, domain.MetaComplaintID} {
				v, ok := doc.Metadata[key]
				require.True(t, ok, "metadata key %q must never be absent", key)
				assert.Equal(t, domain.MetaUnknown, v, "key %q", key)
			}
			assert.Equal(t, "Credit card", doc.Metadata[domain.MetaProduct])
		})
	}
}

func TestBuildDocumentMissingNarrative(t *testing.T) {
	_, err := BuildDocument(domain.Record{ColProduct: "Credit card"})
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, ColNarrative, schemaErr.Field)
}
