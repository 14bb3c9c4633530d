package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditrust/internal/domain"
)

func makeRecords(counts map[string]int) []domain.Record {
	var records []domain.Record
	for cat, n := range counts {
		for i := 0; i < n; i++ {
			records = append(records, domain.Record{
				ColProduct:   cat,
				ColNarrative: fmt.Sprintf("%s narrative %d", cat, i),
			})
		}
	}
	return records
}

func countByCategory(records []domain.Record) map[string]int {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec[ColProduct]]++
	}
	return counts
}

func TestStratifiedSampleCapsEachCategory(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		cap    int
		want   map[string]int
	}{
		{
			name:   "cap below group sizes",
			counts: map[string]int{"A": 10, "B": 5},
			cap:    3,
			want:   map[string]int{"A": 3, "B": 3},
		},
		{
			name:   "cap above a group size keeps whole group",
			counts: map[string]int{"A": 10, "B": 5},
			cap:    8,
			want:   map[string]int{"A": 8, "B": 5},
		},
		{
			name:   "single category",
			counts: map[string]int{"A": 4},
			cap:    10,
			want:   map[string]int{"A": 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampled, err := StratifiedSample(makeRecords(tt.counts), ColProduct, tt.cap, 42)
			require.NoError(t, err)
			assert.Equal(t, tt.want, countByCategory(sampled))

			total := 0
			for _, n := range tt.want {
				total += n
			}
			assert.Len(t, sampled, total)
		})
	}
}

func TestStratifiedSampleDeterministic(t *testing.T) {
	records := makeRecords(map[string]int{"A": 20, "B": 15, "C": 7})

	first, err := StratifiedSample(records, ColProduct, 5, 42)
	require.NoError(t, err)
	second, err := StratifiedSample(records, ColProduct, 5, 42)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStratifiedSampleMissingCategoryField(t *testing.T) {
	records := []domain.Record{{ColNarrative: "text"}}
	_, err := StratifiedSample(records, ColProduct, 3, 42)
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, ColProduct, schemaErr.Field)
}

func TestStratifiedSampleEmptyInput(t *testing.T) {
	sampled, err := StratifiedSample(nil, ColProduct, 3, 42)
	require.NoError(t, err)
	assert.Empty(t, sampled)
}
