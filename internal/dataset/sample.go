package dataset

import (
	"math/rand"
	"sort"

	"creditrust/internal/domain"
)

// StratifiedSample draws at most perCategory records from each category so
// dominant categories cannot skew the index. Within a category the draw is
// without replacement; with a fixed seed the result is identical across runs.
// Categories are processed in sorted order to keep the concatenation
// deterministic.
func StratifiedSample(records []domain.Record, categoryField string, perCategory int, seed int64) ([]domain.Record, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if _, ok := records[0][categoryField]; !ok {
		return nil, &domain.SchemaError{Field: categoryField}
	}

	groups := make(map[string][]domain.Record)
	for _, rec := range records {
		cat := rec[categoryField]
		groups[cat] = append(groups[cat], rec)
	}

	cats := make([]string, 0, len(groups))
	for cat := range groups {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	rng := rand.New(rand.NewSource(seed))
	var sampled []domain.Record
	for _, cat := range cats {
		group := groups[cat]
		n := perCategory
		if n > len(group) {
			n = len(group)
		}
		for _, idx := range rng.Perm(len(group))[:n] {
			sampled = append(sampled, group[idx])
		}
	}
	return sampled, nil
}
