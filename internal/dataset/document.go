package dataset

import (
	"strings"

	"creditrust/internal/domain"
)

// metadataColumns maps recognized CSV columns to document metadata keys.
var metadataColumns = map[string]string{
	ColProduct:      domain.MetaProduct,
	ColSubProduct:   domain.MetaSubProduct,
	ColDateReceived: domain.MetaDate,
	ColState:        domain.MetaState,
	ColCompany:      domain.MetaCompany,
	ColComplaintID:  domain.MetaComplaintID,
}

// BuildDocument converts a complaint record into an evidence document. The
// narrative is copied verbatim as content; recognized metadata fields are
// extracted, with absent or null-equivalent values replaced by the "Unknown"
// sentinel so downstream code can always dereference them.
func BuildDocument(rec domain.Record) (domain.Document, error) {
	narrative, ok := rec[ColNarrative]
	if !ok {
		return domain.Document{}, &domain.SchemaError{Field: ColNarrative}
	}

	meta := make(map[string]string, len(metadataColumns))
	for col, key := range metadataColumns {
		v, present := rec[col]
		if !present || isNullish(v) {
			meta[key] = domain.MetaUnknown
			continue
		}
		meta[key] = v
	}
	return domain.Document{Content: narrative, Metadata: meta}, nil
}

// isNullish reports values that pandas-style exports use for missing cells.
func isNullish(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "n/a", "na", "null", "none":
		return true
	}
	return false
}
