package domain

// Metadata keys recognized on a Document. Values never go missing: absent or
// null-equivalent source fields are normalized to MetaUnknown.
const (
	MetaProduct     = "product"
	MetaSubProduct  = "sub_product"
	MetaDate        = "date"
	MetaState       = "state"
	MetaCompany     = "company"
	MetaComplaintID = "complaint_id"
)

// MetaUnknown is the sentinel stored for absent or null-equivalent metadata.
const MetaUnknown = "Unknown"

// Record is one raw complaint row keyed by column name.
type Record map[string]string

// Document is a retrievable evidence unit: a complaint narrative (or a chunk
// of one) plus its normalized metadata.
type Document struct {
	Content  string
	Metadata map[string]string
}

// SearchResult is a matching document with its similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}

// Answer is the stable query contract consumed by the chat interface.
// Result carries the raw model text; callers split out any reasoning block
// before display.
type Answer struct {
	Result          string
	SourceDocuments []Document
}
