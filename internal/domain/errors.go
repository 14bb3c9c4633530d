package domain

import "fmt"

// SchemaError reports a required column missing from the input data. It is
// fatal to the ingestion step that hit it.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required field %q missing from input data", e.Field)
}

// MissingInputError reports an absent precondition file or directory. The
// pipeline run that hit it aborts; the caller must produce the input first.
type MissingInputError struct {
	Path string
	Hint string
}

func (e *MissingInputError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("input not found at %s: %s", e.Path, e.Hint)
	}
	return fmt.Sprintf("input not found at %s", e.Path)
}
