package llm

import (
	"fmt"
	"time"
)

// FaultKind tags what went wrong on a completion call. The query path
// flattens faults to display text, but the distinction is kept here so
// callers and tests can tell the cases apart.
type FaultKind int

const (
	// FaultStatus is a non-200 response from the endpoint.
	FaultStatus FaultKind = iota + 1
	// FaultTimeout means the configured wall-clock bound was exceeded.
	FaultTimeout
	// FaultConnect is a network-level failure before any response.
	FaultConnect
)

// maxBodySnippet bounds how much of an error response body is surfaced.
const maxBodySnippet = 200

// Fault describes a failed completion call. Error() renders the
// user-presentable message that flows through the answer path.
type Fault struct {
	Kind    FaultKind
	Status  int
	Body    string
	Timeout time.Duration
	Err     error
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultStatus:
		return fmt.Sprintf("Error %d from model endpoint: %s", f.Status, f.Body)
	case FaultTimeout:
		return fmt.Sprintf("Error: model request timed out after %s.", f.Timeout)
	case FaultConnect:
		return "Error: unable to connect to the model endpoint."
	}
	return fmt.Sprintf("Error calling model endpoint: %v", f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

func snippet(body []byte) string {
	if len(body) > maxBodySnippet {
		return string(body[:maxBodySnippet])
	}
	return string(body)
}
