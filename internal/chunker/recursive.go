package chunker

import (
	"strings"

	"creditrust/internal/domain"
)

// separators is the boundary hierarchy tried largest-first: paragraph break,
// line break, sentence end, word. Text that still exceeds the chunk size
// after the last separator is cut at rune boundaries.
var separators = []string{"\n\n", "\n", ". ", " "}

// RecursiveSplitter splits narrative text into chunks of at most size runes,
// preferring the largest natural boundary that fits. Consecutive chunks of
// the same source share up to overlap runes of trailing context, snapped to
// a word boundary so the overlap does not start mid-word where avoidable.
type RecursiveSplitter struct {
	size    int
	overlap int
}

// NewRecursiveSplitter creates a splitter. The overlap-smaller-than-size
// relationship is validated by config at startup; the constructor only
// guards against nonsensical direct use.
func NewRecursiveSplitter(size, overlap int) *RecursiveSplitter {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &RecursiveSplitter{size: size, overlap: overlap}
}

// Split produces one evidence document per chunk. Chunks inherit the parent
// metadata verbatim; the chunk boundary never alters it.
func (s *RecursiveSplitter) Split(doc domain.Document) ([]domain.Document, error) {
	chunks := s.SplitText(doc.Content)
	out := make([]domain.Document, len(chunks))
	for i, text := range chunks {
		out[i] = domain.Document{Content: text, Metadata: doc.Metadata}
	}
	return out, nil
}

// SplitText splits content into chunk strings. Content no longer than the
// chunk size yields exactly one chunk equal to the content.
func (s *RecursiveSplitter) SplitText(content string) []string {
	if runeLen(content) <= s.size {
		return []string{content}
	}

	units := s.decompose(content, separators)

	var chunks []string
	var cur string
	for _, unit := range units {
		if cur == "" {
			cur = unit
			continue
		}
		if runeLen(cur)+runeLen(unit) <= s.size {
			cur += unit
			continue
		}
		chunks = append(chunks, cur)
		tail := s.overlapTail(cur)
		if runeLen(tail)+runeLen(unit) > s.size {
			tail = ""
		}
		cur = tail + unit
	}
	if cur != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// decompose breaks content into units no longer than the chunk size, keeping
// separators attached so that concatenating the units restores the input.
func (s *RecursiveSplitter) decompose(content string, seps []string) []string {
	if runeLen(content) <= s.size {
		return []string{content}
	}
	if len(seps) == 0 {
		return s.hardSplit(content)
	}
	pieces := splitAfter(content, seps[0])
	var units []string
	for _, p := range pieces {
		if runeLen(p) <= s.size {
			units = append(units, p)
			continue
		}
		units = append(units, s.decompose(p, seps[1:])...)
	}
	return units
}

// hardSplit cuts content into size-rune windows. Last resort for text with
// no usable boundaries.
func (s *RecursiveSplitter) hardSplit(content string) []string {
	runes := []rune(content)
	var units []string
	for start := 0; start < len(runes); start += s.size {
		end := start + s.size
		if end > len(runes) {
			end = len(runes)
		}
		units = append(units, string(runes[start:end]))
	}
	return units
}

// overlapTail returns up to overlap trailing runes of the previous chunk,
// advanced past any partial leading word.
func (s *RecursiveSplitter) overlapTail(chunk string) string {
	if s.overlap == 0 {
		return ""
	}
	runes := []rune(chunk)
	start := len(runes) - s.overlap
	if start <= 0 {
		return chunk
	}
	tail := string(runes[start:])
	// The window may open mid-word; skip forward to the next boundary.
	if !isBoundary(runes[start-1]) {
		if idx := strings.IndexFunc(tail, isBoundary); idx >= 0 {
			tail = strings.TrimLeft(tail[idx:], " \n\t")
		}
	}
	return tail
}

func isBoundary(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t'
}

// splitAfter splits s on sep, keeping the separator attached to the
// preceding piece so nothing is lost.
func splitAfter(s, sep string) []string {
	parts := strings.SplitAfter(s, sep)
	// SplitAfter may produce a trailing empty piece when s ends with sep.
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}

func runeLen(s string) int {
	return len([]rune(s))
}
