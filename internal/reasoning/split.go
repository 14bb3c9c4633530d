// Package reasoning separates a model's delimited chain-of-thought block
// from the user-facing answer. DeepSeek-style models wrap their reasoning
// in <think>...</think> tags ahead of the final text.
package reasoning

import (
	"regexp"
	"strings"
)

var thinkRe = regexp.MustCompile(`(?s)<think>(.*?)</think>`)

// Split extracts the first reasoning block, if any. The answer has all
// blocks removed and is trimmed; when no block is present the input is
// returned untouched so unwrapped content is never altered.
func Split(text string) (reasoning string, answer string, found bool) {
	m := thinkRe.FindStringSubmatch(text)
	if m == nil {
		return "", text, false
	}
	reasoning = strings.TrimSpace(m[1])
	answer = strings.TrimSpace(thinkRe.ReplaceAllString(text, ""))
	return reasoning, answer, true
}
