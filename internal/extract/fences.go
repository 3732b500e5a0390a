package extract

import "strings"

// Fence markers the provider wraps structured output in. The grammar is
// deliberately small: a fixed set of opening tokens, one closing token,
// at most one of each removed.
const (
	fenceOpenJSON = "```json"
	fenceOpen     = "```"
	fenceClose    = "```"
)

// StripFences removes a single leading fence marker (the JSON-tagged
// token is checked before the generic one, and only the marker's exact
// token length is removed) and a single trailing fence marker, then
// trims surrounding whitespace. Input without fences passes through
// trimmed but otherwise unchanged.
func StripFences(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, fenceOpenJSON) {
		s = s[len(fenceOpenJSON):]
	} else if strings.HasPrefix(s, fenceOpen) {
		s = s[len(fenceOpen):]
	}

	if strings.HasSuffix(s, fenceClose) {
		s = s[:len(s)-len(fenceClose)]
	}

	return strings.TrimSpace(s)
}
