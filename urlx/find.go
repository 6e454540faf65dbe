package urlx

import "regexp"

// FindMode selects which URL shapes Find should look for. Only one scan
// mode exists today; the parameter is kept so new modes can be added
// without changing every call site.
type FindMode int

const (
	FindAll FindMode = iota
)

// urlPattern matches http(s) and mailto: links embedded in running text,
// which mail HTML bodies contain constantly outside of href attributes.
var urlPattern = regexp.MustCompile(`(?i)(https?://[^\s<>"']+|mailto:[^\s<>"']+)`)

// trailingPunct trims characters that are very often sentence punctuation
// rather than part of the URL, e.g. "see http://example.com." or
// "(http://example.com)".
var trailingPunct = ".,;:!?)]}\"'"

// Find scans s for URL-shaped substrings and reports each one, along with
// its byte offsets in s, via cb. Mode is accepted for interface
// compatibility (see FindMode) but does not change behavior.
func Find(s string, mode FindMode, cb func(u *URL, start, end int)) {
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		for end > start && containsByte(trailingPunct, s[end-1]) {
			end--
		}
		raw := s[start:end]
		u, err := Parse(raw)
		if err != nil {
			continue
		}
		cb(u, start, end)
	}
}

func containsByte(set string, b byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}
