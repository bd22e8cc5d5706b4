package domain

import "strings"

// Location points at a single place in a source file. Column and Snippet are
// best-effort; Line is always 1-indexed.
type Location struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// maxSnippetLen bounds Location.Snippet per the import parser contract (§4.2:
// "the trimmed source text (≤100 chars) as snippet").
const maxSnippetLen = 100

// TrimSnippet trims and bounds a line of source for use as a Location snippet.
func TrimSnippet(line string) string {
	s := strings.TrimSpace(line)
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen]
	}
	return s
}
