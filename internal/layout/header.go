package layout

import (
	"strings"

	"github.com/jonathan/document-generator/internal/markers"
)

// headerSpan is a half-open byte range [start, end) of an identity header.
// end includes the terminating newline when there is one; header excludes it.
type headerSpan struct {
	start, end int
	header     string
}

// findHeaderSpans returns every non-overlapping span that starts at a Name:
// label and runs to the end of the line holding the next Contact: label.
func findHeaderSpans(text string) []headerSpan {
	name := markers.NameLabel.Literal()
	contact := markers.ContactLabel.Literal()

	var spans []headerSpan
	pos := 0
	for pos < len(text) {
		i := strings.Index(text[pos:], name)
		if i < 0 {
			break
		}
		start := pos + i

		j := strings.Index(text[start+len(name):], contact)
		if j < 0 {
			break
		}
		contactAt := start + len(name) + j

		lineEnd := len(text)
		end := len(text)
		if k := strings.IndexByte(text[contactAt:], '\n'); k >= 0 {
			lineEnd = contactAt + k
			end = lineEnd + 1
		}

		spans = append(spans, headerSpan{start: start, end: end, header: text[start:lineEnd]})
		pos = end
	}
	return spans
}

// DedupeHeader moves the first Name:…Contact: header block to the front of
// text and drops every other occurrence. Text without a header is returned
// unchanged.
func DedupeHeader(text string) string {
	spans := findHeaderSpans(text)
	if len(spans) == 0 {
		return text
	}

	var body strings.Builder
	body.Grow(len(text))
	prev := 0
	for _, s := range spans {
		body.WriteString(text[prev:s.start])
		prev = s.end
	}
	body.WriteString(text[prev:])

	return spans[0].header + "\n" + body.String()
}

// CountHeaders returns how many identity header blocks text contains.
func CountHeaders(text string) int {
	return len(findHeaderSpans(text))
}
