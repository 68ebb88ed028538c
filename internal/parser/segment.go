package parser

import "strings"

// fieldDelimiter separates the description from structured fields in
// delimited input, e.g. "Ăn trưa - 45k - tm".
const fieldDelimiter = " - "

type splitResult struct {
	delimited   bool
	description string
	fields      []string
}

// splitSegments decides between the delimited and the free-form input
// shapes. Delimited input yields the description (segment 0) and the
// remaining trimmed field segments; anything with fewer than two
// segments is treated as free-form.
func splitSegments(text string) splitResult {
	parts := strings.Split(text, fieldDelimiter)
	if len(parts) < 2 {
		return splitResult{description: strings.TrimSpace(text)}
	}
	fields := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		fields = append(fields, strings.TrimSpace(p))
	}
	return splitResult{
		delimited:   true,
		description: strings.TrimSpace(parts[0]),
		fields:      fields,
	}
}
