// Package render turns visualization patterns into text: styled for a
// terminal, or plain and terse for a language model.
package render

import "github.com/dkoosis/sift/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}

// severityRank orders severity strings, most severe first.
func severityRank(s string) int {
	switch s {
	case "error":
		return 0
	case "warning":
		return 1
	default:
		return 2
	}
}
