// Package ansi removes terminal color and control sequences from captured
// checker output.
package ansi

import (
	"regexp"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// bareSGR matches SGR sequences whose ESC byte was lost by the capture tool,
// e.g. "[32m" or "[1;31m".
var bareSGR = regexp.MustCompile(`\[\d{1,3}(?:;\d{1,3})*m`)

// Strip returns s with ESC-introduced sequences and bare SGR fragments
// removed. Everything else is kept byte for byte. Removal runs to a fixpoint
// so that fragments exposed by an earlier removal ("[3[32m1m") are also
// dropped, which makes Strip idempotent.
func Strip(s string) string {
	for {
		next := stripOnce(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripOnce(s string) string {
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = xansi.Strip(s)
	}
	if strings.IndexByte(s, '[') >= 0 {
		s = bareSGR.ReplaceAllString(s, "")
	}
	return s
}

// StripLines applies Strip to each line, returning a new slice.
func StripLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Strip(l)
	}
	return out
}

// HasEscapes reports whether s still contains anything Strip would remove.
func HasEscapes(s string) bool {
	return Strip(s) != s
}
