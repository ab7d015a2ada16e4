package pipeline

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decoder honours a UTF-8 or UTF-16 byte order mark and otherwise reads UTF-8.
// Invalid bytes become U+FFFD.
func decoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

// Decode converts raw capture bytes to text with "\n" line endings.
// PowerShell redirection writes UTF-16LE with a BOM; both forms decode to the
// same text.
func Decode(b []byte) string {
	out, _, err := transform.Bytes(decoder(), b)
	if err != nil {
		out = b
	}
	return normalizeNewlines(string(out))
}

// ReadAll decodes everything from r.
func ReadAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(transform.NewReader(r, decoder()))
	if err != nil {
		return "", err
	}
	return normalizeNewlines(string(b)), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
