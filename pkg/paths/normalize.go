// Package paths canonicalizes file paths extracted from checker output so the
// same file reached through different captures compares equal.
package paths

import (
	"path"
	"strings"

	"github.com/dkoosis/sift/pkg/ansi"
)

// Normalizer rewrites paths to forward slashes with an upper-case drive
// letter. When Root is set, paths under it are made relative to it.
type Normalizer struct {
	Root string
}

// NewNormalizer returns a Normalizer trimming the given root ("" for none).
func NewNormalizer(root string) Normalizer {
	n := Normalizer{}
	if root != "" {
		n.Root = canonical(root)
	}
	return n
}

// Normalize returns the canonical form of p.
func (n Normalizer) Normalize(p string) string {
	c := canonical(p)
	if n.Root == "" || c == "" {
		return c
	}
	root := strings.TrimSuffix(n.Root, "/")
	if len(c) > len(root) && c[len(root)] == '/' && hasPrefixFold(c, root) {
		return c[len(root)+1:]
	}
	return c
}

// Normalize canonicalizes p without root trimming.
func Normalize(p string) string {
	return canonical(p)
}

func canonical(p string) string {
	p = strings.TrimSpace(ansi.Strip(p))
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")

	drive := ""
	if hasDrive(p) {
		drive = strings.ToUpper(p[:1]) + ":"
		p = p[2:]
	}

	cleaned := path.Clean(p)
	if cleaned == "." {
		cleaned = ""
	}
	if drive != "" && !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return drive + cleaned
}

func hasDrive(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// hasPrefixFold compares the drive letter case-insensitively and the rest
// exactly.
func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	if hasDrive(prefix) {
		return strings.EqualFold(s[:2], prefix[:2]) && s[2:len(prefix)] == prefix[2:]
	}
	return s[:len(prefix)] == prefix
}

// Ext returns the file extension of p without the dot, or "(none)".
func Ext(p string) string {
	e := strings.TrimPrefix(path.Ext(p), ".")
	if e == "" {
		return "(none)"
	}
	return strings.ToLower(e)
}

// Short renders the last two path elements, for narrow displays.
func Short(p string) string {
	dir, base := path.Split(p)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return base
	}
	return path.Join(path.Base(dir), base)
}
