package classify

import (
	"regexp"
	"strings"

	"github.com/dkoosis/sift/pkg/diag"
)

// Classify returns the category of msg. It is total: a message no rule
// matches is diag.CategoryOther.
func Classify(msg string) diag.Category {
	for _, r := range rules {
		if r.Matches(msg) {
			return r.Category
		}
	}
	return diag.CategoryOther
}

// ClassifyCoded is Classify for a diagnostic that also carries a checker code
// (see DocCode). A code matching a rule decides the category; otherwise msg
// does.
func ClassifyCoded(msg, code string) diag.Category {
	if code != "" {
		if c := Classify(code); c != diag.CategoryOther {
			return c
		}
	}
	return Classify(msg)
}

var docCodeRe = regexp.MustCompile(`https?://svelte\.dev/e/(\w+)`)

// DocCode returns the code named by the last svelte.dev documentation link in
// msg ("https://svelte.dev/e/a11y_autofocus" gives "a11y_autofocus"), or "".
func DocCode(msg string) string {
	m := docCodeRe.FindAllStringSubmatch(msg, -1)
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1][1]
}

// Severity maps the severity word read off the stream to a Severity, then
// applies category adjustments: accessibility findings are always info.
func Severity(word string, c diag.Category) diag.Severity {
	if c == diag.CategoryAccessibility {
		return diag.SeverityInfo
	}
	switch strings.ToLower(word) {
	case "error":
		return diag.SeverityError
	case "warn", "warning":
		return diag.SeverityWarning
	default:
		return diag.SeverityInfo
	}
}

var (
	spaceRe    = regexp.MustCompile(`\s+`)
	docURLRe   = regexp.MustCompile(`\s*https?://\S+\s*$`)
	quotedRe   = regexp.MustCompile(`'[^']*'|"[^"]*"|` + "`[^`]*`")
	numberRe   = regexp.MustCompile(`\b\d+\b`)
	patternCap = 160
)

// NormalizeMessage collapses whitespace and drops a trailing documentation
// link ("https://svelte.dev/e/..."), which varies between checker versions.
func NormalizeMessage(msg string) string {
	msg = spaceRe.ReplaceAllString(strings.TrimSpace(msg), " ")
	for {
		trimmed := docURLRe.ReplaceAllString(msg, "")
		if trimmed == msg || trimmed == "" {
			break
		}
		msg = trimmed
	}
	return msg
}

// Signature generalizes msg by replacing quoted identifiers and numbers, so
// messages differing only in names group together.
func Signature(msg string) string {
	sig := quotedRe.ReplaceAllString(msg, "'…'")
	sig = numberRe.ReplaceAllString(sig, "N")
	if r := []rune(sig); len(r) > patternCap {
		sig = string(r[:patternCap-1]) + "…"
	}
	return sig
}
