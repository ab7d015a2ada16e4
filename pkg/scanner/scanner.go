// Package scanner recognizes diagnostics in normalized checker output.
//
// Two line roles drive the state machine: a location line ending in
// path:line:col, and a severity line ("Error: ..." / "Warn: ...") that must be
// the next non-empty line. Messages may continue over several lines until a
// blank line, another location or severity line, or a line ending with a
// source tag such as "(ts)". The tsc plain format, which carries location and
// severity on one line, is recognized as a third role.
package scanner

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Raw is one diagnostic as read from the stream, before path normalization
// and classification.
type Raw struct {
	File       string
	Line       int
	Column     int
	Severity   string // severity word as written: Error, Warn, Warning
	Message    string // message with the trailing tag removed
	RawMessage string // message text as captured, tag included
	Tag        string // stripped source tag, e.g. "ts", "svelte"
	LineNo     int    // 1-based input line of the location header
}

var (
	// locationRe matches a header line ending in path:line:col. The path is
	// lazy so a Windows drive colon stays inside it.
	locationRe = regexp.MustCompile(`^(\S.*?):(\d+):(\d+)\s*$`)

	// severityRe matches the severity line that follows a location header.
	severityRe = regexp.MustCompile(`^(Error|Warn|Warning):\s*(.*)$`)

	// tagRe matches a single-word parenthetical source tag at end of line.
	tagRe = regexp.MustCompile(`(?:^|\s+)\((\w[\w-]{0,19})\)\s*$`)

	// inlineRe matches tsc plain output: file.ts(12,5): error TS2322: message
	inlineRe = regexp.MustCompile(`^(\S[^()]*?\.[cm]?[jt]sx?|\S[^()]*?\.svelte)\((\d+),(\d+)\):\s*(error|warning)\s+(?:(TS\d+):\s*)?(.+?)\s*$`)
)

// Scan extracts diagnostics from already normalized text.
func Scan(text string) []Raw {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return ScanLines(strings.Split(text, "\n"))
}

// ScanReader reads r to completion and scans it.
func ScanReader(r io.Reader) ([]Raw, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ScanLines(lines), nil
}

// ScanLines runs the state machine over lines. Each call starts fresh.
func ScanLines(lines []string) []Raw {
	var out []Raw
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if r, ok := ParseLine(line); ok {
			r.LineNo = i + 1
			out = append(out, r)
			i++
			continue
		}

		file, ln, col, ok := parseLocation(line)
		if !ok {
			i++
			continue
		}

		// Severity must be the next non-empty line.
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		if j >= len(lines) {
			break
		}
		word, first, ok := parseSeverity(strings.TrimSpace(lines[j]))
		if !ok {
			// Drop the header and re-examine the candidate line.
			i = j
			continue
		}

		raw, next := collectMessage(lines, j+1, first)
		raw.File, raw.Line, raw.Column = file, ln, col
		raw.Severity = word
		raw.LineNo = i + 1
		out = append(out, raw)
		i = next
	}
	return out
}

// ParseLine recognizes a self-contained single-line diagnostic. It returns
// false for anything else; no match is not an error.
func ParseLine(line string) (Raw, bool) {
	m := inlineRe.FindStringSubmatch(line)
	if m == nil {
		return Raw{}, false
	}
	ln, err1 := strconv.Atoi(m[2])
	col, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || ln <= 0 || col <= 0 {
		return Raw{}, false
	}
	word := "Error"
	if m[4] == "warning" {
		word = "Warn"
	}
	return Raw{
		File:       m[1],
		Line:       ln,
		Column:     col,
		Severity:   word,
		Message:    m[6],
		RawMessage: m[6],
		Tag:        strings.ToLower(m[5]),
	}, true
}

// IsLocation reports whether line is a location header.
func IsLocation(line string) bool {
	_, _, _, ok := parseLocation(strings.TrimSpace(line))
	return ok
}

// IsSeverity reports whether line is a severity line.
func IsSeverity(line string) bool {
	_, _, ok := parseSeverity(strings.TrimSpace(line))
	return ok
}

func parseLocation(line string) (file string, ln, col int, ok bool) {
	if _, _, isSev := parseSeverity(line); isSev {
		return "", 0, 0, false
	}
	m := locationRe.FindStringSubmatch(line)
	if m == nil {
		return "", 0, 0, false
	}
	ln, err1 := strconv.Atoi(m[2])
	col, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil || ln <= 0 || col <= 0 {
		return "", 0, 0, false
	}
	file = strings.TrimSpace(m[1])
	if file == "" {
		return "", 0, 0, false
	}
	return file, ln, col, true
}

func parseSeverity(line string) (word, msg string, ok bool) {
	m := severityRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

// splitTag removes a trailing "(tag)" from s.
func splitTag(s string) (rest, tag string, found bool) {
	loc := tagRe.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, "", false
	}
	return strings.TrimSpace(s[:loc[0]]), s[loc[2]:loc[3]], true
}

// collectMessage gathers the message that starts with first and may continue
// on lines[from:]. It returns the partially filled Raw and the index of the
// first unconsumed line.
func collectMessage(lines []string, from int, first string) (Raw, int) {
	parts := []string{first}
	i := from
	if _, _, tagged := splitTag(first); !tagged {
		for i < len(lines) {
			cont := strings.TrimSpace(lines[i])
			if cont == "" || IsLocation(cont) || IsSeverity(cont) {
				break
			}
			if _, ok := ParseLine(cont); ok {
				break
			}
			parts = append(parts, cont)
			i++
			if _, _, tagged := splitTag(cont); tagged {
				break
			}
		}
	}

	raw := strings.Join(parts, " ")
	msg, tag, _ := splitTag(raw)
	return Raw{Message: msg, RawMessage: raw, Tag: tag}, i
}
