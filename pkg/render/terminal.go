package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/sift/pkg/pattern"
)

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme. width is the
// display width in cells; values <= 0 mean 80.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	var sections []string
	for _, p := range patterns {
		if s := t.renderOne(p); s != "" {
			sections = append(sections, s)
		}
	}
	return strings.Join(sections, "\n")
}

func (t *Terminal) renderOne(p pattern.Pattern) string {
	switch v := p.(type) {
	case *pattern.Summary:
		return t.renderSummary(v)
	case *pattern.Leaderboard:
		return t.renderLeaderboard(v)
	case *pattern.DiagnosticTable:
		return t.renderTable(v)
	case *pattern.Sparkline:
		return t.renderSparkline(v)
	case *pattern.Comparison:
		return t.renderComparison(v)
	default:
		return ""
	}
}

func (t *Terminal) renderSummary(s *pattern.Summary) string {
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Bold.Render(s.Label))
		sb.WriteString("\n")
	}

	maxLabel := 0
	for _, m := range s.Metrics {
		maxLabel = max(maxLabel, runewidth.StringWidth(m.Label))
	}
	for _, m := range s.Metrics {
		icon, style := t.kindStyle(m.Kind)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon + " " + padRight(m.Label, maxLabel)))
		sb.WriteString("  ")
		sb.WriteString(m.Value)
		if m.Note != "" {
			sb.WriteString(t.theme.Muted.Render("  [" + m.Note + "]"))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderLeaderboard(l *pattern.Leaderboard) string {
	if len(l.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if l.Label != "" {
		header := l.Label
		if l.TotalCount > len(l.Items) {
			header += fmt.Sprintf(" (top %d of %d)", len(l.Items), l.TotalCount)
		}
		sb.WriteString(t.theme.Bold.Render(header))
		sb.WriteString("\n")
	}

	maxName, maxMetric := 0, 0
	for _, item := range l.Items {
		maxName = max(maxName, runewidth.StringWidth(item.Name))
		maxMetric = max(maxMetric, runewidth.StringWidth(item.Metric))
	}
	maxName = min(maxName, t.width/2)

	for _, item := range l.Items {
		sb.WriteString("  ")
		if l.ShowRank {
			sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("%2d. ", item.Rank)))
		}
		name := runewidth.Truncate(item.Name, maxName, "…")
		sb.WriteString(t.theme.Primary.Render(padRight(name, maxName)))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Warning.Render(padLeft(item.Metric, maxMetric)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderTable(tt *pattern.DiagnosticTable) string {
	if len(tt.Items) == 0 {
		return ""
	}
	var sb strings.Builder
	if tt.Label != "" {
		sb.WriteString(t.theme.Bold.Render(tt.Label))
		sb.WriteString("\n")
	}

	maxLoc := 0
	for _, it := range tt.Items {
		maxLoc = max(maxLoc, runewidth.StringWidth(it.Location))
	}
	maxLoc = min(maxLoc, t.width/2)

	for _, it := range tt.Items {
		sb.WriteString("  ")
		if it.Count > 0 {
			sb.WriteString(t.theme.Warning.Render(fmt.Sprintf("%3dx ", it.Count)))
		} else {
			icon, style := t.kindStyle(it.Severity)
			sb.WriteString(style.Render(icon + " "))
		}
		loc := runewidth.Truncate(it.Location, maxLoc, "…")
		sb.WriteString(t.theme.Muted.Render(padRight(loc, maxLoc)))
		sb.WriteString("  ")

		used := 2 + 5 + maxLoc + 2
		msg := it.Message
		if it.Category != "" {
			msg = it.Category + ": " + msg
		}
		if room := t.width - used; room > 10 {
			msg = runewidth.Truncate(msg, room, "…")
		}
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	if tt.Omitted > 0 {
		sb.WriteString(t.theme.Muted.Render(fmt.Sprintf("  … %d more", tt.Omitted)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) renderSparkline(s *pattern.Sparkline) string {
	if len(s.Values) == 0 {
		return ""
	}
	var sb strings.Builder
	if s.Label != "" {
		sb.WriteString(t.theme.Primary.Render(s.Label + ": "))
	}
	sb.WriteString(t.theme.Success.Render(spark(s)))
	latest := s.Values[len(s.Values)-1]
	sb.WriteString(t.theme.Muted.Render(fmt.Sprintf(" %g%s", latest, s.Unit)))
	sb.WriteString("\n")
	return sb.String()
}

// spark draws one block per value, scaled between Min and Max.
func spark(s *pattern.Sparkline) string {
	minVal, maxVal := s.Min, s.Max
	if minVal == 0 && maxVal == 0 {
		minVal, maxVal = s.Values[0], s.Values[0]
		for _, v := range s.Values {
			minVal = min(minVal, v)
			maxVal = max(maxVal, v)
		}
	}
	valueRange := maxVal - minVal
	if valueRange == 0 {
		valueRange = 1
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	var sb strings.Builder
	for _, v := range s.Values {
		idx := int((v - minVal) / valueRange * 7)
		idx = max(0, min(7, idx))
		sb.WriteRune(blocks[idx])
	}
	return sb.String()
}

func (t *Terminal) renderComparison(c *pattern.Comparison) string {
	if len(c.Changes) == 0 {
		return ""
	}
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(t.theme.Bold.Render(c.Label))
		sb.WriteString("\n")
	}

	maxLabel := 0
	for _, item := range c.Changes {
		maxLabel = max(maxLabel, runewidth.StringWidth(item.Label))
	}
	for _, item := range c.Changes {
		sb.WriteString("  ")
		sb.WriteString(padRight(item.Label, maxLabel))
		sb.WriteString("  ")
		sb.WriteString(t.theme.Muted.Render(item.Before + " → " + item.After))
		sb.WriteString(" ")

		// More diagnostics is worse.
		var arrow string
		var style lipgloss.Style
		switch {
		case item.Change > 0:
			arrow, style = t.theme.Icons.Up, t.theme.Error
		case item.Change < 0:
			arrow, style = t.theme.Icons.Down, t.theme.Success
		default:
			arrow, style = t.theme.Icons.Same, t.theme.Muted
		}
		abs := item.Change
		if abs < 0 {
			abs = -abs
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s %g%s", arrow, abs, item.Unit)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *Terminal) kindStyle(kind string) (string, lipgloss.Style) {
	switch kind {
	case "success":
		return t.theme.Icons.OK, t.theme.Success
	case "error":
		return t.theme.Icons.Error, t.theme.Error
	case "warning":
		return t.theme.Icons.Warning, t.theme.Warning
	default:
		return t.theme.Icons.Info, t.theme.Primary
	}
}

func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
