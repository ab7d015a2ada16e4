package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dkoosis/sift/pkg/pattern"
)

// LLM renders patterns as terse plain text for AI consumption: no ANSI codes,
// a SCOPE line first, deterministic ordering and bounded message lengths.
type LLM struct {
	maxMessage int
}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{maxMessage: 200}
}

// Render formats all patterns for LLM consumption.
func (l *LLM) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			l.renderSummary(&sb, v)
		case *pattern.Leaderboard:
			// The per-file tables that follow carry the same ranking.
		case *pattern.DiagnosticTable:
			l.renderTable(&sb, v)
		case *pattern.Comparison:
			l.renderComparison(&sb, v)
		case *pattern.Sparkline:
			l.renderSparkline(&sb, v)
		}
	}
	return sb.String()
}

func (l *LLM) renderSummary(sb *strings.Builder, s *pattern.Summary) {
	switch s.Kind {
	case pattern.SummaryKindTotals:
		parts := make([]string, 0, len(s.Metrics))
		for _, m := range s.Metrics {
			parts = append(parts, m.Value+" "+strings.ToLower(m.Label))
		}
		sb.WriteString("SCOPE: " + s.Label)
		if len(parts) > 0 {
			sb.WriteString(" (" + strings.Join(parts, ", ") + ")")
		}
		sb.WriteString("\n")
	case pattern.SummaryKindCategories:
		sb.WriteString("\nCATEGORIES:\n")
		for _, m := range s.Metrics {
			fmt.Fprintf(sb, "  %s %s [%s]\n", m.Label, m.Value, m.Note)
		}
	case pattern.SummaryKindPriorities:
		parts := make([]string, 0, len(s.Metrics))
		for _, m := range s.Metrics {
			parts = append(parts, m.Label+"="+m.Value)
		}
		sb.WriteString("FIX ORDER: " + strings.Join(parts, " ") + "\n")
	case pattern.SummaryKindWarnings:
		sb.WriteString("\n")
		for _, m := range s.Metrics {
			sb.WriteString("WARN " + m.Label + ": " + m.Value + "\n")
		}
	default:
		sb.WriteString("\n" + s.Label + "\n")
		for _, m := range s.Metrics {
			sb.WriteString("  " + m.Label + ": " + m.Value + "\n")
		}
	}
}

func (l *LLM) renderTable(sb *strings.Builder, t *pattern.DiagnosticTable) {
	if len(t.Items) == 0 {
		return
	}
	sb.WriteString("\n## " + t.Label + "\n")

	items := make([]pattern.DiagnosticItem, len(t.Items))
	copy(items, t.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return severityRank(items[i].Severity) < severityRank(items[j].Severity)
	})

	for _, it := range items {
		msg := l.clip(it.Message)
		if it.Count > 0 {
			fmt.Fprintf(sb, "  %dx %s %s\n", it.Count, it.Location, msg)
			continue
		}
		fmt.Fprintf(sb, "  %s %s %s %s\n", llmLevel(it.Severity), it.Location, it.Category, msg)
	}
	if t.Omitted > 0 {
		fmt.Fprintf(sb, "  ... (%d more)\n", t.Omitted)
	}
}

func (l *LLM) renderComparison(sb *strings.Builder, c *pattern.Comparison) {
	parts := make([]string, 0, len(c.Changes))
	for _, ch := range c.Changes {
		parts = append(parts, fmt.Sprintf("%s %s→%s (%+g)", ch.Label, ch.Before, ch.After, ch.Change))
	}
	sb.WriteString("\nDELTA: " + strings.Join(parts, ", ") + "\n")
}

func (l *LLM) renderSparkline(sb *strings.Builder, s *pattern.Sparkline) {
	parts := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		parts = append(parts, fmt.Sprintf("%g", v))
	}
	sb.WriteString("TREND: " + strings.Join(parts, " ") + "\n")
}

func (l *LLM) clip(msg string) string {
	r := []rune(msg)
	if len(r) <= l.maxMessage {
		return msg
	}
	return string(r[:l.maxMessage-3]) + "..."
}

func llmLevel(sev string) string {
	switch sev {
	case "error":
		return "ERR"
	case "warning":
		return "WARN"
	default:
		return "INFO"
	}
}
