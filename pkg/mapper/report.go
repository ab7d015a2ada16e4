// Package mapper converts an aggregate report into visualization patterns.
package mapper

import (
	"fmt"
	"strings"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/paths"
	"github.com/dkoosis/sift/pkg/pattern"
)

const (
	kindSuccess = "success"
	kindError   = "error"
	kindWarning = "warning"
	kindInfo    = "info"
)

// DefaultTop is the number of files shown when Options.Top is zero.
const DefaultTop = 20

// DefaultPerFile caps the diagnostics listed under each top file.
const DefaultPerFile = 10

// Options tunes how much of a report becomes patterns.
type Options struct {
	Top     int // files in the leaderboard; 0 means DefaultTop
	PerFile int // diagnostics listed per file; 0 means DefaultPerFile, <0 hides lists

	// Previous is the last recorded run, for deltas. Nil hides the comparison.
	Previous *Baseline
	// Totals is the record count of recent runs, oldest first, ending with
	// this one. Fewer than two values hides the trend.
	Totals []int
}

// Baseline is the part of an earlier run compared against.
type Baseline struct {
	Total      int
	Categories map[diag.Category]int
}

// FromReport converts r into patterns, most important first.
func FromReport(r *aggregate.Report, opts Options) []pattern.Pattern {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}
	perFile := opts.PerFile
	if perFile == 0 {
		perFile = DefaultPerFile
	}

	patterns := []pattern.Pattern{totalsSummary(r)}
	if r.TotalRecords > 0 {
		patterns = append(patterns, categorySummary(r), prioritySummary(r))
		if lb := fileLeaderboard(r, top); lb != nil {
			patterns = append(patterns, lb)
		}
		if perFile > 0 {
			for _, ft := range r.TopFiles(top) {
				patterns = append(patterns, fileTable(r, ft, perFile))
			}
		}
		if dt := duplicateTable(r, top); dt != nil {
			patterns = append(patterns, dt)
		}
	}
	if opts.Previous != nil {
		patterns = append(patterns, comparison(r, opts.Previous))
	}
	if len(opts.Totals) > 1 {
		values := make([]float64, len(opts.Totals))
		for i, n := range opts.Totals {
			values[i] = float64(n)
		}
		patterns = append(patterns, &pattern.Sparkline{Label: "Diagnostics per run", Values: values})
	}
	if len(r.Warnings) > 0 {
		items := make([]pattern.SummaryItem, 0, len(r.Warnings))
		for _, w := range r.Warnings {
			items = append(items, pattern.SummaryItem{Label: "input", Value: w, Kind: kindWarning})
		}
		patterns = append(patterns, &pattern.Summary{
			Label:   "Input warnings",
			Kind:    pattern.SummaryKindWarnings,
			Metrics: items,
		})
	}
	return patterns
}

func totalsSummary(r *aggregate.Report) *pattern.Summary {
	label := fmt.Sprintf("%d diagnostics in %d files from %d sources",
		r.TotalRecords, len(r.FileTotals), len(r.FilesAnalyzed))
	if r.TotalRecords == 0 {
		return &pattern.Summary{
			Label:   label,
			Kind:    pattern.SummaryKindTotals,
			Metrics: []pattern.SummaryItem{{Label: "Diagnostics", Value: "0", Kind: kindSuccess}},
		}
	}

	var metrics []pattern.SummaryItem
	if n := r.Errors(); n > 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Errors", Value: fmt.Sprint(n), Kind: kindError})
	}
	if n := r.WarningCount(); n > 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Warnings", Value: fmt.Sprint(n), Kind: kindWarning})
	}
	if n := r.Infos(); n > 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Info", Value: fmt.Sprint(n), Kind: kindInfo})
	}
	if n := len(r.DuplicateGroups); n > 0 {
		metrics = append(metrics, pattern.SummaryItem{Label: "Duplicated", Value: fmt.Sprint(n), Kind: kindInfo})
	}
	return &pattern.Summary{Label: label, Kind: pattern.SummaryKindTotals, Metrics: metrics}
}

func categorySummary(r *aggregate.Report) *pattern.Summary {
	metrics := make([]pattern.SummaryItem, 0, len(r.CategoryRanking))
	for _, cc := range r.CategoryRanking {
		metrics = append(metrics, pattern.SummaryItem{
			Label: string(cc.Category),
			Value: fmt.Sprintf("%d (%.1f%%)", cc.Count, cc.Percent),
			Kind:  priorityKind(cc.Priority),
			Note:  string(cc.Priority),
		})
	}
	return &pattern.Summary{Label: "By category", Kind: pattern.SummaryKindCategories, Metrics: metrics}
}

func prioritySummary(r *aggregate.Report) *pattern.Summary {
	metrics := make([]pattern.SummaryItem, 0, len(aggregate.Priorities))
	for _, p := range aggregate.Priorities {
		n := r.TotalsByPriority[p]
		if n == 0 {
			continue
		}
		metrics = append(metrics, pattern.SummaryItem{
			Label: string(p),
			Value: fmt.Sprint(n),
			Kind:  priorityKind(p),
		})
	}
	return &pattern.Summary{Label: "Fix order", Kind: pattern.SummaryKindPriorities, Metrics: metrics}
}

func priorityKind(p aggregate.Priority) string {
	switch p {
	case aggregate.PriorityCritical, aggregate.PriorityHigh:
		return kindError
	case aggregate.PriorityMedium:
		return kindWarning
	default:
		return kindInfo
	}
}

func fileLeaderboard(r *aggregate.Report, top int) *pattern.Leaderboard {
	files := r.TopFiles(top)
	if len(files) == 0 {
		return nil
	}
	items := make([]pattern.LeaderboardItem, 0, len(files))
	for i, f := range files {
		items = append(items, pattern.LeaderboardItem{
			Name:    paths.Short(f.File),
			Metric:  fileMetric(f),
			Value:   float64(f.Actionable()),
			Rank:    i + 1,
			Context: f.File,
		})
	}
	return &pattern.Leaderboard{
		Label:      "Files with most issues",
		MetricName: "Issues",
		Items:      items,
		TotalCount: len(r.FileTotals),
		ShowRank:   true,
	}
}

func fileMetric(f aggregate.FileTotal) string {
	var parts []string
	if f.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d err", f.Errors))
	}
	if f.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warn", f.Warnings))
	}
	if f.Infos > 0 {
		parts = append(parts, fmt.Sprintf("%d info", f.Infos))
	}
	return strings.Join(parts, ", ")
}

func fileTable(r *aggregate.Report, ft aggregate.FileTotal, limit int) *pattern.DiagnosticTable {
	records := r.PerFile[ft.File]
	shown := records
	if len(shown) > limit {
		shown = shown[:limit]
	}
	items := make([]pattern.DiagnosticItem, 0, len(shown))
	for _, rec := range shown {
		items = append(items, pattern.DiagnosticItem{
			Location: fmt.Sprintf("%d:%d", rec.Line, rec.Column),
			Severity: string(rec.Severity),
			Category: string(rec.Category),
			Message:  rec.Message,
		})
	}
	return &pattern.DiagnosticTable{
		Label:   ft.File,
		Items:   items,
		Omitted: len(records) - len(shown),
	}
}

func duplicateTable(r *aggregate.Report, limit int) *pattern.DiagnosticTable {
	if len(r.DuplicateGroups) == 0 {
		return nil
	}
	groups := r.DuplicateGroups
	if len(groups) > limit {
		groups = groups[:limit]
	}
	items := make([]pattern.DiagnosticItem, 0, len(groups))
	for _, g := range groups {
		items = append(items, pattern.DiagnosticItem{
			Location: fmt.Sprintf("%s:%d:%d", g.File, g.Line, g.Column),
			Message:  g.Message,
			Count:    g.Occurrences,
		})
	}
	return &pattern.DiagnosticTable{
		Label:   "Captured more than once",
		Items:   items,
		Omitted: len(r.DuplicateGroups) - len(groups),
	}
}

func comparison(r *aggregate.Report, prev *Baseline) *pattern.Comparison {
	changes := []pattern.ComparisonItem{delta("total", prev.Total, r.TotalRecords)}
	for _, c := range diag.Categories {
		before, after := prev.Categories[c], r.TotalsByCategory[c]
		if before == 0 && after == 0 {
			continue
		}
		changes = append(changes, delta(string(c), before, after))
	}
	return &pattern.Comparison{Label: "Since previous run", Changes: changes}
}

func delta(label string, before, after int) pattern.ComparisonItem {
	return pattern.ComparisonItem{
		Label:  label,
		Before: fmt.Sprint(before),
		After:  fmt.Sprint(after),
		Change: float64(after - before),
	}
}
