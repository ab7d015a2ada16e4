package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dkoosis/sift/pkg/aggregate"
)

var phaseTitles = map[aggregate.Priority]string{
	aggregate.PriorityCritical: "Critical (fix first)",
	aggregate.PriorityHigh:     "High (fix next)",
	aggregate.PriorityMedium:   "Medium",
	aggregate.PriorityLow:      "Low (cleanup)",
	aggregate.PriorityReview:   "Needs review",
}

func writeMarkdown(w io.Writer, r *aggregate.Report, opts Options) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) { fmt.Fprintf(bw, format, args...) }

	p("# Diagnostic report\n\n")
	if opts.Tool != "" {
		p("_Generated by %s %s on %s._\n\n", opts.Tool, opts.Version, opts.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	}

	p("## Summary\n\n")
	p("- Total diagnostics: **%d**\n", r.TotalRecords)
	p("- Errors: %d, warnings: %d, info: %d\n", r.Errors(), r.WarningCount(), r.Infos())
	p("- Files with diagnostics: %d\n", len(r.FileTotals))
	p("- Captures analyzed: %d\n", len(r.FilesAnalyzed))
	p("- Diagnostics captured more than once: %d\n", len(r.DuplicateGroups))

	if r.TotalRecords == 0 {
		p("\nNo diagnostics found.\n")
		writeWarningsMarkdown(p, r)
		return bw.Flush()
	}

	p("\n## By category\n\n")
	p("| Priority | Category | Count | Share | Notes |\n")
	p("|---|---|--:|--:|---|\n")
	for _, cc := range r.CategoryRanking {
		p("| %s | %s | %d | %.1f%% | %s |\n",
			strings.ToUpper(string(cc.Priority)), Title(cc.Category), cc.Count, cc.Percent,
			cell(aggregate.PriorityOf(cc.Category).Description))
	}

	p("\n## Fix order\n\n")
	for _, prio := range aggregate.Priorities {
		n := r.TotalsByPriority[prio]
		if n == 0 {
			continue
		}
		p("### %s: %d\n\n", phaseTitles[prio], n)
		for _, cc := range r.CategoryRanking {
			if cc.Priority == prio {
				p("- %s: %d\n", Title(cc.Category), cc.Count)
			}
		}
		p("\n")
	}

	files := r.TopFiles(opts.top())
	p("## Top %d files\n\n", len(files))
	p("| # | File | Errors | Warnings | Info | Total |\n")
	p("|--:|---|--:|--:|--:|--:|\n")
	for i, f := range files {
		p("| %d | `%s` | %d | %d | %d | %d |\n", i+1, f.File, f.Errors, f.Warnings, f.Infos, f.Total)
	}

	p("\n## By file type\n\n")
	for _, ext := range sortedKeysByCount(r.TotalsByExtension) {
		p("- %s: %d\n", ext, r.TotalsByExtension[ext])
	}

	if len(r.TopPatterns) > 0 {
		p("\n## Frequent messages\n\n")
		for i, pc := range r.TopPatterns {
			p("%d. (%dx) %s\n", i+1, pc.Count, cell(pc.Signature))
		}
	}

	if len(r.DuplicateGroups) > 0 {
		p("\n## Captured more than once\n\n")
		p("| Occurrences | Location | Message | Captures |\n")
		p("|--:|---|---|---|\n")
		for _, g := range r.DuplicateGroups {
			p("| %d | `%s:%d:%d` | %s | %s |\n", g.Occurrences, g.File, g.Line, g.Column,
				cell(g.Message), cell(strings.Join(g.Files, ", ")))
		}
	}

	writeWarningsMarkdown(p, r)
	return bw.Flush()
}

func writeWarningsMarkdown(p func(string, ...any), r *aggregate.Report) {
	if len(r.Warnings) == 0 {
		return
	}
	p("\n## Input warnings\n\n")
	for _, w := range r.Warnings {
		p("- %s\n", w)
	}
}

// cell makes s safe inside a pipe table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
