package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/paths"
)

const maxTableMessageWidth = 80

func writeText(w io.Writer, r *aggregate.Report, opts Options) error {
	fmt.Fprintf(w, "%d diagnostics in %d files from %d captures\n\n",
		r.TotalRecords, len(r.FileTotals), len(r.FilesAnalyzed))

	sev := make([][]string, 0, len(diag.Severities))
	for _, s := range diag.Severities {
		sev = append(sev, []string{string(s), strconv.Itoa(r.TotalsBySeverity[s])})
	}
	if err := WriteTable(w, []string{"Severity", "Count"}, sev, tw.AlignRight); err != nil {
		return err
	}

	if len(r.CategoryRanking) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(r.CategoryRanking))
		for _, cc := range r.CategoryRanking {
			rows = append(rows, []string{
				string(cc.Priority),
				Title(cc.Category),
				strconv.Itoa(cc.Count),
				fmt.Sprintf("%.1f%%", cc.Percent),
			})
		}
		if err := WriteTable(w, []string{"Priority", "Category", "Count", "Share"}, rows, tw.AlignLeft); err != nil {
			return err
		}
	}

	if files := r.TopFiles(opts.top()); len(files) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(files))
		for i, f := range files {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				f.File,
				strconv.Itoa(f.Errors),
				strconv.Itoa(f.Warnings),
				strconv.Itoa(f.Infos),
				strconv.Itoa(f.Total),
			})
		}
		if err := WriteTable(w, []string{"Rank", "File", "Errors", "Warnings", "Info", "Total"}, rows, tw.AlignRight); err != nil {
			return err
		}
	}

	if len(r.DuplicateGroups) > 0 {
		fmt.Fprintln(w)
		rows := make([][]string, 0, len(r.DuplicateGroups))
		for _, g := range r.DuplicateGroups {
			rows = append(rows, []string{
				strconv.Itoa(g.Occurrences),
				fmt.Sprintf("%s:%d:%d", paths.Short(g.File), g.Line, g.Column),
				runewidth.Truncate(g.Message, maxTableMessageWidth, "…"),
				strings.Join(g.Files, ", "),
			})
		}
		if err := WriteTable(w, []string{"Seen", "Location", "Message", "Captures"}, rows, tw.AlignLeft); err != nil {
			return err
		}
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

// WriteTable renders rows under headers as an ASCII table.
func WriteTable(w io.Writer, headers []string, rows [][]string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("table rows: %w", err)
	}
	return table.Render()
}

// sortedKeysByCount orders map keys by count desc, then name.
func sortedKeysByCount(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
