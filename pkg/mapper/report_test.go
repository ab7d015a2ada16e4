package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/mapper"
	"github.com/dkoosis/sift/pkg/pattern"
)

func sampleReport() *aggregate.Report {
	rec := func(src, file string, line int, sev diag.Severity, cat diag.Category, msg string) diag.Record {
		return diag.Record{File: file, Line: line, Column: 1, Severity: sev, Category: cat, Message: msg, Source: src}
	}
	return aggregate.Build([]diag.Record{
		rec("a.log", "src/lib/a.ts", 1, diag.SeverityError, diag.CategoryTypeAssignment, "m1"),
		rec("b.log", "src/lib/a.ts", 1, diag.SeverityError, diag.CategoryTypeAssignment, "m1"),
		rec("a.log", "src/lib/a.ts", 2, diag.SeverityWarning, diag.CategoryUnusedVariables, "m2"),
		rec("a.log", "src/routes/b.svelte", 5, diag.SeverityInfo, diag.CategoryAccessibility, "m3"),
	}, []string{"a.log", "b.log"}, []string{"c.log: file not found"})
}

func find[T pattern.Pattern](patterns []pattern.Pattern) []T {
	var out []T
	for _, p := range patterns {
		if v, ok := p.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestFromReport_Sections(t *testing.T) {
	t.Parallel()

	patterns := mapper.FromReport(sampleReport(), mapper.Options{})

	summaries := find[*pattern.Summary](patterns)
	require.Len(t, summaries, 4)
	assert.Equal(t, pattern.SummaryKindTotals, summaries[0].Kind)
	assert.Equal(t, "4 diagnostics in 2 files from 2 sources", summaries[0].Label)
	assert.Equal(t, pattern.SummaryKindCategories, summaries[1].Kind)
	assert.Equal(t, "type_assignment_errors", summaries[1].Metrics[0].Label)
	assert.Equal(t, "2 (50.0%)", summaries[1].Metrics[0].Value)
	assert.Equal(t, "medium", summaries[1].Metrics[0].Note)
	assert.Equal(t, pattern.SummaryKindPriorities, summaries[2].Kind)
	assert.Equal(t, pattern.SummaryKindWarnings, summaries[3].Kind)

	boards := find[*pattern.Leaderboard](patterns)
	require.Len(t, boards, 1)
	assert.Equal(t, "lib/a.ts", boards[0].Items[0].Name)
	assert.Equal(t, "2 err, 1 warn", boards[0].Items[0].Metric)

	tables := find[*pattern.DiagnosticTable](patterns)
	require.Len(t, tables, 3, "two files plus duplicates")
	assert.Equal(t, "src/lib/a.ts", tables[0].Label)
	assert.Equal(t, "Captured more than once", tables[2].Label)
	assert.Equal(t, 2, tables[2].Items[0].Count)

	assert.Empty(t, find[*pattern.Comparison](patterns))
	assert.Empty(t, find[*pattern.Sparkline](patterns))
}

func TestFromReport_PerFileLimit(t *testing.T) {
	t.Parallel()

	patterns := mapper.FromReport(sampleReport(), mapper.Options{PerFile: 1, Top: 1})

	tables := find[*pattern.DiagnosticTable](patterns)
	require.Len(t, tables, 2)
	assert.Len(t, tables[0].Items, 1)
	assert.Equal(t, 2, tables[0].Omitted)

	hidden := mapper.FromReport(sampleReport(), mapper.Options{PerFile: -1})
	assert.Len(t, find[*pattern.DiagnosticTable](hidden), 1)
}

func TestFromReport_Empty(t *testing.T) {
	t.Parallel()

	patterns := mapper.FromReport(aggregate.Build(nil, nil, nil), mapper.Options{})

	require.Len(t, patterns, 1)
	s, ok := patterns[0].(*pattern.Summary)
	require.True(t, ok)
	assert.Equal(t, "success", s.Metrics[0].Kind)
}

func TestFromReport_History(t *testing.T) {
	t.Parallel()

	patterns := mapper.FromReport(sampleReport(), mapper.Options{
		Previous: &mapper.Baseline{Total: 6, Categories: map[diag.Category]int{diag.CategoryParse: 2, diag.CategoryTypeAssignment: 4}},
		Totals:   []int{9, 6, 4},
	})

	cmp := find[*pattern.Comparison](patterns)
	require.Len(t, cmp, 1)
	assert.Equal(t, "total", cmp[0].Changes[0].Label)
	assert.InDelta(t, -2, cmp[0].Changes[0].Change, 0)

	byLabel := map[string]float64{}
	for _, c := range cmp[0].Changes {
		byLabel[c.Label] = c.Change
	}
	assert.InDelta(t, -2, byLabel["parse_errors"], 0)
	assert.InDelta(t, -2, byLabel["type_assignment_errors"], 0)
	assert.InDelta(t, 1, byLabel["accessibility_warnings"], 0)

	spark := find[*pattern.Sparkline](patterns)
	require.Len(t, spark, 1)
	assert.Equal(t, []float64{9, 6, 4}, spark[0].Values)
}
