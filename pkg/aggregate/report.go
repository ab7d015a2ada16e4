// Package aggregate folds classified records into a single per-run report.
// A Report is a value built once from the full record set; nothing in it
// depends on the order records or sources were supplied in.
package aggregate

import (
	"sort"

	"github.com/dkoosis/sift/pkg/classify"
	"github.com/dkoosis/sift/pkg/dedup"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/paths"
)

// TopPatternLimit caps the number of message signatures kept in a report.
const TopPatternLimit = 20

// Report is the aggregate of one run.
type Report struct {
	TotalRecords      int                      `json:"totalRecords" yaml:"totalRecords"`
	TotalsByCategory  map[diag.Category]int    `json:"totalsByCategory" yaml:"totalsByCategory"`
	TotalsBySeverity  map[diag.Severity]int    `json:"totalsBySeverity" yaml:"totalsBySeverity"`
	TotalsByPriority  map[Priority]int         `json:"totalsByPriority" yaml:"totalsByPriority"`
	TotalsByExtension map[string]int           `json:"totalsByExtension" yaml:"totalsByExtension"`
	CategoryRanking   []CategoryCount          `json:"categoryRanking" yaml:"categoryRanking"`
	FileTotals        []FileTotal              `json:"fileTotals" yaml:"fileTotals"`
	TopPatterns       []PatternCount           `json:"topPatterns" yaml:"topPatterns"`
	PerFile           map[string][]diag.Record `json:"perFile" yaml:"perFile"`
	DuplicateGroups   []dedup.Group            `json:"duplicateGroups" yaml:"duplicateGroups"`
	FilesAnalyzed     []string                 `json:"filesAnalyzed" yaml:"filesAnalyzed"`
	Warnings          []string                 `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CategoryCount is one row of the category ranking.
type CategoryCount struct {
	Category diag.Category `json:"category" yaml:"category"`
	Count    int           `json:"count" yaml:"count"`
	Priority Priority      `json:"priority" yaml:"priority"`
	Percent  float64       `json:"percent" yaml:"percent"`
}

// FileTotal counts the records reported against one file.
type FileTotal struct {
	File     string `json:"file" yaml:"file"`
	Errors   int    `json:"errors" yaml:"errors"`
	Warnings int    `json:"warnings" yaml:"warnings"`
	Infos    int    `json:"infos" yaml:"infos"`
	Total    int    `json:"total" yaml:"total"`
}

// Actionable is errors plus warnings, the figure files are ranked by.
func (f FileTotal) Actionable() int { return f.Errors + f.Warnings }

// PatternCount is a generalized message and how often it occurred.
type PatternCount struct {
	Signature string        `json:"signature" yaml:"signature"`
	Category  diag.Category `json:"category" yaml:"category"`
	Count     int           `json:"count" yaml:"count"`
}

// Build aggregates records captured from sources. warnings carries non-fatal
// problems met while reading inputs. The records slice is not modified.
func Build(records []diag.Record, sources, warnings []string) *Report {
	r := &Report{
		TotalRecords:      len(records),
		TotalsByCategory:  make(map[diag.Category]int, len(diag.Categories)),
		TotalsBySeverity:  make(map[diag.Severity]int, len(diag.Severities)),
		TotalsByPriority:  make(map[Priority]int, len(Priorities)),
		TotalsByExtension: make(map[string]int),
		PerFile:           make(map[string][]diag.Record),
		FilesAnalyzed:     sortedUnique(sources),
		Warnings:          sortedUnique(warnings),
	}
	for _, c := range diag.Categories {
		r.TotalsByCategory[c] = 0
	}
	for _, s := range diag.Severities {
		r.TotalsBySeverity[s] = 0
	}
	for _, p := range Priorities {
		r.TotalsByPriority[p] = 0
	}

	files := make(map[string]*FileTotal)
	type patternKey struct {
		sig string
		cat diag.Category
	}
	patterns := make(map[patternKey]int)

	for _, rec := range records {
		r.TotalsByCategory[rec.Category]++
		r.TotalsBySeverity[rec.Severity]++
		r.TotalsByPriority[PriorityOf(rec.Category).Priority]++
		r.TotalsByExtension[paths.Ext(rec.File)]++
		r.PerFile[rec.File] = append(r.PerFile[rec.File], rec)

		ft, ok := files[rec.File]
		if !ok {
			ft = &FileTotal{File: rec.File}
			files[rec.File] = ft
		}
		ft.Total++
		switch rec.Severity {
		case diag.SeverityError:
			ft.Errors++
		case diag.SeverityWarning:
			ft.Warnings++
		default:
			ft.Infos++
		}

		patterns[patternKey{classify.Signature(rec.Message), rec.Category}]++
	}

	for _, list := range r.PerFile {
		sort.Slice(list, func(i, j int) bool { return diag.Less(list[i], list[j]) })
	}

	r.CategoryRanking = rankCategories(r.TotalsByCategory, len(records))

	r.FileTotals = make([]FileTotal, 0, len(files))
	for _, ft := range files {
		r.FileTotals = append(r.FileTotals, *ft)
	}
	sort.Slice(r.FileTotals, func(i, j int) bool {
		a, b := r.FileTotals[i], r.FileTotals[j]
		if a.Actionable() != b.Actionable() {
			return a.Actionable() > b.Actionable()
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.File < b.File
	})

	r.TopPatterns = make([]PatternCount, 0, len(patterns))
	for k, n := range patterns {
		r.TopPatterns = append(r.TopPatterns, PatternCount{Signature: k.sig, Category: k.cat, Count: n})
	}
	sort.Slice(r.TopPatterns, func(i, j int) bool {
		a, b := r.TopPatterns[i], r.TopPatterns[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Signature != b.Signature {
			return a.Signature < b.Signature
		}
		return a.Category.Index() < b.Category.Index()
	})
	if len(r.TopPatterns) > TopPatternLimit {
		r.TopPatterns = r.TopPatterns[:TopPatternLimit]
	}

	r.DuplicateGroups = dedup.Groups(records)
	if r.DuplicateGroups == nil {
		r.DuplicateGroups = []dedup.Group{}
	}
	return r
}

// rankCategories lists non-empty categories by count, ties in taxonomy order.
func rankCategories(totals map[diag.Category]int, total int) []CategoryCount {
	ranking := make([]CategoryCount, 0, len(totals))
	for _, c := range diag.Categories {
		n := totals[c]
		if n == 0 {
			continue
		}
		ranking = append(ranking, CategoryCount{
			Category: c,
			Count:    n,
			Priority: PriorityOf(c).Priority,
			Percent:  percent(n, total),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func sortedUnique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// TopFiles returns at most n entries of FileTotals; n <= 0 means all.
func (r *Report) TopFiles(n int) []FileTotal {
	if n <= 0 || n >= len(r.FileTotals) {
		return r.FileTotals
	}
	return r.FileTotals[:n]
}

// Errors returns the number of error-severity records.
func (r *Report) Errors() int { return r.TotalsBySeverity[diag.SeverityError] }

// WarningCount returns the number of warning-severity records.
func (r *Report) WarningCount() int { return r.TotalsBySeverity[diag.SeverityWarning] }

// Infos returns the number of info-severity records.
func (r *Report) Infos() int { return r.TotalsBySeverity[diag.SeverityInfo] }

// CountAtLeast returns how many records are at least as severe as min.
func (r *Report) CountAtLeast(min diag.Severity) int {
	n := 0
	for _, s := range diag.Severities {
		if s.AtLeast(min) {
			n += r.TotalsBySeverity[s]
		}
	}
	return n
}

// Percent returns the share of all records that c accounts for.
func (r *Report) Percent(c diag.Category) float64 {
	return percent(r.TotalsByCategory[c], r.TotalRecords)
}
