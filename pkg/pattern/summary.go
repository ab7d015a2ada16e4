package pattern

// SummaryKind identifies what a summary counts, so renderers can dispatch
// without parsing labels.
type SummaryKind string

const (
	SummaryKindTotals     SummaryKind = "totals"
	SummaryKindCategories SummaryKind = "categories"
	SummaryKindPriorities SummaryKind = "priorities"
	SummaryKindWarnings   SummaryKind = "warnings"
)

// Summary represents high-level metrics and counts.
type Summary struct {
	Label   string
	Kind    SummaryKind
	Metrics []SummaryItem
}

// SummaryItem is a single metric in a summary.
type SummaryItem struct {
	Label string // e.g., "Errors", "type_assignment_errors"
	Value string // formatted value
	Kind  string // "success", "error", "warning", "info"; affects coloring
	Note  string // optional trailing context, e.g. a priority label
}

func (s *Summary) Type() PatternType { return PatternTypeSummary }
