package pattern

// DiagnosticTable lists individual diagnostics, usually those of one file.
type DiagnosticTable struct {
	Label string
	Items []DiagnosticItem
	// Omitted counts items dropped to keep the table short.
	Omitted int
}

// DiagnosticItem is one row of a DiagnosticTable.
type DiagnosticItem struct {
	Location string // "line:col" or "file:line:col"
	Severity string // "error", "warning", "info"
	Category string
	Message  string
	Count    int // occurrences, for duplicate listings; 0 when not applicable
}

func (t *DiagnosticTable) Type() PatternType { return PatternTypeTable }
