package sarif

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/dkoosis/sift/pkg/diag"
)

// Builder constructs SARIF 2.1.0 documents from classified records.
type Builder struct {
	doc   *Document
	rules map[string]int
}

// NewBuilder creates a builder for the given tool.
func NewBuilder(toolName, toolVersion string) *Builder {
	return &Builder{
		doc: &Document{
			Version: Version,
			Schema:  Schema,
			Runs: []Run{{
				Tool:    Tool{Driver: Driver{Name: toolName, Version: toolVersion}},
				Results: []Result{},
			}},
		},
		rules: make(map[string]int),
	}
}

func (b *Builder) run() *Run { return &b.doc.Runs[0] }

// AddRule registers a rule and returns its index. Registering an id twice
// returns the existing index.
func (b *Builder) AddRule(id, description string, props map[string]any) int {
	if i, ok := b.rules[id]; ok {
		return i
	}
	r := Rule{ID: id, Properties: props}
	if description != "" {
		r.ShortDescription = &Message{Text: description}
	}
	drv := &b.run().Tool.Driver
	drv.Rules = append(drv.Rules, r)
	b.rules[id] = len(drv.Rules) - 1
	return b.rules[id]
}

// AddResult adds a result for a rule, registering the rule if needed.
func (b *Builder) AddResult(ruleID, level, message, file string, line, col int) *Builder {
	b.addResult(ruleID, level, message, file, line, col, nil)
	return b
}

func (b *Builder) addResult(ruleID, level, message, file string, line, col int, props map[string]any) {
	r := Result{
		RuleID:     ruleID,
		RuleIndex:  b.AddRule(ruleID, "", nil),
		Level:      level,
		Message:    Message{Text: message},
		Properties: props,
	}
	if file != "" {
		r.Locations = []Location{{
			PhysicalLocation: PhysicalLocation{
				ArtifactLocation: ArtifactLocation{URI: file},
				Region:           Region{StartLine: line, StartColumn: col},
			},
		}}
	}
	b.run().Results = append(b.run().Results, r)
}

// AddRecord adds rec with its category as the rule id.
func (b *Builder) AddRecord(rec diag.Record) *Builder {
	props := map[string]any{"source": rec.Source}
	if rec.Tag != "" {
		props["tag"] = rec.Tag
	}
	b.addResult(string(rec.Category), Level(rec.Severity), rec.Message, rec.File, rec.Line, rec.Column, props)
	return b
}

// Document returns the constructed SARIF document.
func (b *Builder) Document() *Document {
	return b.doc
}

// WriteTo writes the SARIF document as indented JSON to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := json.MarshalIndent(b.doc, "", "  ")
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	n, err := w.Write(data)
	return int64(n), err
}

// Level maps a severity to a SARIF result level.
func Level(s diag.Severity) string {
	switch s {
	case diag.SeverityError:
		return "error"
	case diag.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// FromRecords builds a document with one rule per category, in taxonomy
// order, and one result per record ordered by position. describe supplies
// each rule's description and properties; it may be nil.
func FromRecords(toolName, toolVersion string, records []diag.Record, describe func(diag.Category) (string, map[string]any)) *Document {
	b := NewBuilder(toolName, toolVersion)
	for _, c := range diag.Categories {
		desc, props := "", map[string]any(nil)
		if describe != nil {
			desc, props = describe(c)
		}
		b.AddRule(string(c), desc, props)
	}

	sorted := make([]diag.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return diag.Less(sorted[i], sorted[j]) })
	for _, rec := range sorted {
		b.AddRecord(rec)
	}
	return b.Document()
}
