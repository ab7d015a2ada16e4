// Package diag defines the record types shared by every stage of the
// diagnostic pipeline. Records are values: stages build new slices rather
// than mutating what they receive.
package diag

import "fmt"

// Severity is the operational weight of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists every severity, most severe first.
var Severities = []Severity{SeverityError, SeverityWarning, SeverityInfo}

// Rank orders severities for sorting: lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// AtLeast reports whether s is as severe as or more severe than min.
func (s Severity) AtLeast(min Severity) bool {
	return s.Rank() <= min.Rank()
}

// ParseSeverity maps a configuration string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityInfo:
		return Severity(s), nil
	}
	return "", fmt.Errorf("unknown severity %q (expected error, warning, info)", s)
}

// Category is one tag of the closed classification taxonomy.
type Category string

const (
	CategoryMissingTranslationKeys Category = "missing_translation_keys"
	CategoryObjectProperty         Category = "object_property_errors"
	CategoryNullUndefined          Category = "null_undefined_errors"
	CategoryFunctionReturn         Category = "function_return_errors"
	CategoryImportExport           Category = "import_export_errors"
	CategoryDeprecatedSyntax       Category = "deprecated_syntax"
	CategoryOptionalChaining       Category = "optional_chaining_errors"
	CategoryUnusedVariables        Category = "unused_variables"
	CategoryFormAction             Category = "form_action_errors"
	CategoryFunctionArguments      Category = "function_argument_errors"
	CategoryComponentProps         Category = "component_prop_errors"
	CategoryTypeAssignment         Category = "type_assignment_errors"
	CategoryParse                  Category = "parse_errors"
	CategoryAccessibility          Category = "accessibility_warnings"
	CategoryOther                  Category = "other"
)

// Categories is the taxonomy in classification order. The order is part of
// the contract: earlier categories win when patterns overlap.
var Categories = []Category{
	CategoryMissingTranslationKeys,
	CategoryObjectProperty,
	CategoryNullUndefined,
	CategoryFunctionReturn,
	CategoryImportExport,
	CategoryDeprecatedSyntax,
	CategoryOptionalChaining,
	CategoryUnusedVariables,
	CategoryFormAction,
	CategoryFunctionArguments,
	CategoryComponentProps,
	CategoryTypeAssignment,
	CategoryParse,
	CategoryAccessibility,
	CategoryOther,
}

// Index returns the position of c in Categories, or len(Categories) if c is
// not part of the taxonomy.
func (c Category) Index() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return len(Categories)
}

// Valid reports whether c is a member of the taxonomy.
func (c Category) Valid() bool {
	return c.Index() < len(Categories)
}

// Record is one recognized diagnostic after classification.
type Record struct {
	File       string   `json:"file" yaml:"file"`
	Line       int      `json:"line" yaml:"line"`
	Column     int      `json:"column" yaml:"column"`
	Severity   Severity `json:"severity" yaml:"severity"`
	Message    string   `json:"message" yaml:"message"`
	RawMessage string   `json:"rawMessage" yaml:"rawMessage"`
	Category   Category `json:"category" yaml:"category"`
	Tag        string   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Source     string   `json:"source" yaml:"source"`
}

// Location formats the record position as file:line:col.
func (r Record) Location() string {
	return fmt.Sprintf("%s:%d:%d", r.File, r.Line, r.Column)
}

// Less orders records by position, then severity, message and source.
// Used wherever output must not depend on capture order.
func Less(a, b Record) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	if a.Column != b.Column {
		return a.Column < b.Column
	}
	if a.Severity != b.Severity {
		return a.Severity.Rank() < b.Severity.Rank()
	}
	if a.Message != b.Message {
		return a.Message < b.Message
	}
	if a.Source != b.Source {
		return a.Source < b.Source
	}
	return a.RawMessage < b.RawMessage
}
