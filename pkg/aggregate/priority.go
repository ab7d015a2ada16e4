package aggregate

import "github.com/dkoosis/sift/pkg/diag"

// Priority is the fix-order label attached to a category for presentation.
// It never affects classification.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityReview   Priority = "review"
)

// Priorities lists labels in fix order.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow, PriorityReview}

// PriorityInfo is the presentation metadata of one category.
type PriorityInfo struct {
	Priority    Priority
	Description string
}

var priorities = map[diag.Category]PriorityInfo{
	diag.CategoryMissingTranslationKeys: {PriorityCritical, "Missing translation keys break i18n"},
	diag.CategoryObjectProperty:         {PriorityHigh, "Property access errors, potential runtime crashes"},
	diag.CategoryNullUndefined:          {PriorityHigh, "Null safety issues, potential runtime crashes"},
	diag.CategoryFunctionReturn:         {PriorityMedium, "Missing return statements"},
	diag.CategoryImportExport:           {PriorityMedium, "Import and module resolution issues"},
	diag.CategoryDeprecatedSyntax:       {PriorityMedium, "Deprecated component syntax"},
	diag.CategoryOptionalChaining:       {PriorityMedium, "Optional chaining issues"},
	diag.CategoryUnusedVariables:        {PriorityLow, "Unused variables and imports"},
	diag.CategoryFormAction:             {PriorityMedium, "Form action typing"},
	diag.CategoryFunctionArguments:      {PriorityCritical, "Argument count and type mismatches"},
	diag.CategoryComponentProps:         {PriorityMedium, "Component prop type mismatches"},
	diag.CategoryTypeAssignment:         {PriorityMedium, "Type mismatches"},
	diag.CategoryParse:                  {PriorityHigh, "Syntax the checker could not parse"},
	diag.CategoryAccessibility:          {PriorityLow, "Accessibility warnings"},
	diag.CategoryOther:                  {PriorityReview, "Uncategorized, needs manual review"},
}

// PriorityOf returns the presentation metadata for c. Unknown categories are
// treated like "other".
func PriorityOf(c diag.Category) PriorityInfo {
	if p, ok := priorities[c]; ok {
		return p
	}
	return priorities[diag.CategoryOther]
}

// Rank orders priorities: lower is more urgent.
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if known == p {
			return i
		}
	}
	return len(Priorities)
}
