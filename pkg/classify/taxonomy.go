// Package classify assigns each diagnostic message exactly one category from
// the closed taxonomy in package diag.
package classify

import (
	"regexp"

	"github.com/dkoosis/sift/pkg/diag"
)

// Rule binds a category to the patterns that select it.
type Rule struct {
	Category diag.Category
	Patterns []*regexp.Regexp
}

// Matches reports whether any pattern of the rule matches msg.
func (r Rule) Matches(msg string) bool {
	for _, p := range r.Patterns {
		if p.MatchString(msg) {
			return true
		}
	}
	return false
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// rules is evaluated top to bottom; the first match wins. Categories whose
// text overlaps a broader one must come first: translation keys before
// generic property access, null checks before optional chaining, specific
// assignment shapes before the catch-all type_assignment_errors.
var rules = []Rule{
	{diag.CategoryMissingTranslationKeys, patterns(
		`Property '[^']+' does not exist on type 'Record<string, unknown>'`,
		`Property '[^']+' does not exist on type '[^']*messages[^']*'`,
		`can't be used to index type '[^']*messages[^']*'`,
		`m\?\.[a-z_]+ not in messages`,
		`Cannot access property '[^']+' of undefined messages`,
		`\btranslation key`,
	)},
	{diag.CategoryObjectProperty, patterns(
		`Property '[^']+' does not exist on type`,
		`Cannot read propert(?:y|ies) of (?:null|undefined)`,
		`Type '[^']+' has no properties in common with type`,
		`Property '[^']+' is missing in type`,
	)},
	{diag.CategoryNullUndefined, patterns(
		`Object is possibly '(?:null|undefined)'`,
		`Object is possibly 'null' or 'undefined'`,
		`'[^']+' is possibly '(?:null|undefined)'`,
		`Argument of type '[^']*undefined[^']*' is not assignable`,
		`Argument of type '[^']*null[^']*' is not assignable`,
		`Type 'undefined' is not assignable to type`,
		`Type 'null' is not assignable to type`,
		`Cannot invoke an object which is possibly 'undefined'`,
		`Possibly null reference`,
	)},
	{diag.CategoryFunctionReturn, patterns(
		`Not all code paths return a value`,
		`Function lacks ending return statement`,
		`A function whose declared type is neither 'void' nor 'any' must return a value`,
	)},
	{diag.CategoryImportExport, patterns(
		`Cannot find module '[^']+'`,
		`Module '[^']+' has no exported member`,
		`has no default export`,
		`Could not resolve '[^']+'`,
		`Unable to resolve path to module`,
		`Cannot resolve module`,
	)},
	{diag.CategoryDeprecatedSyntax, patterns(
		`Using .?on:\w+.? to listen to the \w+ event is deprecated`,
		`\bon:\w+ is deprecated`,
		`\bslot\b.*deprecated`,
		`export let.*deprecated`,
		`createEventDispatcher.*deprecated`,
		`\$\$(?:props|restProps|slots)`,
		`is deprecated`,
	)},
	{diag.CategoryOptionalChaining, patterns(
		`Cannot access property '[^']+' of undefined`,
		`Optional chain expressions can return undefined`,
		`Invalid optional chain`,
		`Optional chain.*new expression`,
	)},
	{diag.CategoryUnusedVariables, patterns(
		`'[^']+' is declared but (?:its value is )?never (?:used|read)`,
		`'[^']+' is assigned a value but never used`,
		`All imports in import declaration are unused`,
		`Unused label '[^']+'`,
		`Unused CSS selector`,
	)},
	{diag.CategoryFormAction, patterns(
		`\bSubmitFunction\b`,
		`\benhance action\b`,
		`\bActionResult\b`,
		`\bform action\b`,
	)},
	{diag.CategoryFunctionArguments, patterns(
		`Expected \d+(?:-\d+)? arguments?, but got \d+`,
		`No overload matches this call`,
		`Expected at least \d+ arguments?`,
	)},
	{diag.CategoryComponentProps, patterns(
		`Object literal may only specify known properties`,
		`does not exist in type '[^']*Props[^']*'`,
		`is not a valid prop`,
	)},
	{diag.CategoryTypeAssignment, patterns(
		`Type '.+' is not assignable to type`,
		`Argument of type '.+' is not assignable to parameter of type`,
		`Cannot assign to '[^']+' because it is a read-only property`,
		`Conversion of type '.+' to type '.+' may be a mistake`,
	)},
	{diag.CategoryParse, patterns(
		`import\?\.meta`,
		`Unexpected token`,
		`Parsing error`,
		`Invalid or unexpected token`,
		`^'[^']+' expected\.?$`,
		`^Expected (?:an? )?[a-z]+ (?:but found|after|before)`,
	)},
	{diag.CategoryAccessibility, patterns(
		`\bA11y\b`,
		`accessibility`,
		`aria-`,
		`\bARIA\b`,
		`role attribute`,
		`alt attribute`,
		`tabindex`,
		`click event must be accompanied by`,
		`should not be assigned mouse or keyboard event`,
		`should either contain text or have an .?aria-label`,
		`must have an ARIA role`,
		`a11y_\w+`,
	)},
}

// Rules returns the ordered rule table. The final "other" category has no
// rule; it is the fallback.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
