package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/diag"
)

func TestPriorityOf(t *testing.T) {
	t.Parallel()

	tests := map[diag.Category]aggregate.Priority{
		diag.CategoryMissingTranslationKeys: aggregate.PriorityCritical,
		diag.CategoryFunctionArguments:      aggregate.PriorityCritical,
		diag.CategoryObjectProperty:         aggregate.PriorityHigh,
		diag.CategoryNullUndefined:          aggregate.PriorityHigh,
		diag.CategoryParse:                  aggregate.PriorityHigh,
		diag.CategoryTypeAssignment:         aggregate.PriorityMedium,
		diag.CategoryUnusedVariables:        aggregate.PriorityLow,
		diag.CategoryAccessibility:          aggregate.PriorityLow,
		diag.CategoryOther:                  aggregate.PriorityReview,
		diag.Category("bogus"):              aggregate.PriorityReview,
	}
	for c, want := range tests {
		assert.Equal(t, want, aggregate.PriorityOf(c).Priority, "category %s", c)
	}

	for _, c := range diag.Categories {
		assert.NotEmpty(t, aggregate.PriorityOf(c).Description, "category %s", c)
	}
}

func TestPriorityRank(t *testing.T) {
	t.Parallel()

	assert.Less(t, aggregate.PriorityCritical.Rank(), aggregate.PriorityHigh.Rank())
	assert.Less(t, aggregate.PriorityLow.Rank(), aggregate.PriorityReview.Rank())
	assert.Equal(t, len(aggregate.Priorities), aggregate.Priority("x").Rank())
}
