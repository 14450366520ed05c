// internal/sandbox/budget.go
package sandbox

/*
 * Step budget for preview evaluation.
 *
 * Every AST node charges a cost before evaluating; exceeding
 * types.MaxEvalSteps aborts with ErrEvalBudgetExceeded. The restricted
 * grammar has no loops or calls, so the budget only trips on adversarially
 * nested input, but a preview evaluator that can be wedged by its own input
 * is not best-effort.
 *
 * Costs mirror relative operation expense: identifier resolution pays per
 * path segment, membership pays per candidate element, comparisons cost more
 * than literals. Absolute values are arbitrary; only the ceiling matters.
 */

const (
	costLiteral     = 1
	costLogical     = 2
	costIdent       = 2
	costPerSegment  = 4
	costCompare     = 5
	costOrderedCmp  = 7
	costMembership  = 8
	costPerListElem = 1
)
