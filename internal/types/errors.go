package types

import "errors"

// Sentinel errors for RouteGate operations.
var (
	// ErrMalformedConfig indicates text that does not decode to an object
	// carrying a string-valued "type" field.
	ErrMalformedConfig = errors.New("config text is not a rule object")

	// ErrEmptyExpression indicates an empty or whitespace-only expression.
	ErrEmptyExpression = errors.New("expression is empty")

	// ErrExpressionTooLong indicates expression source exceeds MaxExpressionLength.
	ErrExpressionTooLong = errors.New("expression exceeds maximum length")

	// ErrTemplateTooLong indicates template source exceeds MaxTemplateLength.
	ErrTemplateTooLong = errors.New("template exceeds maximum length")

	// ErrUnbalancedBrackets indicates a closer without matching opener or an
	// unclosed opener at end of input.
	ErrUnbalancedBrackets = errors.New("unbalanced brackets in expression")

	// ErrDeniedConstruct indicates the expression matched the deny-list of
	// dangerous constructs (dunder access, eval, exec, import, compile, ...).
	ErrDeniedConstruct = errors.New("expression contains a denied construct")

	// ErrEvalBudgetExceeded indicates preview evaluation exceeded MaxEvalSteps.
	ErrEvalBudgetExceeded = errors.New("evaluation step budget exceeded")

	// ErrUnknownIdentifier indicates an identifier that does not resolve
	// against the sample context.
	ErrUnknownIdentifier = errors.New("identifier not present in sample context")

	// ErrNotComparable indicates operands an operator cannot compare.
	ErrNotComparable = errors.New("operands are not comparable")

	// ErrPathTooDeep indicates a dotted path exceeds MaxPathDepth.
	ErrPathTooDeep = errors.New("path exceeds maximum depth")

	// ErrRemoteIndeterminate indicates a network or service failure during an
	// authoritative check. Indeterminate, not invalid; retried on next edit.
	ErrRemoteIndeterminate = errors.New("authoritative check unavailable")
)
