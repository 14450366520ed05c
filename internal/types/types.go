// Package types provides domain models shared across RouteGate components.
//
// Zero-dependency design: types.go, rules.go, and errors.go use only
// encoding/json so the rule model can be embedded in thin clients without
// pulling in the engine. ID utilities in ids.go import uuid but are isolated
// for selective inclusion.
package types

// ConfigID represents a UUIDv7 rule configuration identifier.
// String alias enables type safety while maintaining JSON string serialization.
type ConfigID string

// SampleContext is the mutable sample event record the preview evaluators
// resolve identifiers and template paths against. Supplied by the editing
// surface; typical fields are severity, issue_count, status, pass_rate, tags,
// and nested metadata.
type SampleContext map[string]any

// Clone returns a shallow copy of the context.
// Preview evaluation never mutates the context, but callers hand the same map
// to concurrent debounced checks; copying keeps ownership single-writer.
func (c SampleContext) Clone() SampleContext {
	out := make(SampleContext, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// RemoteResult is the authoritative service's verdict on an expression or
// template validation call. Mirrors the wire contract field for field.
type RemoteResult struct {
	Valid          bool   `json:"valid"`
	Error          string `json:"error,omitempty"`
	ErrorLine      int    `json:"error_line,omitempty"`
	RenderedOutput string `json:"rendered_output,omitempty"`
}

// Resource limits enforced by the engine to keep preview evaluation and
// validation bounded regardless of user input.
const (
	// MaxRuleDepth caps condition tree depth during validation.
	// 16 levels handles any realistic routing policy; deeper trees are
	// rejected rather than trusted to the editing surface's own cap.
	MaxRuleDepth = 16

	// MaxSubRules caps combinator fan-out to prevent unbounded recursion cost.
	MaxSubRules = 64

	// MaxExpressionLength bounds expression source accepted by the sandbox.
	// 4KB accommodates verbose hand-written conditions; anything larger is
	// machine-generated and belongs on the authoritative side only.
	MaxExpressionLength = 4 * 1024

	// MaxTemplateLength bounds template source accepted for local preview.
	MaxTemplateLength = 16 * 1024

	// MaxEvalSteps is the hard step budget for sandbox interpretation.
	// Each AST node evaluation consumes one step; the restricted grammar
	// cannot loop, so the budget only trips on adversarially nested input.
	MaxEvalSteps = 10_000

	// MaxPathDepth caps dotted-path resolution depth in template previews.
	MaxPathDepth = 16
)
