// internal/rules/validate.go
package rules

import (
	"github.com/routegate/routegate/internal/types"
)

/*
 * Structural validation of rule trees.
 *
 * Validate recursively determines whether a node and its subtree are complete
 * and consistent. Purely structural: it checks required parameters and
 * combinator arity, never satisfiability of the combination.
 *
 * Validation flow:
 *   1. Depth check against types.MaxRuleDepth (defense in depth; the editing
 *      surface caps depth too, but is not trusted to)
 *   2. Resolve type against registry; unresolved -> invalid
 *   3. Definition Validate hook, when present, fully replaces steps 4-5
 *   4. Every required parameter present (0 and false are present; nil and
 *      empty string are not)
 *   5. Combinator arity: not exactly one child, all_of/any_of one or more,
 *      every child recursively valid
 *
 * Never errors, never panics; always reports a boolean. Used both for inline
 * editor feedback and as the pre-submit gate.
 */

// Validate reports whether the node and its entire subtree are structurally
// complete.
func (r *Registry) Validate(node *types.RuleNode) bool {
	return r.validateAtDepth(node, 0)
}

// StandardValidate runs the required-param and combinator-arity checks for a
// node, ignoring any Validate hook on its definition. Intended for hooks that
// want to extend rather than replace the standard checks.
func (r *Registry) StandardValidate(node *types.RuleNode) bool {
	if node == nil {
		return false
	}
	def, ok := r.Get(node.Type)
	if !ok {
		return false
	}
	return r.standardValidate(def, node, 0)
}

func (r *Registry) validateAtDepth(node *types.RuleNode, depth int) bool {
	if node == nil || depth > types.MaxRuleDepth {
		return false
	}
	def, ok := r.Get(node.Type)
	if !ok {
		return false
	}
	if def.Validate != nil {
		return def.Validate(node)
	}
	return r.standardValidate(def, node, depth)
}

func (r *Registry) standardValidate(def types.RuleTypeDefinition, node *types.RuleNode, depth int) bool {
	for _, p := range def.Params {
		if !p.Required {
			continue
		}
		if !present(node.Params[p.Name]) {
			return false
		}
	}

	if def.Category != types.CategoryCombinator {
		return true
	}

	switch def.Type {
	case types.TypeNot:
		if len(node.SubRules) != 1 {
			return false
		}
	default:
		if len(node.SubRules) < 1 || len(node.SubRules) > types.MaxSubRules {
			return false
		}
	}
	for _, sub := range node.SubRules {
		if !r.validateAtDepth(sub, depth+1) {
			return false
		}
	}
	return true
}

// present reports whether a parameter value counts as supplied.
// nil and empty string are missing; the number 0 and the boolean false are
// deliberate values and count as present.
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
