// internal/types/rules.go
package types

/*
 * Domain types for rule configuration.
 *
 * Provides RuleNode, RuleTypeDefinition, and ParamSchema structures used by
 * internal/rules for default synthesis, validation, and serialization. These
 * types are wire-format compatible: a RuleNode marshals to the same nested
 * JSON document the authoritative service consumes.
 *
 * Key types:
 *   - RuleNode: One node of the recursive condition tree
 *   - RuleTypeDefinition: Registered rule type with schema and optional hooks
 *   - ParamSchema: One parameter of a rule type (kind, default, bounds, options)
 *
 * Dependencies: None (zero external dependencies, encoding/json only)
 */

// Category groups rule types for editor layout and validation strategy.
type Category string

const (
	CategoryBasic      Category = "basic"
	CategoryCondition  Category = "condition"
	CategoryCombinator Category = "combinator"
	CategoryStatic     Category = "static"
	CategoryAdvanced   Category = "advanced"
)

// ParamKind is the semantic type of a rule parameter.
type ParamKind int

const (
	ParamUnspecified ParamKind = iota
	ParamString
	ParamNumber
	ParamBoolean
	ParamSelect      // single choice from Options
	ParamMultiSelect // zero or more choices from Options
	ParamList        // free-form list of strings
	ParamWeekdaySet  // set of weekday indices, 0 = Monday
	ParamTemplate    // template mini-language source
	ParamExpression  // boolean expression mini-language source
)

// ParamSchema describes a single parameter of a rule type.
type ParamSchema struct {
	Name     string    // parameter key in RuleNode.Params
	Kind     ParamKind // semantic type
	Required bool      // value must be present (0 and false count as present)
	Default  any       // explicit default (nil = synthesize by kind)
	Min      *float64  // lower bound for ParamNumber (nil = unbounded)
	Max      *float64  // upper bound for ParamNumber (nil = unbounded)
	Options  []string  // enumerated choices for select kinds
}

// RuleTypeDefinition is one entry in the type registry.
//
// Validate, when non-nil, fully replaces the standard required-param and
// combinator-arity checks for nodes of this type; it does not compose with
// them. A hook that wants the standard checks runs Registry.StandardValidate
// itself. Combinator definitions supplying a hook must therefore reimplement
// arity checking.
//
// DefaultConfig, when non-nil, returns extra param fields merged over the
// schema-derived defaults during default-config synthesis.
type RuleTypeDefinition struct {
	Type          string
	Category      Category
	Params        []ParamSchema // ordered; drives editor field order
	Validate      func(node *RuleNode) bool
	DefaultConfig func() map[string]any
}

// RuleNode is one node of the recursive condition tree.
// Leaf predicates carry Params; combinators carry SubRules. Each node is
// exclusively owned by at most one parent (tree, not graph); mutation is
// expressed as old-node-in, new-node-out, never in-place sharing.
type RuleNode struct {
	Type     string         `json:"type"`
	Params   map[string]any `json:"params,omitempty"`
	SubRules []*RuleNode    `json:"sub_rules,omitempty"`
}

// Clone returns a deep copy of the node.
// Params values are copied shallowly except nested slices, which are duplicated
// so editor transforms never alias the original tree.
func (n *RuleNode) Clone() *RuleNode {
	if n == nil {
		return nil
	}
	out := &RuleNode{Type: n.Type}
	if n.Params != nil {
		out.Params = make(map[string]any, len(n.Params))
		for k, v := range n.Params {
			if s, ok := v.([]any); ok {
				dup := make([]any, len(s))
				copy(dup, s)
				out.Params[k] = dup
				continue
			}
			out.Params[k] = v
		}
	}
	if n.SubRules != nil {
		out.SubRules = make([]*RuleNode, len(n.SubRules))
		for i, sub := range n.SubRules {
			out.SubRules[i] = sub.Clone()
		}
	}
	return out
}

// Combinator type tags. Their meaning is defined over SubRules rather than
// Params: not requires exactly one child, all_of/any_of require one or more.
const (
	TypeAllOf = "all_of"
	TypeAnyOf = "any_of"
	TypeNot   = "not"
)

// Static type tags: constant-result leaves with no parameters.
const (
	TypeAlways = "always"
	TypeNever  = "never"
)
