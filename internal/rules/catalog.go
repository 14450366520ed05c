// internal/rules/catalog.go
package rules

import (
	"strings"

	"github.com/routegate/routegate/internal/sandbox"
	"github.com/routegate/routegate/internal/types"
)

/*
 * Built-in rule type catalogue.
 *
 * Registers the closed-but-extensible set of shipped rule types: leaf
 * predicates matching event fields, the always/never constants, the three
 * logical combinators, and the two advanced mini-language leaves. Operators
 * extend the set by registering additional definitions after
 * NewDefaultRegistry returns.
 *
 * Default-validity notes:
 *   - event_source, metadata_field, expression, and template carry required
 *     parameters with no synthesizable default; their default configs are
 *     invalid until the user fills them in. Deliberate.
 *   - The advanced leaves override validation entirely: expression runs the
 *     sandbox syntax screen, template checks non-empty bounded source. Both
 *     types have no combinator arity to reimplement, so full replacement of
 *     the standard checks is safe here.
 */

func floatPtr(f float64) *float64 { return &f }

// Comparator options shared by the numeric threshold predicates.
var comparatorOptions = []string{">", ">=", "==", "<=", "<"}

// NewDefaultRegistry builds a registry pre-loaded with the built-in catalogue.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(types.RuleTypeDefinition{
		Type:     "severity",
		Category: types.CategoryBasic,
		Params: []types.ParamSchema{
			{Name: "severity", Kind: types.ParamSelect, Required: true,
				Options: []string{"critical", "high", "medium", "low", "info"}},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "status",
		Category: types.CategoryBasic,
		Params: []types.ParamSchema{
			{Name: "status", Kind: types.ParamSelect, Required: true,
				Options: []string{"open", "acknowledged", "resolved", "silenced"}},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "event_source",
		Category: types.CategoryCondition,
		Params: []types.ParamSchema{
			// No synthesizable default: default config stays invalid until filled
			{Name: "source", Kind: types.ParamString, Required: true},
			{Name: "exact_match", Kind: types.ParamBoolean},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "tag_contains",
		Category: types.CategoryCondition,
		Params: []types.ParamSchema{
			{Name: "tags", Kind: types.ParamList, Required: true},
			{Name: "match_all", Kind: types.ParamBoolean},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "issue_count",
		Category: types.CategoryCondition,
		Params: []types.ParamSchema{
			{Name: "comparator", Kind: types.ParamSelect, Required: true, Options: comparatorOptions},
			{Name: "threshold", Kind: types.ParamNumber, Required: true,
				Default: float64(1), Min: floatPtr(0)},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "pass_rate",
		Category: types.CategoryCondition,
		Params: []types.ParamSchema{
			{Name: "comparator", Kind: types.ParamSelect, Required: true,
				Options: []string{"<", "<=", ">=", ">"}},
			{Name: "threshold", Kind: types.ParamNumber, Required: true,
				Default: float64(100), Min: floatPtr(0), Max: floatPtr(100)},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "schedule_window",
		Category: types.CategoryCondition,
		Params: []types.ParamSchema{
			{Name: "days", Kind: types.ParamWeekdaySet, Required: true},
			{Name: "start_time", Kind: types.ParamString, Required: true, Default: "09:00"},
			{Name: "end_time", Kind: types.ParamString, Required: true, Default: "17:00"},
			{Name: "timezone", Kind: types.ParamString, Default: "UTC"},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "metadata_field",
		Category: types.CategoryCondition,
		Params: []types.ParamSchema{
			// Both required with no default: default config invalid by design
			{Name: "key", Kind: types.ParamString, Required: true},
			{Name: "value", Kind: types.ParamString, Required: true},
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     types.TypeAlways,
		Category: types.CategoryStatic,
	})
	r.Register(types.RuleTypeDefinition{
		Type:     types.TypeNever,
		Category: types.CategoryStatic,
	})

	r.Register(types.RuleTypeDefinition{
		Type:     types.TypeAllOf,
		Category: types.CategoryCombinator,
	})
	r.Register(types.RuleTypeDefinition{
		Type:     types.TypeAnyOf,
		Category: types.CategoryCombinator,
	})
	r.Register(types.RuleTypeDefinition{
		Type:     types.TypeNot,
		Category: types.CategoryCombinator,
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "expression",
		Category: types.CategoryAdvanced,
		Params: []types.ParamSchema{
			{Name: "expression", Kind: types.ParamExpression, Required: true},
		},
		// Screen locally so obviously broken expressions block submission;
		// semantic correctness stays the remote evaluator's call.
		Validate: func(node *types.RuleNode) bool {
			src, _ := node.Params["expression"].(string)
			return sandbox.Screen(src) == nil
		},
	})

	r.Register(types.RuleTypeDefinition{
		Type:     "template",
		Category: types.CategoryAdvanced,
		Params: []types.ParamSchema{
			{Name: "template", Kind: types.ParamTemplate, Required: true},
		},
		Validate: func(node *types.RuleNode) bool {
			src, _ := node.Params["template"].(string)
			return strings.TrimSpace(src) != "" && len(src) <= types.MaxTemplateLength
		},
	})

	return r
}
