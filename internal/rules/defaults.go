// internal/rules/defaults.go
package rules

import (
	"github.com/routegate/routegate/internal/types"
)

/*
 * Default config synthesis.
 *
 * DefaultConfig produces a structurally sound starting node for any registered
 * type. Layered in precedence order:
 *   1. Kind-derived defaults (select -> first option, collections -> empty,
 *      weekday-set -> Mon..Fri, boolean -> false)
 *   2. Explicit per-parameter schema defaults
 *   3. The definition's DefaultConfig hook, field by field
 *   4. Combinator seeding: not gets one default always child,
 *      all_of/any_of get an empty child list
 *
 * Unknown types return a minimal node carrying only the tag. Deliberately
 * invalid: the validator surfaces it as unresolved instead of anything here
 * throwing.
 *
 * Numeric defaults use float64 end to end, matching what encoding/json
 * produces on decode, so synthesized nodes survive a text-form round trip
 * without type drift.
 */

// WeekdayDefaults is the synthesized value for weekday-set parameters lacking
// an explicit default: indices 0-4, Monday through Friday. Weekend delivery
// is opt-in.
var WeekdayDefaults = []any{float64(0), float64(1), float64(2), float64(3), float64(4)}

// DefaultConfig builds a default node for the given type tag.
// Never returns nil and never errors; unregistered tags yield a bare node
// that fails validation as unresolved.
func (r *Registry) DefaultConfig(typ string) *types.RuleNode {
	def, ok := r.Get(typ)
	if !ok {
		return &types.RuleNode{Type: typ}
	}

	node := &types.RuleNode{Type: def.Type}

	params := make(map[string]any)
	for _, p := range def.Params {
		if v, ok := kindDefault(p); ok {
			params[p.Name] = v
		}
	}
	for _, p := range def.Params {
		if p.Default != nil {
			params[p.Name] = p.Default
		}
	}
	if def.DefaultConfig != nil {
		for k, v := range def.DefaultConfig() {
			params[k] = v
		}
	}
	if len(params) > 0 {
		node.Params = params
	}

	if def.Category == types.CategoryCombinator {
		if def.Type == types.TypeNot {
			node.SubRules = []*types.RuleNode{r.DefaultConfig(types.TypeAlways)}
		} else {
			node.SubRules = []*types.RuleNode{}
		}
	}

	return node
}

// kindDefault synthesizes a default value from the parameter kind alone.
// String, number, template, and expression params are left unset; requiring
// the user to fill them is the point of marking them required.
func kindDefault(p types.ParamSchema) (any, bool) {
	switch p.Kind {
	case types.ParamSelect:
		if len(p.Options) > 0 {
			return p.Options[0], true
		}
		return nil, false
	case types.ParamMultiSelect, types.ParamList:
		return []any{}, true
	case types.ParamWeekdaySet:
		dup := make([]any, len(WeekdayDefaults))
		copy(dup, WeekdayDefaults)
		return dup, true
	case types.ParamBoolean:
		return false, true
	default:
		return nil, false
	}
}
