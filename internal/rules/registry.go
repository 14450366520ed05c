// internal/rules/registry.go
package rules

import (
	"github.com/routegate/routegate/internal/types"
)

/*
 * Rule type registry.
 *
 * Open/closed catalogue mapping a type tag to its RuleTypeDefinition. New rule
 * types are added purely by registration; default synthesis, validation, and
 * serialization all consult the registry instead of switching on type tags.
 *
 * Registration semantics:
 *   - Idempotent by type key: last registration for a given tag wins
 *   - Expected once, at process initialization, before any node is built
 *   - Not synchronized: the table is write-once-at-startup, read-only after
 *
 * Lookup semantics: an unresolved type is a validity signal, not a fault.
 * Get reports absence via its second return; nothing in this package errors
 * on an unknown tag.
 */

// Registry holds registered rule type definitions in registration order.
type Registry struct {
	defs  map[string]types.RuleTypeDefinition
	order []string
}

// NewRegistry creates an empty registry.
// Most callers want NewDefaultRegistry, which pre-registers the built-in
// catalogue.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]types.RuleTypeDefinition),
	}
}

// Register adds or replaces the definition for its type tag.
// Re-registering an existing tag replaces the definition in place and keeps
// its original position in All/ByCategory ordering.
func (r *Registry) Register(def types.RuleTypeDefinition) {
	if _, exists := r.defs[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	r.defs[def.Type] = def
}

// Get returns the definition for a type tag.
func (r *Registry) Get(typ string) (types.RuleTypeDefinition, bool) {
	def, ok := r.defs[typ]
	return def, ok
}

// All returns every registered definition in registration order.
func (r *Registry) All() []types.RuleTypeDefinition {
	out := make([]types.RuleTypeDefinition, 0, len(r.order))
	for _, typ := range r.order {
		out = append(out, r.defs[typ])
	}
	return out
}

// ByCategory returns registered definitions of one category, in registration
// order. Drives editor grouping; evaluation never consults categories.
func (r *Registry) ByCategory(cat types.Category) []types.RuleTypeDefinition {
	var out []types.RuleTypeDefinition
	for _, typ := range r.order {
		if def := r.defs[typ]; def.Category == cat {
			out = append(out, def)
		}
	}
	return out
}
