// internal/rules/codec.go
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/routegate/routegate/internal/types"
)

/*
 * Text-form codec for rule configurations.
 *
 * Encode renders the canonical human-readable text form: two-space-indented
 * JSON with object keys in Go's deterministic (sorted) map order. Decode is
 * the trust boundary for externally supplied text: import/export and
 * clipboard paths must pass through it before a document is treated as a
 * node.
 *
 * Decode is a structural check only. The text must parse as a JSON object
 * carrying a string-valued "type" field; whatever else it carries, it is
 * accepted as a node. Semantic validation is exclusively the validator's
 * job, run as a separate pass. Round trip is lossless for any node
 * satisfying the structural invariants: Decode(Encode(n)) reproduces n
 * field for field.
 */

// Encode returns the canonical text form of a node.
func Encode(node *types.RuleNode) (string, error) {
	b, err := json.MarshalIndent(node, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode rule config: %w", err)
	}
	return string(b), nil
}

// Decode parses text-form input back into a node.
// Returns types.ErrMalformedConfig (wrapped) when the text does not parse or
// parses to something other than an object with a string "type". Performs no
// semantic validation.
func Decode(text string) (*types.RuleNode, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedConfig, err)
	}

	raw, ok := probe["type"]
	if !ok {
		return nil, fmt.Errorf("%w: missing type field", types.ErrMalformedConfig)
	}
	// A JSON null unmarshals into a string as a no-op, so it must be caught on
	// the raw token; an empty string is still a string-valued type and decodes
	// structurally (the validator rejects it as unresolved)
	if string(raw) == "null" {
		return nil, fmt.Errorf("%w: type field is not a string", types.ErrMalformedConfig)
	}
	var typ string
	if err := json.Unmarshal(raw, &typ); err != nil {
		return nil, fmt.Errorf("%w: type field is not a string", types.ErrMalformedConfig)
	}

	var node types.RuleNode
	if err := json.Unmarshal([]byte(text), &node); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedConfig, err)
	}
	return &node, nil
}
