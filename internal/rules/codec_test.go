// internal/rules/codec_test.go
package rules

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/routegate/routegate/internal/types"
)

func TestEncode_StableForm(t *testing.T) {
	node := &types.RuleNode{
		Type: types.TypeAllOf,
		SubRules: []*types.RuleNode{
			{Type: "severity", Params: map[string]any{"severity": "critical"}},
		},
	}

	first, err := Encode(node)
	if err != nil {
		t.Fatalf("Encode() error = %v, want nil", err)
	}
	second, err := Encode(node)
	if err != nil {
		t.Fatalf("Encode() error = %v, want nil", err)
	}
	if first != second {
		t.Errorf("Encode() not stable across calls")
	}
	if !strings.Contains(first, "\n") {
		t.Errorf("Encode() output not pretty-printed: %q", first)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node *types.RuleNode
	}{
		{
			name: "leaf with params",
			node: &types.RuleNode{
				Type: "issue_count",
				Params: map[string]any{
					"comparator": ">",
					"threshold":  float64(3),
				},
			},
		},
		{
			name: "zero and false params survive",
			node: &types.RuleNode{
				Type: "event_source",
				Params: map[string]any{
					"source":      "checks",
					"exact_match": false,
					"weight":      float64(0),
				},
			},
		},
		{
			name: "nested combinators",
			node: &types.RuleNode{
				Type: types.TypeAnyOf,
				SubRules: []*types.RuleNode{
					{Type: "severity", Params: map[string]any{"severity": "high"}},
					{
						Type: types.TypeNot,
						SubRules: []*types.RuleNode{
							{Type: types.TypeAlways},
						},
					},
				},
			},
		},
		{
			name: "list param",
			node: &types.RuleNode{
				Type:   "tag_contains",
				Params: map[string]any{"tags": []any{"prod", "eu-west"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Encode(tt.node)
			if err != nil {
				t.Fatalf("Encode() error = %v, want nil", err)
			}
			got, err := Decode(text)
			if err != nil {
				t.Fatalf("Decode() error = %v, want nil", err)
			}
			if !reflect.DeepEqual(got, tt.node) {
				t.Errorf("round trip mismatch:\n got %#v\nwant %#v", got, tt.node)
			}
		})
	}
}

func TestDecode_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not JSON", text: "{nope"},
		{name: "JSON array", text: `[1, 2]`},
		{name: "JSON scalar", text: `"severity"`},
		{name: "missing type", text: `{"params": {}}`},
		{name: "non-string type", text: `{"type": 42}`},
		{name: "null type", text: `{"type": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Decode(tt.text)
			if node != nil {
				t.Errorf("Decode() node = %+v, want nil", node)
			}
			if !errors.Is(err, types.ErrMalformedConfig) {
				t.Errorf("Decode() error = %v, want ErrMalformedConfig", err)
			}
		})
	}
}

// An empty string is still a string-valued type: structurally sound, with the
// validator rejecting it as unresolved in its own pass.
func TestDecode_EmptyStringType(t *testing.T) {
	node, err := Decode(`{"type": ""}`)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if node.Type != "" {
		t.Errorf("Type = %q, want empty string", node.Type)
	}
	if NewDefaultRegistry().Validate(node) {
		t.Errorf("Validate() = true for empty-string type, want false")
	}
}

// Decode is structural only: an object with a string type is accepted as-is,
// semantic validation being the validator's separate pass.
func TestDecode_NoSemanticValidation(t *testing.T) {
	node, err := Decode(`{"type": "no_such_type", "params": {"anything": true}}`)
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if node.Type != "no_such_type" {
		t.Errorf("Type = %q, want no_such_type", node.Type)
	}

	r := NewDefaultRegistry()
	if r.Validate(node) {
		t.Errorf("Validate() = true for decoded unknown type, want false")
	}
}

// Property-based test: round trip is lossless for arbitrary invariant-satisfying trees.
func TestCodec_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("Decode(Encode(n)) == n", prop.ForAll(
		func(node *types.RuleNode) bool {
			text, err := Encode(node)
			if err != nil {
				return false
			}
			decoded, err := Decode(text)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(decoded, node)
		},
		genRuleNode(3),
	))

	properties.TestingRun(t)
}

// genRuleNode generates invariant-satisfying trees up to the given depth.
func genRuleNode(depth int) gopter.Gen {
	leafGen := gen.OneGenOf(
		gen.Const(&types.RuleNode{Type: types.TypeAlways}),
		gen.Const(&types.RuleNode{Type: types.TypeNever}),
		gen.OneConstOf("critical", "high", "medium", "low", "info").Map(func(s string) *types.RuleNode {
			return &types.RuleNode{Type: "severity", Params: map[string]any{"severity": s}}
		}),
		gen.Float64Range(0, 1000).Map(func(f float64) *types.RuleNode {
			return &types.RuleNode{Type: "issue_count", Params: map[string]any{
				"comparator": ">",
				"threshold":  f,
			}}
		}),
	)
	if depth <= 0 {
		return leafGen
	}

	child := genRuleNode(depth - 1)
	return gen.OneGenOf(
		leafGen,
		child.Map(func(sub *types.RuleNode) *types.RuleNode {
			return &types.RuleNode{Type: types.TypeNot, SubRules: []*types.RuleNode{sub}}
		}),
		gen.SliceOfN(2, child).Map(func(subs []*types.RuleNode) *types.RuleNode {
			return &types.RuleNode{Type: types.TypeAllOf, SubRules: subs}
		}),
		gen.SliceOfN(2, child).Map(func(subs []*types.RuleNode) *types.RuleNode {
			return &types.RuleNode{Type: types.TypeAnyOf, SubRules: subs}
		}),
	)
}
