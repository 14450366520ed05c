// internal/template/render_test.go
package template

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routegate/routegate/internal/types"
)

func sampleCtx() types.SampleContext {
	return types.SampleContext{
		"severity":    "high",
		"issue_count": float64(5),
		"resolved":    false,
		"tags":        []any{"prod", "eu-west"},
		"event": map[string]any{
			"source": "checks",
			"metadata": map[string]any{
				"cluster": "c-42",
			},
		},
	}
}

func TestRender_Interpolation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "simple variable", src: "{{ severity }}", want: "high"},
		{name: "no padding", src: "{{severity}}", want: "high"},
		{name: "embedded in text", src: "Alert: {{ severity }} severity", want: "Alert: high severity"},
		{name: "dotted path", src: "{{ event.source }}", want: "checks"},
		{name: "deep path", src: "{{ event.metadata.cluster }}", want: "c-42"},
		{name: "list index", src: "{{ tags.0 }}", want: "prod"},
		{name: "number formatting", src: "{{ issue_count }} issues", want: "5 issues"},
		{name: "boolean value", src: "{{ resolved }}", want: "false"},
		{name: "multiple tokens", src: "{{ severity }}/{{ event.source }}", want: "high/checks"},
		{name: "no tokens", src: "plain text", want: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.src, sampleCtx())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Missing paths leave the original token visibly unsubstituted, never error.
func TestRender_MissingPathLeftVerbatim(t *testing.T) {
	tests := []string{
		"{{ event.missing.field }}",
		"{{ nonexistent }}",
		"{{ tags.9 }}",
		"{{ severity.nested }}",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			got, err := Render(src, sampleCtx())
			require.NoError(t, err)
			assert.Equal(t, src, got, "unresolved token must pass through unchanged")
		})
	}
}

func TestRender_MixedResolvedAndUnresolved(t *testing.T) {
	got, err := Render("{{ severity }} on {{ missing.host }}", sampleCtx())
	require.NoError(t, err)
	assert.Equal(t, "high on {{ missing.host }}", got)
}

// A template that is exactly one token wrapping an expression evaluates via
// the sandbox and renders the boolean.
func TestRender_SingleExpressionForm(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "comparison", src: "{{ severity == 'high' }}", want: "true"},
		{name: "comparison false", src: "{{ severity == 'low' }}", want: "false"},
		{name: "logical", src: "{{ severity == 'high' and issue_count > 3 }}", want: "true"},
		{name: "membership", src: "{{ severity in ['high', 'critical'] }}", want: "true"},
		{name: "negation", src: "{{ not resolved }}", want: "true"},
		{name: "surrounding whitespace", src: "  {{ issue_count > 3 }}  ", want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.src, sampleCtx())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Expression form with surrounding text is NOT the single-expression case;
// non-path bodies pass through as literals.
func TestRender_ExpressionWithTextPassesThrough(t *testing.T) {
	src := "status: {{ severity == 'high' }}"
	got, err := Render(src, sampleCtx())
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

// Faults inside a single-expression template are non-fatal "no result" errors.
func TestRender_SingleExpressionFault(t *testing.T) {
	_, err := Render("{{ missing_field > 3 }}", sampleCtx())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownIdentifier)
}

func TestRender_SingleExpressionDenied(t *testing.T) {
	_, err := Render("{{ __class__ == 'x' }}", sampleCtx())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDeniedConstruct)
}

// Loops, conditionals, and filters are remote-only syntax; preview passes
// them through as literal text.
func TestRender_UnsupportedSyntaxPassthrough(t *testing.T) {
	tests := []string{
		"{% for tag in tags %}{{ tag }}{% endfor %}",
		"{% if severity == 'high' %}page{% endif %}",
		"{{ severity | upper }}",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			got, err := Render(src, sampleCtx())
			require.NoError(t, err)
			// Path tokens inside unsupported blocks may still resolve;
			// the block markers themselves must survive untouched.
			assert.Contains(t, got, "{%", "block markers must pass through")
			_ = got
		})
	}
}

func TestRender_FilterPipePassesThrough(t *testing.T) {
	src := "{{ severity | upper }}"
	got, err := Render(src, sampleCtx())
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestRender_TooLong(t *testing.T) {
	src := strings.Repeat("x", types.MaxTemplateLength+1)
	_, err := Render(src, sampleCtx())
	assert.ErrorIs(t, err, types.ErrTemplateTooLong)
}

func TestRender_EmptyTemplate(t *testing.T) {
	got, err := Render("", sampleCtx())
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
