// internal/sandbox/screen_test.go
package sandbox

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/routegate/routegate/internal/types"
)

func TestScreen_Empty(t *testing.T) {
	for _, src := range []string{"", "   ", "\t\n"} {
		if err := Screen(src); !errors.Is(err, types.ErrEmptyExpression) {
			t.Errorf("Screen(%q) error = %v, want ErrEmptyExpression", src, err)
		}
	}
}

func TestScreen_TooLong(t *testing.T) {
	src := strings.Repeat("a", types.MaxExpressionLength+1)
	if err := Screen(src); !errors.Is(err, types.ErrExpressionTooLong) {
		t.Errorf("Screen() error = %v, want ErrExpressionTooLong", err)
	}
}

func TestScreen_BracketBalance(t *testing.T) {
	tests := []struct {
		name string
		src  string
		ok   bool
	}{
		{name: "balanced parens", src: "(a and (b or c))", ok: true},
		{name: "unclosed paren", src: "(a and (b or c)", ok: false},
		{name: "closer before opener", src: ")a(", ok: false},
		{name: "balanced mixed", src: "a in [1, 2] and (b or c)", ok: true},
		{name: "unclosed bracket", src: "a in [1, 2", ok: false},
		{name: "stray curly close", src: "a} and b", ok: false},
		{name: "unclosed curly", src: "{a and b", ok: false},
		{name: "interleaved but balanced counts", src: "([)]", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Screen(tt.src)
			if tt.ok && err != nil {
				t.Errorf("Screen(%q) error = %v, want nil", tt.src, err)
			}
			if !tt.ok && !errors.Is(err, types.ErrUnbalancedBrackets) {
				t.Errorf("Screen(%q) error = %v, want ErrUnbalancedBrackets", tt.src, err)
			}
		})
	}
}

// Each deny entry is sufficient on its own, before any evaluation attempt.
func TestScreen_DenyList(t *testing.T) {
	tests := []string{
		"__class__.__bases__",
		"import os",
		"eval('1')",
		"exec('x = 1')",
		"compile('1', '', 'eval')",
		"globals()",
		"locals()",
		"a.__dict__",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if err := Screen(src); !errors.Is(err, types.ErrDeniedConstruct) {
				t.Errorf("Screen(%q) error = %v, want ErrDeniedConstruct", src, err)
			}
		})
	}
}

// Deny keywords must match bare words only, not substrings of identifiers.
func TestScreen_DenyListWordBoundaries(t *testing.T) {
	tests := []string{
		"evaluation_count > 3",
		"important == true",
		"execution_time < 100",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if err := Screen(src); err != nil {
				t.Errorf("Screen(%q) error = %v, want nil", src, err)
			}
		})
	}
}

func TestScreen_CleanExpressions(t *testing.T) {
	tests := []string{
		"severity == 'critical'",
		"severity == 'critical' and issue_count > 3",
		"status in ['open', 'acknowledged'] or pass_rate < 90",
		"not (severity == 'low')",
	}

	for _, src := range tests {
		if err := Screen(src); err != nil {
			t.Errorf("Screen(%q) error = %v, want nil", src, err)
		}
	}
}

// Property-based test: the screen never panics on arbitrary input.
func TestScreen_PropertyNeverPanics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("screen never panics", prop.ForAll(
		func(src string) bool {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Screen(%q) panicked: %v", src, r)
				}
			}()
			_ = Screen(src)
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
