// internal/template/render.go

// Package template provides best-effort local preview of the notification
// template mini-language. Preview only: variable interpolation and a narrow
// whole-template boolean-expression form are rendered locally; loops,
// conditionals, and filters pass through as literal text. Only the remote
// evaluator implements the full language.
package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/routegate/routegate/internal/sandbox"
	"github.com/routegate/routegate/internal/types"
)

// tokenRe matches one interpolation token: {{ dotted.path }}.
var tokenRe = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// pathRe matches a bare dotted path (identifiers separated by dots, numeric
// list indices allowed). Token bodies that do not match are expressions or
// unsupported syntax.
var pathRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// Render substitutes interpolation tokens in src against the sample context.
//
// Rules, in order:
//   - A template that consists entirely of one token wrapping a comparison or
//     logical expression is evaluated via the expression sandbox and renders
//     "true"/"false". Evaluation faults are returned as errors ("no result"),
//     never as panics.
//   - Each {{ path }} token whose dotted path resolves in the context is
//     replaced by the value's text form. If any segment is absent the
//     original token text stays in place, visibly unsubstituted.
//   - Everything else, including {% ... %} blocks and filter pipes, is
//     copied through untouched.
func Render(src string, ctx types.SampleContext) (string, error) {
	if len(src) > types.MaxTemplateLength {
		return "", types.ErrTemplateTooLong
	}

	if expr, ok := singleExpression(src); ok {
		result, err := sandbox.Evaluate(expr, ctx)
		if err != nil {
			return "", fmt.Errorf("template expression preview: %w", err)
		}
		return strconv.FormatBool(result), nil
	}

	out := tokenRe.ReplaceAllStringFunc(src, func(match string) string {
		body := strings.TrimSpace(tokenRe.FindStringSubmatch(match)[1])
		if !pathRe.MatchString(body) {
			// Filters, arithmetic, unsupported syntax: literal passthrough
			return match
		}
		res, err := resolvePath(strings.Split(body, "."), ctx)
		if err != nil || !res.found {
			return match
		}
		return formatValue(res.value)
	})
	return out, nil
}

// singleExpression reports whether the whole template is one interpolation
// token wrapping a boolean expression rather than a bare path.
func singleExpression(src string) (string, bool) {
	trimmed := strings.TrimSpace(src)
	m := tokenRe.FindStringSubmatch(trimmed)
	if m == nil || m[0] != trimmed {
		return "", false
	}
	body := strings.TrimSpace(m[1])
	if body == "" || pathRe.MatchString(body) {
		return "", false
	}
	// Expression form requires at least one recognized operator; anything
	// else is unsupported syntax to pass through verbatim.
	if !hasExpressionOperator(body) {
		return "", false
	}
	return body, true
}

var operatorMarkers = []string{"==", "!=", "<", ">", " and ", " or ", " in ", "not "}

func hasExpressionOperator(body string) bool {
	for _, marker := range operatorMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// formatValue renders a resolved context value as template output text.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
