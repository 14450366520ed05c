// internal/sandbox/compare.go
package sandbox

import (
	"strings"

	"github.com/routegate/routegate/internal/types"
)

/*
 * Comparison semantics for preview evaluation.
 *
 * Equality mixes numeric types (float64/int/int64) for JSON compatibility;
 * ordered comparison works on numbers or on two strings (lexicographic);
 * membership tests a value against a list with equality semantics, or a
 * substring against a string.
 *
 * Incomparable operands report ErrNotComparable instead of guessing. The
 * remote evaluator may well accept such expressions; preview just declines
 * to claim a result.
 *
 * Why function-based: a handful of operators with minimal behavior variation
 * reads better as a switch than as interface polymorphism.
 */

// applyCompare dispatches a comparison operator over evaluated operands.
func applyCompare(op string, value, target any) (bool, error) {
	switch op {
	case "==":
		return equalValues(value, target), nil
	case "!=":
		return !equalValues(value, target), nil
	case "<", "<=", ">", ">=":
		c, err := orderValues(value, target)
		if err != nil {
			return false, err
		}
		switch op {
		case "<":
			return c < 0, nil
		case "<=":
			return c <= 0, nil
		case ">":
			return c > 0, nil
		default:
			return c >= 0, nil
		}
	case "in":
		return memberOf(value, target)
	default:
		return false, types.ErrNotComparable
	}
}

// equalValues performs equality comparison with numeric type mixing.
func equalValues(a, b any) bool {
	if na, nb, ok := asNumbers(a, b); ok {
		return na == nb
	}
	return a == b
}

// orderValues performs three-way comparison (-1/0/1).
// Numbers compare numerically, strings lexicographically; anything else is
// not comparable.
func orderValues(a, b any) (int, error) {
	if na, nb, ok := asNumbers(a, b); ok {
		switch {
		case na < nb:
			return -1, nil
		case na > nb:
			return 1, nil
		default:
			return 0, nil
		}
	}
	sa, oka := a.(string)
	sb, okb := b.(string)
	if oka && okb {
		return strings.Compare(sa, sb), nil
	}
	return 0, types.ErrNotComparable
}

// memberOf checks membership of value in container.
// Lists use equality semantics per element; strings use substring containment.
func memberOf(value, container any) (bool, error) {
	switch c := container.(type) {
	case []any:
		for _, elem := range c {
			if equalValues(value, elem) {
				return true, nil
			}
		}
		return false, nil
	case string:
		s, ok := value.(string)
		if !ok {
			return false, types.ErrNotComparable
		}
		return strings.Contains(c, s), nil
	default:
		return false, types.ErrNotComparable
	}
}

// asNumbers attempts to convert both values to float64 for numeric comparison.
func asNumbers(a, b any) (float64, float64, bool) {
	na, oka := toFloat64(a)
	nb, okb := toFloat64(b)
	return na, nb, oka && okb
}

// toFloat64 converts value to float64 if it's a numeric type.
// Handles float64, int, int64 from JSON unmarshaling and Go-native contexts.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// truthy reports the boolean interpretation of a value, following the remote
// language's conventions: absent, false, zero, and empty are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
