// internal/template/fieldpath.go
package template

import (
	"strconv"

	"github.com/routegate/routegate/internal/types"
)

/*
 * Dotted-path resolution for template interpolation.
 *
 * Resolves paths like "event.metadata.cluster" by walking the sample context
 * field by field. Numeric segments index into lists ("tags.0"). Enforces
 * types.MaxPathDepth at resolution time.
 *
 * Missing-segment semantics: resolution reports not-found instead of
 * erroring. The renderer leaves the original token text visibly
 * unsubstituted, which is the contract for preview (the remote evaluator
 * decides what a missing field means for real).
 */

// resolveResult carries the resolved value or a not-found signal.
type resolveResult struct {
	value any
	found bool
}

// resolvePath walks data following dotted-path segments.
// Returns ErrPathTooDeep for paths beyond MaxPathDepth; absence of any
// segment is reported via found=false, never as an error.
func resolvePath(path []string, data any) (resolveResult, error) {
	if len(path) > types.MaxPathDepth {
		return resolveResult{}, types.ErrPathTooDeep
	}
	return resolveRecursive(path, data), nil
}

func resolveRecursive(path []string, current any) resolveResult {
	if len(path) == 0 {
		return resolveResult{value: current, found: true}
	}

	seg := path[0]
	remaining := path[1:]

	switch v := current.(type) {
	case map[string]any:
		val, ok := v[seg]
		if !ok {
			return resolveResult{}
		}
		return resolveRecursive(remaining, val)

	case types.SampleContext:
		val, ok := v[seg]
		if !ok {
			return resolveResult{}
		}
		return resolveRecursive(remaining, val)

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(v) {
			return resolveResult{}
		}
		return resolveRecursive(remaining, v[idx])

	default:
		// Scalar or nil value but path continues
		return resolveResult{}
	}
}
