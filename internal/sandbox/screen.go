// internal/sandbox/screen.go
package sandbox

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/routegate/routegate/internal/types"
)

/*
 * Syntax screen for user-authored expressions.
 *
 * Runs synchronously before any evaluation attempt. Three checks, in order:
 *   1. Reject empty/whitespace-only source (and source over the length cap)
 *   2. Bracket scan: running counts for (), [], {}; reject the moment any
 *      count goes negative, and at end of scan if any count is nonzero
 *   3. Deny-list of dangerous constructs: double-underscore attribute access
 *      and the bare keywords for dynamic code execution, environment
 *      introspection, and code compilation
 *
 * Matching any one deny entry is sufficient to reject. The screen mirrors
 * server-side screening as defense in depth; the authoritative service, not
 * this screen, is the security boundary. A screen rejection is recoverable
 * user error and blocks submission; it is never silently stripped or
 * auto-corrected.
 */

// denyList entries reject dangerous constructs wholesale. The expression
// language has no legitimate use for any of these tokens.
var denyList = []*regexp.Regexp{
	regexp.MustCompile(`__[A-Za-z0-9_]+__`), // dunder attribute access
	regexp.MustCompile(`\beval\b`),
	regexp.MustCompile(`\bexec\b`),
	regexp.MustCompile(`\bimport\b`),
	regexp.MustCompile(`\bcompile\b`),
	regexp.MustCompile(`\bglobals\b`),
	regexp.MustCompile(`\blocals\b`),
}

// Screen checks expression source for structural and deny-list violations.
// Returns nil when the source may proceed to parsing. Purely textual; never
// evaluates anything.
func Screen(src string) error {
	if strings.TrimSpace(src) == "" {
		return types.ErrEmptyExpression
	}
	if len(src) > types.MaxExpressionLength {
		return types.ErrExpressionTooLong
	}

	var paren, square, curly int
	for _, r := range src {
		switch r {
		case '(':
			paren++
		case ')':
			paren--
		case '[':
			square++
		case ']':
			square--
		case '{':
			curly++
		case '}':
			curly--
		}
		// Closer before matching opener
		if paren < 0 || square < 0 || curly < 0 {
			return types.ErrUnbalancedBrackets
		}
	}
	if paren != 0 || square != 0 || curly != 0 {
		return types.ErrUnbalancedBrackets
	}

	for _, re := range denyList {
		if re.MatchString(src) {
			return fmt.Errorf("%w: %s", types.ErrDeniedConstruct, re.FindString(src))
		}
	}
	return nil
}
