// internal/sandbox/eval.go
package sandbox

import (
	"fmt"

	"github.com/routegate/routegate/internal/types"
)

/*
 * Best-effort preview evaluation.
 *
 * Evaluate runs the full local pipeline: screen -> lex -> parse -> interpret
 * against the sample context supplied by the editing surface. Strictly a
 * latency optimization for the editor; the remote evaluator is the authority
 * on semantics, and a preview error never blocks saving a rule.
 *
 * Interpreter restrictions:
 *   - Identifiers resolve only against the supplied context; there is no
 *     ambient environment to reach
 *   - Fixed whitelisted operator set (see parser.go grammar)
 *   - Hard step budget charged per AST node (budget.go)
 *
 * Any fault (unknown field, incomparable operands, budget exhaustion) is
 * returned as an error for the caller to render as "no result"; nothing
 * propagates as a panic.
 */

// Evaluate screens and preview-evaluates an expression against a sample
// context. The returned error is non-fatal by contract: screen rejections
// block submission, evaluation faults only mean "no preview".
func Evaluate(src string, ctx types.SampleContext) (result bool, err error) {
	// Interpreter faults must surface as errors, never as panics
	defer func() {
		if r := recover(); r != nil {
			result = false
			err = fmt.Errorf("preview evaluation fault: %v", r)
		}
	}()

	if err := Screen(src); err != nil {
		return false, err
	}
	toks, err := lex(src)
	if err != nil {
		return false, err
	}
	root, err := parse(toks)
	if err != nil {
		return false, err
	}

	e := &evalState{ctx: ctx}
	v, err := e.eval(root)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

type evalState struct {
	ctx   types.SampleContext
	steps int
}

// charge consumes budget; evaluation aborts once the ceiling is hit.
func (e *evalState) charge(cost int) error {
	e.steps += cost
	if e.steps > types.MaxEvalSteps {
		return types.ErrEvalBudgetExceeded
	}
	return nil
}

func (e *evalState) eval(node astNode) (any, error) {
	switch n := node.(type) {
	case litNode:
		if err := e.charge(costLiteral); err != nil {
			return nil, err
		}
		return n.value, nil

	case identNode:
		if err := e.charge(costIdent + costPerSegment*len(n.path)); err != nil {
			return nil, err
		}
		return e.resolve(n)

	case listNode:
		if err := e.charge(costLiteral + costPerListElem*len(n.elems)); err != nil {
			return nil, err
		}
		elems := make([]any, 0, len(n.elems))
		for _, elem := range n.elems {
			v, err := e.eval(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil

	case notNode:
		if err := e.charge(costLogical); err != nil {
			return nil, err
		}
		v, err := e.eval(n.operand)
		if err != nil {
			return nil, err
		}
		return !truthy(v), nil

	case logicalNode:
		if err := e.charge(costLogical); err != nil {
			return nil, err
		}
		left, err := e.eval(n.left)
		if err != nil {
			return nil, err
		}
		// Short-circuit: right side unevaluated when left decides
		if n.op == tokAnd && !truthy(left) {
			return false, nil
		}
		if n.op == tokOr && truthy(left) {
			return true, nil
		}
		right, err := e.eval(n.right)
		if err != nil {
			return nil, err
		}
		return truthy(right), nil

	case compareNode:
		cost := costCompare
		switch n.op {
		case "<", "<=", ">", ">=":
			cost = costOrderedCmp
		case "in":
			cost = costMembership
		}
		if err := e.charge(cost); err != nil {
			return nil, err
		}
		left, err := e.eval(n.left)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(n.right)
		if err != nil {
			return nil, err
		}
		matched, err := applyCompare(n.op, left, right)
		if err != nil {
			return nil, err
		}
		if n.negate {
			matched = !matched
		}
		return matched, nil

	default:
		return nil, fmt.Errorf("unsupported expression node %T", node)
	}
}

// resolve walks a dotted identifier path through the sample context.
// Any absent segment aborts with ErrUnknownIdentifier; there is no fallback
// environment to consult.
func (e *evalState) resolve(n identNode) (any, error) {
	var current any = map[string]any(e.ctx)
	for _, seg := range n.path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownIdentifier, describePath(n.path))
		}
		current, ok = m[seg]
		if !ok {
			return nil, fmt.Errorf("%w: %s", types.ErrUnknownIdentifier, describePath(n.path))
		}
	}
	return current, nil
}
