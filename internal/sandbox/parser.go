// internal/sandbox/parser.go
package sandbox

import (
	"fmt"
	"strings"
)

/*
 * Recursive-descent parser for the restricted expression language.
 *
 * Grammar, loosest binding first:
 *
 *   expr       := andExpr ("or" andExpr)*
 *   andExpr    := notExpr ("and" notExpr)*
 *   notExpr    := "not" notExpr | comparison
 *   comparison := operand (("==" | "!=" | "<" | "<=" | ">" | ">=" |
 *                           "in" | "not" "in") operand)?
 *   operand    := literal | path | list | "(" expr ")"
 *   path       := ident ("." ident)*
 *   list       := "[" (operand ("," operand)*)? "]"
 *
 * Deliberately narrower than the remote language: no arithmetic, no calls,
 * no attribute access beyond dotted context paths, no chained comparisons.
 * Parse errors carry the byte offset of the offending token.
 */

type astNode interface{ isNode() }

type litNode struct{ value any }

type identNode struct {
	path []string
	pos  int
}

type listNode struct{ elems []astNode }

type notNode struct{ operand astNode }

// logicalNode covers and/or with short-circuit evaluation.
type logicalNode struct {
	op    tokenKind // tokAnd or tokOr
	left  astNode
	right astNode
}

// compareNode covers the comparison operators plus membership.
// negate marks "not in".
type compareNode struct {
	op     string
	negate bool
	left   astNode
	right  astNode
}

func (litNode) isNode()     {}
func (identNode) isNode()   {}
func (listNode) isNode()    {}
func (notNode) isNode()     {}
func (logicalNode) isNode() {}
func (compareNode) isNode() {}

type parser struct {
	toks []token
	i    int
}

// parse builds an AST from the token stream, requiring full consumption.
func parse(toks []token) (astNode, error) {
	p := &parser{toks: toks}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.peek().text)
	}
	return node, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse error at offset %d: %s", p.peek().pos, fmt.Sprintf(format, args...))
}

func (p *parser) parseExpr() (astNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = logicalNode{op: tokOr, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (astNode, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = logicalNode{op: tokAnd, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (astNode, error) {
	if p.peek().kind == tokNot {
		p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (astNode, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	switch p.peek().kind {
	case tokCompare:
		op := p.next().text
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return compareNode{op: op, left: left, right: right}, nil

	case tokIn:
		p.next()
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return compareNode{op: "in", left: left, right: right}, nil

	case tokNot:
		// "x not in xs": the only postfix use of not
		p.next()
		if p.next().kind != tokIn {
			return nil, p.errorf("expected 'in' after 'not'")
		}
		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return compareNode{op: "in", negate: true, left: left, right: right}, nil

	default:
		return left, nil
	}
}

func (p *parser) parseOperand() (astNode, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return litNode{value: t.num}, nil
	case tokString:
		p.next()
		return litNode{value: t.text}, nil
	case tokTrue:
		p.next()
		return litNode{value: true}, nil
	case tokFalse:
		p.next()
		return litNode{value: false}, nil
	case tokNull:
		p.next()
		return litNode{value: nil}, nil

	case tokIdent:
		return p.parsePath()

	case tokLBracket:
		return p.parseList()

	case tokLParen:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, p.errorf("expected ')'")
		}
		return inner, nil

	default:
		return nil, p.errorf("unexpected %q", t.text)
	}
}

func (p *parser) parsePath() (astNode, error) {
	first := p.next()
	path := []string{first.text}
	for p.peek().kind == tokDot {
		p.next()
		seg := p.next()
		if seg.kind != tokIdent {
			return nil, p.errorf("expected identifier after '.'")
		}
		path = append(path, seg.text)
	}
	return identNode{path: path, pos: first.pos}, nil
}

func (p *parser) parseList() (astNode, error) {
	p.next() // consume '['
	var elems []astNode
	if p.peek().kind == tokRBracket {
		p.next()
		return listNode{}, nil
	}
	for {
		elem, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		switch p.next().kind {
		case tokComma:
			continue
		case tokRBracket:
			return listNode{elems: elems}, nil
		default:
			return nil, p.errorf("expected ',' or ']' in list")
		}
	}
}

// describePath renders a dotted path for error messages.
func describePath(path []string) string {
	return strings.Join(path, ".")
}
