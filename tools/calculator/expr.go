package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Knetic/govaluate"
)

const maxDepth = 200

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPower
	tokenLParen
	tokenRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
	pos   int
}

func (t token) String() string {
	if t.kind == tokenEOF {
		return "end of expression"
	}
	return strconv.Quote(t.text)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

// lex tokenizes src, anything outside digits, operators, parentheses,
// whitespace and the known names is rejected
func lex(src string) ([]token, error) {
	var tokens []token
	for pos := 0; pos < len(src); {
		ch := src[pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			pos++
		case isDigit(ch) || ch == '.':
			start := pos
			for pos < len(src) && (isDigit(src[pos]) || src[pos] == '.') {
				pos++
			}
			text := src[start:pos]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", text, start)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text, value: v, pos: start})
		case isLetter(ch):
			start := pos
			for pos < len(src) && (isLetter(src[pos]) || isDigit(src[pos])) {
				pos++
			}
			name := src[start:pos]
			if _, ok := constParams[name]; !ok {
				if _, ok := publicFunctions[name]; !ok {
					return nil, fmt.Errorf("name %q is not allowed", name)
				}
			}
			tokens = append(tokens, token{kind: tokenIdent, text: name, pos: start})
		default:
			kind := tokenEOF
			width := 1
			switch ch {
			case '+':
				kind = tokenPlus
			case '-':
				kind = tokenMinus
			case '*':
				kind = tokenStar
				if pos+1 < len(src) && src[pos+1] == '*' {
					kind, width = tokenPower, 2
				}
			case '/':
				kind = tokenSlash
			case '^':
				kind = tokenPower
			case '(':
				kind = tokenLParen
			case ')':
				kind = tokenRParen
			default:
				r, _ := utf8.DecodeRuneInString(src[pos:])
				return nil, fmt.Errorf("character %q is not allowed at position %d", r, pos)
			}
			tokens = append(tokens, token{kind: kind, text: src[pos : pos+width], pos: pos})
			pos += width
		}
	}
	return append(tokens, token{kind: tokenEOF, pos: len(src)}), nil
}

type node interface {
	render(b *strings.Builder)
}

type numberNode float64

func (n numberNode) render(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(float64(n), 'f', -1, 64))
}

type constNode string

func (n constNode) render(b *strings.Builder) {
	b.WriteString(string(n))
}

type negNode struct {
	x node
}

func (n negNode) render(b *strings.Builder) {
	b.WriteString("(-")
	n.x.render(b)
	b.WriteByte(')')
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n binaryNode) render(b *strings.Builder) {
	switch n.op {
	case tokenSlash:
		writeCall(b, "div", n.left, n.right)
	case tokenPower:
		writeCall(b, "pow", n.left, n.right)
	default:
		op := " + "
		if n.op == tokenMinus {
			op = " - "
		} else if n.op == tokenStar {
			op = " * "
		}
		b.WriteByte('(')
		n.left.render(b)
		b.WriteString(op)
		n.right.render(b)
		b.WriteByte(')')
	}
}

type callNode struct {
	fn  string
	arg node
}

func (n callNode) render(b *strings.Builder) {
	writeCall(b, n.fn, n.arg)
}

func writeCall(b *strings.Builder, fn string, args ...node) {
	b.WriteString(fn)
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.render(b)
	}
	b.WriteByte(')')
}

// parser is a recursive descent parser over the grammar
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = ("+" | "-") unary | power
//	power  = atom [ ("^" | "**") unary ]
//	atom   = number | const | func "(" expr ")" | "(" expr ")"
type parser struct {
	tokens []token
	pos    int
	depth  int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind, what string) error {
	t := p.next()
	if t.kind != kind {
		return fmt.Errorf("expected %s, got %s at position %d", what, t, t.pos)
	}
	return nil
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != tokenPlus && op != tokenMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek().kind
		if op != tokenStar && op != tokenSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, errors.New("expression is nested too deeply")
	}
	switch p.peek().kind {
	case tokenPlus, tokenMinus:
		op := p.next().kind
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == tokenMinus {
			return negNode{x: x}, nil
		}
		return x, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenPower {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: tokenPower, left: base, right: exp}, nil
}

func (p *parser) parseAtom() (node, error) {
	t := p.next()
	switch t.kind {
	case tokenNumber:
		return numberNode(t.value), nil
	case tokenIdent:
		if _, ok := constParams[t.text]; ok {
			return constNode(t.text), nil
		}
		if err := p.expect(tokenLParen, "'(' after "+t.text); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		return callNode{fn: t.text, arg: arg}, nil
	case tokenLParen:
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		return x, nil
	case tokenEOF:
		return nil, errors.New("unexpected end of expression")
	}
	return nil, fmt.Errorf("unexpected %s at position %d", t, t.pos)
}

// compile turns a whitelisted infix expression into a govaluate expression
func compile(src string) (*govaluate.EvaluableExpression, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokenEOF {
		return nil, fmt.Errorf("unexpected %s at position %d", t, t.pos)
	}
	var b strings.Builder
	root.render(&b)
	return govaluate.NewEvaluableExpressionWithFunctions(b.String(), functions)
}

// Evaluate computes a whitelisted arithmetic expression
func Evaluate(expression string) (float64, error) {
	exp, err := compile(expression)
	if err != nil {
		return 0, err
	}
	result, err := exp.Evaluate(constParams)
	if err != nil {
		return 0, err
	}
	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("unexpected result type %T", result)
	}
	if math.IsNaN(v) {
		return 0, errMathDomain
	}
	if math.IsInf(v, 0) {
		return 0, errOutOfRange
	}
	return v, nil
}
