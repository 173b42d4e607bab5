package predicate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	ontograph "github.com/ontoplex/ontograph"
)

// Expression grammar (case-sensitive keywords):
//
//	expr       := or
//	or         := and { "or" and }
//	and        := unary { "and" unary }
//	unary      := "not" unary | term
//	term       := type-token | comparison | "(" expr ")"
//	comparison := op literal
//	op         := "==" | "!=" | "<" | "<=" | ">" | ">="
//	literal    := int | float | quoted-string | "true" | "false"
//	type-token := "any" | "null" | "boolean" | "integer" | "float"
//	             | "number" | "string" | "list" | "mapping"
//
// Comparisons apply to the candidate value: ">= 0" reads "candidate >= 0".
// Kind-mismatched comparisons evaluate to false rather than erroring, so a
// spec like `integer and >= 0` stays total over arbitrary candidates.

type expr interface {
	eval(v any) bool
}

type orExpr struct{ left, right expr }

func (e orExpr) eval(v any) bool { return e.left.eval(v) || e.right.eval(v) }

type andExpr struct{ left, right expr }

func (e andExpr) eval(v any) bool { return e.left.eval(v) && e.right.eval(v) }

type notExpr struct{ inner expr }

func (e notExpr) eval(v any) bool { return !e.inner.eval(v) }

type anyTerm struct{}

func (anyTerm) eval(any) bool { return true }

type typeTerm struct{ kind ontograph.Kind }

func (t typeTerm) eval(v any) bool {
	if t.kind == kindNumber {
		k := ontograph.KindOf(v)
		return k == ontograph.KindInt || k == ontograph.KindFloat
	}
	return ontograph.KindOf(v) == t.kind
}

type cmpTerm struct {
	op  string
	lit any // int64, float64, string or bool
}

func (c cmpTerm) eval(v any) bool {
	switch want := c.lit.(type) {
	case string:
		got, ok := v.(string)
		if !ok {
			return false
		}
		return compareOrdered(c.op, strings.Compare(got, want))
	case bool:
		got, ok := v.(bool)
		if !ok {
			return false
		}
		switch c.op {
		case "==":
			return got == want
		case "!=":
			return got != want
		}
		return false
	default:
		gf, ok := asFloat(v)
		if !ok {
			return false
		}
		wf, _ := asFloat(c.lit)
		switch {
		case gf < wf:
			return compareOrdered(c.op, -1)
		case gf > wf:
			return compareOrdered(c.op, 1)
		default:
			return compareOrdered(c.op, 0)
		}
	}
}

// compareOrdered maps a three-way comparison result onto the operator.
func compareOrdered(op string, cmp int) bool {
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// numericEqual compares two values numerically when both are numbers, so a
// literal 4 matches a decoded 4.0 and vice versa. ok is false when either
// side is non-numeric.
func numericEqual(a, b any) (eq, ok bool) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if !aok || !bok {
		return false, false
	}
	return af == bf, true
}

func formatLiteral(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ---- lexer ----

type tokKind int

const (
	tokIdent tokKind = iota
	tokInt
	tokFloat
	tokString
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '"' || c == '\'':
			s, n, err := lexQuoted(src[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokString, s})
			i += n
		case strings.ContainsRune("=!<>", rune(c)):
			op, n, err := lexOp(src[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{tokOp, op})
			i += n
		case c == '-' || c >= '0' && c <= '9':
			t, n, err := lexNumber(src[i:])
			if err != nil {
				return nil, err
			}
			toks = append(toks, t)
			i += n
		case unicode.IsLetter(rune(c)) || c == '_':
			j := i
			for j < len(src) && (unicode.IsLetter(rune(src[j])) || unicode.IsDigit(rune(src[j])) || src[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return toks, nil
}

func lexQuoted(src string) (string, int, error) {
	quote := src[0]
	var b strings.Builder
	i := 1
	for i < len(src) {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			b.WriteByte(src[i+1])
			i += 2
			continue
		}
		if c == quote {
			return b.String(), i + 1, nil
		}
		b.WriteByte(c)
		i++
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}

func lexOp(src string) (string, int, error) {
	if len(src) >= 2 {
		switch src[:2] {
		case "==", "!=", "<=", ">=":
			return src[:2], 2, nil
		}
	}
	switch src[0] {
	case '<', '>':
		return string(src[0]), 1, nil
	}
	return "", 0, fmt.Errorf("unexpected operator starting at %q", src[:1])
}

func lexNumber(src string) (token, int, error) {
	i := 0
	if src[i] == '-' {
		i++
	}
	start := i
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	if i == start {
		return token{}, 0, fmt.Errorf("malformed number literal")
	}
	isFloat := false
	if i < len(src) && src[i] == '.' {
		isFloat = true
		i++
		for i < len(src) && src[i] >= '0' && src[i] <= '9' {
			i++
		}
	}
	if isFloat {
		return token{tokFloat, src[:i]}, i, nil
	}
	return token{tokInt, src[:i]}, i, nil
}

// ---- parser ----

type parser struct {
	toks []token
	pos  int
}

// parse compiles predicate source text into an expression tree.
func parse(src string) (expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty predicate expression")
	}
	p := &parser{toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("trailing input after expression: %q", p.toks[p.pos].text)
	}
	return e, nil
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.matchIdent("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.matchIdent("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (expr, error) {
	if p.matchIdent("not") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{inner: inner}, nil
	}
	return p.parseTerm()
}

func (p *parser) parseTerm() (expr, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch tok.kind {
	case tokLParen:
		p.pos++
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if nxt, ok := p.peek(); !ok || nxt.kind != tokRParen {
			return nil, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return e, nil
	case tokIdent:
		if tok.text == "any" {
			p.pos++
			return anyTerm{}, nil
		}
		if k, ok := typeTokens[tok.text]; ok {
			p.pos++
			return typeTerm{kind: k}, nil
		}
		return nil, fmt.Errorf("unknown identifier %q", tok.text)
	case tokOp:
		p.pos++
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if _, isBool := lit.(bool); isBool && tok.text != "==" && tok.text != "!=" {
			return nil, fmt.Errorf("operator %q is not applicable to booleans", tok.text)
		}
		return cmpTerm{op: tok.text, lit: lit}, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", tok.text)
	}
}

func (p *parser) parseLiteral() (any, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("operator is missing its literal")
	}
	p.pos++
	switch tok.kind {
	case tokInt:
		n, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integer literal %q", tok.text)
		}
		return n, nil
	case tokFloat:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed float literal %q", tok.text)
		}
		return f, nil
	case tokString:
		return tok.text, nil
	case tokIdent:
		switch tok.text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return nil, fmt.Errorf("expected literal, got %q", tok.text)
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) matchIdent(name string) bool {
	if tok, ok := p.peek(); ok && tok.kind == tokIdent && tok.text == name {
		p.pos++
		return true
	}
	return false
}
