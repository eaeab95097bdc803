package kernel

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Parse turns source text into an unevaluated expression. A top-level
// comma or semicolon list parses as a sequence.
func Parse(src string) (Gen, error) {
	Init()
	if strings.TrimSpace(src) == "" {
		return Gen{}, fmt.Errorf("empty input")
	}
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return Gen{}, err
	}
	g, err := p.sequence()
	if err != nil {
		return Gen{}, err
	}
	if p.tok.kind != tokEOF {
		return Gen{}, fmt.Errorf("unexpected %q near position %d", p.tok.text, p.tok.pos)
	}
	return g, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) isOp(text string) bool {
	return p.tok.kind == tokOp && p.tok.text == text
}

func (p *parser) expectOp(text string) error {
	if !p.isOp(text) {
		return fmt.Errorf("expected %q, got %q near position %d", text, p.tok.text, p.tok.pos)
	}
	return p.advance()
}

// sequence := expr ((","|";") expr)*
func (p *parser) sequence() (Gen, error) {
	first, err := p.expr()
	if err != nil {
		return Gen{}, err
	}
	if !p.isOp(",") && !p.isOp(";") {
		return first, nil
	}
	elems := []Gen{first}
	for p.isOp(",") || p.isOp(";") {
		if err := p.advance(); err != nil {
			return Gen{}, err
		}
		if p.tok.kind == tokEOF {
			break
		}
		e, err := p.expr()
		if err != nil {
			return Gen{}, err
		}
		elems = append(elems, e)
	}
	return NewSeq(elems...), nil
}

// expr := equality (":=" expr)?    assignment is right-associative
func (p *parser) expr() (Gen, error) {
	lhs, err := p.equality()
	if err != nil {
		return Gen{}, err
	}
	if p.tok.kind != tokAssign {
		return lhs, nil
	}
	if lhs.Type() != TIdnt {
		return Gen{}, fmt.Errorf("invalid assignment target near position %d", p.tok.pos)
	}
	if err := p.advance(); err != nil {
		return Gen{}, err
	}
	rhs, err := p.expr()
	if err != nil {
		return Gen{}, err
	}
	return NewSymb(opSto, NewSeq(lhs, rhs)), nil
}

// equality := additive ("=" additive)?
func (p *parser) equality() (Gen, error) {
	lhs, err := p.additive()
	if err != nil {
		return Gen{}, err
	}
	if !p.isOp("=") {
		return lhs, nil
	}
	if err := p.advance(); err != nil {
		return Gen{}, err
	}
	rhs, err := p.additive()
	if err != nil {
		return Gen{}, err
	}
	return NewSymb(opEq, NewSeq(lhs, rhs)), nil
}

// additive := multiplicative (("+"|"-") multiplicative)*
func (p *parser) additive() (Gen, error) {
	lhs, err := p.multiplicative()
	if err != nil {
		return Gen{}, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := opAdd
		if p.tok.text == "-" {
			op = opSub
		}
		if err := p.advance(); err != nil {
			return Gen{}, err
		}
		rhs, err := p.multiplicative()
		if err != nil {
			return Gen{}, err
		}
		lhs = NewSymb(op, NewSeq(lhs, rhs))
	}
	return lhs, nil
}

// multiplicative := unary (("*"|"/") unary)*
func (p *parser) multiplicative() (Gen, error) {
	lhs, err := p.unary()
	if err != nil {
		return Gen{}, err
	}
	for p.isOp("*") || p.isOp("/") {
		op := opMul
		if p.tok.text == "/" {
			op = opDiv
		}
		if err := p.advance(); err != nil {
			return Gen{}, err
		}
		rhs, err := p.unary()
		if err != nil {
			return Gen{}, err
		}
		lhs = NewSymb(op, NewSeq(lhs, rhs))
	}
	return lhs, nil
}

// unary := "-" unary | "+" unary | power
func (p *parser) unary() (Gen, error) {
	if p.isOp("-") {
		if err := p.advance(); err != nil {
			return Gen{}, err
		}
		operand, err := p.unary()
		if err != nil {
			return Gen{}, err
		}
		return NewSymb(opNeg, NewSeq(operand)), nil
	}
	if p.isOp("+") {
		if err := p.advance(); err != nil {
			return Gen{}, err
		}
		return p.unary()
	}
	return p.power()
}

// power := postfix ("^" unary)?    exponentiation is right-associative
// and binds tighter than unary minus: -x^2 parses as -(x^2).
func (p *parser) power() (Gen, error) {
	base, err := p.postfix()
	if err != nil {
		return Gen{}, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	if err := p.advance(); err != nil {
		return Gen{}, err
	}
	exp, err := p.unary()
	if err != nil {
		return Gen{}, err
	}
	return NewSymb(opPow, NewSeq(base, exp)), nil
}

// postfix := primary ("(" args ")" | "[" expr "]")*
func (p *parser) postfix() (Gen, error) {
	g, err := p.primary()
	if err != nil {
		return Gen{}, err
	}
	for {
		switch {
		case p.isOp("("):
			g, err = p.call(g)
			if err != nil {
				return Gen{}, err
			}
		case p.isOp("["):
			if err := p.advance(); err != nil {
				return Gen{}, err
			}
			idx, err := p.expr()
			if err != nil {
				return Gen{}, err
			}
			if err := p.expectOp("]"); err != nil {
				return Gen{}, err
			}
			at, _ := Lookup("at")
			g = NewSymb(at, NewSeq(g, idx))
		default:
			return g, nil
		}
	}
}

func (p *parser) call(callee Gen) (Gen, error) {
	if callee.Type() != TIdnt && callee.Type() != TFunc {
		return Gen{}, fmt.Errorf("cannot apply %s near position %d", callee.TypeName(), p.tok.pos)
	}
	if err := p.advance(); err != nil { // consume "("
		return Gen{}, err
	}
	var args []Gen
	if !p.isOp(")") {
		for {
			a, err := p.expr()
			if err != nil {
				return Gen{}, err
			}
			args = append(args, a)
			if !p.isOp(",") {
				break
			}
			if err := p.advance(); err != nil {
				return Gen{}, err
			}
		}
	}
	if err := p.expectOp(")"); err != nil {
		return Gen{}, err
	}

	fn := callee.fn
	if callee.Type() == TIdnt {
		var ok bool
		fn, ok = Lookup(callee.Name())
		if !ok {
			// unknown name: keep the application symbolic
			fn = &Builtin{name: callee.Name()}
		}
	}
	if len(args) == 1 {
		return NewSymb(fn, args[0]), nil
	}
	return NewSymb(fn, NewSeq(args...)), nil
}

func (p *parser) primary() (Gen, error) {
	switch p.tok.kind {
	case tokNumber:
		g, err := parseNumber(p.tok.text)
		if err != nil {
			return Gen{}, fmt.Errorf("%v near position %d", err, p.tok.pos)
		}
		return g, p.advance()

	case tokString:
		g := NewString(p.tok.text)
		return g, p.advance()

	case tokIdent:
		name := p.tok.text
		if err := p.advance(); err != nil {
			return Gen{}, err
		}
		switch name {
		case "i":
			return NewCplx(NewInt(0), NewInt(1)), nil
		case "true":
			return NewBool(true), nil
		case "false":
			return NewBool(false), nil
		}
		return NewIdent(name), nil

	case tokOp:
		switch p.tok.text {
		case "(":
			if err := p.advance(); err != nil {
				return Gen{}, err
			}
			g, err := p.sequence()
			if err != nil {
				return Gen{}, err
			}
			return g, p.expectOp(")")
		case "[":
			return p.listLiteral("]", SubList)
		case "{":
			return p.listLiteral("}", SubSet)
		}
	}
	return Gen{}, fmt.Errorf("unexpected %q near position %d", p.tok.text, p.tok.pos)
}

func (p *parser) listLiteral(shut string, subtype int) (Gen, error) {
	if err := p.advance(); err != nil { // consume opener
		return Gen{}, err
	}
	var elems []Gen
	if !p.isOp(shut) {
		for {
			e, err := p.expr()
			if err != nil {
				return Gen{}, err
			}
			elems = append(elems, e)
			if !p.isOp(",") {
				break
			}
			if err := p.advance(); err != nil {
				return Gen{}, err
			}
		}
	}
	if err := p.expectOp(shut); err != nil {
		return Gen{}, err
	}
	return NewVect(elems, subtype), nil
}

func parseNumber(text string) (Gen, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Gen{}, fmt.Errorf("invalid number %q", text)
		}
		return NewDouble(f), nil
	}
	z, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Gen{}, fmt.Errorf("invalid number %q", text)
	}
	return NewZint(z), nil
}
