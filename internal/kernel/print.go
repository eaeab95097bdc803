package kernel

import (
	"strconv"
	"strings"
)

// Operator precedence for printing.
const (
	precLowest = iota
	precEq
	precAdd
	precMul
	precUnary
	precPow
	precAtom
)

// Print renders g using the environment's display settings. Printing is
// deferred until needed: the same value prints differently after the
// environment's precision changes. A nil env uses default settings.
func Print(g Gen, env *Env) string {
	digits := DefaultPrecision
	if env != nil {
		digits = env.digits
	}
	p := printer{digits: digits}
	return p.str(g, precLowest)
}

type printer struct {
	digits int
}

func (p printer) str(g Gen, ctx int) string {
	switch g.typ {
	case TInt:
		if g.sub == SubtypeBoolean {
			if g.i != 0 {
				return "true"
			}
			return "false"
		}
		return p.wrapNeg(strconv.FormatInt(g.i, 10), g.i < 0, ctx)
	case TZint:
		return p.wrapNeg(g.z.String(), g.z.Sign() < 0, ctx)
	case TDouble:
		return p.wrapNeg(strconv.FormatFloat(g.f, 'g', p.digits, 64), g.f < 0, ctx)
	case TFrac:
		s := p.str(*g.a, precMul) + "/" + p.str(*g.b, precPow)
		if ctx > precMul {
			return "(" + s + ")"
		}
		return s
	case TCplx:
		return p.cplx(g, ctx)
	case TIdnt:
		return g.s
	case TStrng:
		return strconv.Quote(g.s)
	case TFunc:
		return g.fn.name
	case TVect:
		return p.vect(g)
	case TMap:
		var b strings.Builder
		b.WriteString("table(")
		for i := range g.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.str(g.keys[i], precEq+1))
			b.WriteString(" = ")
			b.WriteString(p.str(g.vals[i], precEq+1))
		}
		b.WriteByte(')')
		return b.String()
	case TSymb:
		return p.symb(g, ctx)
	}
	return "?"
}

// wrapNeg parenthesizes negative literals in exponent and similar tight
// positions, e.g. (-3)^2.
func (p printer) wrapNeg(s string, neg bool, ctx int) string {
	if neg && ctx >= precUnary {
		return "(" + s + ")"
	}
	return s
}

func (p printer) cplx(g Gen, ctx int) string {
	re, im := *g.a, *g.b
	var b strings.Builder
	lvl := precAtom

	if !re.IsZero() {
		b.WriteString(p.str(re, precAdd))
		lvl = precAdd
		if abs, neg := negativePart(im); neg {
			b.WriteByte('-')
			im = abs
		} else {
			b.WriteByte('+')
		}
	} else if abs, neg := negativePart(im); neg {
		b.WriteByte('-')
		im = abs
		lvl = precAdd
	}

	if im.IsOne() {
		b.WriteString("i")
	} else {
		b.WriteString(p.str(im, precMul))
		b.WriteString("*i")
		if lvl > precMul {
			lvl = precMul
		}
	}

	s := b.String()
	if ctx > lvl {
		return "(" + s + ")"
	}
	return s
}

func (p printer) vect(g Gen) string {
	open, shut := "[", "]"
	switch g.sub {
	case SubSeq:
		parts := make([]string, len(g.elems))
		for i, e := range g.elems {
			parts[i] = p.str(e, precLowest)
		}
		return strings.Join(parts, ",")
	case SubSet:
		open, shut = "{", "}"
	}
	var b strings.Builder
	b.WriteString(open)
	for i, e := range g.elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.str(e, precLowest))
	}
	b.WriteString(shut)
	return b.String()
}

// negativePart reports whether a term carries a negative leading numeric,
// returning the term with the sign stripped.
func negativePart(g Gen) (Gen, bool) {
	if g.IsNumeric() && g.typ != TCplx {
		switch g.typ {
		case TInt:
			if g.i < 0 {
				return NewInt(-g.i), true
			}
		case TZint:
			if g.z.Sign() < 0 {
				return negNumeric(g), true
			}
		case TDouble:
			if g.f < 0 {
				return NewDouble(-g.f), true
			}
		case TFrac:
			if abs, neg := negativePart(*g.a); neg {
				return NewFrac(abs, *g.b), true
			}
		}
		return g, false
	}
	if g.typ == TSymb && g.fn == opMul {
		factors := seqElems(*g.arg)
		if len(factors) > 0 {
			if abs, neg := negativePart(factors[0]); neg {
				rest := append([]Gen{abs}, factors[1:]...)
				if abs.IsOne() {
					rest = rest[1:]
				}
				if len(rest) == 1 {
					return rest[0], true
				}
				return NewSymb(opMul, NewSeq(rest...)), true
			}
		}
	}
	return g, false
}

func (p printer) symb(g Gen, ctx int) string {
	switch g.fn {
	case opAdd:
		terms := seqElems(*g.arg)
		var b strings.Builder
		for i, t := range terms {
			if i == 0 {
				b.WriteString(p.str(t, precAdd))
				continue
			}
			if abs, neg := negativePart(t); neg {
				b.WriteByte('-')
				b.WriteString(p.str(abs, precAdd+1))
			} else {
				b.WriteByte('+')
				b.WriteString(p.str(t, precAdd+1))
			}
		}
		s := b.String()
		if ctx > precAdd {
			return "(" + s + ")"
		}
		return s

	case opSub:
		parts := seqElems(*g.arg)
		if len(parts) == 1 {
			s := "-" + p.str(parts[0], precUnary)
			if ctx > precAdd {
				return "(" + s + ")"
			}
			return s
		}
		segs := make([]string, len(parts))
		for i, t := range parts {
			lvl := precAdd
			if i > 0 {
				lvl = precAdd + 1
			}
			segs[i] = p.str(t, lvl)
		}
		s := strings.Join(segs, "-")
		if ctx > precAdd {
			return "(" + s + ")"
		}
		return s

	case opMul:
		factors := seqElems(*g.arg)
		var b strings.Builder
		start := 0
		// leading -1 prints as a sign, not a factor
		if len(factors) > 1 && factors[0].typ == TInt && factors[0].i == -1 {
			b.WriteByte('-')
			start = 1
		}
		for i := start; i < len(factors); i++ {
			if i > start {
				b.WriteByte('*')
			}
			b.WriteString(p.str(factors[i], precMul))
		}
		s := b.String()
		if ctx > precMul || (start == 1 && ctx > precAdd) {
			return "(" + s + ")"
		}
		return s

	case opDiv:
		parts := seqElems(*g.arg)
		s := p.str(parts[0], precMul) + "/" + p.str(parts[1], precMul+1)
		if ctx > precMul {
			return "(" + s + ")"
		}
		return s

	case opPow:
		parts := seqElems(*g.arg)
		s := p.str(parts[0], precPow+1) + "^" + p.str(parts[1], precPow)
		if ctx > precPow {
			return "(" + s + ")"
		}
		return s

	case opNeg:
		parts := seqElems(*g.arg)
		s := "-" + p.str(parts[0], precUnary)
		if ctx > precAdd {
			return "(" + s + ")"
		}
		return s

	case opSto:
		parts := seqElems(*g.arg)
		return p.str(parts[0], precAtom) + ":=" + p.str(parts[1], precEq)

	case opEq:
		parts := seqElems(*g.arg)
		s := p.str(parts[0], precEq+1) + " = " + p.str(parts[1], precEq+1)
		if ctx > precEq {
			return "(" + s + ")"
		}
		return s
	}

	// generic function application
	var b strings.Builder
	b.WriteString(g.fn.name)
	b.WriteByte('(')
	args := seqElems(*g.arg)
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.str(a, precLowest))
	}
	b.WriteByte(')')
	return b.String()
}
