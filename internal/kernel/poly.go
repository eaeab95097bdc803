package kernel

import (
	"math/big"
	"sort"
)

// ratPoly is a dense univariate polynomial over the rationals, lowest
// degree first. The zero polynomial is the empty slice.
type ratPoly []*big.Rat

func (p ratPoly) trim() ratPoly {
	n := len(p)
	for n > 0 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func (p ratPoly) degree() int { return len(p) - 1 }

func polyAdd(a, b ratPoly) ratPoly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(ratPoly, n)
	for i := range out {
		out[i] = new(big.Rat)
		if i < len(a) {
			out[i].Add(out[i], a[i])
		}
		if i < len(b) {
			out[i].Add(out[i], b[i])
		}
	}
	return out.trim()
}

func polyMul(a, b ratPoly) ratPoly {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make(ratPoly, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, ca := range a {
		if ca.Sign() == 0 {
			continue
		}
		for j, cb := range b {
			out[i+j].Add(out[i+j], new(big.Rat).Mul(ca, cb))
		}
	}
	return out.trim()
}

func polyScale(a ratPoly, s *big.Rat) ratPoly {
	out := make(ratPoly, len(a))
	for i, c := range a {
		out[i] = new(big.Rat).Mul(c, s)
	}
	return out.trim()
}

// polyEval evaluates p at r.
func polyEval(p ratPoly, r *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, r)
		acc.Add(acc, p[i])
	}
	return acc
}

// polyDeflate divides p by (x - r), assuming r is a root.
func polyDeflate(p ratPoly, r *big.Rat) ratPoly {
	out := make(ratPoly, len(p)-1)
	carry := new(big.Rat)
	for i := len(p) - 1; i >= 1; i-- {
		c := new(big.Rat).Add(p[i], new(big.Rat).Mul(carry, r))
		out[i-1] = c
		carry = c
	}
	return out.trim()
}

// collectIdents gathers the distinct identifier names in g, in first-seen
// order.
func collectIdents(g Gen, seen map[string]bool, order *[]string) {
	switch g.typ {
	case TIdnt:
		if !seen[g.s] {
			seen[g.s] = true
			*order = append(*order, g.s)
		}
	case TSymb:
		collectIdents(*g.arg, seen, order)
	case TVect:
		for _, e := range g.elems {
			collectIdents(e, seen, order)
		}
	case TFrac, TCplx:
		collectIdents(*g.a, seen, order)
		collectIdents(*g.b, seen, order)
	}
}

// polyFromGen converts an expression into a univariate rational polynomial
// in x. ok is false when the expression is not polynomial in x.
func polyFromGen(g Gen, x string) (ratPoly, bool) {
	if g.IsNumeric() {
		r, ok := g.rat()
		if !ok {
			return nil, false
		}
		if r.Sign() == 0 {
			return nil, true
		}
		return ratPoly{r}, true
	}
	switch g.typ {
	case TIdnt:
		if g.s != x {
			return nil, false
		}
		return ratPoly{new(big.Rat), big.NewRat(1, 1)}, true
	case TSymb:
		parts := seqElems(*g.arg)
		switch g.fn {
		case opAdd:
			acc := ratPoly(nil)
			for _, t := range parts {
				p, ok := polyFromGen(t, x)
				if !ok {
					return nil, false
				}
				acc = polyAdd(acc, p)
			}
			return acc, true
		case opMul:
			acc := ratPoly{big.NewRat(1, 1)}
			for _, f := range parts {
				p, ok := polyFromGen(f, x)
				if !ok {
					return nil, false
				}
				acc = polyMul(acc, p)
			}
			return acc, true
		case opPow:
			if len(parts) != 2 || parts[1].typ != TInt || parts[1].i < 0 || parts[1].i > 64 {
				return nil, false
			}
			base, ok := polyFromGen(parts[0], x)
			if !ok {
				return nil, false
			}
			acc := ratPoly{big.NewRat(1, 1)}
			for n := int64(0); n < parts[1].i; n++ {
				acc = polyMul(acc, base)
			}
			return acc, true
		case opNeg:
			p, ok := polyFromGen(parts[0], x)
			if !ok {
				return nil, false
			}
			return polyScale(p, big.NewRat(-1, 1)), true
		case opSub:
			acc := ratPoly(nil)
			for i, t := range parts {
				p, ok := polyFromGen(t, x)
				if !ok {
					return nil, false
				}
				if i > 0 {
					p = polyScale(p, big.NewRat(-1, 1))
				}
				acc = polyAdd(acc, p)
			}
			return acc, true
		case opDiv:
			if len(parts) != 2 || !parts[1].IsNumeric() {
				return nil, false
			}
			den, ok := parts[1].rat()
			if !ok || den.Sign() == 0 {
				return nil, false
			}
			num, ok := polyFromGen(parts[0], x)
			if !ok {
				return nil, false
			}
			return polyScale(num, new(big.Rat).Inv(den)), true
		}
	}
	return nil, false
}

// polyToGen rebuilds the canonical expression for p in variable x.
func polyToGen(p ratPoly, x string) Gen {
	xg := NewIdent(x)
	terms := make([]Gen, 0, len(p))
	for i, c := range p {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, mulCoeff(NewRat(new(big.Rat).Set(c)), powOf(xg, NewInt(int64(i)))))
	}
	return sumOf(terms)
}

// int64Divisors enumerates the positive divisors of n, which must be
// nonzero and fit the trial-division budget.
func int64Divisors(n int64) []int64 {
	if n < 0 {
		n = -n
	}
	var out []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			out = append(out, d)
			if q := n / d; q != d {
				out = append(out, q)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type linearFactor struct {
	root *big.Rat
	mult int
}

// rationalRoots extracts the rational roots of p with multiplicity,
// deflating as it goes. Returns the roots, the deflated remainder, and ok
// false when the coefficient sizes exceed the search budget.
func rationalRoots(p ratPoly) ([]linearFactor, ratPoly, bool) {
	// clear denominators to get integer coefficients
	lcm := big.NewInt(1)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Div(new(big.Int).Mul(lcm, d), g)
	}
	ints := make([]*big.Int, len(p))
	for i, c := range p {
		ints[i] = new(big.Int).Div(new(big.Int).Mul(c.Num(), lcm), c.Denom())
	}

	a0, an := ints[0], ints[len(ints)-1]
	if !a0.IsInt64() || !an.IsInt64() {
		return nil, p, false
	}
	const budget = int64(1) << 40
	if n := a0.Int64(); n > budget || n < -budget {
		return nil, p, false
	}
	if n := an.Int64(); n > budget || n < -budget {
		return nil, p, false
	}

	var roots []linearFactor
	rem := p
	for _, pn := range int64Divisors(a0.Int64()) {
		for _, qn := range int64Divisors(an.Int64()) {
			for _, sign := range []int64{1, -1} {
				if len(rem) <= 1 {
					return roots, rem, true
				}
				r := big.NewRat(sign*pn, qn)
				mult := 0
				for len(rem) > 1 && polyEval(rem, r).Sign() == 0 {
					rem = polyDeflate(rem, r)
					mult++
				}
				if mult > 0 {
					roots = append(roots, linearFactor{root: r, mult: mult})
				}
			}
		}
	}
	return roots, rem, true
}

// factorExpr factors a univariate polynomial expression over the
// rationals: rational roots become integer linear factors, anything left
// stays as an expanded polynomial factor. ok is false when the expression
// is not a factorable polynomial.
func factorExpr(g Gen, x string) (Gen, bool) {
	p, ok := polyFromGen(g, x)
	if !ok || len(p) < 2 {
		return Gen{}, false
	}

	// strip x^k
	shift := 0
	for len(p) > 0 && p[0].Sign() == 0 {
		p = p[1:]
		shift++
	}

	roots, rem, ok := rationalRoots(p)
	if !ok {
		return Gen{}, false
	}

	// sort roots descending so (x-1) prints before (x+1)
	sort.Slice(roots, func(i, j int) bool { return roots[i].root.Cmp(roots[j].root) > 0 })

	xg := NewIdent(x)
	constant := big.NewRat(1, 1)
	var factors []Gen

	if shift > 0 {
		factors = append(factors, powOf(xg, NewInt(int64(shift))))
	}

	for _, lf := range roots {
		// root p/q contributes (q*x - p), absorbing 1/q into the constant
		num := new(big.Int).Set(lf.root.Num())
		den := new(big.Int).Set(lf.root.Denom())
		lin := sumTwo(mulCoeff(NewZint(den), xg), NewZint(new(big.Int).Neg(num)))
		for n := 0; n < lf.mult; n++ {
			constant.Mul(constant, new(big.Rat).SetFrac(big.NewInt(1), den))
		}
		factors = append(factors, powOf(lin, NewInt(int64(lf.mult))))
	}

	switch {
	case len(rem) == 1:
		constant.Mul(constant, rem[0])
	case len(rem) > 1:
		// pull the content so the residual factor has integer coefficients
		// with positive leading coefficient
		content := polyContent(rem)
		constant.Mul(constant, content)
		factors = append(factors, polyToGen(polyScale(rem, new(big.Rat).Inv(content)), x))
	}

	if len(factors) == 0 {
		return NewRat(constant), true
	}

	out := make([]Gen, 0, len(factors)+1)
	if constant.Cmp(big.NewRat(1, 1)) != 0 {
		out = append(out, NewRat(constant))
	}
	out = append(out, factors...)
	if len(out) == 1 {
		return out[0], true
	}
	return NewSymb(opMul, NewSeq(out...)), true
}

// sumTwo builds a two-term sum node without reordering.
func sumTwo(a, b Gen) Gen {
	if b.IsZero() {
		return a
	}
	return NewSymb(opAdd, NewSeq(a, b))
}

// polyDivMod divides a by b, returning quotient and remainder.
func polyDivMod(a, b ratPoly) (ratPoly, ratPoly) {
	if len(b) == 0 {
		return nil, a
	}
	rem := make(ratPoly, len(a))
	for i, c := range a {
		rem[i] = new(big.Rat).Set(c)
	}
	rem = rem.trim()
	var quo ratPoly
	if len(rem) >= len(b) {
		quo = make(ratPoly, len(rem)-len(b)+1)
		for i := range quo {
			quo[i] = new(big.Rat)
		}
	}
	lead := b[len(b)-1]
	for len(rem) >= len(b) {
		shift := len(rem) - len(b)
		q := new(big.Rat).Quo(rem[len(rem)-1], lead)
		quo[shift].Set(q)
		for i, c := range b {
			rem[shift+i].Sub(rem[shift+i], new(big.Rat).Mul(q, c))
		}
		rem = rem.trim()
	}
	return quo, rem
}

// polyGCD computes the greatest common divisor by Euclid's algorithm,
// normalized to primitive integer coefficients with positive leading
// coefficient.
func polyGCD(a, b ratPoly) ratPoly {
	a, b = a.trim(), b.trim()
	for len(b) > 0 {
		_, r := polyDivMod(a, b)
		a, b = b, r
	}
	if len(a) == 0 {
		return a
	}
	return polyScale(a, new(big.Rat).Inv(polyContent(a)))
}

// polyContent returns the rational content of p signed to make the leading
// coefficient positive after division.
func polyContent(p ratPoly) *big.Rat {
	gcd := new(big.Int)
	lcm := big.NewInt(1)
	for _, c := range p {
		if c.Sign() == 0 {
			continue
		}
		gcd.GCD(nil, nil, gcd, new(big.Int).Abs(c.Num()))
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Div(new(big.Int).Mul(lcm, d), g)
	}
	if gcd.Sign() == 0 {
		gcd.SetInt64(1)
	}
	content := new(big.Rat).SetFrac(gcd, lcm)
	if p[len(p)-1].Sign() < 0 {
		content.Neg(content)
	}
	return content
}
