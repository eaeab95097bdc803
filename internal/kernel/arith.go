package kernel

import (
	"fmt"
	"math"
	"math/big"
	"sort"
)

// seqElems unwraps an argument tuple: a sequence vector yields its
// elements, anything else is a single argument.
func seqElems(arg Gen) []Gen {
	if arg.typ == TVect && arg.sub == SubSeq {
		return arg.elems
	}
	return []Gen{arg}
}

// ---------------------------------------------------------------------------
// Numeric tower
// ---------------------------------------------------------------------------

// addNumeric combines two numeric values, staying exact when both sides
// are exact and degrading to float otherwise.
func addNumeric(a, b Gen) Gen {
	if a.typ == TCplx || b.typ == TCplx {
		ar, ai := complexParts(a)
		br, bi := complexParts(b)
		return normalizeCplx(addNumeric(ar, br), addNumeric(ai, bi))
	}
	if ra, ok := a.rat(); ok {
		if rb, ok := b.rat(); ok {
			return NewRat(ra.Add(ra, rb))
		}
	}
	fa, _ := a.float()
	fb, _ := b.float()
	return NewDouble(fa + fb)
}

func mulNumeric(a, b Gen) Gen {
	if a.typ == TCplx || b.typ == TCplx {
		ar, ai := complexParts(a)
		br, bi := complexParts(b)
		re := subNumeric(mulNumeric(ar, br), mulNumeric(ai, bi))
		im := addNumeric(mulNumeric(ar, bi), mulNumeric(ai, br))
		return normalizeCplx(re, im)
	}
	if ra, ok := a.rat(); ok {
		if rb, ok := b.rat(); ok {
			return NewRat(ra.Mul(ra, rb))
		}
	}
	fa, _ := a.float()
	fb, _ := b.float()
	return NewDouble(fa * fb)
}

func subNumeric(a, b Gen) Gen {
	return addNumeric(a, negNumeric(b))
}

func negNumeric(a Gen) Gen {
	switch a.typ {
	case TInt:
		return NewInt(-a.i)
	case TZint:
		return NewZint(new(big.Int).Neg(a.z))
	case TDouble:
		return NewDouble(-a.f)
	case TFrac:
		return NewFrac(negNumeric(*a.a), *a.b)
	case TCplx:
		return normalizeCplx(negNumeric(*a.a), negNumeric(*a.b))
	}
	return a
}

func divNumeric(a, b Gen) (Gen, error) {
	if b.IsZero() {
		return Gen{}, fmt.Errorf("Division by zero")
	}
	if a.typ == TCplx || b.typ == TCplx {
		br, bi := complexParts(b)
		// a/b = a*conj(b) / |b|^2
		den := addNumeric(mulNumeric(br, br), mulNumeric(bi, bi))
		conj := normalizeCplx(br, negNumeric(bi))
		num := mulNumeric(a, conj)
		return divNumeric(num, den)
	}
	if ra, ok := a.rat(); ok {
		if rb, ok := b.rat(); ok {
			return NewRat(ra.Quo(ra, rb)), nil
		}
	}
	fa, _ := a.float()
	fb, _ := b.float()
	return NewDouble(fa / fb), nil
}

func complexParts(g Gen) (re, im Gen) {
	if g.typ == TCplx {
		return *g.a, *g.b
	}
	return g, NewInt(0)
}

// normalizeCplx collapses a complex with zero imaginary part to its real
// part.
func normalizeCplx(re, im Gen) Gen {
	if im.IsZero() {
		return re
	}
	return NewCplx(re, im)
}

// ---------------------------------------------------------------------------
// Canonical symbolic sums and products
// ---------------------------------------------------------------------------

// keyOf returns a deterministic serialization used to group like terms and
// order factors. Independent of any environment settings.
func keyOf(g Gen) string {
	return Print(g, nil)
}

// degreeOf estimates a total degree for term ordering. Sums print highest
// degree first, which matches the kernel's display convention.
func degreeOf(g Gen) int {
	switch g.typ {
	case TIdnt:
		return 1
	case TSymb:
		switch g.fn {
		case opPow:
			parts := seqElems(*g.arg)
			if len(parts) == 2 && parts[1].typ == TInt {
				return int(parts[1].i) * degreeOf(parts[0])
			}
			return degreeOf(parts[0])
		case opMul:
			d := 0
			for _, f := range seqElems(*g.arg) {
				d += degreeOf(f)
			}
			return d
		case opAdd:
			d := 0
			for _, t := range seqElems(*g.arg) {
				if td := degreeOf(t); td > d {
					d = td
				}
			}
			return d
		}
		return 1
	}
	return 0
}

// splitCoeff separates the numeric coefficient of a canonical term from
// its symbolic part. The symbolic part is nil for pure numbers.
func splitCoeff(term Gen) (Gen, *Gen) {
	if term.IsNumeric() {
		return term, nil
	}
	if term.typ == TSymb && term.fn == opMul {
		factors := seqElems(*term.arg)
		if len(factors) > 1 && factors[0].IsNumeric() {
			rest := factors[1:]
			var base Gen
			if len(rest) == 1 {
				base = rest[0]
			} else {
				base = NewSymb(opMul, NewSeq(rest...))
			}
			return factors[0], &base
		}
	}
	one := NewInt(1)
	base := term
	return one, &base
}

// mulCoeff attaches a numeric coefficient to a symbolic base.
func mulCoeff(coeff Gen, base Gen) Gen {
	if coeff.IsZero() {
		return NewInt(0)
	}
	if coeff.IsOne() {
		return base
	}
	if base.typ == TSymb && base.fn == opMul {
		factors := append([]Gen{coeff}, seqElems(*base.arg)...)
		return NewSymb(opMul, NewSeq(factors...))
	}
	return NewSymb(opMul, NewSeq(coeff, base))
}

// sumOf builds the canonical sum of terms: nested sums flattened, numeric
// terms folded, like terms combined, ordered by degree then key, constant
// last.
func sumOf(terms []Gen) Gen {
	var flat []Gen
	for _, t := range terms {
		if t.typ == TSymb && t.fn == opAdd {
			flat = append(flat, seqElems(*t.arg)...)
		} else {
			flat = append(flat, t)
		}
	}

	numAcc := NewInt(0)
	type likeTerm struct {
		base  Gen
		coeff Gen
	}
	order := make([]string, 0, len(flat))
	byKey := make(map[string]*likeTerm)

	for _, t := range flat {
		coeff, base := splitCoeff(t)
		if base == nil {
			numAcc = addNumeric(numAcc, coeff)
			continue
		}
		k := keyOf(*base)
		if lt, ok := byKey[k]; ok {
			lt.coeff = addNumeric(lt.coeff, coeff)
		} else {
			byKey[k] = &likeTerm{base: *base, coeff: coeff}
			order = append(order, k)
		}
	}

	out := make([]Gen, 0, len(order)+1)
	for _, k := range order {
		lt := byKey[k]
		if lt.coeff.IsZero() {
			continue
		}
		out = append(out, mulCoeff(lt.coeff, lt.base))
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, dj := degreeOf(out[i]), degreeOf(out[j])
		if di != dj {
			return di > dj
		}
		return keyOf(out[i]) < keyOf(out[j])
	})

	if !numAcc.IsZero() {
		out = append(out, numAcc)
	}

	switch len(out) {
	case 0:
		return NewInt(0)
	case 1:
		return out[0]
	}
	return NewSymb(opAdd, NewSeq(out...))
}

// prodOf builds the canonical product of factors: nested products
// flattened, numeric factors folded, repeated bases combined into powers,
// coefficient first.
func prodOf(factors []Gen) Gen {
	var flat []Gen
	for _, f := range factors {
		if f.typ == TSymb && f.fn == opMul {
			flat = append(flat, seqElems(*f.arg)...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := NewInt(1)
	type powFactor struct {
		base Gen
		exp  Gen
	}
	order := make([]string, 0, len(flat))
	byKey := make(map[string]*powFactor)

	for _, f := range flat {
		if f.IsNumeric() {
			coeff = mulNumeric(coeff, f)
			continue
		}
		base, exp := f, NewInt(1)
		if f.typ == TSymb && f.fn == opPow {
			parts := seqElems(*f.arg)
			if len(parts) == 2 {
				base, exp = parts[0], parts[1]
			}
		}
		k := keyOf(base)
		if pf, ok := byKey[k]; ok {
			if pf.exp.IsNumeric() && exp.IsNumeric() {
				pf.exp = addNumeric(pf.exp, exp)
			} else {
				pf.exp = sumOf([]Gen{pf.exp, exp})
			}
		} else {
			byKey[k] = &powFactor{base: base, exp: exp}
			order = append(order, k)
		}
	}

	if coeff.IsZero() {
		return NewInt(0)
	}

	out := make([]Gen, 0, len(order)+1)
	for _, k := range order {
		pf := byKey[k]
		p := powOf(pf.base, pf.exp)
		if p.IsOne() {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyOf(out[i]) < keyOf(out[j])
	})

	if len(out) == 0 {
		return coeff
	}
	if !coeff.IsOne() {
		out = append([]Gen{coeff}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return NewSymb(opMul, NewSeq(out...))
}

// powOf builds the canonical power, folding numeric cases.
func powOf(base, exp Gen) Gen {
	if exp.typ == TInt {
		switch exp.i {
		case 0:
			return NewInt(1)
		case 1:
			return base
		}
	}
	if base.IsNumeric() && exp.typ == TInt {
		if p, ok := powExact(base, exp.i); ok {
			return p
		}
	}
	if base.IsNumeric() && exp.IsNumeric() && (base.IsApprox() || exp.IsApprox()) {
		fb, _ := base.float()
		fe, _ := exp.float()
		return NewDouble(math.Pow(fb, fe))
	}
	// (x^a)^b with numeric a, b collapses
	if base.typ == TSymb && base.fn == opPow {
		parts := seqElems(*base.arg)
		if len(parts) == 2 && parts[1].IsNumeric() && exp.IsNumeric() {
			return powOf(parts[0], mulNumeric(parts[1], exp))
		}
	}
	return NewSymb(opPow, NewSeq(base, exp))
}

// powExact raises an exact rational to an integer power.
func powExact(base Gen, exp int64) (Gen, bool) {
	r, ok := base.rat()
	if !ok {
		if base.typ == TCplx && exp >= 0 && exp <= 64 {
			acc := NewInt(1)
			for n := int64(0); n < exp; n++ {
				acc = mulNumeric(acc, base)
			}
			return acc, true
		}
		return Gen{}, false
	}
	if exp < 0 && r.Sign() == 0 {
		return Gen{}, false
	}
	if exp > 1<<16 || exp < -(1<<16) {
		return Gen{}, false
	}
	neg := exp < 0
	if neg {
		exp = -exp
	}
	num := new(big.Int).Exp(r.Num(), big.NewInt(exp), nil)
	den := new(big.Int).Exp(r.Denom(), big.NewInt(exp), nil)
	out := new(big.Rat).SetFrac(num, den)
	if neg {
		out.Inv(out)
	}
	return NewRat(out), true
}

// quotOf builds the canonical quotient.
func quotOf(a, b Gen) (Gen, error) {
	if a.IsNumeric() && b.IsNumeric() {
		return divNumeric(a, b)
	}
	if b.IsZero() {
		return Gen{}, fmt.Errorf("Division by zero")
	}
	if b.IsOne() {
		return a, nil
	}
	return NewSymb(opDiv, NewSeq(a, b)), nil
}

func negGen(a Gen) Gen {
	if a.IsNumeric() {
		return negNumeric(a)
	}
	return prodOf([]Gen{NewInt(-1), a})
}

// ---------------------------------------------------------------------------
// Operator handlers
// ---------------------------------------------------------------------------

func applyAdd(_ *Env, arg Gen) (Gen, error) {
	terms := seqElems(arg)
	for _, t := range terms {
		if t.typ == TVect && t.sub != SubSeq {
			return addVectors(terms)
		}
	}
	return sumOf(terms), nil
}

// addVectors adds vectors elementwise; lengths must agree.
func addVectors(terms []Gen) (Gen, error) {
	base := terms[0]
	if base.typ != TVect {
		return Gen{}, fmt.Errorf("Invalid dimension")
	}
	acc := make([]Gen, base.Len())
	copy(acc, base.elems)
	for _, t := range terms[1:] {
		if t.typ != TVect || t.Len() != len(acc) {
			return Gen{}, fmt.Errorf("Invalid dimension")
		}
		for i := range acc {
			acc[i] = sumOf([]Gen{acc[i], t.elems[i]})
		}
	}
	return NewVect(acc, base.sub), nil
}

func applySub(env *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) == 1 {
		return negGen(parts[0]), nil
	}
	terms := []Gen{parts[0]}
	for _, p := range parts[1:] {
		terms = append(terms, negGen(p))
	}
	return applyAdd(env, NewSeq(terms...))
}

func applyMul(_ *Env, arg Gen) (Gen, error) {
	return prodOf(seqElems(arg)), nil
}

func applyDiv(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) != 2 {
		return Gen{}, fmt.Errorf("Wrong number of arguments to /")
	}
	return quotOf(parts[0], parts[1])
}

func applyPow(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) != 2 {
		return Gen{}, fmt.Errorf("Wrong number of arguments to ^")
	}
	base, exp := parts[0], parts[1]
	if base.IsZero() && exp.typ == TInt && exp.i < 0 {
		return Gen{}, fmt.Errorf("Division by zero")
	}
	return powOf(base, exp), nil
}

func applyNeg(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	return negGen(parts[0]), nil
}

// applyEqual keeps equalities symbolic with evaluated sides; table
// construction consumes them.
func applyEqual(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) != 2 {
		return Gen{}, fmt.Errorf("Wrong number of arguments to =")
	}
	return NewSymb(opEq, NewSeq(parts[0], parts[1])), nil
}
