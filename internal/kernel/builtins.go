package kernel

import (
	"fmt"
	"math"
	"math/big"
)

// fnPurge is special-cased by the evaluator: purge receives its argument
// unevaluated, like assignment.
var fnPurge *Builtin

func initBuiltinTable() {
	builtins = make(map[string]*Builtin)
	reg := func(name string, fn func(*Env, Gen) (Gen, error), aliases ...string) *Builtin {
		b := &Builtin{name: name, apply: fn}
		builtins[name] = b
		for _, a := range aliases {
			builtins[a] = b
		}
		return b
	}

	reg("gcd", applyGcd, "igcd")
	reg("lcm", applyLcm)
	reg("factor", applyFactor, "ifactor")
	reg("expand", applyExpand)
	reg("simplify", applySimplify, "normal", "ratnormal")
	reg("diff", applyDiff, "derive")
	reg("evalf", applyEvalf, "approx")
	reg("abs", applyAbs)
	reg("sign", applySign)
	reg("floor", applyFloor)
	reg("ceil", applyCeil, "ceiling")
	reg("sqrt", applySqrt)
	reg("exp", applyExp)
	reg("ln", applyLn, "log")
	reg("log10", applyLog10)
	reg("sin", applySin)
	reg("cos", applyCos)
	reg("tan", applyTan)
	reg("re", applyRe, "real")
	reg("im", applyIm, "imag")
	reg("conj", applyConj)
	reg("numer", applyNumer, "getNum")
	reg("denom", applyDenom, "getDenom")
	reg("size", applySize, "length", "nops")
	reg("max", applyMax)
	reg("min", applyMin)
	reg("at", applyAt)
	reg("table", applyTable)
	fnPurge = reg("purge", applyPurge)
}

func wrongArgs(name string) error {
	return fmt.Errorf("Wrong number of arguments to %s", name)
}

func args1(name string, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) != 1 {
		return Gen{}, wrongArgs(name)
	}
	return parts[0], nil
}

func args2(name string, arg Gen) (Gen, Gen, error) {
	parts := seqElems(arg)
	if len(parts) != 2 {
		return Gen{}, Gen{}, wrongArgs(name)
	}
	return parts[0], parts[1], nil
}

// ---------------------------------------------------------------------------
// gcd / lcm
// ---------------------------------------------------------------------------

func applyGcd(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) < 2 {
		return Gen{}, wrongArgs("gcd")
	}

	allInt := true
	for _, p := range parts {
		if !p.IsExactInt() {
			allInt = false
			break
		}
	}
	if allInt {
		acc := new(big.Int).Abs(bigOf(parts[0]))
		for _, p := range parts[1:] {
			acc = new(big.Int).GCD(nil, nil, acc, new(big.Int).Abs(bigOf(p)))
		}
		return NewZint(acc), nil
	}

	x, ok := sharedVariable(parts)
	if !ok {
		return Gen{}, fmt.Errorf("gcd: arguments must be integers or polynomials in one variable")
	}
	var acc ratPoly
	for i, p := range parts {
		pp, ok := polyFromGen(p, x)
		if !ok {
			return Gen{}, fmt.Errorf("gcd: %s is not a polynomial", Print(p, nil))
		}
		if i == 0 {
			acc = pp
		} else {
			acc = polyGCD(acc, pp)
		}
	}
	if len(acc) == 0 {
		return NewInt(0), nil
	}
	return polyToGen(acc, x), nil
}

func applyLcm(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) < 2 {
		return Gen{}, wrongArgs("lcm")
	}

	allInt := true
	for _, p := range parts {
		if !p.IsExactInt() {
			allInt = false
			break
		}
	}
	if allInt {
		acc := new(big.Int).Abs(bigOf(parts[0]))
		for _, p := range parts[1:] {
			b := new(big.Int).Abs(bigOf(p))
			if acc.Sign() == 0 || b.Sign() == 0 {
				acc.SetInt64(0)
				continue
			}
			g := new(big.Int).GCD(nil, nil, acc, b)
			acc.Div(acc.Mul(acc, b), g)
		}
		return NewZint(acc), nil
	}

	x, ok := sharedVariable(parts)
	if !ok {
		return Gen{}, fmt.Errorf("lcm: arguments must be integers or polynomials in one variable")
	}
	prod := ratPoly{big.NewRat(1, 1)}
	var gcd ratPoly
	for i, p := range parts {
		pp, ok := polyFromGen(p, x)
		if !ok {
			return Gen{}, fmt.Errorf("lcm: %s is not a polynomial", Print(p, nil))
		}
		prod = polyMul(prod, pp)
		if i == 0 {
			gcd = pp
		} else {
			gcd = polyGCD(gcd, pp)
		}
	}
	if len(gcd) == 0 {
		return NewInt(0), nil
	}
	quo, _ := polyDivMod(prod, gcd)
	return polyToGen(polyScale(quo, new(big.Rat).Inv(polyContent(quo))), x), nil
}

func bigOf(g Gen) *big.Int {
	if g.typ == TZint {
		return new(big.Int).Set(g.z)
	}
	return big.NewInt(g.i)
}

// sharedVariable finds the single identifier the arguments range over.
func sharedVariable(parts []Gen) (string, bool) {
	seen := make(map[string]bool)
	var order []string
	for _, p := range parts {
		collectIdents(p, seen, &order)
	}
	if len(order) != 1 {
		return "", false
	}
	return order[0], true
}

// ---------------------------------------------------------------------------
// factor / expand / simplify
// ---------------------------------------------------------------------------

func applyFactor(env *Env, arg Gen) (Gen, error) {
	g, err := args1("factor", arg)
	if err != nil {
		return Gen{}, err
	}

	if g.IsExactInt() {
		return factorInteger(g), nil
	}

	seen := make(map[string]bool)
	var idents []string
	collectIdents(g, seen, &idents)
	if len(idents) == 1 {
		if f, ok := factorExpr(g, idents[0]); ok {
			return f, nil
		}
	}
	env.Warn("factor: no further factorization found")
	return g, nil
}

// factorInteger produces the prime factorization as an unevaluated
// product, 2^2*3 style. Factors beyond the trial-division bound stay
// unsplit.
func factorInteger(g Gen) Gen {
	n := bigOf(g)
	if n.Sign() == 0 {
		return NewInt(0)
	}
	neg := n.Sign() < 0
	n.Abs(n)

	var factors []Gen
	if neg {
		factors = append(factors, NewInt(-1))
	}
	d := big.NewInt(2)
	bound := big.NewInt(1 << 20)
	for n.BitLen() > 1 {
		if d.Cmp(bound) > 0 || new(big.Int).Mul(d, d).Cmp(n) > 0 {
			break
		}
		exp := 0
		for new(big.Int).Mod(n, d).Sign() == 0 {
			n.Div(n, d)
			exp++
		}
		if exp > 0 {
			factors = append(factors, powOf(NewZint(new(big.Int).Set(d)), NewInt(int64(exp))))
		}
		d.Add(d, big.NewInt(1))
	}
	if n.Cmp(big.NewInt(1)) > 0 {
		factors = append(factors, NewZint(n))
	}

	switch len(factors) {
	case 0:
		return NewInt(1)
	case 1:
		return factors[0]
	}
	return NewSymb(opMul, NewSeq(factors...))
}

func applyExpand(env *Env, arg Gen) (Gen, error) {
	g, err := args1("expand", arg)
	if err != nil {
		return Gen{}, err
	}
	return expandGen(env, g)
}

// expandGen distributes products over sums and expands small integer
// powers of sums, bottom-up.
func expandGen(env *Env, g Gen) (Gen, error) {
	if g.typ == TVect {
		elems := make([]Gen, len(g.elems))
		for i, e := range g.elems {
			v, err := expandGen(env, e)
			if err != nil {
				return Gen{}, err
			}
			elems[i] = v
		}
		return NewVect(elems, g.sub), nil
	}
	if g.typ != TSymb {
		return g, nil
	}

	parts := seqElems(*g.arg)
	expanded := make([]Gen, len(parts))
	for i, p := range parts {
		e, err := expandGen(env, p)
		if err != nil {
			return Gen{}, err
		}
		expanded[i] = e
	}

	switch g.fn {
	case opMul:
		return distribute(expanded), nil

	case opPow:
		if len(expanded) == 2 {
			base, exp := expanded[0], expanded[1]
			if exp.typ == TInt && exp.i >= 2 && exp.i <= 32 && isSum(base) {
				acc := base
				for n := int64(1); n < exp.i; n++ {
					acc = distribute([]Gen{acc, base})
				}
				return acc, nil
			}
			return powOf(base, exp), nil
		}

	case opDiv:
		if len(expanded) == 2 && expanded[1].IsNumeric() {
			inv, err := divNumeric(NewInt(1), expanded[1])
			if err != nil {
				return Gen{}, err
			}
			return distribute([]Gen{expanded[0], inv}), nil
		}
	}

	if g.fn != nil && g.fn.apply != nil {
		return g.fn.apply(env, NewSeq(expanded...))
	}
	if len(expanded) == 1 {
		return NewSymb(g.fn, expanded[0]), nil
	}
	return NewSymb(g.fn, NewSeq(expanded...)), nil
}

func isSum(g Gen) bool {
	return g.typ == TSymb && g.fn == opAdd
}

func addTerms(g Gen) []Gen {
	if isSum(g) {
		return seqElems(*g.arg)
	}
	return []Gen{g}
}

// distribute multiplies out a list of factors, cross-multiplying sums.
func distribute(factors []Gen) Gen {
	acc := []Gen{NewInt(1)}
	for _, f := range factors {
		terms := addTerms(f)
		next := make([]Gen, 0, len(acc)*len(terms))
		for _, a := range acc {
			for _, t := range terms {
				next = append(next, prodOf([]Gen{a, t}))
			}
		}
		acc = next
	}
	return sumOf(acc)
}

func applySimplify(env *Env, arg Gen) (Gen, error) {
	g, err := args1("simplify", arg)
	if err != nil {
		return Gen{}, err
	}

	// rational function cancellation in one variable
	if g.typ == TSymb && g.fn == opDiv {
		num, den, err := args2("/", *g.arg)
		if err == nil {
			if x, ok := sharedVariable([]Gen{num, den}); ok {
				np, okn := polyFromGen(num, x)
				dp, okd := polyFromGen(den, x)
				if okn && okd && len(dp) > 0 {
					gcd := polyGCD(np, dp)
					if gcd.degree() > 0 {
						nq, _ := polyDivMod(np, gcd)
						dq, _ := polyDivMod(dp, gcd)
						return quotOf(polyToGen(nq, x), polyToGen(dq, x))
					}
				}
			}
		}
	}

	return expandGen(env, g)
}

// ---------------------------------------------------------------------------
// diff
// ---------------------------------------------------------------------------

func applyDiff(env *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	var g Gen
	var x string
	switch len(parts) {
	case 1:
		g = parts[0]
		seen := make(map[string]bool)
		var idents []string
		collectIdents(g, seen, &idents)
		if len(idents) != 1 {
			return Gen{}, fmt.Errorf("diff: variable is ambiguous, name it explicitly")
		}
		x = idents[0]
	case 2:
		g = parts[0]
		if parts[1].typ != TIdnt {
			return Gen{}, fmt.Errorf("diff: second argument must be a variable")
		}
		x = parts[1].s
	default:
		return Gen{}, wrongArgs("diff")
	}
	return diffGen(env, g, x)
}

func diffGen(env *Env, g Gen, x string) (Gen, error) {
	switch g.typ {
	case TIdnt:
		if g.s == x {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	case TVect:
		elems := make([]Gen, len(g.elems))
		for i, e := range g.elems {
			d, err := diffGen(env, e, x)
			if err != nil {
				return Gen{}, err
			}
			elems[i] = d
		}
		return NewVect(elems, g.sub), nil
	case TSymb:
		return diffSymb(env, g, x)
	}
	return NewInt(0), nil
}

func diffSymb(env *Env, g Gen, x string) (Gen, error) {
	parts := seqElems(*g.arg)

	switch g.fn {
	case opAdd:
		terms := make([]Gen, len(parts))
		for i, t := range parts {
			d, err := diffGen(env, t, x)
			if err != nil {
				return Gen{}, err
			}
			terms[i] = d
		}
		return sumOf(terms), nil

	case opNeg:
		d, err := diffGen(env, parts[0], x)
		if err != nil {
			return Gen{}, err
		}
		return negGen(d), nil

	case opMul:
		// n-ary product rule
		var terms []Gen
		for i := range parts {
			d, err := diffGen(env, parts[i], x)
			if err != nil {
				return Gen{}, err
			}
			if d.IsZero() {
				continue
			}
			factors := []Gen{d}
			for j := range parts {
				if j != i {
					factors = append(factors, parts[j])
				}
			}
			terms = append(terms, prodOf(factors))
		}
		return sumOf(terms), nil

	case opDiv:
		u, v := parts[0], parts[1]
		du, err := diffGen(env, u, x)
		if err != nil {
			return Gen{}, err
		}
		dv, err := diffGen(env, v, x)
		if err != nil {
			return Gen{}, err
		}
		num := sumOf([]Gen{prodOf([]Gen{du, v}), negGen(prodOf([]Gen{u, dv}))})
		return quotOf(num, powOf(v, NewInt(2)))

	case opPow:
		base, exp := parts[0], parts[1]
		db, err := diffGen(env, base, x)
		if err != nil {
			return Gen{}, err
		}
		if exp.IsNumeric() {
			// d/dx base^n = n*base^(n-1)*base'
			nm1 := addNumeric(exp, NewInt(-1))
			return prodOf([]Gen{exp, powOf(base, nm1), db}), nil
		}
		de, err := diffGen(env, exp, x)
		if err != nil {
			return Gen{}, err
		}
		lnb := NewSymb(builtins["ln"], base)
		first := prodOf([]Gen{exp, powOf(base, sumOf([]Gen{exp, NewInt(-1)})), db})
		second := prodOf([]Gen{lnb, powOf(base, exp), de})
		return sumOf([]Gen{first, second}), nil
	}

	if len(parts) == 1 {
		inner := parts[0]
		di, err := diffGen(env, inner, x)
		if err != nil {
			return Gen{}, err
		}
		var outer Gen
		known := true
		switch g.fn.name {
		case "sin":
			outer = NewSymb(builtins["cos"], inner)
		case "cos":
			outer = negGen(NewSymb(builtins["sin"], inner))
		case "tan":
			sq := powOf(NewSymb(builtins["tan"], inner), NewInt(2))
			outer = sumOf([]Gen{NewInt(1), sq})
		case "exp":
			outer = g
		case "ln":
			var err error
			outer, err = quotOf(NewInt(1), inner)
			if err != nil {
				return Gen{}, err
			}
		case "sqrt":
			var err error
			outer, err = quotOf(NewInt(1), prodOf([]Gen{NewInt(2), g}))
			if err != nil {
				return Gen{}, err
			}
		default:
			known = false
		}
		if known {
			return prodOf([]Gen{outer, di}), nil
		}
	}

	// unknown function: keep the derivative symbolic
	return NewSymb(builtins["diff"], NewSeq(g, NewIdent(x))), nil
}

// ---------------------------------------------------------------------------
// evalf
// ---------------------------------------------------------------------------

func applyEvalf(env *Env, arg Gen) (Gen, error) {
	g, err := args1("evalf", arg)
	if err != nil {
		return Gen{}, err
	}
	return evalfGen(env, g)
}

func evalfGen(env *Env, g Gen) (Gen, error) {
	switch g.typ {
	case TInt, TZint, TFrac:
		f, _ := g.float()
		return NewDouble(f), nil
	case TDouble:
		return g, nil
	case TCplx:
		re, err := evalfGen(env, *g.a)
		if err != nil {
			return Gen{}, err
		}
		im, err := evalfGen(env, *g.b)
		if err != nil {
			return Gen{}, err
		}
		return normalizeCplx(re, im), nil
	case TIdnt:
		switch g.s {
		case "pi":
			return NewDouble(math.Pi), nil
		case "euler_gamma":
			return NewDouble(0.5772156649015329), nil
		}
		env.Warn("evalf: " + g.s + " has no numeric value")
		return g, nil
	case TVect:
		elems := make([]Gen, len(g.elems))
		for i, e := range g.elems {
			v, err := evalfGen(env, e)
			if err != nil {
				return Gen{}, err
			}
			elems[i] = v
		}
		return NewVect(elems, g.sub), nil
	case TSymb:
		arg, err := evalfGen(env, *g.arg)
		if err != nil {
			return Gen{}, err
		}
		if g.fn != nil && g.fn.apply != nil {
			return g.fn.apply(env, arg)
		}
		return NewSymb(g.fn, arg), nil
	}
	return g, nil
}

// ---------------------------------------------------------------------------
// elementary real functions
// ---------------------------------------------------------------------------

func applyAbs(env *Env, arg Gen) (Gen, error) {
	g, err := args1("abs", arg)
	if err != nil {
		return Gen{}, err
	}
	switch {
	case g.typ == TCplx:
		norm := addNumeric(mulNumeric(*g.a, *g.a), mulNumeric(*g.b, *g.b))
		return applySqrt(env, norm)
	case g.IsNumeric():
		if isNegative(g) {
			return negNumeric(g), nil
		}
		return g, nil
	}
	return NewSymb(builtins["abs"], g), nil
}

func applySign(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("sign", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.IsNumeric() && g.typ != TCplx {
		switch {
		case g.IsZero():
			return NewInt(0), nil
		case isNegative(g):
			return NewInt(-1), nil
		}
		return NewInt(1), nil
	}
	return NewSymb(builtins["sign"], g), nil
}

func isNegative(g Gen) bool {
	switch g.typ {
	case TInt:
		return g.i < 0
	case TZint:
		return g.z.Sign() < 0
	case TDouble:
		return g.f < 0
	case TFrac:
		if r, ok := g.rat(); ok {
			return r.Sign() < 0
		}
	}
	return false
}

func applyFloor(_ *Env, arg Gen) (Gen, error) {
	return roundTo("floor", arg, math.Floor, func(r *big.Rat) *big.Int {
		q := new(big.Int)
		m := new(big.Int)
		q.DivMod(r.Num(), r.Denom(), m)
		return q
	})
}

func applyCeil(_ *Env, arg Gen) (Gen, error) {
	return roundTo("ceil", arg, math.Ceil, func(r *big.Rat) *big.Int {
		q := new(big.Int)
		m := new(big.Int)
		q.DivMod(r.Num(), r.Denom(), m)
		if m.Sign() != 0 {
			q.Add(q, big.NewInt(1))
		}
		return q
	})
}

func roundTo(name string, arg Gen, ff func(float64) float64, rf func(*big.Rat) *big.Int) (Gen, error) {
	g, err := args1(name, arg)
	if err != nil {
		return Gen{}, err
	}
	switch g.typ {
	case TInt, TZint:
		return g, nil
	case TDouble:
		return NewDouble(ff(g.f)), nil
	case TFrac:
		if r, ok := g.rat(); ok {
			return NewZint(rf(r)), nil
		}
	}
	return NewSymb(builtins[name], g), nil
}

func applySqrt(env *Env, arg Gen) (Gen, error) {
	g, err := args1("sqrt", arg)
	if err != nil {
		return Gen{}, err
	}
	switch {
	case g.typ == TDouble:
		if g.f < 0 {
			if env.ComplexMode() {
				return NewCplx(NewInt(0), NewDouble(math.Sqrt(-g.f))), nil
			}
			return Gen{}, fmt.Errorf("sqrt of negative value, complex mode is off")
		}
		return NewDouble(math.Sqrt(g.f)), nil

	case g.IsExactInt() || g.typ == TFrac:
		if isNegative(g) {
			if !env.ComplexMode() {
				return NewSymb(builtins["sqrt"], g), nil
			}
			inner, err := applySqrt(env, negNumeric(g))
			if err != nil {
				return Gen{}, err
			}
			return prodOf([]Gen{NewCplx(NewInt(0), NewInt(1)), inner}), nil
		}
		if r, ok := g.rat(); ok {
			if sn := new(big.Int).Sqrt(r.Num()); new(big.Int).Mul(sn, sn).Cmp(r.Num()) == 0 {
				if sd := new(big.Int).Sqrt(r.Denom()); new(big.Int).Mul(sd, sd).Cmp(r.Denom()) == 0 {
					return NewRat(new(big.Rat).SetFrac(sn, sd)), nil
				}
			}
		}
		return NewSymb(builtins["sqrt"], g), nil
	}
	return NewSymb(builtins["sqrt"], g), nil
}

func applyExp(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("exp", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.IsZero() {
		return NewInt(1), nil
	}
	if g.typ == TDouble {
		return NewDouble(math.Exp(g.f)), nil
	}
	return NewSymb(builtins["exp"], g), nil
}

func applyLn(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("ln", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.IsOne() {
		return NewInt(0), nil
	}
	if g.typ == TDouble {
		if g.f <= 0 {
			return Gen{}, fmt.Errorf("ln of non-positive value")
		}
		return NewDouble(math.Log(g.f)), nil
	}
	return NewSymb(builtins["ln"], g), nil
}

func applyLog10(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("log10", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.IsOne() {
		return NewInt(0), nil
	}
	if g.typ == TDouble {
		if g.f <= 0 {
			return Gen{}, fmt.Errorf("log10 of non-positive value")
		}
		return NewDouble(math.Log10(g.f)), nil
	}
	return NewSymb(builtins["log10"], g), nil
}

func applySin(_ *Env, arg Gen) (Gen, error) { return trig("sin", arg, math.Sin) }
func applyCos(_ *Env, arg Gen) (Gen, error) { return trig("cos", arg, math.Cos) }
func applyTan(_ *Env, arg Gen) (Gen, error) { return trig("tan", arg, math.Tan) }

func trig(name string, arg Gen, f func(float64) float64) (Gen, error) {
	g, err := args1(name, arg)
	if err != nil {
		return Gen{}, err
	}
	if g.IsZero() {
		if name == "cos" {
			return NewInt(1), nil
		}
		return NewInt(0), nil
	}
	if g.typ == TDouble {
		return NewDouble(f(g.f)), nil
	}
	return NewSymb(builtins[name], g), nil
}

// ---------------------------------------------------------------------------
// complex and rational parts
// ---------------------------------------------------------------------------

func applyRe(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("re", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.typ == TCplx {
		return *g.a, nil
	}
	if g.IsNumeric() {
		return g, nil
	}
	return NewSymb(builtins["re"], g), nil
}

func applyIm(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("im", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.typ == TCplx {
		return *g.b, nil
	}
	if g.IsNumeric() {
		return NewInt(0), nil
	}
	return NewSymb(builtins["im"], g), nil
}

func applyConj(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("conj", arg)
	if err != nil {
		return Gen{}, err
	}
	if g.typ == TCplx {
		return normalizeCplx(*g.a, negNumeric(*g.b)), nil
	}
	if g.IsNumeric() {
		return g, nil
	}
	return NewSymb(builtins["conj"], g), nil
}

func applyNumer(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("numer", arg)
	if err != nil {
		return Gen{}, err
	}
	switch {
	case g.typ == TFrac:
		return *g.a, nil
	case g.typ == TSymb && g.fn == opDiv:
		parts := seqElems(*g.arg)
		return parts[0], nil
	}
	return g, nil
}

func applyDenom(_ *Env, arg Gen) (Gen, error) {
	g, err := args1("denom", arg)
	if err != nil {
		return Gen{}, err
	}
	switch {
	case g.typ == TFrac:
		return *g.b, nil
	case g.typ == TSymb && g.fn == opDiv:
		parts := seqElems(*g.arg)
		return parts[1], nil
	}
	return NewInt(1), nil
}

// ---------------------------------------------------------------------------
// containers
// ---------------------------------------------------------------------------

func applySize(_ *Env, arg Gen) (Gen, error) {
	// size of a sequence counts the sequence, not one argument
	if arg.typ == TVect && arg.sub == SubSeq {
		return NewInt(int64(len(arg.elems))), nil
	}
	switch arg.typ {
	case TVect:
		return NewInt(int64(len(arg.elems))), nil
	case TStrng:
		return NewInt(int64(len(arg.s))), nil
	case TMap:
		return NewInt(int64(len(arg.keys))), nil
	}
	return NewInt(1), nil
}

func applyAt(_ *Env, arg Gen) (Gen, error) {
	c, idx, err := args2("at", arg)
	if err != nil {
		return Gen{}, err
	}
	switch c.typ {
	case TVect:
		if idx.typ != TInt {
			return Gen{}, fmt.Errorf("at: index must be an integer")
		}
		if idx.i < 0 || idx.i >= int64(len(c.elems)) {
			return Gen{}, fmt.Errorf("at: index %d out of range (size %d)", idx.i, len(c.elems))
		}
		return c.elems[idx.i], nil
	case TStrng:
		if idx.typ != TInt {
			return Gen{}, fmt.Errorf("at: index must be an integer")
		}
		if idx.i < 0 || idx.i >= int64(len(c.s)) {
			return Gen{}, fmt.Errorf("at: index %d out of range (size %d)", idx.i, len(c.s))
		}
		return NewString(string(c.s[idx.i])), nil
	case TMap:
		for i, k := range c.keys {
			if k.Equal(idx) {
				return c.vals[i], nil
			}
		}
		return Gen{}, fmt.Errorf("at: key %s not found", Print(idx, nil))
	}
	return Gen{}, fmt.Errorf("at: cannot index %s", c.TypeName())
}

func applyMax(_ *Env, arg Gen) (Gen, error) { return extremum("max", arg, +1) }
func applyMin(_ *Env, arg Gen) (Gen, error) { return extremum("min", arg, -1) }

func extremum(name string, arg Gen, dir int) (Gen, error) {
	parts := seqElems(arg)
	if len(parts) == 1 && parts[0].typ == TVect {
		parts = parts[0].elems
	}
	if len(parts) == 0 {
		return Gen{}, wrongArgs(name)
	}
	best := parts[0]
	bf, ok := best.float()
	if !ok {
		return Gen{}, fmt.Errorf("%s: arguments must be real", name)
	}
	for _, p := range parts[1:] {
		f, ok := p.float()
		if !ok {
			return Gen{}, fmt.Errorf("%s: arguments must be real", name)
		}
		if (dir > 0 && f > bf) || (dir < 0 && f < bf) {
			best, bf = p, f
		}
	}
	return best, nil
}

// applyTable builds a map from key = value equalities.
func applyTable(_ *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	keys := make([]Gen, 0, len(parts))
	vals := make([]Gen, 0, len(parts))
	for _, p := range parts {
		if p.typ != TSymb || p.fn != opEq {
			return Gen{}, fmt.Errorf("table: arguments must be key = value pairs")
		}
		kv := seqElems(*p.arg)
		if len(kv) != 2 {
			return Gen{}, fmt.Errorf("table: arguments must be key = value pairs")
		}
		keys = append(keys, kv[0])
		vals = append(vals, kv[1])
	}
	return NewMap(keys, vals), nil
}

// applyPurge receives its argument unevaluated. Returns the previous
// binding, or the identifier itself when nothing was bound.
func applyPurge(env *Env, arg Gen) (Gen, error) {
	parts := seqElems(arg)
	var last Gen
	for _, p := range parts {
		if p.typ != TIdnt {
			return Gen{}, fmt.Errorf("purge: expected a variable name")
		}
		if old, ok := env.Lookup(p.s); ok {
			last = old
		} else {
			last = p
		}
		env.Purge(p.s)
	}
	return last, nil
}
