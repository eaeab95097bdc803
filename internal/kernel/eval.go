package kernel

import (
	"fmt"
)

// Eval evaluates g in env: identifiers resolve through the environment,
// containers evaluate elementwise, and symbolic applications evaluate
// their argument and then apply the sommet's handler. Applications of
// names the kernel does not implement stay symbolic with evaluated
// arguments.
func Eval(env *Env, g Gen) (Gen, error) {
	switch g.typ {
	case TIdnt:
		if v, ok := env.Lookup(g.s); ok {
			return v, nil
		}
		return g, nil

	case TFrac:
		// unreduced fractions normalize on evaluation
		if r, ok := g.rat(); ok {
			return NewRat(r), nil
		}
		return g, nil

	case TVect:
		elems := make([]Gen, len(g.elems))
		for i, e := range g.elems {
			v, err := Eval(env, e)
			if err != nil {
				return Gen{}, err
			}
			elems[i] = v
		}
		return NewVect(elems, g.sub), nil

	case TSymb:
		return evalSymb(env, g)
	}
	return g, nil
}

// EvalString parses and evaluates source text in env.
func EvalString(env *Env, src string) (Gen, error) {
	g, err := Parse(src)
	if err != nil {
		return Gen{}, err
	}
	return Eval(env, g)
}

func evalSymb(env *Env, g Gen) (Gen, error) {
	fn := g.fn

	// assignment evaluates only its right-hand side
	if fn == opSto {
		parts := seqElems(*g.arg)
		if len(parts) != 2 || parts[0].typ != TIdnt {
			return Gen{}, fmt.Errorf("invalid assignment")
		}
		val, err := Eval(env, parts[1])
		if err != nil {
			return Gen{}, err
		}
		env.Sto(val, parts[0].s)
		return val, nil
	}

	// purge works on the name, not the binding
	if fn == fnPurge {
		return applyPurge(env, *g.arg)
	}

	arg, err := Eval(env, *g.arg)
	if err != nil {
		return Gen{}, err
	}
	if fn == nil || fn.apply == nil {
		return NewSymb(fn, arg), nil
	}
	return fn.apply(env, arg)
}
