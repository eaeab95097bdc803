// Package cas is the public boundary to the embedded computer-algebra
// kernel: contexts, value handles, name dispatch, construction helpers
// and the heap-export escape hatch.
//
// A Context is one evaluation environment. Contexts are never torn down;
// the kernel registers each environment for the life of the process, so
// a Value handle can always be printed or re-evaluated later, whichever
// Context it came from.
//
//	ctx := cas.NewContext()
//	out, err := ctx.Eval("factor(x^2-1)")   // "(x-1)*(x+1)"
//
// Values are immutable and carry no printed form: ToText renders against
// a Context at call time, so precision changes apply to values computed
// earlier. Typed accessors return TypeMismatchError on the wrong kind,
// except for the documented widenings (integers act as fractions over
// one, real numerics act as complex values with zero imaginary part).
//
// Named operations go through Apply's two-tier dispatch: a symbol-table
// fast path, then a parse of the synthesized call text for everything
// else. There are no per-command entry points.
package cas
