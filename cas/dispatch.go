package cas

import (
	"strings"

	errs "github.com/casworks/giacbridge/errors"
	"github.com/casworks/giacbridge/internal/kernel"
)

// Apply resolves name to a kernel function and applies it to args in ctx.
//
// Resolution is two-tier. The fast tier looks the name up in the kernel's
// symbol table and, on a hit, builds the application node directly from
// the argument handles. The slow tier prints each argument, synthesizes
// `name(a1,a2,...)` and routes the text through the full parser, which
// resolves names the symbol table does not carry (and leaves genuinely
// unknown names symbolic). Both tiers produce the same result for names
// the fast tier can see.
func Apply(ctx *Context, name string, args ...*Value) (*Value, error) {
	if name == "" {
		return nil, errs.InvalidInput(errs.PhaseDispatch, "empty function name")
	}

	if fn, ok := kernel.Lookup(name); ok {
		var feuille kernel.Gen
		if len(args) == 1 {
			feuille = args[0].g
		} else {
			gs := make([]kernel.Gen, len(args))
			for i, a := range args {
				gs[i] = a.g
			}
			feuille = kernel.NewSeq(gs...)
		}
		g, err := kernel.Eval(ctx.env, kernel.NewSymb(fn, feuille))
		if err != nil {
			return nil, errs.EvalFailed(err.Error(), err)
		}
		return &Value{g: g}, nil
	}

	// slow tier: go through the parser
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.ToText(ctx))
	}
	b.WriteByte(')')
	return ctx.EvalValue(b.String())
}

// Apply0 applies a zero-argument function.
func Apply0(ctx *Context, name string) (*Value, error) {
	return Apply(ctx, name)
}

// Apply1 applies a one-argument function.
func Apply1(ctx *Context, name string, a *Value) (*Value, error) {
	return Apply(ctx, name, a)
}

// Apply2 applies a two-argument function.
func Apply2(ctx *Context, name string, a, b *Value) (*Value, error) {
	return Apply(ctx, name, a, b)
}

// Apply3 applies a three-argument function.
func Apply3(ctx *Context, name string, a, b, c *Value) (*Value, error) {
	return Apply(ctx, name, a, b, c)
}

// ListBuiltins returns the sorted names in the kernel's symbol table.
func ListBuiltins() []string {
	return kernel.ListBuiltins()
}

// BuiltinCount returns the size of the kernel's symbol table.
func BuiltinCount() int {
	return kernel.BuiltinCount()
}
