package script

import (
	"context"
	"fmt"

	"github.com/risor-io/risor"
	"github.com/risor-io/risor/object"

	"github.com/casworks/giacbridge/cas"
	"github.com/casworks/giacbridge/helpdb"
)

// Run executes Risor source with the cas host functions bound to c.
// Returns the script's final value as a plain Go value.
func Run(ctx context.Context, c *cas.Context, source string) (any, error) {
	opts := make([]risor.Option, 0, 8)
	for name, fn := range Globals(c) {
		opts = append(opts, risor.WithGlobal(name, fn))
	}
	result, err := risor.Eval(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	return result.Interface(), nil
}

// Globals returns the host functions exposed to scripts. All results
// cross the boundary as printed text; kernel failures surface as script
// errors carrying the category-prefixed message.
func Globals(c *cas.Context) map[string]any {
	return map[string]any{
		"cas_eval":     makeEvalFn(c),
		"cas_apply":    makeApplyFn(c),
		"cas_set":      makeSetFn(c),
		"cas_get":      makeGetFn(c),
		"cas_kind":     makeKindFn(c),
		"cas_factor":   makeFactorFn(c),
		"cas_commands": makeCommandsFn(),
	}
}

// cas_eval(text) → string
func makeEvalFn(c *cas.Context) *object.Builtin {
	return object.NewBuiltin("cas_eval", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("cas_eval", 1, len(args))
		}
		text, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("cas_eval: expression must be a string, got %s", args[0].Type())
		}
		out, err := c.Eval(text.Value())
		if err != nil {
			return object.Errorf("%v", err)
		}
		return object.NewString(out)
	})
}

// cas_apply(name, args...) → string
func makeApplyFn(c *cas.Context) *object.Builtin {
	return object.NewBuiltin("cas_apply", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) < 1 {
			return object.Errorf("cas_apply: missing function name")
		}
		name, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("cas_apply: name must be a string, got %s", args[0].Type())
		}
		values := make([]*cas.Value, 0, len(args)-1)
		for _, a := range args[1:] {
			v, err := valueFromObject(c, a)
			if err != nil {
				return object.Errorf("%v", err)
			}
			values = append(values, v)
		}
		out, err := cas.Apply(c, name.Value(), values...)
		if err != nil {
			return object.Errorf("%v", err)
		}
		return object.NewString(out.ToText(c))
	})
}

// valueFromObject maps a script value to a kernel value: integers and
// floats directly, strings through the parser.
func valueFromObject(c *cas.Context, o object.Object) (*cas.Value, error) {
	switch v := o.(type) {
	case *object.Int:
		return cas.MakeInteger(v.Value()), nil
	case *object.Float:
		return cas.MakeDouble(v.Value()), nil
	case *object.String:
		return c.EvalValue(v.Value())
	}
	return nil, fmt.Errorf("cannot pass %s to the kernel", o.Type())
}

// cas_set(name, text)
func makeSetFn(c *cas.Context) *object.Builtin {
	return object.NewBuiltin("cas_set", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("cas_set", 2, len(args))
		}
		name, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("cas_set: name must be a string, got %s", args[0].Type())
		}
		text, ok := args[1].(*object.String)
		if !ok {
			return object.Errorf("cas_set: value must be a string, got %s", args[1].Type())
		}
		if err := c.SetVariable(name.Value(), text.Value()); err != nil {
			return object.Errorf("%v", err)
		}
		return object.Nil
	})
}

// cas_get(name) → string | nil
func makeGetFn(c *cas.Context) *object.Builtin {
	return object.NewBuiltin("cas_get", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("cas_get", 1, len(args))
		}
		name, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("cas_get: name must be a string, got %s", args[0].Type())
		}
		s, bound := c.LookupVariable(name.Value())
		if !bound {
			return object.Nil
		}
		return object.NewString(s)
	})
}

// cas_kind(text) → string
func makeKindFn(c *cas.Context) *object.Builtin {
	return object.NewBuiltin("cas_kind", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("cas_kind", 1, len(args))
		}
		text, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("cas_kind: expression must be a string, got %s", args[0].Type())
		}
		v, err := c.EvalValue(text.Value())
		if err != nil {
			return object.Errorf("%v", err)
		}
		return object.NewString(v.Kind().String())
	})
}

// cas_factor(text) → string
func makeFactorFn(c *cas.Context) *object.Builtin {
	return object.NewBuiltin("cas_factor", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("cas_factor", 1, len(args))
		}
		text, ok := args[0].(*object.String)
		if !ok {
			return object.Errorf("cas_factor: expression must be a string, got %s", args[0].Type())
		}
		v, err := c.EvalValue(text.Value())
		if err != nil {
			return object.Errorf("%v", err)
		}
		f, err := v.Factor(c)
		if err != nil {
			return object.Errorf("%v", err)
		}
		return object.NewString(f.ToText(c))
	})
}

// cas_commands() → [string]
func makeCommandsFn() *object.Builtin {
	return object.NewBuiltin("cas_commands", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 0 {
			return object.NewArgsError("cas_commands", 0, len(args))
		}
		names := helpdb.Commands()
		items := make([]object.Object, len(names))
		for i, n := range names {
			items[i] = object.NewString(n)
		}
		return object.NewList(items)
	})
}
