package cas

import (
	"math"

	errs "github.com/casworks/giacbridge/errors"
	"github.com/casworks/giacbridge/internal/kernel"
)

// Value is an immutable handle to one kernel expression. Values carry no
// printed form of their own: ToText renders against a Context at call
// time, so display settings changed after evaluation still apply.
//
// A Value stays usable for the life of the process regardless of which
// Context produced it; environments are never torn down.
type Value struct {
	g kernel.Gen
}

// Kind returns the value's type discriminant.
func (v *Value) Kind() Kind { return Kind(v.g.Type()) }

// Subtype returns the kind-specific subtype tag.
func (v *Value) Subtype() int { return v.g.Subtype() }

// TypeName returns the human-readable kind name used in diagnostics.
func (v *Value) TypeName() string { return v.g.TypeName() }

// ToText prints the value with ctx's display settings.
func (v *Value) ToText(ctx *Context) string {
	return kernel.Print(v.g, ctx.env)
}

func (v *Value) mismatch(expected string) *errs.Error {
	return errs.TypeMismatch(expected, v.TypeName())
}

// AsInt64 extracts a machine integer. BigInt values never fit: the kernel
// normalizes anything representable in 64 bits down to Integer.
func (v *Value) AsInt64() (int64, error) {
	if v.g.Type() != kernel.TInt {
		return 0, v.mismatch("integer")
	}
	return v.g.Int64(), nil
}

// AsInt32 extracts a machine integer, rejecting values outside the int32
// range.
func (v *Value) AsInt32() (int32, error) {
	n, err := v.AsInt64()
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errs.Wrap(errs.PhaseAccess, errs.KindOutOfRange, nil, "value does not fit in 32 bits")
	}
	return int32(n), nil
}

// AsFloat64 converts any real numeric value to a float64.
func (v *Value) AsFloat64() (float64, error) {
	if f, ok := v.g.Float64(); ok {
		return f, nil
	}
	return 0, v.mismatch("real number")
}

// Numerator returns the numerator of a fraction. Integers widen to
// themselves.
func (v *Value) Numerator() (*Value, error) {
	switch v.g.Type() {
	case kernel.TFrac:
		return &Value{g: v.g.Num()}, nil
	case kernel.TInt, kernel.TZint:
		return v, nil
	}
	return nil, v.mismatch("fraction")
}

// Denominator returns the denominator of a fraction. Integers widen to
// one.
func (v *Value) Denominator() (*Value, error) {
	switch v.g.Type() {
	case kernel.TFrac:
		return &Value{g: v.g.Den()}, nil
	case kernel.TInt, kernel.TZint:
		return &Value{g: kernel.NewInt(1)}, nil
	}
	return nil, v.mismatch("fraction")
}

// RealPart returns the real part of a complex value. Real numerics widen
// to themselves.
func (v *Value) RealPart() (*Value, error) {
	switch {
	case v.g.Type() == kernel.TCplx:
		return &Value{g: v.g.Re()}, nil
	case v.g.IsNumeric():
		return v, nil
	}
	return nil, v.mismatch("complex")
}

// ImagPart returns the imaginary part of a complex value. Real numerics
// widen to zero.
func (v *Value) ImagPart() (*Value, error) {
	switch {
	case v.g.Type() == kernel.TCplx:
		return &Value{g: v.g.Im()}, nil
	case v.g.IsNumeric():
		return &Value{g: kernel.NewInt(0)}, nil
	}
	return nil, v.mismatch("complex")
}

// Len returns the element count of a vector.
func (v *Value) Len() (int, error) {
	if v.g.Type() != kernel.TVect {
		return 0, v.mismatch("vector")
	}
	return v.g.Len(), nil
}

// At returns the i-th element of a vector. Indexes outside [0, Len) are
// an IndexOutOfRangeError.
func (v *Value) At(i int) (*Value, error) {
	if v.g.Type() != kernel.TVect {
		return nil, v.mismatch("vector")
	}
	if i < 0 || i >= v.g.Len() {
		return nil, errs.OutOfBounds(i, v.g.Len())
	}
	return &Value{g: v.g.At(i)}, nil
}

// IdentifierName returns the name of an identifier value.
func (v *Value) IdentifierName() (string, error) {
	if v.g.Type() != kernel.TIdnt {
		return "", v.mismatch("identifier")
	}
	return v.g.Name(), nil
}

// FuncName returns the name of a function value.
func (v *Value) FuncName() (string, error) {
	if v.g.Type() != kernel.TFunc {
		return "", v.mismatch("function")
	}
	return v.g.Fn().Name(), nil
}

// SymbolicOperator returns the operator name at the head of a symbolic
// application.
func (v *Value) SymbolicOperator() (string, error) {
	if v.g.Type() != kernel.TSymb {
		return "", v.mismatch("symbolic")
	}
	return v.g.Fn().Name(), nil
}

// SymbolicArgument returns the argument of a symbolic application.
// Multi-argument applications return a sequence vector.
func (v *Value) SymbolicArgument() (*Value, error) {
	if v.g.Type() != kernel.TSymb {
		return nil, v.mismatch("symbolic")
	}
	return &Value{g: v.g.Feuille()}, nil
}

// StringContents returns the text of a string value.
func (v *Value) StringContents() (string, error) {
	if v.g.Type() != kernel.TStrng {
		return "", v.mismatch("string")
	}
	return v.g.Str(), nil
}

// MapLen returns the entry count of a map value.
func (v *Value) MapLen() (int, error) {
	if v.g.Type() != kernel.TMap {
		return 0, v.mismatch("map")
	}
	return v.g.MapLen(), nil
}

// MapKeys returns the keys of a map value in insertion order.
func (v *Value) MapKeys() ([]*Value, error) {
	if v.g.Type() != kernel.TMap {
		return nil, v.mismatch("map")
	}
	return wrapAll(v.g.MapKeys()), nil
}

// MapValues returns the values of a map value in insertion order.
func (v *Value) MapValues() ([]*Value, error) {
	if v.g.Type() != kernel.TMap {
		return nil, v.mismatch("map")
	}
	return wrapAll(v.g.MapVals()), nil
}

func wrapAll(gs []kernel.Gen) []*Value {
	out := make([]*Value, len(gs))
	for i, g := range gs {
		out[i] = &Value{g: g}
	}
	return out
}

// BigIntSign returns the sign of an exact integer: -1, 0 or 1.
func (v *Value) BigIntSign() (int, error) {
	if !v.g.IsExactInt() {
		return 0, v.mismatch("integer")
	}
	_, sign := v.g.ZintBytes()
	return sign, nil
}

// BigIntBytes returns the big-endian magnitude of an exact integer. Zero
// is the empty buffer.
func (v *Value) BigIntBytes() ([]byte, error) {
	if !v.g.IsExactInt() {
		return nil, v.mismatch("integer")
	}
	mag, _ := v.g.ZintBytes()
	return mag, nil
}

// BigIntText returns the decimal text of an exact integer.
func (v *Value) BigIntText() (string, error) {
	if !v.g.IsExactInt() {
		return "", v.mismatch("integer")
	}
	return kernel.Print(v.g, nil), nil
}

// Predicates. All answer false rather than erroring on other kinds.

func (v *Value) IsZero() bool       { return v.g.IsZero() }
func (v *Value) IsOne() bool        { return v.g.IsOne() }
func (v *Value) IsInteger() bool    { return v.g.IsExactInt() }
func (v *Value) IsApprox() bool     { return v.g.IsApprox() }
func (v *Value) IsNumeric() bool    { return v.g.IsNumeric() }
func (v *Value) IsVector() bool     { return v.g.Type() == kernel.TVect }
func (v *Value) IsSymbolic() bool   { return v.g.Type() == kernel.TSymb }
func (v *Value) IsIdentifier() bool { return v.g.Type() == kernel.TIdnt }
func (v *Value) IsFraction() bool   { return v.g.Type() == kernel.TFrac }
func (v *Value) IsComplex() bool    { return v.g.Type() == kernel.TCplx }
func (v *Value) IsString() bool     { return v.g.Type() == kernel.TStrng }

// Eval re-evaluates the value in ctx. Evaluation is idempotent for
// values that came out of the evaluator.
func (v *Value) Eval(ctx *Context) (*Value, error) {
	g, err := kernel.Eval(ctx.env, v.g)
	if err != nil {
		return nil, errs.EvalFailed(err.Error(), err)
	}
	return &Value{g: g}, nil
}

// Simplify applies the kernel's simplifier.
func (v *Value) Simplify(ctx *Context) (*Value, error) {
	return Apply(ctx, "simplify", v)
}

// Expand distributes products over sums.
func (v *Value) Expand(ctx *Context) (*Value, error) {
	return Apply(ctx, "expand", v)
}

// Factor factors the value. Like every named operation, this goes
// through generic dispatch rather than a dedicated kernel entry point.
func (v *Value) Factor(ctx *Context) (*Value, error) {
	return Apply(ctx, "factor", v)
}

// Arithmetic. Each operation builds the operator application and
// evaluates it in ctx.

func (v *Value) Add(ctx *Context, o *Value) (*Value, error) { return v.binop(ctx, "+", o) }
func (v *Value) Sub(ctx *Context, o *Value) (*Value, error) { return v.binop(ctx, "-", o) }
func (v *Value) Mul(ctx *Context, o *Value) (*Value, error) { return v.binop(ctx, "*", o) }
func (v *Value) Div(ctx *Context, o *Value) (*Value, error) { return v.binop(ctx, "/", o) }

func (v *Value) binop(ctx *Context, op string, o *Value) (*Value, error) {
	fn, ok := kernel.LookupOperator(op)
	if !ok {
		return nil, errs.NotFound(errs.PhaseDispatch, "operator", op)
	}
	node := kernel.NewSymb(fn, kernel.NewSeq(v.g, o.g))
	g, err := kernel.Eval(ctx.env, node)
	if err != nil {
		return nil, errs.EvalFailed(err.Error(), err)
	}
	return &Value{g: g}, nil
}

// Neg returns the additive inverse.
func (v *Value) Neg(ctx *Context) (*Value, error) {
	fn, _ := kernel.LookupOperator("neg")
	node := kernel.NewSymb(fn, kernel.NewSeq(v.g))
	g, err := kernel.Eval(ctx.env, node)
	if err != nil {
		return nil, errs.EvalFailed(err.Error(), err)
	}
	return &Value{g: g}, nil
}

// Equal compares canonical structure, not printed text. An unevaluated
// expression is not equal to its evaluated form.
func (v *Value) Equal(o *Value) bool {
	return v.g.Equal(o.g)
}
