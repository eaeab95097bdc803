package cas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/casworks/giacbridge/errors"
)

func TestIntegerRoundTrip(t *testing.T) {
	v := MakeInteger(-123456789)
	assert.Equal(t, Integer, v.Kind())

	n, err := v.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-123456789), n)

	m, err := v.AsInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456789), m)

	_, err = MakeInteger(1 << 40).AsInt32()
	require.Error(t, err)

	_, err = MakeString("no").AsInt64()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "TypeMismatchError")
}

func TestBigIntRoundTrip(t *testing.T) {
	mag := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	v := MakeBigIntFromBytes(mag, -1)
	assert.Equal(t, BigInt, v.Kind())

	sign, err := v.BigIntSign()
	require.NoError(t, err)
	assert.Equal(t, -1, sign)

	got, err := v.BigIntBytes()
	require.NoError(t, err)
	assert.Equal(t, mag, got)

	text, err := v.BigIntText()
	require.NoError(t, err)
	assert.Equal(t, "-18446744073709551616", text)
}

func TestBigIntZero(t *testing.T) {
	v := MakeBigIntFromBytes(nil, 1)
	assert.True(t, v.IsZero())

	sign, err := v.BigIntSign()
	require.NoError(t, err)
	assert.Equal(t, 0, sign)

	mag, err := v.BigIntBytes()
	require.NoError(t, err)
	assert.Empty(t, mag)
}

func TestAsFloat64(t *testing.T) {
	ctx := NewContext()

	for src, want := range map[string]float64{
		"3":       3,
		"7/2":     3.5,
		"1.25":    1.25,
		"2^70":    1180591620717411303424,
		"evalf(1/4)": 0.25,
	} {
		v, err := ctx.EvalValue(src)
		require.NoError(t, err)
		f, err := v.AsFloat64()
		require.NoError(t, err, src)
		assert.InEpsilon(t, want, f, 1e-12, src)
	}

	v, err := ctx.EvalValue("x+1")
	require.NoError(t, err)
	_, err = v.AsFloat64()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrTypeMismatch))
}

func TestFractionWidening(t *testing.T) {
	ctx := NewContext()

	v, err := ctx.EvalValue("7/2")
	require.NoError(t, err)
	assert.Equal(t, Fraction, v.Kind())
	num, err := v.Numerator()
	require.NoError(t, err)
	den, err := v.Denominator()
	require.NoError(t, err)
	assert.Equal(t, "7", num.ToText(ctx))
	assert.Equal(t, "2", den.ToText(ctx))

	// integers widen to n/1
	n := MakeInteger(5)
	num, err = n.Numerator()
	require.NoError(t, err)
	den, err = n.Denominator()
	require.NoError(t, err)
	assert.True(t, num.Equal(n))
	assert.True(t, den.IsOne())

	_, err = MakeString("x").Numerator()
	require.Error(t, err)
}

func TestComplexWidening(t *testing.T) {
	ctx := NewContext()

	v, err := ctx.EvalValue("3+4*i")
	require.NoError(t, err)
	assert.Equal(t, Complex, v.Kind())
	re, err := v.RealPart()
	require.NoError(t, err)
	im, err := v.ImagPart()
	require.NoError(t, err)
	assert.Equal(t, "3", re.ToText(ctx))
	assert.Equal(t, "4", im.ToText(ctx))

	// real numerics widen to re=self, im=0
	half, err := ctx.EvalValue("1/2")
	require.NoError(t, err)
	re, err = half.RealPart()
	require.NoError(t, err)
	im, err = half.ImagPart()
	require.NoError(t, err)
	assert.True(t, re.Equal(half))
	assert.True(t, im.IsZero())

	_, err = MakeString("x").RealPart()
	require.Error(t, err)
}

func TestVectorBounds(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.EvalValue("[10,20,30]")
	require.NoError(t, err)
	require.True(t, v.IsVector())

	n, err := v.Len()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	for i, want := range []string{"10", "20", "30"} {
		e, err := v.At(i)
		require.NoError(t, err)
		assert.Equal(t, want, e.ToText(ctx))
	}

	for _, i := range []int{-1, 3, 10} {
		_, err := v.At(i)
		require.Error(t, err, "index %d", i)
		assert.True(t, errors.Is(err, errs.ErrOutOfRange))
		assert.Contains(t, err.Error(), "IndexOutOfRangeError")
	}

	_, err = MakeInteger(1).At(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrTypeMismatch))
}

func TestEvalIdempotent(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.EvalValue("x^2+2*x+1")
	require.NoError(t, err)

	again, err := v.Eval(ctx)
	require.NoError(t, err)
	assert.True(t, v.Equal(again))
	assert.Equal(t, v.ToText(ctx), again.ToText(ctx))
}

func TestSymbolicInspection(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.EvalValue("sin(x)+1")
	require.NoError(t, err)
	require.True(t, v.IsSymbolic())

	op, err := v.SymbolicOperator()
	require.NoError(t, err)
	assert.Equal(t, "+", op)

	arg, err := v.SymbolicArgument()
	require.NoError(t, err)
	require.True(t, v.IsSymbolic())
	n, err := arg.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, VectSubtype(arg.Subtype()), SubtypeSeq)

	_, err = MakeInteger(1).SymbolicOperator()
	require.Error(t, err)
}

func TestMakeSymbolicUnevaluated(t *testing.T) {
	ctx := NewContext()

	one := MakeInteger(1)
	two := MakeInteger(2)
	node, err := MakeSymbolicUnevaluated("+", []*Value{one, two})
	require.NoError(t, err)

	// construction never evaluates
	assert.Equal(t, "1+2", node.ToText(ctx))
	assert.True(t, node.IsSymbolic())

	reduced, err := node.Eval(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", reduced.ToText(ctx))
	assert.False(t, node.Equal(reduced))
}

func TestArithmetic(t *testing.T) {
	ctx := NewContext()
	a := MakeInteger(10)
	b := MakeInteger(4)

	sum, err := a.Add(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "14", sum.ToText(ctx))

	diff, err := a.Sub(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "6", diff.ToText(ctx))

	prod, err := a.Mul(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "40", prod.ToText(ctx))

	quot, err := a.Div(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "5/2", quot.ToText(ctx))

	neg, err := a.Neg(ctx)
	require.NoError(t, err)
	assert.Equal(t, "-10", neg.ToText(ctx))

	_, err = a.Div(ctx, MakeInteger(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrEvaluation))
}

func TestTransformations(t *testing.T) {
	ctx := NewContext()

	v, err := ctx.EvalValue("(x+1)^2")
	require.NoError(t, err)

	expanded, err := v.Expand(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x^2+2*x+1", expanded.ToText(ctx))

	factored, err := expanded.Factor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "(x+1)^2", factored.ToText(ctx))

	simplified, err := ctx.EvalValue("(x^2-1)/(x-1)")
	require.NoError(t, err)
	simplified, err = simplified.Simplify(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x+1", simplified.ToText(ctx))
}

func TestMakeVectorAndFraction(t *testing.T) {
	ctx := NewContext()

	vec := MakeVector([]*Value{MakeInteger(1), MakeInteger(2)}, SubtypeList)
	assert.Equal(t, "[1,2]", vec.ToText(ctx))

	frac, err := MakeFraction(MakeInteger(2), MakeInteger(4))
	require.NoError(t, err)
	// unreduced until evaluated
	assert.Equal(t, "2/4", frac.ToText(ctx))
	reduced, err := frac.Eval(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1/2", reduced.ToText(ctx))
	assert.False(t, frac.Equal(reduced))

	_, err = MakeFraction(MakeInteger(1), MakeInteger(0))
	require.Error(t, err)

	cplx, err := MakeComplex(MakeInteger(0), MakeInteger(1))
	require.NoError(t, err)
	assert.Equal(t, "i", cplx.ToText(ctx))

	id, err := MakeIdentifier("y")
	require.NoError(t, err)
	assert.True(t, id.IsIdentifier())
	name, err := id.IdentifierName()
	require.NoError(t, err)
	assert.Equal(t, "y", name)

	_, err = MakeIdentifier("3x")
	require.Error(t, err)
}
