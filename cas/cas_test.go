package cas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/casworks/giacbridge/errors"
)

func TestEvalBasics(t *testing.T) {
	ctx := NewContext()

	out, err := ctx.Eval("1+1")
	require.NoError(t, err)
	assert.Equal(t, "2", out)

	out, err = ctx.Eval("factor(x^2-1)")
	require.NoError(t, err)
	assert.Equal(t, "(x-1)*(x+1)", out)

	_, err = ctx.Eval("1+")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrParse))
	assert.Contains(t, err.Error(), "ParseError")

	_, err = ctx.Eval("1/0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrEvaluation))
	assert.Contains(t, err.Error(), "EvaluationError")
}

func TestContextIsolation(t *testing.T) {
	a := NewContext()
	b := NewContext()

	require.NoError(t, a.SetVariable("x", "10"))
	require.NoError(t, b.SetVariable("x", "20"))

	outA, err := a.Eval("x+1")
	require.NoError(t, err)
	outB, err := b.Eval("x+1")
	require.NoError(t, err)
	assert.Equal(t, "11", outA)
	assert.Equal(t, "21", outB)
}

func TestVariableLifecycle(t *testing.T) {
	ctx := NewContext()

	_, bound := ctx.LookupVariable("v")
	assert.False(t, bound)
	assert.Equal(t, "", ctx.GetVariable("v"))

	require.NoError(t, ctx.SetVariable("v", "6*7"))
	got, bound := ctx.LookupVariable("v")
	assert.True(t, bound)
	assert.Equal(t, "42", got)

	require.NoError(t, ctx.Purge("v"))
	_, bound = ctx.LookupVariable("v")
	assert.False(t, bound)

	err := ctx.SetVariable("not a name", "1")
	require.Error(t, err)
}

func TestWarningHandler(t *testing.T) {
	ctx := NewContext()
	var warnings []string
	ctx.SetWarningHandler(func(msg string) { warnings = append(warnings, msg) })

	require.NoError(t, ctx.Purge("ghost"))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "ghost")

	ctx.ClearWarningHandler()
	require.NoError(t, ctx.Purge("ghost"))
	assert.Len(t, warnings, 1)
}

func TestPrecisionIsDeferredToPrinting(t *testing.T) {
	ctx := NewContext()

	v, err := ctx.EvalValue("evalf(pi)")
	require.NoError(t, err)
	assert.Equal(t, "3.14159265359", v.ToText(ctx))

	ctx.SetPrecision(4)
	assert.Equal(t, "3.142", v.ToText(ctx))
}

func TestComplexModeSqrt(t *testing.T) {
	ctx := NewContext()

	out, err := ctx.Eval("sqrt(-1)")
	require.NoError(t, err)
	assert.Equal(t, "sqrt(-1)", out)

	ctx.SetComplexMode(true)
	out, err = ctx.Eval("sqrt(-1)")
	require.NoError(t, err)
	assert.Equal(t, "i", out)
}

func TestTimeoutStoredOnly(t *testing.T) {
	ctx := NewContext()
	ctx.SetTimeout(1.5)
	assert.Equal(t, 1.5, ctx.Timeout())

	out, err := ctx.Eval("2^64")
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", out)
}

func TestApplyDispatch(t *testing.T) {
	ctx := NewContext()

	v, err := Apply2(ctx, "gcd", MakeInteger(12), MakeInteger(18))
	require.NoError(t, err)
	n, err := v.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	v, err = Apply2(ctx, "lcm", MakeInteger(12), MakeInteger(18))
	require.NoError(t, err)
	n, err = v.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(36), n)
}

func TestApplyFallbackTier(t *testing.T) {
	ctx := NewContext()

	// not in the symbol table: goes through the parser and stays symbolic
	v, err := Apply1(ctx, "frobnicate", MakeInteger(3))
	require.NoError(t, err)
	assert.True(t, v.IsSymbolic())
	assert.Equal(t, "frobnicate(3)", v.ToText(ctx))

	op, err := v.SymbolicOperator()
	require.NoError(t, err)
	assert.Equal(t, "frobnicate", op)

	_, err = Apply(ctx, "")
	require.Error(t, err)
}

func TestExportLifecycle(t *testing.T) {
	ctx := NewContext()
	v, err := ctx.EvalValue("7/2")
	require.NoError(t, err)

	ref := Export(v)
	require.NotZero(t, ref)

	k, err := ExportedKind(ref)
	require.NoError(t, err)
	assert.Equal(t, Fraction, k)

	text, err := ExportedText(ref, ctx)
	require.NoError(t, err)
	assert.Equal(t, "7/2", text)

	back, err := ImportExported(ref)
	require.NoError(t, err)
	assert.True(t, back.Equal(v))

	require.NoError(t, FreeExported(ref))

	err = FreeExported(ref)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidHandleError")

	_, err = ExportedKind(ref)
	require.Error(t, err)
}
