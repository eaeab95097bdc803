package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casworks/giacbridge/cas"
)

func TestRunEval(t *testing.T) {
	c := cas.NewContext()

	out, err := Run(context.Background(), c, `cas_eval("1+1")`)
	require.NoError(t, err)
	assert.Equal(t, "2", out)

	out, err = Run(context.Background(), c, `cas_eval("factor(x^2-1)")`)
	require.NoError(t, err)
	assert.Equal(t, "(x-1)*(x+1)", out)
}

func TestRunEvalError(t *testing.T) {
	c := cas.NewContext()

	_, err := Run(context.Background(), c, `cas_eval("1+")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ParseError")
}

func TestRunApply(t *testing.T) {
	c := cas.NewContext()

	out, err := Run(context.Background(), c, `cas_apply("gcd", 12, 18)`)
	require.NoError(t, err)
	assert.Equal(t, "6", out)

	out, err = Run(context.Background(), c, `cas_apply("factor", "x^2+2*x+1")`)
	require.NoError(t, err)
	assert.Equal(t, "(x+1)^2", out)
}

func TestRunVariables(t *testing.T) {
	c := cas.NewContext()

	out, err := Run(context.Background(), c, `
cas_set("n", "6*7")
cas_get("n")
`)
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	// bindings persist on the shared context
	got, bound := c.LookupVariable("n")
	require.True(t, bound)
	assert.Equal(t, "42", got)

	out, err = Run(context.Background(), c, `cas_get("unbound")`)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRunKind(t *testing.T) {
	c := cas.NewContext()

	out, err := Run(context.Background(), c, `cas_kind("7/2")`)
	require.NoError(t, err)
	assert.Equal(t, "Fraction", out)

	out, err = Run(context.Background(), c, `cas_kind("[1,2]")`)
	require.NoError(t, err)
	assert.Equal(t, "Vector", out)
}
