package cas

import (
	errs "github.com/casworks/giacbridge/errors"
	"github.com/casworks/giacbridge/internal/kernel"
)

// Context is one evaluation environment: variable bindings, numeric and
// display settings, and a warning sink. Contexts are cheap to create and
// intentionally never torn down; the kernel environment behind each one
// lives in a process-global registry for the rest of the process so that
// no Value can outlive the environment it was built against.
//
// A Context confines its kernel environment to one goroutine at a time.
// Distinct Contexts are fully isolated and safe to use concurrently.
type Context struct {
	env *kernel.Env
}

// NewContext creates an evaluation context with default settings. It
// never fails: kernel initialization runs once per process on first use.
func NewContext() *Context {
	return &Context{env: kernel.NewEnv()}
}

// Eval parses, evaluates and prints an expression in one step.
func (c *Context) Eval(text string) (string, error) {
	v, err := c.EvalValue(text)
	if err != nil {
		return "", err
	}
	return v.ToText(c), nil
}

// EvalValue parses and evaluates an expression, returning the result as a
// value handle.
func (c *Context) EvalValue(text string) (*Value, error) {
	g, err := kernel.Parse(text)
	if err != nil {
		return nil, errs.ParseFailed(err.Error(), err)
	}
	out, err := kernel.Eval(c.env, g)
	if err != nil {
		return nil, errs.EvalFailed(err.Error(), err)
	}
	return &Value{g: out}, nil
}

// SetVariable evaluates valueText and binds the result to name.
func (c *Context) SetVariable(name, valueText string) error {
	if !validIdentifier(name) {
		return errs.InvalidInput(errs.PhaseEval, "invalid variable name "+name)
	}
	v, err := c.EvalValue(valueText)
	if err != nil {
		return err
	}
	c.env.Sto(v.g, name)
	return nil
}

// SetValue binds an existing value handle to name.
func (c *Context) SetValue(name string, v *Value) error {
	if !validIdentifier(name) {
		return errs.InvalidInput(errs.PhaseEval, "invalid variable name "+name)
	}
	c.env.Sto(v.g, name)
	return nil
}

// GetVariable returns the printed binding for name, or the empty string
// when nothing is bound. Use LookupVariable to distinguish an unbound
// name from a variable bound to an empty-printing value.
func (c *Context) GetVariable(name string) string {
	s, _ := c.LookupVariable(name)
	return s
}

// LookupVariable returns the printed binding for name and whether the
// name is bound at all.
func (c *Context) LookupVariable(name string) (string, bool) {
	g, ok := c.env.Lookup(name)
	if !ok {
		return "", false
	}
	return kernel.Print(g, c.env), true
}

// LookupValue returns the binding for name as a value handle.
func (c *Context) LookupValue(name string) (*Value, bool) {
	g, ok := c.env.Lookup(name)
	if !ok {
		return nil, false
	}
	return &Value{g: g}, true
}

// Purge removes the binding for name. Purging an unbound name is not an
// error; the kernel reports it through the warning handler.
func (c *Context) Purge(name string) error {
	if !validIdentifier(name) {
		return errs.InvalidInput(errs.PhaseEval, "invalid variable name "+name)
	}
	c.env.Purge(name)
	return nil
}

// SetPrecision sets the number of significant digits used when printing
// approximate values. Values already computed print with the new
// precision, since printing is deferred to ToText.
func (c *Context) SetPrecision(digits int) { c.env.SetPrecision(digits) }

// Precision returns the current display precision.
func (c *Context) Precision() int { return c.env.Precision() }

// SetComplexMode switches evaluation between real and complex arithmetic
// for operations like square roots of negatives.
func (c *Context) SetComplexMode(on bool) { c.env.SetComplexMode(on) }

// ComplexMode reports whether complex mode is on.
func (c *Context) ComplexMode() bool { return c.env.ComplexMode() }

// SetTimeout records a computation budget in seconds. The kernel's
// evaluator has no cancellation checkpoints, so the budget is stored but
// not enforced.
func (c *Context) SetTimeout(seconds float64) { c.env.SetTimeout(seconds) }

// Timeout returns the stored computation budget.
func (c *Context) Timeout() float64 { return c.env.Timeout() }

// SetWarningHandler routes the kernel's non-fatal diagnostics for this
// context to fn. Warnings never change evaluation results.
func (c *Context) SetWarningHandler(fn func(string)) { c.env.SetWarningSink(fn) }

// ClearWarningHandler discards subsequent diagnostics.
func (c *Context) ClearWarningHandler() { c.env.SetWarningSink(nil) }

func validIdentifier(name string) bool {
	if name == "" {
		return false
	}
	g, err := kernel.Parse(name)
	return err == nil && g.Type() == kernel.TIdnt
}
