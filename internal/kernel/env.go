package kernel

import (
	"sync"
)

// DefaultPrecision is the number of significant digits used for printing
// approximate values until SetPrecision changes it.
const DefaultPrecision = 12

// Env is one evaluation environment: variable bindings plus numeric and
// display settings. Envs are confined to a single goroutine.
type Env struct {
	vars        map[string]Gen
	warn        func(string)
	id          int
	digits      int
	timeout     float64
	complexMode bool
}

// Process-scoped environment registry. Envs are registered at creation and
// never pruned: kernel values hold back-references into their originating
// environment, and freeing an environment while any value created from it
// is still reachable would dangle. The registry trades memory growth
// bounded by process lifetime for the absence of teardown-order crashes.
var (
	envMu sync.Mutex
	envs  []*Env
)

// NewEnv creates and registers an evaluation environment with default
// settings: empty bindings, DefaultPrecision digits, complex mode off.
func NewEnv() *Env {
	Init()

	e := &Env{
		vars:   make(map[string]Gen),
		digits: DefaultPrecision,
	}

	envMu.Lock()
	e.id = len(envs)
	envs = append(envs, e)
	envMu.Unlock()

	logger().Debug("environment created")
	return e
}

// EnvCount returns the number of environments registered so far. The count
// never decreases.
func EnvCount() int {
	envMu.Lock()
	defer envMu.Unlock()
	return len(envs)
}

// Sto binds name to val. val is stored as given; callers evaluate first.
func (e *Env) Sto(val Gen, name string) {
	e.vars[name] = val
}

// Lookup returns the binding for name, if any.
func (e *Env) Lookup(name string) (Gen, bool) {
	g, ok := e.vars[name]
	return g, ok
}

// Purge removes the binding for name. Purging an unbound name is not an
// error; it emits a diagnostic on the warning sink.
func (e *Env) Purge(name string) {
	if _, ok := e.vars[name]; !ok {
		e.Warn("purge: " + name + " not assigned")
		return
	}
	delete(e.vars, name)
}

func (e *Env) SetPrecision(digits int) {
	if digits < 1 {
		digits = 1
	}
	e.digits = digits
}

func (e *Env) Precision() int { return e.digits }

func (e *Env) SetComplexMode(on bool) { e.complexMode = on }
func (e *Env) ComplexMode() bool      { return e.complexMode }

// SetTimeout stores the computation budget in seconds. The evaluator has
// no cooperative checkpoints, so the value is recorded but not enforced.
func (e *Env) SetTimeout(seconds float64) { e.timeout = seconds }
func (e *Env) Timeout() float64           { return e.timeout }

// SetWarningSink registers a sink for non-fatal diagnostics. A nil sink
// discards them.
func (e *Env) SetWarningSink(fn func(string)) { e.warn = fn }

// Warn routes a diagnostic message to the sink, if one is registered.
// Warnings never change evaluation results.
func (e *Env) Warn(msg string) {
	if e.warn != nil {
		e.warn(msg)
	}
}
