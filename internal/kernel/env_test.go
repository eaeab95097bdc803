package kernel

import (
	"strings"
	"testing"
)

func TestEnvIsolation(t *testing.T) {
	a := NewEnv()
	b := NewEnv()
	a.Sto(NewInt(42), "n")
	if _, ok := b.Lookup("n"); ok {
		t.Error("binding leaked between environments")
	}
	if g, ok := a.Lookup("n"); !ok || g.Int64() != 42 {
		t.Errorf("Lookup(n) = %v, %v", g, ok)
	}
}

func TestEnvRegistryNeverShrinks(t *testing.T) {
	before := EnvCount()
	NewEnv()
	NewEnv()
	if got := EnvCount(); got != before+2 {
		t.Errorf("EnvCount = %d, want %d", got, before+2)
	}
}

func TestPurgeUnboundWarns(t *testing.T) {
	env := NewEnv()
	var got string
	env.SetWarningSink(func(msg string) { got = msg })
	env.Purge("nothing")
	if !strings.Contains(got, "nothing") || !strings.Contains(got, "not assigned") {
		t.Errorf("warning = %q", got)
	}
}

func TestPrecisionClamp(t *testing.T) {
	env := NewEnv()
	env.SetPrecision(0)
	if env.Precision() != 1 {
		t.Errorf("Precision = %d, want 1", env.Precision())
	}
	env.SetPrecision(30)
	if env.Precision() != 30 {
		t.Errorf("Precision = %d, want 30", env.Precision())
	}
}

func TestTimeoutStoredNotEnforced(t *testing.T) {
	env := NewEnv()
	env.SetTimeout(2.5)
	if env.Timeout() != 2.5 {
		t.Errorf("Timeout = %v", env.Timeout())
	}
	if _, err := EvalString(env, "2^1000"); err != nil {
		t.Errorf("evaluation failed under timeout: %v", err)
	}
}
