package kernel

import (
	"strings"
	"testing"
)

func evalStr(t *testing.T, env *Env, src string) string {
	t.Helper()
	g, err := EvalString(env, src)
	if err != nil {
		t.Fatalf("EvalString(%q): %v", src, err)
	}
	return Print(g, env)
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+1", "2"},
		{"2+3*4", "14"},
		{"(1+2)*3", "9"},
		{"10-4-3", "3"},
		{"1/3+1/6", "1/2"},
		{"7/2", "7/2"},
		{"2^10", "1024"},
		{"2^(-1)", "1/2"},
		{"2^100", "1267650600228229401496703205376"},
		{"-3^2", "-9"},
		{"(-3)^2", "9"},
		{"1.5*2", "3"},
		{"1+i", "1+i"},
		{"(1+i)*(1-i)", "2"},
		{"i^2", "-1"},
	}
	env := NewEnv()
	for _, tt := range tests {
		if got := evalStr(t, env, tt.src); got != tt.want {
			t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestEvalSymbolic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x+x", "2*x"},
		{"x-x", "0"},
		{"2*x-x", "x"},
		{"x*x", "x^2"},
		{"x^2+2*x+1+x^2", "2*x^2+2*x+1"},
		{"(x+1)^2", "(x+1)^2"},
		{"expand((x+1)^2)", "x^2+2*x+1"},
		{"expand((x+1)*(x-1))", "x^2-1"},
		{"factor(x^2-1)", "(x-1)*(x+1)"},
		{"factor(x^2+2*x+1)", "(x+1)^2"},
		{"factor(2*x^2-2)", "2*(x-1)*(x+1)"},
		{"simplify((x^2-1)/(x-1))", "x+1"},
		{"diff(x^2,x)", "2*x"},
		{"diff(sin(x),x)", "cos(x)"},
		{"diff(x^3+x,x)", "3*x^2+1"},
		{"foo(3)", "foo(3)"},
	}
	env := NewEnv()
	for _, tt := range tests {
		if got := evalStr(t, env, tt.src); got != tt.want {
			t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestEvalFunctions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"gcd(8,12)", "4"},
		{"lcm(4,6)", "12"},
		{"gcd(x^2-1,x-1)", "x-1"},
		{"sqrt(16)", "4"},
		{"sqrt(2)", "sqrt(2)"},
		{"sqrt(9/4)", "3/2"},
		{"abs(-5)", "5"},
		{"abs(3-7)", "4"},
		{"sign(-2)", "-1"},
		{"floor(7/2)", "3"},
		{"ceil(7/2)", "4"},
		{"exp(0)", "1"},
		{"ln(1)", "0"},
		{"sin(0)", "0"},
		{"cos(0)", "1"},
		{"re(3+4*i)", "3"},
		{"im(3+4*i)", "4"},
		{"conj(3+4*i)", "3-4*i"},
		{"numer(7/2)", "7"},
		{"denom(7/2)", "2"},
		{"numer(5)", "5"},
		{"denom(5)", "1"},
		{"size([1,2,3])", "3"},
		{"max(1,7,3)", "7"},
		{"min(1,7,3)", "1"},
		{"factor(12)", "2^2*3"},
		{"evalf(1/2)", "0.5"},
	}
	env := NewEnv()
	for _, tt := range tests {
		if got := evalStr(t, env, tt.src); got != tt.want {
			t.Errorf("eval(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestEvalVectors(t *testing.T) {
	env := NewEnv()
	if got := evalStr(t, env, "[1,2]+[3,4]"); got != "[4,6]" {
		t.Errorf("vector add = %q", got)
	}
	if got := evalStr(t, env, "[1,2,3][1]"); got != "2" {
		t.Errorf("index = %q", got)
	}
	if got := evalStr(t, env, "1,2,3"); got != "1,2,3" {
		t.Errorf("sequence = %q", got)
	}
	if _, err := EvalString(env, "[1,2]+[1,2,3]"); err == nil {
		t.Error("expected dimension error")
	}
	if _, err := EvalString(env, "[1,2,3][5]"); err == nil {
		t.Error("expected out of range error")
	}
}

func TestEvalAssignment(t *testing.T) {
	env := NewEnv()
	if got := evalStr(t, env, "a:=5"); got != "5" {
		t.Errorf("assignment result = %q", got)
	}
	if got := evalStr(t, env, "a+1"); got != "6" {
		t.Errorf("bound eval = %q", got)
	}
	if got := evalStr(t, env, "purge(a)"); got != "5" {
		t.Errorf("purge result = %q", got)
	}
	if got := evalStr(t, env, "a"); got != "a" {
		t.Errorf("after purge = %q", got)
	}
}

func TestEvalErrors(t *testing.T) {
	env := NewEnv()
	for _, src := range []string{"1/0", "0^(-1)", "ln(0.0)"} {
		if _, err := EvalString(env, src); err == nil {
			t.Errorf("eval(%q): expected error", src)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"", "1+", "(1", "[1,2", `"abc`, "1 @ 2", "3:=4"} {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q): expected error", src)
		}
	}
}

func TestPrecisionAffectsPrinting(t *testing.T) {
	env := NewEnv()
	g, err := EvalString(env, "evalf(pi)")
	if err != nil {
		t.Fatal(err)
	}
	if got := Print(g, env); got != "3.14159265359" {
		t.Errorf("default precision print = %q", got)
	}
	env.SetPrecision(3)
	if got := Print(g, env); got != "3.14" {
		t.Errorf("3-digit print = %q", got)
	}
}

func TestUnevaluatedConstruction(t *testing.T) {
	plus, ok := LookupOperator("+")
	if !ok {
		t.Fatal("operator + not found")
	}
	node := NewSymb(plus, NewSeq(NewInt(1), NewInt(2)))
	if got := Print(node, nil); got != "1+2" {
		t.Errorf("unevaluated + prints %q", got)
	}
	env := NewEnv()
	v, err := Eval(env, node)
	if err != nil {
		t.Fatal(err)
	}
	if got := Print(v, env); got != "3" {
		t.Errorf("evaluated + prints %q", got)
	}
}

func TestFactorFallbackWarns(t *testing.T) {
	env := NewEnv()
	var warnings []string
	env.SetWarningSink(func(msg string) { warnings = append(warnings, msg) })
	got := evalStr(t, env, "factor(sin(x)+1)")
	if got != "sin(x)+1" {
		t.Errorf("fallback result = %q", got)
	}
	if len(warnings) == 0 || !strings.Contains(warnings[0], "factor") {
		t.Errorf("expected factor warning, got %v", warnings)
	}
}

func TestTableValues(t *testing.T) {
	env := NewEnv()
	if got := evalStr(t, env, "t:=table(3 = 5,7 = 9)"); got != "table(3 = 5,7 = 9)" {
		t.Errorf("table prints %q", got)
	}
	if got := evalStr(t, env, "t[3]"); got != "5" {
		t.Errorf("table lookup = %q", got)
	}
}
