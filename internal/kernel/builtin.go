package kernel

import (
	"sort"
)

// Builtin is the kernel's function-pointer representation: the sommet of a
// symbolic application node. A Builtin with a nil handler is a pure symbol
// (an applied name the kernel knows nothing about); evaluating its
// application evaluates the arguments and keeps the node symbolic.
type Builtin struct {
	name  string
	apply func(env *Env, arg Gen) (Gen, error)
}

// Name returns the symbol-table name of the function.
func (b *Builtin) Name() string { return b.name }

func (b *Builtin) String() string { return b.name }

// Operator builtins. These are not reachable through the symbol table;
// the parser and the construction helpers special-case them by token.
var (
	opAdd *Builtin
	opSub *Builtin
	opMul *Builtin
	opDiv *Builtin
	opPow *Builtin
	opNeg *Builtin
	opSto *Builtin
	opEq  *Builtin
)

// builtins is the symbol table: documented command name to function
// pointer. Populated once by Init.
var builtins map[string]*Builtin

func initOperatorTable() {
	opAdd = &Builtin{name: "+", apply: applyAdd}
	opSub = &Builtin{name: "-", apply: applySub}
	opMul = &Builtin{name: "*", apply: applyMul}
	opDiv = &Builtin{name: "/", apply: applyDiv}
	opPow = &Builtin{name: "^", apply: applyPow}
	opNeg = &Builtin{name: "neg", apply: applyNeg}
	opSto = &Builtin{name: ":=", apply: nil} // handled in Eval
	opEq  = &Builtin{name: "=", apply: applyEqual}
}

// Lookup resolves a documented function name to its function-pointer
// representation. Operator symbols are not resolvable here.
func Lookup(name string) (*Builtin, bool) {
	Init()
	b, ok := builtins[name]
	return b, ok
}

// LookupOperator resolves the special-cased operator spellings used by
// unevaluated symbolic construction.
func LookupOperator(op string) (*Builtin, bool) {
	Init()
	switch op {
	case "+":
		return opAdd, true
	case "-":
		return opSub, true
	case "*":
		return opMul, true
	case "/":
		return opDiv, true
	case "^":
		return opPow, true
	case "neg":
		return opNeg, true
	}
	return nil, false
}

// SymbolFor resolves name through the symbol table, falling back to a
// pure symbol so applications of unknown names stay symbolic.
func SymbolFor(name string) *Builtin {
	Init()
	if b, ok := builtins[name]; ok {
		return b
	}
	if b, ok := LookupOperator(name); ok {
		return b
	}
	return &Builtin{name: name}
}

// ListBuiltins returns the sorted symbol-table names.
func ListBuiltins() []string {
	Init()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinCount returns the number of registered builtin functions.
func BuiltinCount() int {
	Init()
	return len(builtins)
}
