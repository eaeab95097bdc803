// Package giacbridge binds an embedded computer-algebra kernel to Go callers
// and to an embedding script runtime.
//
// The repository is a boundary layer, not an algebra library: the kernel
// behind it is reached only through its evaluate, print, and symbol-lookup
// entry points, and everything public here is about holding references to
// kernel-owned values safely.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	giacbridge/          Root package with version and availability queries
//	├── cas/             Public Context and Value handles, dispatch, constructors
//	├── handle/          Heap-export handle table for zero-copy value transfer
//	├── errors/          Structured error types with category taxonomy
//	├── helpdb/          Command/help database loading (sqlite or text)
//	├── script/          Risor host bindings exposing the CAS to scripts
//	├── internal/kernel/ The wrapped algebra engine (opaque)
//	└── cmd/giacalc/     CLI and interactive REPL
//
// # Quick Start
//
// Evaluate expressions against an isolated context:
//
//	ctx := cas.NewContext()
//	out, err := ctx.Eval("factor(x^2-1)")
//	// out == "(x-1)*(x+1)"
//
// Hold results as opaque values and extract typed payloads:
//
//	v, _ := ctx.EvalValue("gcd(12, 18)")
//	n, _ := v.AsInt64() // 6
//
// # Context Lifetime
//
// Every Value keeps a back-reference into the environment it was created
// from. Environments are therefore process-scoped: they are registered once
// and never freed, so a Value can always be printed or combined later, in
// any destruction order. This is a deliberate trade of bounded memory growth
// for the elimination of shutdown-order crashes; see cas.NewContext.
//
// # Thread Safety
//
// A Context and the Values derived from it must be confined to a single
// goroutine. Concurrent use requires one Context per goroutine. Kernel
// initialization (operator and builtin tables) is guarded and runs exactly
// once per process regardless of how many goroutines enter the boundary.
package giacbridge
