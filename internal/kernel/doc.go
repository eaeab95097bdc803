// Package kernel implements the computer algebra engine behind the
// public boundary: parsing, evaluation, canonical arithmetic over exact
// rationals, and a symbol table of algebraic commands.
//
// Values are immutable Gen records discriminated by Type. Symbolic
// expressions are applications of a Builtin (the sommet) to an argument
// (the feuille); multi-argument applications carry a sequence vector.
// Evaluation is environment-relative: an Env holds variable bindings and
// numeric settings, and environments registered once stay registered for
// the life of the process.
//
// The package is internal. The exported boundary lives in the cas
// package, which owns handle management and the error taxonomy.
package kernel
