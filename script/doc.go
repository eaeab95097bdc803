// Package script exposes the algebra boundary to embedded Risor
// scripts: a small set of host functions (cas_eval, cas_apply, cas_set,
// cas_get, cas_kind, cas_factor, cas_commands) bound to one evaluation
// context. Expressions and results cross the boundary as printed text.
package script
