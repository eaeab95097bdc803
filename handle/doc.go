// Package handle implements the ref table behind the heap-export protocol.
//
// Exporting a value across the boundary without a text round-trip hands the
// caller a raw Ref. The table enforces nothing beyond liveness: exactly one
// free per export is the caller's responsibility, and a dangling or doubled
// free surfaces as a failed lookup rather than a crash. This is the one
// deliberately unsafe escape hatch in an otherwise safe-by-default API.
package handle
