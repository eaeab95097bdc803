package cas

import (
	errs "github.com/casworks/giacbridge/errors"
	"github.com/casworks/giacbridge/handle"
)

// Heap export: the escape hatch for embedders that need to pin a value
// outside any Go reference. Export hands out an opaque reference that
// stays valid until exactly one FreeExported; everything else about the
// protocol (double free, use after free, made-up refs) is a caller error
// surfaced as InvalidHandleError.

var exports = handle.NewTable()

// Export pins v and returns a reference usable from foreign code.
func Export(v *Value) handle.Ref {
	return exports.Insert(v)
}

// FreeExported releases a pinned value. Each Export must be balanced by
// exactly one FreeExported.
func FreeExported(ref handle.Ref) error {
	if _, ok := exports.Remove(ref); !ok {
		return errs.InvalidHandle(uint64(ref))
	}
	return nil
}

// ExportedCount returns the number of currently pinned values.
func ExportedCount() int {
	return exports.Len()
}

func exportedValue(ref handle.Ref) (*Value, error) {
	raw, ok := exports.Get(ref)
	if !ok {
		return nil, errs.InvalidHandle(uint64(ref))
	}
	return raw.(*Value), nil
}

// ExportedKind inspects a pinned value's kind without unpinning it.
func ExportedKind(ref handle.Ref) (Kind, error) {
	v, err := exportedValue(ref)
	if err != nil {
		return 0, err
	}
	return v.Kind(), nil
}

// ExportedText prints a pinned value against ctx.
func ExportedText(ref handle.Ref, ctx *Context) (string, error) {
	v, err := exportedValue(ref)
	if err != nil {
		return "", err
	}
	return v.ToText(ctx), nil
}

// ImportExported returns the pinned value behind ref. The reference stays
// live; the caller still owes a FreeExported.
func ImportExported(ref handle.Ref) (*Value, error) {
	return exportedValue(ref)
}
