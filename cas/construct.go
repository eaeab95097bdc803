package cas

import (
	errs "github.com/casworks/giacbridge/errors"
	"github.com/casworks/giacbridge/internal/kernel"
)

// Construction helpers. Everything here builds values without touching
// any evaluation environment; the results are plain handles usable with
// every Context.

// MakeInteger builds a machine integer value.
func MakeInteger(n int64) *Value {
	return &Value{g: kernel.NewInt(n)}
}

// MakeDouble builds a hardware float value.
func MakeDouble(f float64) *Value {
	return &Value{g: kernel.NewDouble(f)}
}

// MakeString builds a string value.
func MakeString(s string) *Value {
	return &Value{g: kernel.NewString(s)}
}

// MakeIdentifier builds an identifier value. The name is not checked
// against any environment; evaluating the identifier resolves it.
func MakeIdentifier(name string) (*Value, error) {
	if !validIdentifier(name) {
		return nil, errs.InvalidInput(errs.PhaseEval, "invalid identifier "+name)
	}
	return &Value{g: kernel.NewIdent(name)}, nil
}

// MakeBigIntFromBytes builds an exact integer from a big-endian magnitude
// and a separate sign. An empty magnitude is zero regardless of sign. The
// result keeps the BigInt kind even when it would fit in 64 bits, so the
// bytes round-trip.
func MakeBigIntFromBytes(mag []byte, sign int) *Value {
	return &Value{g: kernel.NewZintFromBytes(mag, sign)}
}

// MakeFraction builds num/den without reducing it. Evaluation normalizes.
func MakeFraction(num, den *Value) (*Value, error) {
	if !num.IsNumeric() {
		return nil, num.mismatch("numeric")
	}
	if !den.IsNumeric() {
		return nil, den.mismatch("numeric")
	}
	if den.IsZero() {
		return nil, errs.InvalidInput(errs.PhaseEval, "zero denominator")
	}
	return &Value{g: kernel.NewFrac(num.g, den.g)}, nil
}

// MakeComplex builds re + im*i.
func MakeComplex(re, im *Value) (*Value, error) {
	if !re.IsNumeric() || re.IsComplex() {
		return nil, re.mismatch("real numeric")
	}
	if !im.IsNumeric() || im.IsComplex() {
		return nil, im.mismatch("real numeric")
	}
	return &Value{g: kernel.NewCplx(re.g, im.g)}, nil
}

// MakeVector builds a vector with the given subtype.
func MakeVector(elems []*Value, subtype VectSubtype) *Value {
	gs := make([]kernel.Gen, len(elems))
	for i, e := range elems {
		gs[i] = e.g
	}
	return &Value{g: kernel.NewVect(gs, int(subtype))}
}

// MakeSymbolicUnevaluated builds the application of op to args without
// evaluating it: the node prints and inspects as written. The operator
// spellings + - * / ^ map to the kernel's internal operator symbols;
// other names resolve through the symbol table, falling back to a pure
// symbol. Evaluating the result later reduces it normally.
func MakeSymbolicUnevaluated(op string, args []*Value) (*Value, error) {
	if op == "" {
		return nil, errs.InvalidInput(errs.PhaseDispatch, "empty operator name")
	}
	fn := kernel.SymbolFor(op)
	var feuille kernel.Gen
	if len(args) == 1 {
		feuille = args[0].g
	} else {
		gs := make([]kernel.Gen, len(args))
		for i, a := range args {
			gs[i] = a.g
		}
		feuille = kernel.NewSeq(gs...)
	}
	return &Value{g: kernel.NewSymb(fn, feuille)}, nil
}
