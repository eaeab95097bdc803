package kernel

import (
	"math/big"
)

// Type is the kernel's value discriminant. The integer values are part of
// the boundary contract and never reordered.
type Type uint8

const (
	TInt    Type = 0
	TDouble Type = 1
	TZint   Type = 2
	TReal   Type = 3
	TCplx   Type = 4
	TPoly   Type = 5
	TIdnt   Type = 6
	TVect   Type = 7
	TSymb   Type = 8
	TSpol1  Type = 9
	TFrac   Type = 10
	TExt    Type = 11
	TStrng  Type = 12
	TFunc   Type = 13
	TMod    Type = 15
	TUser   Type = 16
	TMap    Type = 17
	TFloat  Type = 21
)

// Vector subtypes.
const (
	SubList   = 0
	SubSeq    = 1
	SubSet    = 2
	SubRPN    = 4
	SubGroup  = 5
	SubLine   = 6
	SubVector = 7
	SubPnt    = 8
	SubPoly1  = 10
	SubMatrix = 11
	SubAssume = 13
	SubSpread = 14
	SubPoint  = 20
)

// Gen is one immutable algebraic value. The zero Gen is the integer 0.
//
// Gens do not own their environment; printing and evaluation take the
// environment at call time.
type Gen struct {
	z     *big.Int // TZint
	a, b  *Gen     // TFrac num/den, TCplx re/im
	fn    *Builtin // TSymb sommet, TFunc value
	arg   *Gen     // TSymb feuille
	elems []Gen    // TVect
	keys  []Gen    // TMap
	vals  []Gen    // TMap
	s     string   // TIdnt name, TStrng contents
	i     int64    // TInt
	f     float64  // TDouble
	typ   Type
	sub   int
}

func NewInt(n int64) Gen      { return Gen{typ: TInt, i: n} }
func NewDouble(f float64) Gen { return Gen{typ: TDouble, f: f} }
func NewString(s string) Gen  { return Gen{typ: TStrng, s: s} }
func NewIdent(name string) Gen {
	return Gen{typ: TIdnt, s: name}
}

// NewZint normalizes to TInt when the value fits in int64.
func NewZint(z *big.Int) Gen {
	if z.IsInt64() {
		return NewInt(z.Int64())
	}
	return Gen{typ: TZint, z: new(big.Int).Set(z)}
}

// NewZintRaw keeps the big representation even for small values. Used by
// the byte-buffer import path, where the caller asked for a big integer.
func NewZintRaw(z *big.Int) Gen {
	return Gen{typ: TZint, z: new(big.Int).Set(z)}
}

// NewZintFromBytes builds a big integer from a big-endian magnitude and a
// separate sign channel. An empty buffer is zero regardless of sign.
func NewZintFromBytes(mag []byte, sign int) Gen {
	z := new(big.Int).SetBytes(mag)
	if sign < 0 {
		z.Neg(z)
	}
	return Gen{typ: TZint, z: z}
}

// NewRat normalizes an exact rational: integers collapse to TInt/TZint,
// everything else becomes a reduced TFrac.
func NewRat(r *big.Rat) Gen {
	if r.IsInt() {
		return NewZint(r.Num())
	}
	num := NewZint(new(big.Int).Set(r.Num()))
	den := NewZint(new(big.Int).Set(r.Denom()))
	return Gen{typ: TFrac, a: &num, b: &den}
}

// NewFrac builds a fraction without reducing it. Structural equality
// distinguishes 2/4 from 1/2; evaluation normalizes.
func NewFrac(num, den Gen) Gen {
	n, d := num, den
	return Gen{typ: TFrac, a: &n, b: &d}
}

func NewCplx(re, im Gen) Gen {
	r, i := re, im
	return Gen{typ: TCplx, a: &r, b: &i}
}

func NewVect(elems []Gen, subtype int) Gen {
	return Gen{typ: TVect, sub: subtype, elems: elems}
}

// NewSeq wraps multiple values into a sequence vector, the kernel's
// representation of an argument tuple.
func NewSeq(elems ...Gen) Gen {
	return NewVect(elems, SubSeq)
}

func NewSymb(fn *Builtin, feuille Gen) Gen {
	f := feuille
	return Gen{typ: TSymb, fn: fn, arg: &f}
}

func NewFuncRef(fn *Builtin) Gen {
	return Gen{typ: TFunc, fn: fn}
}

func NewMap(keys, vals []Gen) Gen {
	return Gen{typ: TMap, keys: keys, vals: vals}
}

func NewBool(b bool) Gen {
	g := Gen{typ: TInt, sub: SubtypeBoolean}
	if b {
		g.i = 1
	}
	return g
}

// Integer subtypes.
const (
	SubtypeInt     = 0
	SubtypeType    = 1
	SubtypeChar    = 2
	SubtypeColor   = 5
	SubtypeBoolean = 6
	SubtypePlot    = 7
)

func (g Gen) Type() Type    { return g.typ }
func (g Gen) Subtype() int  { return g.sub }
func (g Gen) Int64() int64   { return g.i }
func (g Gen) Float() float64 { return g.f }
func (g Gen) Zint() *big.Int { return g.z }
func (g Gen) Name() string   { return g.s }
func (g Gen) Str() string    { return g.s }
func (g Gen) Fn() *Builtin   { return g.fn }

func (g Gen) Num() Gen { return *g.a }
func (g Gen) Den() Gen { return *g.b }
func (g Gen) Re() Gen  { return *g.a }
func (g Gen) Im() Gen  { return *g.b }

// Feuille returns the argument of a symbolic node. Multi-argument
// applications carry a sequence vector.
func (g Gen) Feuille() Gen { return *g.arg }

func (g Gen) Len() int      { return len(g.elems) }
func (g Gen) At(i int) Gen  { return g.elems[i] }
func (g Gen) Elems() []Gen  { return g.elems }
func (g Gen) MapLen() int   { return len(g.keys) }
func (g Gen) MapKeys() []Gen { return g.keys }
func (g Gen) MapVals() []Gen { return g.vals }

// ZintBytes exports the big-endian magnitude and sign of an exact integer.
// Zero exports as an empty buffer with sign 0.
func (g Gen) ZintBytes() ([]byte, int) {
	var z *big.Int
	switch g.typ {
	case TZint:
		z = g.z
	case TInt:
		z = big.NewInt(g.i)
	default:
		return nil, 0
	}
	return z.Bytes(), z.Sign()
}

// IsExactInt reports whether g is an integer (machine or big).
func (g Gen) IsExactInt() bool {
	return g.typ == TInt || g.typ == TZint
}

// IsNumeric reports whether g is a numeric leaf kind.
func (g Gen) IsNumeric() bool {
	switch g.typ {
	case TInt, TZint, TDouble, TReal, TFloat, TFrac, TCplx:
		return true
	}
	return false
}

// IsApprox reports whether g carries floating (inexact) data.
func (g Gen) IsApprox() bool {
	switch g.typ {
	case TDouble, TReal, TFloat:
		return true
	case TCplx:
		return g.a.IsApprox() || g.b.IsApprox()
	}
	return false
}

func (g Gen) IsZero() bool {
	switch g.typ {
	case TInt:
		return g.i == 0
	case TZint:
		return g.z.Sign() == 0
	case TDouble:
		return g.f == 0
	case TFrac:
		return g.a.IsZero()
	case TCplx:
		return g.a.IsZero() && g.b.IsZero()
	}
	return false
}

func (g Gen) IsOne() bool {
	switch g.typ {
	case TInt:
		return g.i == 1
	case TZint:
		return g.z.IsInt64() && g.z.Int64() == 1
	case TDouble:
		return g.f == 1
	case TFrac:
		return g.a.Equal(*g.b)
	}
	return false
}

// rat converts an exact value to a big.Rat. ok is false for inexact or
// non-numeric kinds.
func (g Gen) rat() (*big.Rat, bool) {
	switch g.typ {
	case TInt:
		return new(big.Rat).SetInt64(g.i), true
	case TZint:
		return new(big.Rat).SetInt(g.z), true
	case TFrac:
		n, ok := g.a.rat()
		if !ok {
			return nil, false
		}
		d, ok := g.b.rat()
		if !ok || d.Sign() == 0 {
			return nil, false
		}
		return n.Quo(n, d), true
	}
	return nil, false
}

// float converts any real numeric value to float64.
func (g Gen) float() (float64, bool) {
	switch g.typ {
	case TInt:
		return float64(g.i), true
	case TZint:
		f, _ := new(big.Float).SetInt(g.z).Float64()
		return f, true
	case TDouble:
		return g.f, true
	case TFrac:
		r, ok := g.rat()
		if !ok {
			return 0, false
		}
		f, _ := r.Float64()
		return f, true
	}
	return 0, false
}

// Float64 converts any real numeric value to float64. ok is false for
// complex and non-numeric kinds.
func (g Gen) Float64() (float64, bool) {
	return g.float()
}

// Equal compares canonical internal structure, not printed text. An
// unreduced fraction is not equal to its reduced form.
func (g Gen) Equal(o Gen) bool {
	if g.typ != o.typ {
		// int/zint describe the same mathematical object at different widths
		if g.IsExactInt() && o.IsExactInt() {
			gz, _ := g.rat()
			oz, _ := o.rat()
			return gz.Cmp(oz) == 0
		}
		return false
	}
	switch g.typ {
	case TInt:
		return g.i == o.i
	case TZint:
		return g.z.Cmp(o.z) == 0
	case TDouble:
		return g.f == o.f
	case TIdnt, TStrng:
		return g.s == o.s
	case TFrac, TCplx:
		return g.a.Equal(*o.a) && g.b.Equal(*o.b)
	case TFunc:
		return g.fn == o.fn
	case TSymb:
		if g.fn != o.fn {
			return false
		}
		return g.arg.Equal(*o.arg)
	case TVect:
		if g.sub != o.sub || len(g.elems) != len(o.elems) {
			return false
		}
		for i := range g.elems {
			if !g.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case TMap:
		if len(g.keys) != len(o.keys) {
			return false
		}
		for i := range g.keys {
			if !g.keys[i].Equal(o.keys[i]) || !g.vals[i].Equal(o.vals[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// TypeName returns the human-readable name of the value's kind.
func (g Gen) TypeName() string {
	switch g.typ {
	case TInt:
		return "integer"
	case TDouble:
		return "double"
	case TZint:
		return "bigint"
	case TReal:
		return "real"
	case TCplx:
		return "complex"
	case TPoly:
		return "polynomial"
	case TIdnt:
		return "identifier"
	case TVect:
		return "vector"
	case TSymb:
		return "symbolic"
	case TSpol1:
		return "sparse polynomial"
	case TFrac:
		return "fraction"
	case TExt:
		return "extension"
	case TStrng:
		return "string"
	case TFunc:
		return "function"
	case TMod:
		return "modular"
	case TUser:
		return "user"
	case TMap:
		return "map"
	case TFloat:
		return "float"
	}
	return "unknown"
}
