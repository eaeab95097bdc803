package cas

import (
	"fmt"

	"github.com/casworks/giacbridge/internal/kernel"
)

// Kind discriminates the payload of a Value. The integer values are part
// of the boundary contract and match the kernel's type tags; they are
// never reordered.
type Kind uint8

const (
	Integer    Kind = 0
	Double     Kind = 1
	BigInt     Kind = 2
	Real       Kind = 3
	Complex    Kind = 4
	Poly       Kind = 5
	Identifier Kind = 6
	Vector     Kind = 7
	Symbolic   Kind = 8
	SparsePoly Kind = 9
	Fraction   Kind = 10
	Ext        Kind = 11
	String     Kind = 12
	Func       Kind = 13
	Mod        Kind = 15
	User       Kind = 16
	Map        Kind = 17
	Float      Kind = 21
)

var kindNames = map[Kind]string{
	Integer:    "Integer",
	Double:     "Double",
	BigInt:     "BigInt",
	Real:       "Real",
	Complex:    "Complex",
	Poly:       "Poly",
	Identifier: "Identifier",
	Vector:     "Vector",
	Symbolic:   "Symbolic",
	SparsePoly: "SparsePoly",
	Fraction:   "Fraction",
	Ext:        "Ext",
	String:     "String",
	Func:       "Func",
	Mod:        "Mod",
	User:       "User",
	Map:        "Map",
	Float:      "Float",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsNumeric reports whether the kind is one of the numeric leaf kinds.
func (k Kind) IsNumeric() bool {
	switch k {
	case Integer, Double, BigInt, Real, Complex, Fraction, Float:
		return true
	}
	return false
}

// VectSubtype refines Vector values.
type VectSubtype int

const (
	SubtypeList   VectSubtype = kernel.SubList
	SubtypeSeq    VectSubtype = kernel.SubSeq
	SubtypeSet    VectSubtype = kernel.SubSet
	SubtypeRPN    VectSubtype = kernel.SubRPN
	SubtypeGroup  VectSubtype = kernel.SubGroup
	SubtypeLine   VectSubtype = kernel.SubLine
	SubtypeVector VectSubtype = kernel.SubVector
	SubtypePnt    VectSubtype = kernel.SubPnt
	SubtypePoly1  VectSubtype = kernel.SubPoly1
	SubtypeMatrix VectSubtype = kernel.SubMatrix
	SubtypeAssume VectSubtype = kernel.SubAssume
	SubtypeSpread VectSubtype = kernel.SubSpread
	SubtypePoint  VectSubtype = kernel.SubPoint
)

// IntSubtype refines Integer values.
type IntSubtype int

const (
	IntSubtypeInt     IntSubtype = kernel.SubtypeInt
	IntSubtypeType    IntSubtype = kernel.SubtypeType
	IntSubtypeChar    IntSubtype = kernel.SubtypeChar
	IntSubtypeColor   IntSubtype = kernel.SubtypeColor
	IntSubtypeBoolean IntSubtype = kernel.SubtypeBoolean
	IntSubtypePlot    IntSubtype = kernel.SubtypePlot
)
