package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindU8
	KindU64
	KindU128
	KindAddress
	KindVector
	KindStruct
	KindReference
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindU8:
		return "u8"
	case KindU64:
		return "u64"
	case KindU128:
		return "u128"
	case KindAddress:
		return "address"
	case KindVector:
		return "vector"
	case KindStruct:
		return "struct"
	case KindReference:
		return "reference"
	case KindTypeParam:
		return "type-param"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is the structural descriptor behind a TypeID.
type Type struct {
	Kind    Kind
	Elem    TypeID // vector element or reference target
	Mutable bool   // for KindReference
	Param   uint32 // for KindTypeParam: index into the function's type parameters
	Struct  uint32 // for KindStruct: index into the interner's struct table
}

// StructInfo describes one interned struct instantiation.
type StructInfo struct {
	Name     string // module-qualified, e.g. "Coin::Coin"
	TypeArgs []TypeID
}

// MakeVector returns a descriptor for vector<elem>.
func MakeVector(elem TypeID) Type {
	return Type{Kind: KindVector, Elem: elem}
}

// MakeReference returns a descriptor for &elem or &mut elem.
func MakeReference(mutable bool, elem TypeID) Type {
	return Type{Kind: KindReference, Elem: elem, Mutable: mutable}
}

// MakeTypeParam returns a descriptor for the idx-th type parameter.
func MakeTypeParam(idx uint32) Type {
	return Type{Kind: KindTypeParam, Param: idx}
}
