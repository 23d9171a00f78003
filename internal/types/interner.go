package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Bool    TypeID
	U8      TypeID
	U64     TypeID
	U128    TypeID
	Address TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types       []Type
	index       map[typeKey]TypeID
	builtins    Builtins
	structs     []StructInfo
	structIndex map[string]uint32
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:       make(map[typeKey]TypeID, 64),
		structIndex: make(map[string]uint32),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 as invalid sentinel
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.U8 = in.Intern(Type{Kind: KindU8})
	in.builtins.U64 = in.Intern(Type{Kind: KindU64})
	in.builtins.U128 = in.Intern(Type{Kind: KindU128})
	in.builtins.Address = in.Intern(Type{Kind: KindAddress})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// InternStruct ensures the struct instantiation has a stable TypeID.
// Name is the module-qualified struct name.
func (in *Interner) InternStruct(name string, typeArgs []TypeID) TypeID {
	sig := structSig(name, typeArgs)
	if sidx, ok := in.structIndex[sig]; ok {
		return in.Intern(Type{Kind: KindStruct, Struct: sidx})
	}
	lenStructs, err := safecast.Conv[uint32](len(in.structs))
	if err != nil {
		panic(fmt.Errorf("len(structs) overflow: %w", err))
	}
	in.structs = append(in.structs, StructInfo{Name: name, TypeArgs: append([]TypeID(nil), typeArgs...)})
	in.structIndex[sig] = lenStructs
	return in.Intern(Type{Kind: KindStruct, Struct: lenStructs})
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Struct returns the struct table entry for a KindStruct descriptor.
func (in *Interner) Struct(t Type) StructInfo {
	if t.Kind != KindStruct || int(t.Struct) >= len(in.structs) {
		return StructInfo{}
	}
	return in.structs[t.Struct]
}

// IsReference reports whether id names a reference type of either mutability.
func (in *Interner) IsReference(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindReference
}

// IsMutableReference reports whether id names a &mut type.
func (in *Interner) IsMutableReference(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindReference && t.Mutable
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Mutable bool
	Param   uint32
	Struct  uint32
}

func structSig(name string, typeArgs []TypeID) string {
	if len(typeArgs) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('<')
	for i, a := range typeArgs {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", a)
	}
	b.WriteByte('>')
	return b.String()
}
