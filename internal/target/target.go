// Package target is the backbone of the analysis pipeline: a per-function
// view combining the immutable source-declared environment with one
// rewritable analysis snapshot. Each pass reads through a FunctionTarget
// and produces the next snapshot; the driver rebinds a fresh view per pass.
package target

import (
	"fmt"

	"stackless/internal/bytecode"
	"stackless/internal/env"
	"stackless/internal/source"
	"stackless/internal/symbols"
	"stackless/internal/types"
)

// FunctionTarget is a drop-in replacement for a FunctionEnv which lets
// passes analyze and rewrite bytecode and parameter/local types. It binds
// the shared FunctionEnv to one snapshot and is created fresh per pass or
// per rendering; it must never be reused across snapshots.
type FunctionTarget struct {
	fe   *env.FunctionEnv
	data *Data

	nameToIndex map[symbols.Symbol]int
	tctx        types.DisplayContext

	// Debugging and testing only: attached annotation formatters.
	formatters []AnnotationFormatter
}

// NewFunctionTarget binds fe to data. It derives the name-to-index lookup
// over all local slots and rejects generated temporary names that collide
// with declared names.
func NewFunctionTarget(fe *env.FunctionEnv, data *Data) *FunctionTarget {
	t := &FunctionTarget{fe: fe, data: data}

	pool := fe.ModuleEnv().SymbolPool()
	params := make([]string, 0, len(fe.TypeParameters()))
	for _, tp := range fe.TypeParameters() {
		params = append(params, pool.Display(tp.Name))
	}
	t.tctx = types.DisplayContext{In: fe.GlobalEnv().Types, TypeParams: params}

	t.nameToIndex = make(map[symbols.Symbol]int, data.LocalCount())
	for idx := 0; idx < data.LocalCount(); idx++ {
		name := t.LocalName(idx)
		if _, ok := t.nameToIndex[name]; ok {
			if idx >= fe.LocalCount() {
				panic(fmt.Sprintf("target: generated local name %q collides with an existing local",
					pool.Display(name)))
			}
			continue // duplicate user name: first match wins
		}
		t.nameToIndex[name] = idx
	}
	return t
}

// FunctionEnv returns the bound source-level view.
func (t *FunctionTarget) FunctionEnv() *env.FunctionEnv { return t.fe }

// Data returns the bound snapshot. Passes derive their result from it.
func (t *FunctionTarget) Data() *Data { return t.data }

// Name returns the function's interned name.
func (t *FunctionTarget) Name() symbols.Symbol { return t.fe.Name() }

// ID returns the function's ID within its module.
func (t *FunctionTarget) ID() env.FunID { return t.fe.ID() }

// SymbolPool is a shortcut for the owning module's symbol pool.
func (t *FunctionTarget) SymbolPool() *symbols.Pool { return t.fe.ModuleEnv().SymbolPool() }

// ModuleEnv is a shortcut for the owning module.
func (t *FunctionTarget) ModuleEnv() *env.ModuleEnv { return t.fe.ModuleEnv() }

// GlobalEnv is a shortcut for the owning global environment.
func (t *FunctionTarget) GlobalEnv() *env.GlobalEnv { return t.fe.GlobalEnv() }

// Loc returns the function's declared location.
func (t *FunctionTarget) Loc() source.Loc { return t.fe.Loc() }

// BytecodeLoc returns the source location of the instruction tagged attr,
// falling back to the function's declared location when unmapped.
func (t *FunctionTarget) BytecodeLoc(attr bytecode.AttrID) source.Loc {
	if loc, ok := t.data.Locations[attr]; ok {
		return loc
	}
	return t.Loc()
}

// IsNative reports whether the function has no bytecode body.
func (t *FunctionTarget) IsNative() bool { return t.fe.IsNative() }

// IsPublic reports whether the function is callable across modules.
func (t *FunctionTarget) IsPublic() bool { return t.fe.IsPublic() }

// IsMutating reports whether the function takes at least one &mut parameter.
func (t *FunctionTarget) IsMutating() bool { return t.fe.IsMutating() }

// TypeParameters returns the declared type parameters in order.
func (t *FunctionTarget) TypeParameters() []env.TypeParameter { return t.fe.TypeParameters() }

// ReturnType returns the return type at idx. idx must be below ReturnCount.
func (t *FunctionTarget) ReturnType(idx int) types.TypeID {
	if idx >= len(t.data.ReturnTypes) {
		panic(fmt.Sprintf("target: return index %d out of range (%d returns)", idx, len(t.data.ReturnTypes)))
	}
	return t.data.ReturnTypes[idx]
}

// ReturnTypes returns this snapshot's return types.
func (t *FunctionTarget) ReturnTypes() []types.TypeID { return t.data.ReturnTypes }

// ReturnCount returns the number of return values.
func (t *FunctionTarget) ReturnCount() int { return len(t.data.ReturnTypes) }

// ParameterCount returns the number of parameters.
func (t *FunctionTarget) ParameterCount() int { return t.fe.ParameterCount() }

// LocalCount returns the number of local slots in this snapshot, including
// pass-introduced temporaries.
func (t *FunctionTarget) LocalCount() int { return t.data.LocalCount() }

// UserLocalCount returns the number of user-declared locals, excluding
// temporaries introduced by transformations.
func (t *FunctionTarget) UserLocalCount() int { return t.fe.LocalCount() }

// LocalName returns the name of the local at idx: the declared name for
// parameters and user locals, a generated stable name for temporaries.
func (t *FunctionTarget) LocalName(idx int) symbols.Symbol {
	if idx < t.fe.LocalCount() {
		return t.fe.LocalName(idx)
	}
	return t.SymbolPool().Make(fmt.Sprintf("$t%d", idx))
}

// LocalIndex returns the index of the first local named name.
func (t *FunctionTarget) LocalIndex(name symbols.Symbol) (int, bool) {
	idx, ok := t.nameToIndex[name]
	return idx, ok
}

// LocalType returns the type of the local at idx in this snapshot. idx must
// be below LocalCount.
func (t *FunctionTarget) LocalType(idx int) types.TypeID {
	if idx >= t.data.LocalCount() {
		panic(fmt.Sprintf("target: local index %d out of range (%d locals)", idx, t.data.LocalCount()))
	}
	return t.data.LocalTypes[idx]
}

// Spec returns the function's declared specification.
func (t *FunctionTarget) Spec() *env.Spec { return t.fe.Spec() }

// SpecAt resolves a specification block: source-given blocks resolve
// through the original code offset into the declared spec, synthesized
// blocks through the snapshot's own map. An unresolvable ID is a contract
// violation, never a user-facing error.
func (t *FunctionTarget) SpecAt(id bytecode.SpecBlockID) *env.Spec {
	if off, ok := t.data.GivenSpecBlock(id); ok {
		spec, ok := t.fe.Spec().OnImpl[off]
		if !ok {
			panic(fmt.Sprintf("target: given spec block %d has no spec at offset %d", id, off))
		}
		return spec
	}
	if spec, ok := t.data.GeneratedSpecBlock(id); ok {
		return spec
	}
	panic(fmt.Sprintf("target: spec block %d not found", id))
}

// PragmaBool resolves a boolean pragma through the function, then the
// module, then def. It never fails.
func (t *FunctionTarget) PragmaBool(name string, def func() bool) bool {
	return t.fe.PragmaBool(name, def)
}

// Code returns this snapshot's instruction sequence.
func (t *FunctionTarget) Code() []bytecode.Bytecode { return t.data.Code }

// Annotations returns this snapshot's annotation store.
func (t *FunctionTarget) Annotations() *Annotations { return &t.data.Annotations }

// Acquires returns the global resources acquired by the function.
func (t *FunctionTarget) Acquires() []env.StructID { return t.data.Acquires }

// RefParamAlias returns the return slot aliased to the &mut parameter at
// paramIdx, if recorded.
func (t *FunctionTarget) RefParamAlias(paramIdx int) (int, bool) {
	return t.data.RefParamAlias(paramIdx)
}

// CallEndsLifetime reports whether a call to this function terminates any
// borrow derived from its arguments: the function must be public and no
// return type may be a reference, otherwise a caller-held borrow could
// still be rooted through the call's result. Non-public functions are
// excluded because cross-module lifetime reasoning is not modeled here.
func (t *FunctionTarget) CallEndsLifetime() bool {
	if !t.IsPublic() {
		return false
	}
	tys := t.GlobalEnv().Types
	for _, rt := range t.data.ReturnTypes {
		if tys.IsReference(rt) {
			return false
		}
	}
	return true
}
