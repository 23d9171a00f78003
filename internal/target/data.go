package target

import (
	"fmt"

	"stackless/internal/bytecode"
	"stackless/internal/env"
	"stackless/internal/source"
	"stackless/internal/types"
)

// Data is one analysis snapshot of a function: the rewritable payload a
// pass consumes and supersedes. A snapshot is never mutated once it has
// been handed to a pass; the pass derives and returns a new one. A
// superseded snapshot stays valid for anyone still holding it but must not
// be fed to a later pass.
//
// Exported fields are the parts a pass may replace outright (instruction
// sequence, location map) or grow (local types). The invariant-guarded
// maps, reference-parameter aliases and the two specification-block maps,
// are only reachable through methods that enforce them.
type Data struct {
	// Code is the current instruction sequence. Offsets into it are only
	// meaningful for this snapshot.
	Code []bytecode.Bytecode

	// LocalTypes holds the types of all local slots: parameters first,
	// then user-declared locals, then pass-introduced temporaries. Slots
	// referenced by still-live instructions are never renumbered.
	LocalTypes []types.TypeID

	// ReturnTypes holds the function's return types.
	ReturnTypes []types.TypeID

	// Acquires lists the global resources acquired by the function.
	Acquires []env.StructID

	// Locations maps instruction tags to source locations. The map is
	// partial; unmapped tags fall back to the function's declared location.
	Locations map[bytecode.AttrID]source.Loc

	// Annotations is this snapshot's analysis-result store.
	Annotations Annotations

	paramCount int
	tys        *types.Interner

	refParamAliases map[int]int

	// givenSpecBlocks maps source-given block IDs to the code offset in the
	// ORIGINAL bytecode whose attached spec (FunctionEnv.Spec().OnImpl)
	// holds the block's conditions. Fixed at first materialization; shared
	// untouched across the whole snapshot lineage.
	givenSpecBlocks map[bytecode.SpecBlockID]bytecode.CodeOffset

	// genSpecBlocks maps transformation-synthesized block IDs to their
	// conditions. Grow-only.
	genSpecBlocks map[bytecode.SpecBlockID]*env.Spec

	nextSpecBlock bytecode.SpecBlockID
}

// NewData builds the initial snapshot of a function from its source-declared
// bytecode, local and return types, and the source-anchored specification
// block map. The aliasing map, the synthesized block map and the annotation
// store start empty; acquired resources come from the declaration.
func NewData(
	fe *env.FunctionEnv,
	code []bytecode.Bytecode,
	localTypes []types.TypeID,
	returnTypes []types.TypeID,
	givenSpecBlocks map[bytecode.SpecBlockID]bytecode.CodeOffset,
) *Data {
	if len(localTypes) < fe.ParameterCount() {
		panic(fmt.Sprintf("target: %d local types for %d parameters",
			len(localTypes), fe.ParameterCount()))
	}

	given := make(map[bytecode.SpecBlockID]bytecode.CodeOffset, len(givenSpecBlocks))
	next := bytecode.SpecBlockID(0)
	for id, off := range givenSpecBlocks {
		if _, ok := fe.Spec().OnImpl[off]; !ok {
			panic(fmt.Sprintf("target: given spec block %d points at offset %d with no attached spec", id, off))
		}
		given[id] = off
		if id >= next {
			next = id + 1
		}
	}

	return &Data{
		Code:            code,
		LocalTypes:      append([]types.TypeID(nil), localTypes...),
		ReturnTypes:     append([]types.TypeID(nil), returnTypes...),
		Acquires:        append([]env.StructID(nil), fe.Acquires()...),
		Locations:       make(map[bytecode.AttrID]source.Loc),
		paramCount:      fe.ParameterCount(),
		tys:             fe.GlobalEnv().Types,
		refParamAliases: make(map[int]int),
		givenSpecBlocks: given,
		genSpecBlocks:   make(map[bytecode.SpecBlockID]*env.Spec),
		nextSpecBlock:   next,
	}
}

// Derive starts the successor snapshot: local and return types, acquired
// resources, the aliasing map and the synthesized block map carry over as
// copies; the source-anchored block map is shared (it is write-once); the
// annotation store starts empty, since carry-forward is always an explicit
// act of the deriving pass.
func (d *Data) Derive() *Data {
	aliases := make(map[int]int, len(d.refParamAliases))
	for k, v := range d.refParamAliases {
		aliases[k] = v
	}
	gen := make(map[bytecode.SpecBlockID]*env.Spec, len(d.genSpecBlocks))
	for k, v := range d.genSpecBlocks {
		gen[k] = v
	}
	locs := make(map[bytecode.AttrID]source.Loc, len(d.Locations))
	for k, v := range d.Locations {
		locs[k] = v
	}

	return &Data{
		Code:            d.Code,
		LocalTypes:      append([]types.TypeID(nil), d.LocalTypes...),
		ReturnTypes:     append([]types.TypeID(nil), d.ReturnTypes...),
		Acquires:        append([]env.StructID(nil), d.Acquires...),
		Locations:       locs,
		paramCount:      d.paramCount,
		tys:             d.tys,
		refParamAliases: aliases,
		givenSpecBlocks: d.givenSpecBlocks,
		genSpecBlocks:   gen,
		nextSpecBlock:   d.nextSpecBlock,
	}
}

// ParameterCount returns the number of parameter slots.
func (d *Data) ParameterCount() int { return d.paramCount }

// LocalCount returns the number of local slots, temporaries included.
func (d *Data) LocalCount() int { return len(d.LocalTypes) }

// AddRefParamAlias records that the &mut parameter at paramIdx is returned
// through return slot retIdx. Re-inserting the same pair is a no-op;
// inserting a conflicting pair or an ill-typed key is a contract violation.
func (d *Data) AddRefParamAlias(paramIdx, retIdx int) {
	if paramIdx >= d.paramCount {
		panic(fmt.Sprintf("target: alias key %d is not a parameter slot (%d parameters)", paramIdx, d.paramCount))
	}
	if !d.tys.IsMutableReference(d.LocalTypes[paramIdx]) {
		panic(fmt.Sprintf("target: alias key %d is not a &mut parameter", paramIdx))
	}
	if retIdx >= len(d.ReturnTypes) {
		panic(fmt.Sprintf("target: alias value %d is not a return slot (%d returns)", retIdx, len(d.ReturnTypes)))
	}
	if prev, ok := d.refParamAliases[paramIdx]; ok {
		if prev != retIdx {
			panic(fmt.Sprintf("target: conflicting alias for parameter %d: %d vs %d", paramIdx, prev, retIdx))
		}
		return
	}
	d.refParamAliases[paramIdx] = retIdx
}

// RefParamAlias returns the return slot aliased to the &mut parameter at
// paramIdx, if one was recorded.
func (d *Data) RefParamAlias(paramIdx int) (int, bool) {
	v, ok := d.refParamAliases[paramIdx]
	return v, ok
}

// RefParamAliasCount returns the number of recorded aliases.
func (d *Data) RefParamAliasCount() int { return len(d.refParamAliases) }

// GivenSpecBlock returns the original code offset anchoring a source-given
// block ID.
func (d *Data) GivenSpecBlock(id bytecode.SpecBlockID) (bytecode.CodeOffset, bool) {
	off, ok := d.givenSpecBlocks[id]
	return off, ok
}

// GivenSpecBlocks returns a copy of the source-anchored block map, for
// verifiers comparing snapshots across a pass.
func (d *Data) GivenSpecBlocks() map[bytecode.SpecBlockID]bytecode.CodeOffset {
	m := make(map[bytecode.SpecBlockID]bytecode.CodeOffset, len(d.givenSpecBlocks))
	for id, off := range d.givenSpecBlocks {
		m[id] = off
	}
	return m
}

// GeneratedSpecBlock returns the conditions of a synthesized block ID.
func (d *Data) GeneratedSpecBlock(id bytecode.SpecBlockID) (*env.Spec, bool) {
	s, ok := d.genSpecBlocks[id]
	return s, ok
}

// NewSpecBlock synthesizes a fresh block holding spec and returns its ID.
// IDs are allocated after the largest source-given ID, so the two block
// maps can never overlap.
func (d *Data) NewSpecBlock(spec *env.Spec) bytecode.SpecBlockID {
	id := d.nextSpecBlock
	d.nextSpecBlock++
	d.genSpecBlocks[id] = spec
	return id
}
