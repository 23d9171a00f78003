package bytecode

// AttrID is a stable per-instruction tag. Unlike a CodeOffset it survives
// instruction insertion, removal and reordering, so source locations keyed
// by it stay valid across transformations.
type AttrID uint32

// CodeOffset is the zero-based index of an instruction within the current
// instruction sequence. Offsets are only meaningful for one snapshot.
type CodeOffset uint16

// SpecBlockID identifies a specification block, either anchored to an
// original code offset or synthesized by a transformation.
type SpecBlockID uint32

// TempIndex is the index of a local slot. Parameters occupy the low
// indices, pass-introduced temporaries follow the user-declared locals.
type TempIndex uint16

// Label names a branch target inside one function.
type Label uint16
