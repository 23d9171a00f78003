package bytecode

import (
	"fmt"

	"stackless/internal/types"
)

// Kind enumerates instruction kinds of the stackless bytecode.
type Kind uint8

const (
	// KindAssign moves or copies one local into another.
	KindAssign Kind = iota
	// KindLoad stores a constant into a local.
	KindLoad
	// KindCall applies an operation to source locals, binding destinations.
	KindCall
	// KindRet returns the listed locals.
	KindRet
	// KindBranch jumps to one of two labels depending on a condition local.
	KindBranch
	// KindJump jumps unconditionally.
	KindJump
	// KindLabel marks a branch target.
	KindLabel
	// KindAbort aborts with the code held in a local.
	KindAbort
	// KindSpecBlock attaches a specification block at this point.
	KindSpecBlock
	// KindNop does nothing.
	KindNop
)

// AssignMode distinguishes how an assignment transfers its source.
type AssignMode uint8

const (
	AssignMove AssignMode = iota
	AssignCopy
	AssignStore
)

func (m AssignMode) String() string {
	switch m {
	case AssignMove:
		return "move"
	case AssignCopy:
		return "copy"
	case AssignStore:
		return "store"
	default:
		return fmt.Sprintf("AssignMode(%d)", m)
	}
}

// Bytecode is one instruction. Kind selects which payload is meaningful.
type Bytecode struct {
	Kind Kind
	Attr AttrID

	Assign AssignPayload
	Load   LoadPayload
	Call   CallPayload
	Ret    RetPayload
	Branch BranchPayload
	Jump   JumpPayload
	Label  LabelPayload
	Abort  AbortPayload
	Spec   SpecPayload
}

// AssignPayload moves or copies Src into Dst.
type AssignPayload struct {
	Dst  TempIndex
	Src  TempIndex
	Mode AssignMode
}

// LoadPayload stores a constant into Dst.
type LoadPayload struct {
	Dst   TempIndex
	Value Constant
}

// CallPayload applies Op to Srcs, binding results to Dsts.
type CallPayload struct {
	Dsts []TempIndex
	Op   Operation
	Srcs []TempIndex
}

// RetPayload returns the listed locals.
type RetPayload struct {
	Srcs []TempIndex
}

// BranchPayload jumps to Then when Cond holds, to Else otherwise.
type BranchPayload struct {
	Then Label
	Else Label
	Cond TempIndex
}

// JumpPayload jumps to Target.
type JumpPayload struct {
	Target Label
}

// LabelPayload marks a branch target.
type LabelPayload struct {
	ID Label
}

// AbortPayload aborts with the code in Src.
type AbortPayload struct {
	Src TempIndex
}

// SpecPayload attaches the specification block ID.
type SpecPayload struct {
	ID SpecBlockID
}

// OpKind enumerates operations a call instruction can perform.
type OpKind uint8

const (
	OpInvalid OpKind = iota
	OpFunction
	OpPack
	OpUnpack
	OpBorrowLoc
	OpBorrowField
	OpBorrowGlobal
	OpMoveTo
	OpMoveFrom
	OpExists
	OpReadRef
	OpWriteRef
	OpFreezeRef
	OpDestroy
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpNot
	OpAnd
	OpOr
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
)

// Operation is the callee part of a call instruction. Func and Struct carry
// module-qualified display names; symbol identity is not needed at this
// level because the analysis never resolves callees structurally.
type Operation struct {
	Kind     OpKind
	Func     string // for OpFunction, e.g. "Coin::withdraw"
	Struct   string // for struct-addressed operations, e.g. "Coin::Coin"
	Field    string // for OpBorrowField
	TypeArgs []types.TypeID
}

// Fun builds a function-call operation.
func Fun(qualified string, typeArgs ...types.TypeID) Operation {
	return Operation{Kind: OpFunction, Func: qualified, TypeArgs: typeArgs}
}

// StructOp builds a struct-addressed operation (pack, unpack, borrows,
// global storage access).
func StructOp(kind OpKind, qualified string, typeArgs ...types.TypeID) Operation {
	return Operation{Kind: kind, Struct: qualified, TypeArgs: typeArgs}
}

// FieldOp builds a borrow-field operation.
func FieldOp(qualified, field string, typeArgs ...types.TypeID) Operation {
	return Operation{Kind: OpBorrowField, Struct: qualified, Field: field, TypeArgs: typeArgs}
}

// Op builds a payload-free operation (arithmetic, logic, reference ops).
func Op(kind OpKind) Operation {
	return Operation{Kind: kind}
}

// ConstKind enumerates constant kinds a load instruction can carry.
type ConstKind uint8

const (
	ConstBool ConstKind = iota
	ConstU8
	ConstU64
	ConstU128
	ConstAddress
)

// Constant is an immediate operand of a load instruction.
type Constant struct {
	Kind    ConstKind
	Bool    bool
	Uint    uint64
	Address string // hex form, for ConstAddress
}

func (c Constant) String() string {
	switch c.Kind {
	case ConstBool:
		if c.Bool {
			return "true"
		}
		return "false"
	case ConstU8, ConstU64, ConstU128:
		return fmt.Sprintf("%d", c.Uint)
	case ConstAddress:
		return "0x" + c.Address
	default:
		return "?"
	}
}
