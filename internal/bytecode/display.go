package bytecode

import (
	"fmt"
	"strings"

	"stackless/internal/types"
)

// DisplayContext is what an instruction needs from its owning function view
// to render itself: local names, type display, and a reference-ness
// predicate on local types.
type DisplayContext interface {
	LocalDisplayName(idx TempIndex) string
	LocalTypeID(idx TempIndex) types.TypeID
	TypeDisplay(id types.TypeID) string
	IsRefType(id types.TypeID) bool
}

// Display renders the instruction in the surface form used by debug dumps.
func (bc *Bytecode) Display(ctx DisplayContext) string {
	switch bc.Kind {
	case KindAssign:
		src := ctx.LocalDisplayName(bc.Assign.Src)
		dst := ctx.LocalDisplayName(bc.Assign.Dst)
		// References re-bind, they are neither moved nor copied.
		if ctx.IsRefType(ctx.LocalTypeID(bc.Assign.Src)) {
			return fmt.Sprintf("%s := %s", dst, src)
		}
		return fmt.Sprintf("%s := %s(%s)", dst, bc.Assign.Mode, src)
	case KindLoad:
		return fmt.Sprintf("%s := %s", ctx.LocalDisplayName(bc.Load.Dst), bc.Load.Value)
	case KindCall:
		return bc.displayCall(ctx)
	case KindRet:
		if len(bc.Ret.Srcs) == 0 {
			return "return"
		}
		return "return " + displayTemps(ctx, bc.Ret.Srcs)
	case KindBranch:
		return fmt.Sprintf("if (%s) goto L%d else goto L%d",
			ctx.LocalDisplayName(bc.Branch.Cond), bc.Branch.Then, bc.Branch.Else)
	case KindJump:
		return fmt.Sprintf("goto L%d", bc.Jump.Target)
	case KindLabel:
		return fmt.Sprintf("L%d:", bc.Label.ID)
	case KindAbort:
		return fmt.Sprintf("abort(%s)", ctx.LocalDisplayName(bc.Abort.Src))
	case KindSpecBlock:
		return fmt.Sprintf("spec #%d", bc.Spec.ID)
	case KindNop:
		return "nop"
	default:
		return fmt.Sprintf("<bytecode kind=%d>", bc.Kind)
	}
}

func (bc *Bytecode) displayCall(ctx DisplayContext) string {
	var b strings.Builder
	if len(bc.Call.Dsts) > 0 {
		b.WriteString(displayTemps(ctx, bc.Call.Dsts))
		b.WriteString(" := ")
	}
	op := &bc.Call.Op
	switch op.Kind {
	case OpFunction:
		b.WriteString("call ")
		b.WriteString(op.Func)
		writeTypeArgs(&b, ctx, op.TypeArgs)
	case OpPack:
		b.WriteString("pack ")
		b.WriteString(op.Struct)
		writeTypeArgs(&b, ctx, op.TypeArgs)
	case OpUnpack:
		b.WriteString("unpack ")
		b.WriteString(op.Struct)
		writeTypeArgs(&b, ctx, op.TypeArgs)
	case OpBorrowLoc:
		b.WriteString("borrow_local")
	case OpBorrowField:
		fmt.Fprintf(&b, "borrow_field<%s>.%s", op.Struct, op.Field)
	case OpBorrowGlobal:
		b.WriteString("borrow_global<")
		b.WriteString(op.Struct)
		b.WriteString(">")
	case OpMoveTo:
		b.WriteString("move_to<")
		b.WriteString(op.Struct)
		b.WriteString(">")
	case OpMoveFrom:
		b.WriteString("move_from<")
		b.WriteString(op.Struct)
		b.WriteString(">")
	case OpExists:
		b.WriteString("exists<")
		b.WriteString(op.Struct)
		b.WriteString(">")
	case OpReadRef:
		b.WriteString("read_ref")
	case OpWriteRef:
		b.WriteString("write_ref")
	case OpFreezeRef:
		b.WriteString("freeze_ref")
	case OpDestroy:
		b.WriteString("destroy")
	default:
		b.WriteString(opSymbol(op.Kind))
	}
	b.WriteByte('(')
	b.WriteString(displayTemps(ctx, bc.Call.Srcs))
	b.WriteByte(')')
	return b.String()
}

func opSymbol(k OpKind) string {
	switch k {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpNot:
		return "!"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpEq:
		return "=="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return fmt.Sprintf("<op %d>", k)
	}
}

func displayTemps(ctx DisplayContext, idxs []TempIndex) string {
	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = ctx.LocalDisplayName(idx)
	}
	return strings.Join(parts, ", ")
}

func writeTypeArgs(b *strings.Builder, ctx DisplayContext, args []types.TypeID) {
	if len(args) == 0 {
		return
	}
	b.WriteByte('<')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ctx.TypeDisplay(a))
	}
	b.WriteByte('>')
}
