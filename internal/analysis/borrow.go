package analysis

import (
	"strings"

	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// BorrowEdge records that Dst borrows from Src.
type BorrowEdge struct {
	Src bytecode.TempIndex
	Dst bytecode.TempIndex
	Mut bool
}

// BorrowInfo holds the borrow graph facts at one instruction.
type BorrowInfo struct {
	Edges []BorrowEdge
}

// BorrowAnnotation maps code offsets to borrow facts.
// Written by the borrow pass only.
type BorrowAnnotation map[bytecode.CodeOffset]BorrowInfo

// Borrows returns the borrow annotation of the bound snapshot.
func Borrows(t *target.FunctionTarget) (BorrowAnnotation, bool) {
	return target.GetAnnotation[BorrowAnnotation](t.Annotations(), BorrowKind)
}

// FormatBorrowAnnotation renders the borrow edges at off.
func FormatBorrowAnnotation(t *target.FunctionTarget, off bytecode.CodeOffset) (string, bool) {
	ann, ok := Borrows(t)
	if !ok {
		return "", false
	}
	info, ok := ann[off]
	if !ok || len(info.Edges) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString("borrows: ")
	for i, e := range info.Edges {
		if i > 0 {
			b.WriteString(", ")
		}
		if e.Mut {
			b.WriteString("&mut ")
		} else {
			b.WriteString("&")
		}
		b.WriteString(t.LocalDisplayName(e.Src))
		b.WriteString(" -> ")
		b.WriteString(t.LocalDisplayName(e.Dst))
	}
	return b.String(), true
}
