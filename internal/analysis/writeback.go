package analysis

import (
	"strings"

	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// WriteBackAction records that the value behind reference Ref must be
// written back into local Dst when the reference's borrow ends.
type WriteBackAction struct {
	Ref bytecode.TempIndex
	Dst bytecode.TempIndex
}

// WriteBackAnnotation maps code offsets to the write-back obligations due
// there. Written by the write-back elaboration pass only.
type WriteBackAnnotation map[bytecode.CodeOffset][]WriteBackAction

// WriteBacks returns the write-back annotation of the bound snapshot.
func WriteBacks(t *target.FunctionTarget) (WriteBackAnnotation, bool) {
	return target.GetAnnotation[WriteBackAnnotation](t.Annotations(), WriteBackKind)
}

// FormatWriteBackAnnotation renders the write-back obligations at off.
func FormatWriteBackAnnotation(t *target.FunctionTarget, off bytecode.CodeOffset) (string, bool) {
	ann, ok := WriteBacks(t)
	if !ok {
		return "", false
	}
	actions, ok := ann[off]
	if !ok || len(actions) == 0 {
		return "", false
	}
	var b strings.Builder
	b.WriteString("writeback: ")
	for i, a := range actions {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.LocalDisplayName(a.Dst))
		b.WriteString(" <- ")
		b.WriteString(t.LocalDisplayName(a.Ref))
	}
	return b.String(), true
}
