package analysis

import (
	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// LiveVarInfo holds the live-variable sets around one instruction.
type LiveVarInfo struct {
	Before []bytecode.TempIndex
	After  []bytecode.TempIndex
}

// LiveVarAnnotation maps code offsets to their live-variable sets.
// Written by the live-variable pass only.
type LiveVarAnnotation map[bytecode.CodeOffset]LiveVarInfo

// LiveVars returns the live-variable annotation of the bound snapshot.
func LiveVars(t *target.FunctionTarget) (LiveVarAnnotation, bool) {
	return target.GetAnnotation[LiveVarAnnotation](t.Annotations(), LiveVarKind)
}

// FormatLiveVarAnnotation renders the live-before set at off.
func FormatLiveVarAnnotation(t *target.FunctionTarget, off bytecode.CodeOffset) (string, bool) {
	ann, ok := LiveVars(t)
	if !ok {
		return "", false
	}
	info, ok := ann[off]
	if !ok {
		return "", false
	}
	return "live vars: " + displayTemps(t, info.Before), true
}
