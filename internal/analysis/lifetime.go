package analysis

import (
	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// LifetimeAnnotation maps code offsets to the locals whose lifetime ends
// right after the instruction. Written by the lifetime pass only.
type LifetimeAnnotation map[bytecode.CodeOffset][]bytecode.TempIndex

// Lifetimes returns the lifetime annotation of the bound snapshot.
func Lifetimes(t *target.FunctionTarget) (LifetimeAnnotation, bool) {
	return target.GetAnnotation[LifetimeAnnotation](t.Annotations(), LifetimeKind)
}

// FormatLifetimeAnnotation renders the locals dying at off.
func FormatLifetimeAnnotation(t *target.FunctionTarget, off bytecode.CodeOffset) (string, bool) {
	ann, ok := Lifetimes(t)
	if !ok {
		return "", false
	}
	temps, ok := ann[off]
	if !ok || len(temps) == 0 {
		return "", false
	}
	return "ends lifetime: " + displayTemps(t, temps), true
}
