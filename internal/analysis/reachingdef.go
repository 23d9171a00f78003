package analysis

import (
	"fmt"
	"slices"
	"strings"

	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// ReachingDefInfo maps a local to the offsets of the definitions reaching
// one instruction.
type ReachingDefInfo struct {
	Defs map[bytecode.TempIndex][]bytecode.CodeOffset
}

// ReachingDefAnnotation maps code offsets to reaching-definition sets.
// Written by the reaching-definitions pass only.
type ReachingDefAnnotation map[bytecode.CodeOffset]ReachingDefInfo

// ReachingDefs returns the reaching-definition annotation of the bound
// snapshot.
func ReachingDefs(t *target.FunctionTarget) (ReachingDefAnnotation, bool) {
	return target.GetAnnotation[ReachingDefAnnotation](t.Annotations(), ReachingDefKind)
}

// FormatReachingDefAnnotation renders the reaching definitions at off,
// locals in index order.
func FormatReachingDefAnnotation(t *target.FunctionTarget, off bytecode.CodeOffset) (string, bool) {
	ann, ok := ReachingDefs(t)
	if !ok {
		return "", false
	}
	info, ok := ann[off]
	if !ok || len(info.Defs) == 0 {
		return "", false
	}

	temps := make([]bytecode.TempIndex, 0, len(info.Defs))
	for temp := range info.Defs {
		temps = append(temps, temp)
	}
	slices.Sort(temps)

	var b strings.Builder
	b.WriteString("reaching defs: ")
	for i, temp := range temps {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(t.LocalDisplayName(temp))
		b.WriteString(" <- {")
		for j, def := range info.Defs[temp] {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%d", def)
		}
		b.WriteString("}")
	}
	return b.String(), true
}
