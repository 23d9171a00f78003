package analysis

import (
	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// PackRefInfo lists the references that must be packed before and unpacked
// after one instruction.
type PackRefInfo struct {
	PackBefore  []bytecode.TempIndex
	UnpackAfter []bytecode.TempIndex
}

// PackRefAnnotation maps code offsets to reference packing facts.
// Written by the reference-packing pass only.
type PackRefAnnotation map[bytecode.CodeOffset]PackRefInfo

// PackRefs returns the packed-reference annotation of the bound snapshot.
func PackRefs(t *target.FunctionTarget) (PackRefAnnotation, bool) {
	return target.GetAnnotation[PackRefAnnotation](t.Annotations(), PackRefKind)
}

// FormatPackRefAnnotation renders the packing facts at off.
func FormatPackRefAnnotation(t *target.FunctionTarget, off bytecode.CodeOffset) (string, bool) {
	ann, ok := PackRefs(t)
	if !ok {
		return "", false
	}
	info, ok := ann[off]
	if !ok {
		return "", false
	}
	switch {
	case len(info.PackBefore) > 0 && len(info.UnpackAfter) > 0:
		return "pack refs: " + displayTemps(t, info.PackBefore) +
			"; unpack refs: " + displayTemps(t, info.UnpackAfter), true
	case len(info.PackBefore) > 0:
		return "pack refs: " + displayTemps(t, info.PackBefore), true
	case len(info.UnpackAfter) > 0:
		return "unpack refs: " + displayTemps(t, info.UnpackAfter), true
	default:
		return "", false
	}
}
