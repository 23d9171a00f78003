package analysis

import (
	"strings"

	"stackless/internal/bytecode"
	"stackless/internal/target"
)

// RegisterTestFormatters attaches the formatters of all six recognized
// annotation kinds in the canonical order used by test dumps. Kinds outside
// this list are not rendered even when present in the store.
func RegisterTestFormatters(t *target.FunctionTarget) {
	t.RegisterAnnotationFormatter(FormatLiveVarAnnotation)
	t.RegisterAnnotationFormatter(FormatBorrowAnnotation)
	t.RegisterAnnotationFormatter(FormatWriteBackAnnotation)
	t.RegisterAnnotationFormatter(FormatPackRefAnnotation)
	t.RegisterAnnotationFormatter(FormatLifetimeAnnotation)
	t.RegisterAnnotationFormatter(FormatReachingDefAnnotation)
}

func displayTemps(t *target.FunctionTarget, idxs []bytecode.TempIndex) string {
	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = t.LocalDisplayName(idx)
	}
	return strings.Join(parts, ", ")
}
