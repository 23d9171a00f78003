// Package analysis declares the annotation payloads the pipeline's dataflow
// passes publish on a snapshot, the debug formatters that render them, and
// explicit carry-forward between snapshots. The fixpoint computations
// themselves live with the passes, outside this module's core.
package analysis

import "stackless/internal/target"

// Annotation kinds recognized in this pipeline. Each has exactly one
// writing pass.
const (
	LiveVarKind target.AnnotationKind = iota
	BorrowKind
	WriteBackKind
	PackRefKind
	LifetimeKind
	ReachingDefKind
)

// Carry copies the payloads for the listed kinds from one snapshot's store
// into another's. Propagation between snapshots never happens implicitly;
// a pass that needs its predecessors' results calls this on the snapshot it
// produces.
func Carry(from, to *target.Data, kinds ...target.AnnotationKind) {
	for _, k := range kinds {
		if v, ok := from.Annotations.Get(k); ok {
			to.Annotations.Set(k, v)
		}
	}
}
