package driver

import (
	"stackless/internal/target"
)

// Processor is one analysis pass. It reads the function through the bound
// view and returns the successor snapshot, or nil when it only computed
// results into its own bookkeeping without rewriting anything.
//
// A processor must not retain the view past the call and must not feed a
// superseded snapshot back into the pipeline.
type Processor interface {
	Name() string
	Process(t *target.FunctionTarget) *target.Data
}
