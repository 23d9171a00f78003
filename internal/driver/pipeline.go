package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"stackless/internal/env"
)

// Pipeline is a fixed, ordered sequence of processors. Passes for one
// function run strictly sequentially; independent functions run in
// parallel, which is safe because a published snapshot is immutable and the
// function environments are read-only.
type Pipeline struct {
	procs []Processor

	// Verify re-checks the transformation contract after every pass.
	Verify bool
}

// NewPipeline builds a pipeline over the given processors.
func NewPipeline(procs ...Processor) *Pipeline {
	return &Pipeline{procs: procs}
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(proc Processor) {
	p.procs = append(p.procs, proc)
}

// Names returns the processor names in pipeline order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.procs))
	for i, proc := range p.procs {
		names[i] = proc.Name()
	}
	return names
}

// RunFunction applies all passes to one function, in order.
func (p *Pipeline) RunFunction(ctx context.Context, h *Holder, fe *env.FunctionEnv, timer *PassTimer) error {
	fname := fe.ModuleEnv().Name() + "::" + fe.ModuleEnv().SymbolPool().Display(fe.Name())

	for _, proc := range p.procs {
		if err := ctx.Err(); err != nil {
			return err
		}

		var stop func()
		if timer != nil {
			stop = timer.Track(proc.Name())
		}
		prev, _ := h.Current(fe)
		start := time.Now()

		next := h.Rewrite(fe, proc)

		passRuns(proc.Name()).Inc()
		passDuration(proc.Name()).UpdateDuration(start)
		if stop != nil {
			stop()
		}

		if p.Verify && next != prev {
			if err := checkTransformation(fe, prev, next); err != nil {
				return fmt.Errorf("pass %q broke the transformation contract on %s: %w", proc.Name(), fname, err)
			}
		}
	}

	functionsProcessed.Inc()
	return nil
}

// Run applies the pipeline to every non-native function of the environment
// that has an initialized snapshot chain, processing functions in parallel.
// jobs <= 0 uses GOMAXPROCS.
func (p *Pipeline) Run(ctx context.Context, genv *env.GlobalEnv, h *Holder, jobs int) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var fes []*env.FunctionEnv
	for _, m := range genv.Modules() {
		for _, fe := range m.Functions() {
			if fe.IsNative() {
				continue
			}
			if _, ok := h.Current(fe); ok {
				fes = append(fes, fe)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(fes), 1)))
	for _, fe := range fes {
		fe := fe
		g.Go(func() error {
			return p.RunFunction(gctx, h, fe, nil)
		})
	}
	return g.Wait()
}
