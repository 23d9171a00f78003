// Package driver sequences analysis passes over function targets: it owns
// the per-function snapshot chains, rebinds a fresh view per pass, and
// processes independent functions in parallel.
package driver

import (
	"fmt"
	"sync"

	"stackless/internal/env"
	"stackless/internal/target"
)

type funKey struct {
	Module env.ModuleID
	Fun    env.FunID
}

// Holder owns the snapshot lineage of every function under analysis. The
// last element of a chain is the current snapshot; earlier elements are
// superseded but stay valid for diagnostics.
type Holder struct {
	mu     sync.RWMutex
	chains map[funKey]*chain
}

type chain struct {
	fe   *env.FunctionEnv
	data []*target.Data
}

// NewHolder builds an empty holder.
func NewHolder() *Holder {
	return &Holder{chains: make(map[funKey]*chain)}
}

func key(fe *env.FunctionEnv) funKey {
	return funKey{Module: fe.ModuleEnv().ID(), Fun: fe.ID()}
}

// Init starts a function's lineage with its initial snapshot.
func (h *Holder) Init(fe *env.FunctionEnv, data *target.Data) {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := key(fe)
	if _, ok := h.chains[k]; ok {
		panic(fmt.Sprintf("driver: function %s::%s initialized twice",
			fe.ModuleEnv().Name(), fe.ModuleEnv().SymbolPool().Display(fe.Name())))
	}
	h.chains[k] = &chain{fe: fe, data: []*target.Data{data}}
}

// Current returns the function's current snapshot.
func (h *Holder) Current(fe *env.FunctionEnv) (*target.Data, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.chains[key(fe)]
	if !ok {
		return nil, false
	}
	return c.data[len(c.data)-1], true
}

// Chain returns the function's whole lineage, oldest first.
func (h *Holder) Chain(fe *env.FunctionEnv) []*target.Data {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.chains[key(fe)]
	if !ok {
		return nil
	}
	return append([]*target.Data(nil), c.data...)
}

// Target binds a fresh view of the function's current snapshot.
func (h *Holder) Target(fe *env.FunctionEnv) *target.FunctionTarget {
	data, ok := h.Current(fe)
	if !ok {
		panic(fmt.Sprintf("driver: function %s::%s has no snapshot",
			fe.ModuleEnv().Name(), fe.ModuleEnv().SymbolPool().Display(fe.Name())))
	}
	return target.NewFunctionTarget(fe, data)
}

// Rewrite applies proc to the function's current snapshot through a fresh
// view and appends the produced snapshot to the lineage. A processor that
// returns nil keeps the current snapshot (a read-only pass).
func (h *Holder) Rewrite(fe *env.FunctionEnv, proc Processor) *target.Data {
	cur, ok := h.Current(fe)
	if !ok {
		panic(fmt.Sprintf("driver: rewrite of uninitialized function %s::%s",
			fe.ModuleEnv().Name(), fe.ModuleEnv().SymbolPool().Display(fe.Name())))
	}

	next := proc.Process(target.NewFunctionTarget(fe, cur))
	if next == nil || next == cur {
		return cur
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.chains[key(fe)]
	if c.data[len(c.data)-1] != cur {
		panic(fmt.Sprintf("driver: concurrent rewrite of %s::%s",
			fe.ModuleEnv().Name(), fe.ModuleEnv().SymbolPool().Display(fe.Name())))
	}
	c.data = append(c.data, next)
	return next
}
