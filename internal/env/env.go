// Package env models the source-declared side of the analysis: the global
// environment produced by the front end, its modules, and per-function
// declarations. Everything here is immutable after construction and shared
// read-only across all analysis snapshots of a function.
package env

import (
	"fmt"

	"fortio.org/safecast"

	"stackless/internal/types"
)

// ModuleID identifies a module inside a GlobalEnv.
type ModuleID uint16

// FunID identifies a function inside its module.
type FunID uint32

// StructID identifies a struct inside its module.
type StructID uint32

// GlobalEnv owns the type interner and all modules of one program.
type GlobalEnv struct {
	Types   *types.Interner
	modules []*ModuleEnv
}

// NewGlobalEnv builds an empty environment with a fresh type interner.
func NewGlobalEnv() *GlobalEnv {
	return &GlobalEnv{Types: types.NewInterner()}
}

// AddModule creates a module named name and returns it.
func (g *GlobalEnv) AddModule(name string) *ModuleEnv {
	id, err := safecast.Conv[uint16](len(g.modules))
	if err != nil {
		panic(fmt.Errorf("module count overflow: %w", err))
	}
	m := newModuleEnv(g, ModuleID(id), name)
	g.modules = append(g.modules, m)
	return m
}

// Module returns the module for id, or nil when id is unknown.
func (g *GlobalEnv) Module(id ModuleID) *ModuleEnv {
	if int(id) >= len(g.modules) {
		return nil
	}
	return g.modules[id]
}

// Modules returns all modules in declaration order.
func (g *GlobalEnv) Modules() []*ModuleEnv {
	return g.modules
}
