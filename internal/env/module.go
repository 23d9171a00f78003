package env

import (
	"fmt"

	"fortio.org/safecast"

	"stackless/internal/symbols"
)

// StructDecl is a struct declaration as seen by the analysis.
type StructDecl struct {
	Name       symbols.Symbol
	IsResource bool
}

// ModuleEnv holds one module's declarations and its symbol pool.
type ModuleEnv struct {
	env  *GlobalEnv
	id   ModuleID
	name string
	pool *symbols.Pool

	structs []StructDecl
	funcs   []*FunctionEnv
	pragmas map[string]bool
}

func newModuleEnv(g *GlobalEnv, id ModuleID, name string) *ModuleEnv {
	return &ModuleEnv{
		env:     g,
		id:      id,
		name:    name,
		pool:    symbols.NewPool(),
		pragmas: make(map[string]bool),
	}
}

// GlobalEnv returns the owning environment.
func (m *ModuleEnv) GlobalEnv() *GlobalEnv { return m.env }

// ID returns the module's ID.
func (m *ModuleEnv) ID() ModuleID { return m.id }

// Name returns the module's declared name.
func (m *ModuleEnv) Name() string { return m.name }

// SymbolPool returns the pool all of this module's symbols live in.
func (m *ModuleEnv) SymbolPool() *symbols.Pool { return m.pool }

// AddStruct declares a struct and returns its ID.
func (m *ModuleEnv) AddStruct(name string, isResource bool) StructID {
	id, err := safecast.Conv[uint32](len(m.structs))
	if err != nil {
		panic(fmt.Errorf("struct count overflow: %w", err))
	}
	m.structs = append(m.structs, StructDecl{Name: m.pool.Make(name), IsResource: isResource})
	return StructID(id)
}

// Struct returns the declaration for id.
func (m *ModuleEnv) Struct(id StructID) (StructDecl, bool) {
	if int(id) >= len(m.structs) {
		return StructDecl{}, false
	}
	return m.structs[id], true
}

// StructName returns the display name of a declared struct.
func (m *ModuleEnv) StructName(id StructID) string {
	d, ok := m.Struct(id)
	if !ok {
		return "?"
	}
	return m.pool.Display(d.Name)
}

// SetPragma records a module-scope pragma.
func (m *ModuleEnv) SetPragma(name string, value bool) {
	m.pragmas[name] = value
}

// Pragma resolves a module-scope pragma.
func (m *ModuleEnv) Pragma(name string) (bool, bool) {
	v, ok := m.pragmas[name]
	return v, ok
}

// Functions returns the module's functions in declaration order.
func (m *ModuleEnv) Functions() []*FunctionEnv {
	return m.funcs
}

// Function returns the function for id, or nil when id is unknown.
func (m *ModuleEnv) Function(id FunID) *FunctionEnv {
	if int(id) >= len(m.funcs) {
		return nil
	}
	return m.funcs[id]
}
