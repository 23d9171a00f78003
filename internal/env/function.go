package env

import (
	"fmt"

	"fortio.org/safecast"

	"stackless/internal/source"
	"stackless/internal/symbols"
	"stackless/internal/types"
)

// NamedType pairs a declared name with its type, as given by the front end.
type NamedType struct {
	Name string
	Type types.TypeID
}

// TypeParameter is a declared type parameter of a function.
type TypeParameter struct {
	Name symbols.Symbol
}

// LocalDecl is a resolved parameter or user-declared local.
type LocalDecl struct {
	Name symbols.Symbol
	Type types.TypeID
}

// FunctionDecl is the raw declaration handed over by the front end.
type FunctionDecl struct {
	Name       string
	Loc        source.Loc
	TypeParams []string
	Params     []NamedType
	Locals     []NamedType // user-declared locals beyond the parameters
	Returns    []types.TypeID
	Native     bool
	Public     bool
	Acquires   []StructID
	Spec       *Spec
	Pragmas    map[string]bool
}

// FunctionEnv is the immutable source-level view of one function. It is
// shared by reference across every analysis snapshot of the function and
// outlives all of them.
type FunctionEnv struct {
	module *ModuleEnv
	id     FunID
	name   symbols.Symbol
	loc    source.Loc

	typeParams []TypeParameter
	locals     []LocalDecl // parameters first, then user-declared locals
	paramCount int
	returns    []types.TypeID

	native   bool
	public   bool
	acquires []StructID
	spec     *Spec
	pragmas  map[string]bool
}

// AddFunction resolves decl against the module and registers the function.
func (m *ModuleEnv) AddFunction(decl FunctionDecl) *FunctionEnv {
	id, err := safecast.Conv[uint32](len(m.funcs))
	if err != nil {
		panic(fmt.Errorf("function count overflow: %w", err))
	}

	fe := &FunctionEnv{
		module:     m,
		id:         FunID(id),
		name:       m.pool.Make(decl.Name),
		loc:        decl.Loc,
		paramCount: len(decl.Params),
		returns:    append([]types.TypeID(nil), decl.Returns...),
		native:     decl.Native,
		public:     decl.Public,
		acquires:   append([]StructID(nil), decl.Acquires...),
		spec:       decl.Spec,
		pragmas:    decl.Pragmas,
	}
	if fe.spec == nil {
		fe.spec = &Spec{}
	}
	if fe.pragmas == nil {
		fe.pragmas = make(map[string]bool)
	}
	for _, tp := range decl.TypeParams {
		fe.typeParams = append(fe.typeParams, TypeParameter{Name: m.pool.Make(tp)})
	}
	for _, p := range decl.Params {
		fe.locals = append(fe.locals, LocalDecl{Name: m.pool.Make(p.Name), Type: p.Type})
	}
	for _, l := range decl.Locals {
		fe.locals = append(fe.locals, LocalDecl{Name: m.pool.Make(l.Name), Type: l.Type})
	}

	m.funcs = append(m.funcs, fe)
	return fe
}

// ModuleEnv returns the owning module.
func (fe *FunctionEnv) ModuleEnv() *ModuleEnv { return fe.module }

// GlobalEnv returns the owning global environment.
func (fe *FunctionEnv) GlobalEnv() *GlobalEnv { return fe.module.env }

// ID returns the function's ID within its module.
func (fe *FunctionEnv) ID() FunID { return fe.id }

// Name returns the function's interned name.
func (fe *FunctionEnv) Name() symbols.Symbol { return fe.name }

// Loc returns the function's declared location.
func (fe *FunctionEnv) Loc() source.Loc { return fe.loc }

// IsNative reports whether the function has no bytecode body.
func (fe *FunctionEnv) IsNative() bool { return fe.native }

// IsPublic reports whether the function is callable across modules.
func (fe *FunctionEnv) IsPublic() bool { return fe.public }

// IsMutating reports whether the function takes at least one &mut parameter.
func (fe *FunctionEnv) IsMutating() bool {
	tys := fe.module.env.Types
	for i := 0; i < fe.paramCount; i++ {
		if tys.IsMutableReference(fe.locals[i].Type) {
			return true
		}
	}
	return false
}

// TypeParameters returns the declared type parameters in order.
func (fe *FunctionEnv) TypeParameters() []TypeParameter { return fe.typeParams }

// ParameterCount returns the number of parameters.
func (fe *FunctionEnv) ParameterCount() int { return fe.paramCount }

// LocalCount returns the number of user-declared locals, parameters included.
func (fe *FunctionEnv) LocalCount() int { return len(fe.locals) }

// LocalName returns the declared name of the idx-th user local.
func (fe *FunctionEnv) LocalName(idx int) symbols.Symbol {
	if idx >= len(fe.locals) {
		panic(fmt.Sprintf("env: local index %d out of range (%d user locals)", idx, len(fe.locals)))
	}
	return fe.locals[idx].Name
}

// LocalType returns the declared type of the idx-th user local.
func (fe *FunctionEnv) LocalType(idx int) types.TypeID {
	if idx >= len(fe.locals) {
		panic(fmt.Sprintf("env: local index %d out of range (%d user locals)", idx, len(fe.locals)))
	}
	return fe.locals[idx].Type
}

// ReturnTypes returns the declared return types.
func (fe *FunctionEnv) ReturnTypes() []types.TypeID { return fe.returns }

// Acquires returns the global resources the function declares to acquire.
func (fe *FunctionEnv) Acquires() []StructID { return fe.acquires }

// Spec returns the function's declared specification, never nil.
func (fe *FunctionEnv) Spec() *Spec { return fe.spec }

// PragmaBool resolves a boolean pragma: function scope first, then module
// scope, then def. It always produces a concrete value.
func (fe *FunctionEnv) PragmaBool(name string, def func() bool) bool {
	if v, ok := fe.pragmas[name]; ok {
		return v
	}
	if v, ok := fe.module.Pragma(name); ok {
		return v
	}
	return def()
}
