package target

import (
	"fmt"
	"strings"

	"stackless/internal/bytecode"
	"stackless/internal/types"
)

// AnnotationFormatter renders the value of one annotation kind for the
// given target at the given code offset. It returns ok=false when it has
// nothing to say there. Formatters must be pure: rendering the same
// snapshot with the same registration twice yields byte-identical text.
type AnnotationFormatter func(t *FunctionTarget, off bytecode.CodeOffset) (string, bool)

// RegisterAnnotationFormatter appends a formatter to the registry. Each
// pass that introduces an annotation kind registers one so its results show
// up in debug dumps. Registration order is render order; the registry is
// append-only and never carried across snapshots.
func (t *FunctionTarget) RegisterAnnotationFormatter(f AnnotationFormatter) {
	t.formatters = append(t.formatters, f)
}

// String renders the target as a deterministic textual dump: header with
// visibility, qualified name, type parameters, parameters and returns; one
// var line per pass-introduced temporary; then each instruction in position
// order, preceded by the annotation lines of the registered formatters.
func (t *FunctionTarget) String() string {
	var b strings.Builder
	pool := t.SymbolPool()

	if t.IsPublic() {
		b.WriteString("pub ")
	}
	fmt.Fprintf(&b, "fun %s::%s", t.ModuleEnv().Name(), pool.Display(t.Name()))

	if tparams := t.TypeParameters(); len(tparams) > 0 {
		b.WriteByte('<')
		for i, tp := range tparams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(pool.Display(tp.Name))
		}
		b.WriteByte('>')
	}

	b.WriteByte('(')
	for i := 0; i < t.ParameterCount(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", pool.Display(t.LocalName(i)), t.tctx.Display(t.LocalType(i)))
	}
	b.WriteByte(')')

	if n := t.ReturnCount(); n > 0 {
		b.WriteString(": ")
		if n > 1 {
			b.WriteByte('(')
		}
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.tctx.Display(t.ReturnType(i)))
		}
		if n > 1 {
			b.WriteByte(')')
		}
	}
	b.WriteString(" {\n")

	for i := t.ParameterCount(); i < t.LocalCount(); i++ {
		fmt.Fprintf(&b, "    var %s: %s\n", pool.Display(t.LocalName(i)), t.tctx.Display(t.LocalType(i)))
	}

	for off := range t.Code() {
		code := &t.data.Code[off]
		for _, f := range t.formatters {
			if text, ok := f(t, bytecode.CodeOffset(off)); ok && text != "" {
				fmt.Fprintf(&b, "    // %s\n", text)
			}
		}
		fmt.Fprintf(&b, "    %s\n", code.Display(t))
	}
	b.WriteString("}\n")
	return b.String()
}

// The target is the display context its instructions render through.
var _ bytecode.DisplayContext = (*FunctionTarget)(nil)

// LocalDisplayName returns the display name of the local at idx.
func (t *FunctionTarget) LocalDisplayName(idx bytecode.TempIndex) string {
	return t.SymbolPool().Display(t.LocalName(int(idx)))
}

// LocalTypeID returns the type of the local at idx.
func (t *FunctionTarget) LocalTypeID(idx bytecode.TempIndex) types.TypeID {
	return t.LocalType(int(idx))
}

// TypeDisplay renders a type in the function's type-parameter scope.
func (t *FunctionTarget) TypeDisplay(id types.TypeID) string {
	return t.tctx.Display(id)
}

// IsRefType reports whether id names a reference type.
func (t *FunctionTarget) IsRefType(id types.TypeID) bool {
	return t.GlobalEnv().Types.IsReference(id)
}
