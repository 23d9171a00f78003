package types

import (
	"fmt"
	"strings"
)

// DisplayContext carries what type pretty-printing needs: the interner the
// IDs live in, and the names of the in-scope type parameters.
type DisplayContext struct {
	In         *Interner
	TypeParams []string
}

// Display renders id in surface syntax.
func (ctx *DisplayContext) Display(id TypeID) string {
	t, ok := ctx.In.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case KindBool, KindU8, KindU64, KindU128, KindAddress:
		return t.Kind.String()
	case KindVector:
		return "vector<" + ctx.Display(t.Elem) + ">"
	case KindReference:
		if t.Mutable {
			return "&mut " + ctx.Display(t.Elem)
		}
		return "&" + ctx.Display(t.Elem)
	case KindTypeParam:
		if int(t.Param) < len(ctx.TypeParams) {
			return ctx.TypeParams[t.Param]
		}
		return fmt.Sprintf("#%d", t.Param)
	case KindStruct:
		info := ctx.In.Struct(t)
		if info.Name == "" {
			return "?"
		}
		if len(info.TypeArgs) == 0 {
			return info.Name
		}
		var b strings.Builder
		b.WriteString(info.Name)
		b.WriteByte('<')
		for i, a := range info.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ctx.Display(a))
		}
		b.WriteByte('>')
		return b.String()
	default:
		return "?"
	}
}
