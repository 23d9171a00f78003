package env

import (
	"fmt"

	"stackless/internal/bytecode"
	"stackless/internal/source"
)

// ConditionKind enumerates specification condition kinds.
type ConditionKind uint8

const (
	CondRequires ConditionKind = iota
	CondEnsures
	CondAbortsIf
	CondAssert
	CondAssume
	CondInvariant
)

func (k ConditionKind) String() string {
	switch k {
	case CondRequires:
		return "requires"
	case CondEnsures:
		return "ensures"
	case CondAbortsIf:
		return "aborts_if"
	case CondAssert:
		return "assert"
	case CondAssume:
		return "assume"
	case CondInvariant:
		return "invariant"
	default:
		return fmt.Sprintf("ConditionKind(%d)", k)
	}
}

// Condition is one specification condition. Exp is the condition's
// expression in display form; expression semantics live in the
// specification language, outside this module.
type Condition struct {
	Kind ConditionKind
	Loc  source.Loc
	Exp  string
}

func (c Condition) String() string {
	return c.Kind.String() + " " + c.Exp
}

// Spec is a specification block: a list of conditions, plus, for a
// function-level spec, blocks attached inside the body, keyed by the code
// offset they were attached to in the original bytecode.
type Spec struct {
	Conditions []Condition
	OnImpl     map[bytecode.CodeOffset]*Spec
}

// IsEmpty reports whether the spec carries no conditions and no impl blocks.
func (s *Spec) IsEmpty() bool {
	return s == nil || (len(s.Conditions) == 0 && len(s.OnImpl) == 0)
}
