package env_test

import (
	"testing"

	"stackless/internal/env"
	"stackless/internal/types"
)

func buildModule(t *testing.T) (*env.GlobalEnv, *env.ModuleEnv) {
	t.Helper()
	genv := env.NewGlobalEnv()
	return genv, genv.AddModule("Test")
}

func TestFunctionShape(t *testing.T) {
	genv, mod := buildModule(t)
	b := genv.Types.Builtins()
	coin := genv.Types.InternStruct("Test::Coin", nil)
	mutCoin := genv.Types.Intern(types.MakeReference(true, coin))

	fe := mod.AddFunction(env.FunctionDecl{
		Name:    "transfer",
		Params:  []env.NamedType{{Name: "from", Type: mutCoin}, {Name: "amount", Type: b.U64}},
		Locals:  []env.NamedType{{Name: "total", Type: b.U64}},
		Returns: []types.TypeID{b.U64},
		Public:  true,
	})

	if fe.ParameterCount() != 2 {
		t.Errorf("expected 2 parameters, got %d", fe.ParameterCount())
	}
	if fe.LocalCount() != 3 {
		t.Errorf("expected 3 user locals, got %d", fe.LocalCount())
	}
	if got := mod.SymbolPool().Display(fe.LocalName(2)); got != "total" {
		t.Errorf("expected local 2 to be %q, got %q", "total", got)
	}
	if fe.LocalType(1) != b.U64 {
		t.Errorf("expected u64 for local 1, got %d", fe.LocalType(1))
	}
	if !fe.IsPublic() || fe.IsNative() {
		t.Error("unexpected classification flags")
	}
	if !fe.IsMutating() {
		t.Error("expected a function with a &mut parameter to be mutating")
	}
}

func TestIsMutatingFalseWithoutMutParams(t *testing.T) {
	genv, mod := buildModule(t)
	_ = genv.Types.Builtins()
	coin := genv.Types.InternStruct("Test::Coin", nil)
	sharedRef := genv.Types.Intern(types.MakeReference(false, coin))

	fe := mod.AddFunction(env.FunctionDecl{
		Name:   "peek",
		Params: []env.NamedType{{Name: "c", Type: sharedRef}},
	})
	if fe.IsMutating() {
		t.Error("a function with only shared references must not be mutating")
	}
}

func TestPragmaChain(t *testing.T) {
	genv, mod := buildModule(t)
	_ = genv
	mod.SetPragma("verify", false)

	fe := mod.AddFunction(env.FunctionDecl{
		Name:    "f",
		Pragmas: map[string]bool{"opaque": true},
	})

	if !fe.PragmaBool("opaque", func() bool { return false }) {
		t.Error("function-scope pragma must win")
	}
	if fe.PragmaBool("verify", func() bool { return true }) {
		t.Error("module-scope pragma must win over the default")
	}
	if !fe.PragmaBool("timeout", func() bool { return true }) {
		t.Error("default must apply when no scope declares the pragma")
	}
}

func TestLocalNameOutOfRangePanics(t *testing.T) {
	genv, mod := buildModule(t)
	_ = genv

	fe := mod.AddFunction(env.FunctionDecl{Name: "empty"})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range user local")
		}
	}()
	fe.LocalName(0)
}
