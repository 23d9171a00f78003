package target_test

import (
	"testing"

	"stackless/internal/bytecode"
	"stackless/internal/env"
	"stackless/internal/target"
	"stackless/internal/testkit"
	"stackless/internal/types"
)

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic: %s", what)
		}
	}()
	fn()
}

func TestNewDataRejectsTooFewLocals(t *testing.T) {
	fix := testkit.BuildDemo()
	b := fix.Env.Types.Builtins()

	mustPanic(t, "fewer local types than parameters", func() {
		target.NewData(fix.Transfer, nil, []types.TypeID{b.U64}, nil, nil)
	})
}

func TestNewDataRejectsDanglingGivenBlock(t *testing.T) {
	fix := testkit.BuildDemo()
	b := fix.Env.Types.Builtins()

	mustPanic(t, "given block pointing at an offset with no spec", func() {
		target.NewData(fix.Transfer, nil,
			[]types.TypeID{b.U64, b.U64, b.U64}, nil,
			map[bytecode.SpecBlockID]bytecode.CodeOffset{9: 99})
	})
}

func TestRefParamAlias(t *testing.T) {
	genv := env.NewGlobalEnv()
	mod := genv.AddModule("Test")
	b := genv.Types.Builtins()
	coin := genv.Types.InternStruct("Test::Coin", nil)
	mutCoin := genv.Types.Intern(types.MakeReference(true, coin))

	fe := mod.AddFunction(env.FunctionDecl{
		Name:    "swap",
		Params:  []env.NamedType{{Name: "a", Type: mutCoin}, {Name: "b", Type: mutCoin}, {Name: "n", Type: b.U64}},
		Returns: []types.TypeID{mutCoin, mutCoin},
		Public:  true,
	})
	data := target.NewData(fe, nil,
		[]types.TypeID{mutCoin, mutCoin, b.U64},
		[]types.TypeID{mutCoin, mutCoin}, nil)

	data.AddRefParamAlias(0, 1)
	data.AddRefParamAlias(0, 1) // same pair is a no-op

	if got, ok := data.RefParamAlias(0); !ok || got != 1 {
		t.Errorf("expected alias 0 -> 1, got %d (ok=%v)", got, ok)
	}
	if _, ok := data.RefParamAlias(1); ok {
		t.Error("expected no alias for parameter 1")
	}

	mustPanic(t, "conflicting alias", func() { data.AddRefParamAlias(0, 0) })
	mustPanic(t, "non-&mut key", func() { data.AddRefParamAlias(2, 0) })
	mustPanic(t, "non-parameter key", func() { data.AddRefParamAlias(5, 0) })
	mustPanic(t, "invalid return slot", func() { data.AddRefParamAlias(1, 7) })
}

func TestSpecBlockMapsAreDisjoint(t *testing.T) {
	fix := testkit.BuildDemo()
	data := fix.TransferData

	genID := data.NewSpecBlock(&env.Spec{Conditions: []env.Condition{{Kind: env.CondAssume, Exp: "true"}}})

	if genID == testkit.TransferSpecBlock {
		t.Fatalf("synthesized ID %d collides with a source-given block", genID)
	}
	if _, ok := data.GivenSpecBlock(genID); ok {
		t.Error("synthesized ID must not resolve through the source-anchored map")
	}
	if _, ok := data.GeneratedSpecBlock(testkit.TransferSpecBlock); ok {
		t.Error("source-given ID must not resolve through the synthesized map")
	}
}

func TestDeriveCarriesInvariantState(t *testing.T) {
	fix := testkit.BuildDemo()
	data := fix.TransferData
	data.AddRefParamAlias(0, 0)
	genID := data.NewSpecBlock(&env.Spec{})
	data.Annotations.Set(0, "payload")

	next := data.Derive()

	// Source-anchored block map is identical across the lineage.
	if off, ok := next.GivenSpecBlock(testkit.TransferSpecBlock); !ok || off != 2 {
		t.Errorf("expected given block to survive derive, got offset %d (ok=%v)", off, ok)
	}
	// Aliases and synthesized blocks carry forward.
	if got, ok := next.RefParamAlias(0); !ok || got != 0 {
		t.Errorf("expected alias to carry forward, got %d (ok=%v)", got, ok)
	}
	if _, ok := next.GeneratedSpecBlock(genID); !ok {
		t.Error("expected synthesized block to carry forward")
	}
	// Annotations never propagate implicitly.
	if _, ok := next.Annotations.Get(0); ok {
		t.Error("annotations must not carry forward implicitly")
	}
	// Growing the successor leaves the predecessor untouched.
	next.LocalTypes = append(next.LocalTypes, fix.Env.Types.Builtins().U64)
	if data.LocalCount() != 3 {
		t.Errorf("predecessor grew to %d locals", data.LocalCount())
	}
	// Fresh synthesized IDs in the successor do not collide.
	if id := next.NewSpecBlock(&env.Spec{}); id == genID || id == testkit.TransferSpecBlock {
		t.Errorf("successor allocated colliding spec block %d", id)
	}
}
