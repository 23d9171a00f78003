package target_test

import (
	"testing"

	"stackless/internal/bytecode"
	"stackless/internal/env"
	"stackless/internal/source"
	"stackless/internal/target"
	"stackless/internal/testkit"
	"stackless/internal/types"
)

func TestLocalAccess(t *testing.T) {
	fix := testkit.BuildDemo()
	b := fix.Env.Types.Builtins()

	data := fix.TransferData.Derive()
	data.LocalTypes = append(data.LocalTypes, b.U64) // pass-introduced temporary
	tgt := target.NewFunctionTarget(fix.Transfer, data)

	if tgt.LocalCount() != 4 {
		t.Fatalf("expected 4 locals, got %d", tgt.LocalCount())
	}
	if tgt.UserLocalCount() != 3 {
		t.Errorf("expected 3 user locals, got %d", tgt.UserLocalCount())
	}
	if tgt.ParameterCount() != 2 {
		t.Errorf("expected 2 parameters, got %d", tgt.ParameterCount())
	}

	for idx := 0; idx < tgt.LocalCount(); idx++ {
		if got := tgt.LocalType(idx); got != data.LocalTypes[idx] {
			t.Errorf("LocalType(%d) = %d, want %d", idx, got, data.LocalTypes[idx])
		}
	}

	pool := tgt.SymbolPool()
	if got := pool.Display(tgt.LocalName(1)); got != "amount" {
		t.Errorf("expected parameter name %q, got %q", "amount", got)
	}
	if got := pool.Display(tgt.LocalName(3)); got != "$t3" {
		t.Errorf("expected generated name %q, got %q", "$t3", got)
	}

	// Name lookup round-trips for every uniquely named local.
	for idx := 0; idx < tgt.LocalCount(); idx++ {
		got, ok := tgt.LocalIndex(tgt.LocalName(idx))
		if !ok || got != idx {
			t.Errorf("LocalIndex(LocalName(%d)) = %d (ok=%v)", idx, got, ok)
		}
	}
}

func TestLocalTypeOutOfRangePanics(t *testing.T) {
	fix := testkit.BuildDemo()
	tgt := target.NewFunctionTarget(fix.Transfer, fix.TransferData)

	if tgt.LocalCount() != 3 {
		t.Fatalf("expected 3 locals, got %d", tgt.LocalCount())
	}
	mustPanic(t, "local index beyond local count", func() { tgt.LocalType(5) })
	mustPanic(t, "return index beyond return count", func() { tgt.ReturnType(1) })
}

func TestGeneratedNameCollisionPanics(t *testing.T) {
	genv := env.NewGlobalEnv()
	mod := genv.AddModule("Test")
	b := genv.Types.Builtins()

	// A user local deliberately named like a generated temporary.
	fe := mod.AddFunction(env.FunctionDecl{
		Name:   "clash",
		Params: []env.NamedType{{Name: "x", Type: b.U64}},
		Locals: []env.NamedType{{Name: "$t2", Type: b.U64}},
	})
	data := target.NewData(fe, nil, []types.TypeID{b.U64, b.U64}, nil, nil)
	data.LocalTypes = append(data.LocalTypes, b.U64) // temporary at index 2 -> "$t2"

	mustPanic(t, "generated name colliding with a declared local", func() {
		target.NewFunctionTarget(fe, data)
	})
}

func TestBytecodeLocFallback(t *testing.T) {
	fix := testkit.BuildDemo()
	tgt := target.NewFunctionTarget(fix.Transfer, fix.TransferData)

	mapped := tgt.BytecodeLoc(0)
	if mapped.Span.Start != 120 {
		t.Errorf("expected the mapped location, got %s", mapped)
	}
	// Attr 2 is unmapped: fall back to the function's declared location.
	fallback := tgt.BytecodeLoc(2)
	if fallback != fix.Transfer.Loc() {
		t.Errorf("expected fallback to the function location, got %s", fallback)
	}
}

func TestSpecResolution(t *testing.T) {
	fix := testkit.BuildDemo()
	tgt := target.NewFunctionTarget(fix.Transfer, fix.TransferData)

	if len(tgt.Spec().Conditions) != 1 || tgt.Spec().Conditions[0].Kind != env.CondEnsures {
		t.Fatalf("unexpected function spec: %+v", tgt.Spec())
	}

	given := tgt.SpecAt(testkit.TransferSpecBlock)
	if len(given.Conditions) != 1 || given.Conditions[0].Exp != "amount > 0" {
		t.Errorf("unexpected given-block spec: %+v", given)
	}

	genSpec := &env.Spec{Conditions: []env.Condition{{Kind: env.CondAssume, Exp: "total <= amount"}}}
	genID := fix.TransferData.NewSpecBlock(genSpec)
	if got := tgt.SpecAt(genID); got != genSpec {
		t.Error("expected the synthesized spec to resolve through the snapshot map")
	}

	mustPanic(t, "unknown spec block", func() { tgt.SpecAt(999) })
}

func TestPragmaThroughTarget(t *testing.T) {
	fix := testkit.BuildDemo()
	tgt := target.NewFunctionTarget(fix.Transfer, fix.TransferData)

	if tgt.PragmaBool("opaque", func() bool { return true }) {
		t.Error("function-scope pragma must win")
	}
	if !tgt.PragmaBool("verify", func() bool { return false }) {
		t.Error("module-scope pragma must win")
	}
}

func TestCallEndsLifetime(t *testing.T) {
	fix := testkit.BuildDemo()

	// public f(x: &mut T): u64, no reference returns.
	transfer := target.NewFunctionTarget(fix.Transfer, fix.TransferData)
	if !transfer.CallEndsLifetime() {
		t.Error("public function returning only values must end lifetimes")
	}

	// public g(addr): &mut T returns a reference.
	borrow := target.NewFunctionTarget(fix.BorrowCoin, fix.BorrowCoinData)
	if borrow.CallEndsLifetime() {
		t.Error("a reference-returning function must not end lifetimes")
	}

	// Non-public functions are excluded, even with zero returns.
	genv := env.NewGlobalEnv()
	mod := genv.AddModule("M")
	fe := mod.AddFunction(env.FunctionDecl{Name: "private_helper"})
	data := target.NewData(fe, nil, nil, nil, nil)
	if target.NewFunctionTarget(fe, data).CallEndsLifetime() {
		t.Error("non-public functions must not end lifetimes")
	}

	// Public with zero returns: vacuously true.
	fePub := mod.AddFunction(env.FunctionDecl{Name: "public_helper", Public: true})
	dataPub := target.NewData(fePub, nil, nil, nil, nil)
	if !target.NewFunctionTarget(fePub, dataPub).CallEndsLifetime() {
		t.Error("a public function with no returns must end lifetimes")
	}
}

func TestMutatingClassification(t *testing.T) {
	fix := testkit.BuildDemo()

	if !target.NewFunctionTarget(fix.Transfer, fix.TransferData).IsMutating() {
		t.Error("transfer takes &mut Coin and must be mutating")
	}
	if target.NewFunctionTarget(fix.BorrowCoin, fix.BorrowCoinData).IsMutating() {
		t.Error("borrow_coin has no &mut parameter and must not be mutating")
	}
}

func TestAcquiresAndAliasSurface(t *testing.T) {
	fix := testkit.BuildDemo()
	tgt := target.NewFunctionTarget(fix.BorrowCoin, fix.BorrowCoinData)

	if len(tgt.Acquires()) != 1 {
		t.Fatalf("expected 1 acquired resource, got %d", len(tgt.Acquires()))
	}
	if got := tgt.ModuleEnv().StructName(tgt.Acquires()[0]); got != "Coin" {
		t.Errorf("expected acquired resource %q, got %q", "Coin", got)
	}
	if _, ok := tgt.RefParamAlias(0); ok {
		t.Error("expected no alias before any pass records one")
	}
}

func TestLocFieldsExposed(t *testing.T) {
	fix := testkit.BuildDemo()
	tgt := target.NewFunctionTarget(fix.Transfer, fix.TransferData)

	want := source.Loc{Path: "test.move", Span: source.Span{Start: 100, End: 400}}
	if tgt.Loc() != want {
		t.Errorf("unexpected declared location: %s", tgt.Loc())
	}
	if len(tgt.Code()) != 4 {
		t.Errorf("expected 4 instructions, got %d", len(tgt.Code()))
	}
	if tgt.Code()[2].Kind != bytecode.KindSpecBlock {
		t.Errorf("expected instruction 2 to be the spec block")
	}
}
