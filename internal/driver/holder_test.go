package driver_test

import (
	"testing"

	"stackless/internal/analysis"
	"stackless/internal/bytecode"
	"stackless/internal/driver"
	"stackless/internal/target"
	"stackless/internal/testkit"
)

// tempIntroducer derives a successor with one fresh u64 temporary and
// publishes an empty live-variable result.
type tempIntroducer struct{}

func (tempIntroducer) Name() string { return "temp-introducer" }

func (tempIntroducer) Process(t *target.FunctionTarget) *target.Data {
	next := t.Data().Derive()
	next.LocalTypes = append(next.LocalTypes, t.GlobalEnv().Types.Builtins().U64)
	next.Annotations.Set(analysis.LiveVarKind, analysis.LiveVarAnnotation{
		0: {Before: []bytecode.TempIndex{0}},
	})
	return next
}

// readOnly computes nothing and rewrites nothing.
type readOnly struct{}

func (readOnly) Name() string { return "read-only" }

func (readOnly) Process(t *target.FunctionTarget) *target.Data { return nil }

func mustPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic: %s", what)
		}
	}()
	fn()
}

func TestHolderLineage(t *testing.T) {
	fix := testkit.BuildDemo()
	h := driver.NewHolder()
	h.Init(fix.Transfer, fix.TransferData)

	cur, ok := h.Current(fix.Transfer)
	if !ok || cur != fix.TransferData {
		t.Fatal("expected the initial snapshot to be current")
	}

	next := h.Rewrite(fix.Transfer, tempIntroducer{})
	if next == fix.TransferData {
		t.Fatal("expected a rewriting pass to publish a successor")
	}
	if next.LocalCount() != fix.TransferData.LocalCount()+1 {
		t.Errorf("expected one fresh temporary, got %d locals", next.LocalCount())
	}

	if got := h.Rewrite(fix.Transfer, readOnly{}); got != next {
		t.Error("a read-only pass must keep the current snapshot")
	}

	chain := h.Chain(fix.Transfer)
	if len(chain) != 2 || chain[0] != fix.TransferData || chain[1] != next {
		t.Errorf("unexpected lineage of length %d", len(chain))
	}

	// The bound view follows the chain head.
	if h.Target(fix.Transfer).Data() != next {
		t.Error("expected the view to bind the current snapshot")
	}
}

func TestHolderDoubleInitPanics(t *testing.T) {
	fix := testkit.BuildDemo()
	h := driver.NewHolder()
	h.Init(fix.Transfer, fix.TransferData)

	mustPanic(t, "second Init for the same function", func() {
		h.Init(fix.Transfer, fix.TransferData.Derive())
	})
}

func TestHolderUninitializedAccess(t *testing.T) {
	fix := testkit.BuildDemo()
	h := driver.NewHolder()

	if _, ok := h.Current(fix.Transfer); ok {
		t.Error("expected no snapshot before Init")
	}
	if got := h.Chain(fix.Transfer); got != nil {
		t.Errorf("expected nil lineage before Init, got %d entries", len(got))
	}
	mustPanic(t, "view of an uninitialized function", func() { h.Target(fix.Transfer) })
	mustPanic(t, "rewrite of an uninitialized function", func() { h.Rewrite(fix.Transfer, readOnly{}) })
}
