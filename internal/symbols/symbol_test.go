package symbols

import "testing"

func TestPoolIdentity(t *testing.T) {
	p := NewPool()

	a := p.Make("transfer")
	b := p.Make("mint")
	a2 := p.Make("transfer")

	if !a.IsValid() || !b.IsValid() {
		t.Fatal("expected valid symbols")
	}
	if a != a2 {
		t.Errorf("expected identical symbols for identical names, got %d and %d", a, a2)
	}
	if a == b {
		t.Error("expected distinct symbols for distinct names")
	}
	if got := p.Display(a); got != "transfer" {
		t.Errorf("expected %q, got %q", "transfer", got)
	}
}

func TestPoolFind(t *testing.T) {
	p := NewPool()
	sym := p.Make("total")

	got, ok := p.Find("total")
	if !ok || got != sym {
		t.Errorf("expected Find to return %d, got %d (ok=%v)", sym, got, ok)
	}
	if _, ok := p.Find("missing"); ok {
		t.Error("expected Find to miss on unknown name")
	}
}
