package types

import "testing"

func TestInternStableIDs(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	ref1 := in.Intern(MakeReference(true, b.U64))
	ref2 := in.Intern(MakeReference(true, b.U64))
	if ref1 != ref2 {
		t.Errorf("expected stable ID for identical descriptors, got %d and %d", ref1, ref2)
	}

	shared := in.Intern(MakeReference(false, b.U64))
	if shared == ref1 {
		t.Error("expected &u64 and &mut u64 to intern differently")
	}
}

func TestInternStruct(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	coin := in.InternStruct("Test::Coin", nil)
	coin2 := in.InternStruct("Test::Coin", nil)
	if coin != coin2 {
		t.Errorf("expected stable ID for repeated struct intern, got %d and %d", coin, coin2)
	}

	generic := in.InternStruct("Test::Coin", []TypeID{b.U64})
	if generic == coin {
		t.Error("expected distinct IDs for distinct instantiations")
	}

	info := in.Struct(in.MustLookup(generic))
	if info.Name != "Test::Coin" || len(info.TypeArgs) != 1 {
		t.Errorf("unexpected struct info: %+v", info)
	}
}

func TestReferencePredicates(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	mutRef := in.Intern(MakeReference(true, b.Bool))
	ref := in.Intern(MakeReference(false, b.Bool))

	if !in.IsReference(mutRef) || !in.IsReference(ref) {
		t.Error("expected both references to satisfy IsReference")
	}
	if in.IsReference(b.Bool) {
		t.Error("bool must not satisfy IsReference")
	}
	if !in.IsMutableReference(mutRef) {
		t.Error("expected &mut bool to satisfy IsMutableReference")
	}
	if in.IsMutableReference(ref) {
		t.Error("&bool must not satisfy IsMutableReference")
	}
}

func TestDisplay(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	coin := in.InternStruct("Test::Coin", nil)

	ctx := DisplayContext{In: in, TypeParams: []string{"T"}}

	cases := []struct {
		id   TypeID
		want string
	}{
		{b.U64, "u64"},
		{b.Address, "address"},
		{in.Intern(MakeVector(b.U8)), "vector<u8>"},
		{in.Intern(MakeReference(true, coin)), "&mut Test::Coin"},
		{in.Intern(MakeReference(false, coin)), "&Test::Coin"},
		{in.Intern(MakeTypeParam(0)), "T"},
		{in.Intern(MakeTypeParam(7)), "#7"},
		{in.InternStruct("Test::Pair", []TypeID{b.U64, b.Bool}), "Test::Pair<u64, bool>"},
	}
	for _, tc := range cases {
		if got := ctx.Display(tc.id); got != tc.want {
			t.Errorf("Display(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
