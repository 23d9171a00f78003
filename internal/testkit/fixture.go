// Package testkit builds small, fully-populated environments for tests and
// for the CLI's demo dump.
package testkit

import (
	"stackless/internal/bytecode"
	"stackless/internal/env"
	"stackless/internal/source"
	"stackless/internal/target"
	"stackless/internal/types"
)

// Fixture is a one-module environment with two analyzable functions.
type Fixture struct {
	Env    *env.GlobalEnv
	Module *env.ModuleEnv

	// transfer(from: &mut Test::Coin, amount: u64): u64. Public, with a
	// user local, an impl spec block and a function-level spec.
	Transfer     *env.FunctionEnv
	TransferData *target.Data

	// borrow_coin(addr: address): &mut Test::Coin. Public, returns a
	// reference, acquires Coin.
	BorrowCoin     *env.FunctionEnv
	BorrowCoinData *target.Data
}

// TransferSpecBlock is the source-given spec block ID of Transfer.
const TransferSpecBlock bytecode.SpecBlockID = 0

// BuildDemo assembles the fixture with initial snapshots for both functions.
func BuildDemo() *Fixture {
	genv := env.NewGlobalEnv()
	mod := genv.AddModule("Test")
	mod.SetPragma("verify", true)

	coinID := mod.AddStruct("Coin", true)
	coin := genv.Types.InternStruct("Test::Coin", nil)
	b := genv.Types.Builtins()
	mutCoin := genv.Types.Intern(types.MakeReference(true, coin))

	transfer := mod.AddFunction(env.FunctionDecl{
		Name: "transfer",
		Loc:  source.Loc{Path: "test.move", Span: source.Span{Start: 100, End: 400}},
		Params: []env.NamedType{
			{Name: "from", Type: mutCoin},
			{Name: "amount", Type: b.U64},
		},
		Locals:  []env.NamedType{{Name: "total", Type: b.U64}},
		Returns: []types.TypeID{b.U64},
		Public:  true,
		Spec: &env.Spec{
			Conditions: []env.Condition{{Kind: env.CondEnsures, Exp: "result == amount"}},
			OnImpl: map[bytecode.CodeOffset]*env.Spec{
				2: {Conditions: []env.Condition{{Kind: env.CondAssert, Exp: "amount > 0"}}},
			},
		},
		Pragmas: map[string]bool{"opaque": false},
	})

	transferCode := []bytecode.Bytecode{
		{Kind: bytecode.KindAssign, Attr: 0, Assign: bytecode.AssignPayload{Dst: 2, Src: 1, Mode: bytecode.AssignCopy}},
		{Kind: bytecode.KindCall, Attr: 1, Call: bytecode.CallPayload{Op: bytecode.Op(bytecode.OpWriteRef), Srcs: []bytecode.TempIndex{0, 2}}},
		{Kind: bytecode.KindSpecBlock, Attr: 2, Spec: bytecode.SpecPayload{ID: TransferSpecBlock}},
		{Kind: bytecode.KindRet, Attr: 3, Ret: bytecode.RetPayload{Srcs: []bytecode.TempIndex{2}}},
	}
	transferData := target.NewData(
		transfer,
		transferCode,
		[]types.TypeID{mutCoin, b.U64, b.U64},
		[]types.TypeID{b.U64},
		map[bytecode.SpecBlockID]bytecode.CodeOffset{TransferSpecBlock: 2},
	)
	transferData.Locations[0] = source.Loc{Path: "test.move", Span: source.Span{Start: 120, End: 140}}
	transferData.Locations[3] = source.Loc{Path: "test.move", Span: source.Span{Start: 300, End: 320}}

	borrowCoin := mod.AddFunction(env.FunctionDecl{
		Name: "borrow_coin",
		Loc:  source.Loc{Path: "test.move", Span: source.Span{Start: 500, End: 700}},
		Params: []env.NamedType{
			{Name: "addr", Type: b.Address},
		},
		Locals:   []env.NamedType{{Name: "r", Type: mutCoin}},
		Returns:  []types.TypeID{mutCoin},
		Public:   true,
		Acquires: []env.StructID{coinID},
	})

	borrowCode := []bytecode.Bytecode{
		{Kind: bytecode.KindCall, Attr: 0, Call: bytecode.CallPayload{
			Dsts: []bytecode.TempIndex{1},
			Op:   bytecode.StructOp(bytecode.OpBorrowGlobal, "Test::Coin"),
			Srcs: []bytecode.TempIndex{0},
		}},
		{Kind: bytecode.KindRet, Attr: 1, Ret: bytecode.RetPayload{Srcs: []bytecode.TempIndex{1}}},
	}
	borrowCoinData := target.NewData(
		borrowCoin,
		borrowCode,
		[]types.TypeID{b.Address, mutCoin},
		[]types.TypeID{mutCoin},
		nil,
	)

	return &Fixture{
		Env:            genv,
		Module:         mod,
		Transfer:       transfer,
		TransferData:   transferData,
		BorrowCoin:     borrowCoin,
		BorrowCoinData: borrowCoinData,
	}
}
