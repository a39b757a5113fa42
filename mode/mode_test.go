//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package mode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamcc/gatestream/gserr"
	"github.com/streamcc/gatestream/u24"
	"github.com/streamcc/gatestream/wire"
)

// andGadget computes a single AND of its two inputs, declaring the
// output's consumption itself (one external reader).
func andGadget(ctx Context, inputs []wire.ID) ([]wire.ID, error) {
	out := ctx.AllocateWire(0)
	if err := ctx.AddGate(wire.Gate{Kind: wire.AND, A: inputs[0], B: inputs[1], C: out}); err != nil {
		return nil, err
	}
	if err := ctx.AddCredits([]wire.ID{out}, 1); err != nil {
		return nil, err
	}
	return []wire.ID{out}, nil
}

// orGadget computes A OR B via the three-gate OR expansion (spec §8
// scenario S3), exercising a kind with internal temporaries.
func orGadget(ctx Context, inputs []wire.ID) ([]wire.ID, error) {
	out := ctx.AllocateWire(0)
	if err := ctx.AddGate(wire.Gate{Kind: wire.OR, A: inputs[0], B: inputs[1], C: out}); err != nil {
		return nil, err
	}
	if err := ctx.AddCredits([]wire.ID{out}, 2); err != nil {
		return nil, err
	}
	return []wire.ID{out}, nil
}

// impGadget computes A IMP B, the four-gate expansion spec §8
// scenario S4 walks by hand.
func impGadget(ctx Context, inputs []wire.ID) ([]wire.ID, error) {
	out := ctx.AllocateWire(0)
	if err := ctx.AddGate(wire.Gate{Kind: wire.IMP, A: inputs[0], B: inputs[1], C: out}); err != nil {
		return nil, err
	}
	if err := ctx.AddCredits([]wire.ID{out}, 1); err != nil {
		return nil, err
	}
	return []wire.ID{out}, nil
}

func runThreePass(t *testing.T, g Gadget, n int) ([]wire.ID, *u24.Vector, []wire.EmittedGate) {
	t.Helper()

	meta := NewMetadata(n)
	metaOut, err := g(meta, meta.PrimaryInputs())
	require.NoError(t, err)

	cc := NewCreditCollection(n)
	ccOut, err := g(cc, cc.PrimaryInputs())
	require.NoError(t, err)

	handoff := Handoff{PrimaryInputs: meta.PrimaryInputs(), Outputs: metaOut, NumAllocated: meta.NumAllocated()}
	require.NoError(t, handoff.Verify(ccOut, cc.NumAllocated()))

	var emitted []wire.EmittedGate
	tr := NewTranslation(n, cc.Credits(), func(eg wire.EmittedGate) error {
		emitted = append(emitted, eg)
		return nil
	})
	trOut, err := g(tr, tr.PrimaryInputs())
	require.NoError(t, err)
	require.NoError(t, handoff.Verify(trOut, tr.NumAllocated()))
	require.Equal(t, ccOut, trOut)

	return ccOut, cc.Credits(), emitted
}

func TestThreePassAndGate(t *testing.T) {
	outputs, credits, emitted := runThreePass(t, andGadget, 2)
	require.Len(t, outputs, 1)
	require.Len(t, emitted, 1)
	require.Equal(t, wire.EmittedAND, emitted[0].Kind)
	require.Equal(t, uint32(1), credits.Get(int(outputs[0])))
	require.Equal(t, uint32(1), emitted[0].Credits)
}

// TestThreePassOrGate matches spec §8 scenario S3: OR expands to three
// gates, and both internal temporaries carry credit 1.
func TestThreePassOrGate(t *testing.T) {
	outputs, credits, emitted := runThreePass(t, orGadget, 2)
	require.Len(t, emitted, 3)
	require.Equal(t, uint32(2), credits.Get(int(outputs[0])))

	// The first two emitted gates define t1 and t2, each read exactly
	// once more before the gate chain reaches the gadget's own output.
	require.Equal(t, uint32(1), emitted[0].Credits)
	require.Equal(t, uint32(1), emitted[1].Credits)
	require.Equal(t, uint32(2), emitted[2].Credits)
}

// TestThreePassImpGate matches spec §8 scenario S4: the first
// temporary of an IMP expansion is read twice.
func TestThreePassImpGate(t *testing.T) {
	_, _, emitted := runThreePass(t, impGadget, 2)
	require.Len(t, emitted, 4)
	require.Equal(t, uint32(2), emitted[0].Credits, "t1 is read by both the AND and the third XOR")
	require.Equal(t, uint32(1), emitted[1].Credits)
	require.Equal(t, uint32(1), emitted[2].Credits)
	require.Equal(t, uint32(1), emitted[3].Credits)
}

func TestExecuteMatchesGateSemantics(t *testing.T) {
	cases := []struct {
		a, b bool
	}{
		{false, false}, {false, true}, {true, false}, {true, true},
	}
	for _, g := range []struct {
		name   string
		gadget Gadget
		want   func(a, b bool) bool
	}{
		{"AND", andGadget, func(a, b bool) bool { return a && b }},
		{"OR", orGadget, func(a, b bool) bool { return a || b }},
		{"IMP", impGadget, func(a, b bool) bool { return !a || b }},
	} {
		for _, c := range cases {
			exec := NewExecute(2)
			inputs := exec.PrimaryInputs()
			exec.FeedWire(inputs[0], c.a)
			exec.FeedWire(inputs[1], c.b)
			outputs, err := g.gadget(exec, inputs)
			require.NoError(t, err)
			require.Len(t, outputs, 1)
			got, ok := exec.LookupWire(outputs[0])
			require.True(t, ok)
			require.Equalf(t, g.want(c.a, c.b), got, "%s(%v,%v)", g.name, c.a, c.b)
		}
	}
}

func TestAddGateRejectsUnallocatedInput(t *testing.T) {
	cc := NewCreditCollection(1)
	err := cc.AddGate(wire.Gate{Kind: wire.AND, A: cc.PrimaryInputs()[0], B: wire.ID(999), C: cc.AllocateWire(0)})
	require.ErrorIs(t, err, gserr.ErrUseBeforeAlloc)
}

// TestCreditCollectionZeroOutputsForcesZero matches spec §4.4's
// mandated post-pass adjustment: a gadget that accidentally declares
// further consumption of its own output wire must still see that
// wire's credit forced back to 0 once ZeroOutputs runs.
func TestCreditCollectionZeroOutputsForcesZero(t *testing.T) {
	cc := NewCreditCollection(2)
	inputs := cc.PrimaryInputs()
	out := cc.AllocateWire(0)
	require.NoError(t, cc.AddGate(wire.Gate{Kind: wire.AND, A: inputs[0], B: inputs[1], C: out}))
	require.NoError(t, cc.AddCredits([]wire.ID{out}, 3))
	require.Equal(t, uint32(3), cc.Credits().Get(int(out)))

	cc.ZeroOutputs([]wire.ID{out})
	require.Equal(t, uint32(0), cc.Credits().Get(int(out)))
}

func TestAddGateRejectsDoubleDefinition(t *testing.T) {
	cc := NewCreditCollection(2)
	inputs := cc.PrimaryInputs()
	out := cc.AllocateWire(0)
	require.NoError(t, cc.AddGate(wire.Gate{Kind: wire.AND, A: inputs[0], B: inputs[1], C: out}))
	err := cc.AddGate(wire.Gate{Kind: wire.XOR, A: inputs[0], B: inputs[1], C: out})
	require.ErrorIs(t, err, gserr.ErrDoubleDefinition)
}
