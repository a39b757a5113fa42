//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package gadget

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamcc/gatestream/checker"
	"github.com/streamcc/gatestream/mode"
	"github.com/streamcc/gatestream/wire"
)

const testBits = 8

func feedUint(t *testing.T, exec *mode.Execute, bits []wire.ID, v uint64) {
	t.Helper()
	for i, w := range bits {
		exec.FeedWire(w, v&(1<<uint(i)) != 0)
	}
}

func readUint(t *testing.T, exec *mode.Execute, bits []wire.ID) uint64 {
	t.Helper()
	var v uint64
	for i, w := range bits {
		ok, set := exec.LookupWire(w)
		require.True(t, set)
		if ok {
			v |= 1 << uint(i)
		}
	}
	return v
}

func TestRippleCarryAdderExecute(t *testing.T) {
	cases := []struct{ a, b uint64 }{
		{0, 0}, {1, 1}, {3, 5}, {255, 1}, {128, 127},
	}
	for _, c := range cases {
		exec := mode.NewExecute(2 * testBits)
		inputs := exec.PrimaryInputs()
		a := inputs[:testBits]
		b := inputs[testBits:]
		feedUint(t, exec, a, c.a)
		feedUint(t, exec, b, c.b)

		sum, carry, err := RippleCarryAdder(exec, a, b)
		require.NoError(t, err)

		got := readUint(t, exec, sum)
		want := (c.a + c.b) & (1<<testBits - 1)
		require.Equalf(t, want, got, "%d+%d", c.a, c.b)

		wantCarry := (c.a+c.b)>>testBits != 0
		gotCarry, set := exec.LookupWire(carry)
		require.True(t, set)
		require.Equal(t, wantCarry, gotCarry)
	}
}

func TestLessThanExecute(t *testing.T) {
	cases := []struct{ a, b uint64 }{
		{0, 0}, {1, 2}, {2, 1}, {100, 200}, {255, 0},
	}
	for _, c := range cases {
		exec := mode.NewExecute(2 * testBits)
		inputs := exec.PrimaryInputs()
		a := inputs[:testBits]
		b := inputs[testBits:]
		feedUint(t, exec, a, c.a)
		feedUint(t, exec, b, c.b)

		lt, err := LessThan(exec, a, b)
		require.NoError(t, err)
		got, set := exec.LookupWire(lt)
		require.True(t, set)
		require.Equal(t, c.a < c.b, got)
	}
}

func TestMuxExecute(t *testing.T) {
	for _, sel := range []bool{false, true} {
		exec := mode.NewExecute(3)
		inputs := exec.PrimaryInputs()
		exec.FeedWire(inputs[0], sel)
		exec.FeedWire(inputs[1], false)
		exec.FeedWire(inputs[2], true)

		out, err := Mux(exec, inputs[0], inputs[1], inputs[2])
		require.NoError(t, err)
		got, set := exec.LookupWire(out)
		require.True(t, set)
		require.Equal(t, sel, got)
	}
}

// adderGadget wraps RippleCarryAdder as a mode.Gadget so it can be run
// through the full three-pass pipeline and checked.
func adderGadget(ctx mode.Context, inputs []wire.ID) ([]wire.ID, error) {
	a := inputs[:testBits]
	b := inputs[testBits:]
	sum, carry, err := RippleCarryAdder(ctx, a, b)
	if err != nil {
		return nil, err
	}
	return append(sum, carry), nil
}

func TestAdderThreePassAndChecker(t *testing.T) {
	n := 2 * testBits

	meta := mode.NewMetadata(n)
	metaOut, err := adderGadget(meta, meta.PrimaryInputs())
	require.NoError(t, err)

	cc := mode.NewCreditCollection(n)
	ccOut, err := adderGadget(cc, cc.PrimaryInputs())
	require.NoError(t, err)
	require.NoError(t, (mode.Handoff{
		PrimaryInputs: meta.PrimaryInputs(),
		Outputs:       metaOut,
		NumAllocated:  meta.NumAllocated(),
	}).Verify(ccOut, cc.NumAllocated()))
	cc.ZeroOutputs(ccOut)

	var gates []wire.EmittedGate
	tr := mode.NewTranslation(n, cc.Credits(), func(g wire.EmittedGate) error {
		gates = append(gates, g)
		return nil
	})
	trOut, err := adderGadget(tr, tr.PrimaryInputs())
	require.NoError(t, err)
	require.Equal(t, ccOut, trOut)

	c := checker.New(n)
	require.NoError(t, c.CheckAll(gates))
}

func TestFieldBitsMatchesBN254Scalar(t *testing.T) {
	// bn254's scalar field modulus is just under 2^254; FieldBits must
	// track that, not a hard-coded guess.
	require.Greater(t, FieldBits, 250)
	require.LessOrEqual(t, FieldBits, 256)
	require.NotNil(t, big.NewInt(int64(FieldBits)))
}
