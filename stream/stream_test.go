//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package stream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/streamcc/gatestream/wire"
)

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circuit.gats")

	outputs := []wire.ID{wire.ID(5)}
	w, err := NewWriter(path, 2, outputs)
	require.NoError(t, err)

	gates := []wire.EmittedGate{
		{Kind: wire.EmittedAND, A: 2, B: 3, C: 4, Credits: 1},
		{Kind: wire.EmittedXOR, A: 4, B: 2, C: 5, Credits: 0},
	}
	for _, g := range gates {
		w.Push(g)
	}
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	hdr, err := ReadHeader(f)
	require.NoError(t, err)
	require.Equal(t, 2, hdr.PrimaryInputs)
	require.Equal(t, outputs, hdr.Outputs)
	require.Equal(t, uint64(2), hdr.TotalGates)

	rd := NewReader(f, hdr)
	got, err := rd.All()
	require.NoError(t, err)
	require.Equal(t, gates, got)
}

func TestWriterManyGatesSpanBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.gats")
	w, err := NewWriter(path, 1, []wire.ID{wire.ID(2)})
	require.NoError(t, err)

	const n = BlockCapacity + 100
	for i := 0; i < n; i++ {
		w.Push(wire.EmittedGate{Kind: wire.EmittedXOR, A: 0, B: 1, C: wire.ID(i + 2), Credits: 1})
	}
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	hdr, err := ReadHeader(f)
	require.NoError(t, err)
	require.Equal(t, uint64(n), hdr.TotalGates)

	rd := NewReader(f, hdr)
	got, err := rd.All()
	require.NoError(t, err)
	require.Len(t, got, n)
}
