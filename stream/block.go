//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package stream

import (
	"encoding/binary"
	"io"

	"github.com/streamcc/gatestream/wire"
)

// block accumulates up to BlockCapacity gates in structure-of-arrays
// form: one parallel slice per field instead of a slice of structs.
// This is what lets the writer flush each field as one contiguous
// little-endian run instead of interleaving five values per gate
// (spec §4.6, §6).
type block struct {
	kinds   []byte
	in1     []uint64
	in2     []uint64
	out     []uint64
	credits []uint32
}

func newBlock() *block {
	return &block{
		kinds:   make([]byte, 0, BlockCapacity),
		in1:     make([]uint64, 0, BlockCapacity),
		in2:     make([]uint64, 0, BlockCapacity),
		out:     make([]uint64, 0, BlockCapacity),
		credits: make([]uint32, 0, BlockCapacity),
	}
}

func (b *block) len() int { return len(b.kinds) }
func (b *block) full() bool { return b.len() >= BlockCapacity }

func (b *block) add(g wire.EmittedGate) {
	b.kinds = append(b.kinds, byte(g.Kind))
	b.in1 = append(b.in1, uint64(g.A))
	b.in2 = append(b.in2, uint64(g.B))
	b.out = append(b.out, uint64(g.C))
	b.credits = append(b.credits, g.Credits)
}

func (b *block) reset() {
	b.kinds = b.kinds[:0]
	b.in1 = b.in1[:0]
	b.in2 = b.in2[:0]
	b.out = b.out[:0]
	b.credits = b.credits[:0]
}

// writeTo flushes the block to w as one gates_in_block u32 followed by
// its five SoA arrays, each a contiguous little-endian run (spec §6).
func (b *block) writeTo(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(b.len())); err != nil {
		return err
	}
	if _, err := w.Write(b.kinds); err != nil {
		return err
	}
	for _, v := range b.in1 {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, v := range b.in2 {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, v := range b.out {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, v := range b.credits {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

// readBlock reads one block back, given its gate count.
func readBlock(r io.Reader, n uint32) ([]wire.EmittedGate, error) {
	kinds := make([]byte, n)
	if _, err := io.ReadFull(r, kinds); err != nil {
		return nil, err
	}
	readU64s := func() ([]uint64, error) {
		out := make([]uint64, n)
		for i := range out {
			if err := binary.Read(r, binary.LittleEndian, &out[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	in1, err := readU64s()
	if err != nil {
		return nil, err
	}
	in2, err := readU64s()
	if err != nil {
		return nil, err
	}
	out, err := readU64s()
	if err != nil {
		return nil, err
	}
	credits := make([]uint32, n)
	for i := range credits {
		if err := binary.Read(r, binary.LittleEndian, &credits[i]); err != nil {
			return nil, err
		}
	}

	gates := make([]wire.EmittedGate, n)
	for i := range gates {
		gates[i] = wire.EmittedGate{
			Kind:    wire.EmittedKind(kinds[i]),
			A:       wire.ID(in1[i]),
			B:       wire.ID(in2[i]),
			C:       wire.ID(out[i]),
			Credits: credits[i],
		}
	}
	return gates, nil
}
