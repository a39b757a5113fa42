//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package stream

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/streamcc/gatestream/wire"
)

// Header is the preamble of a gate-stream file (spec §6); its length
// depends on the number of output wires it lists.
type Header struct {
	PrimaryInputs int
	Outputs       []wire.ID
	TotalGates    uint64
}

// ReadHeader parses the header from the start of r.
func ReadHeader(r io.Reader) (Header, error) {
	var magic uint32
	var version byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return Header{}, err
	}
	if magic != Magic {
		return Header{}, fmt.Errorf("stream: bad magic %#x", magic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return Header{}, err
	}
	if version != Version {
		return Header{}, fmt.Errorf("stream: unsupported version %#x", version)
	}
	var primaryInputs, outputCount, totalGates uint64
	if err := binary.Read(r, binary.LittleEndian, &primaryInputs); err != nil {
		return Header{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &outputCount); err != nil {
		return Header{}, err
	}
	outputs := make([]wire.ID, outputCount)
	for i := range outputs {
		var id uint64
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return Header{}, err
		}
		outputs[i] = wire.ID(id)
	}
	if err := binary.Read(r, binary.LittleEndian, &totalGates); err != nil {
		return Header{}, err
	}
	return Header{
		PrimaryInputs: int(primaryInputs),
		Outputs:       outputs,
		TotalGates:    totalGates,
	}, nil
}

// Reader walks a gate-stream file block by block after its header has
// been consumed with ReadHeader.
type Reader struct {
	r    io.Reader
	read uint64
	hdr  Header
}

// NewReader wraps r, positioned immediately after hdr was read from
// it with ReadHeader.
func NewReader(r io.Reader, hdr Header) *Reader {
	return &Reader{r: r, hdr: hdr}
}

// Next returns the next block of gates, or io.EOF once TotalGates have
// been delivered.
func (rd *Reader) Next() ([]wire.EmittedGate, error) {
	if rd.read >= rd.hdr.TotalGates {
		return nil, io.EOF
	}
	var n uint32
	if err := binary.Read(rd.r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	gates, err := readBlock(rd.r, n)
	if err != nil {
		return nil, err
	}
	rd.read += uint64(len(gates))
	return gates, nil
}

// All reads every remaining block and returns the concatenated gates.
func (rd *Reader) All() ([]wire.EmittedGate, error) {
	var all []wire.EmittedGate
	for {
		gates, err := rd.Next()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, gates...)
	}
}
