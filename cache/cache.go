//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Package cache persists a completed credit-collection pass's results
// to disk so a later run can skip repeating it: credits.cache holds
// the raw credit vector, outputs.cache the circuit's output wire ids
// (spec §6 Cache files, grounded on the original's g16gen/src/cache.rs
// fanout.cache/outputs.cache pair).
package cache

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/streamcc/gatestream/u24"
	"github.com/streamcc/gatestream/wire"
)

const (
	// CreditsFile is the default credits.cache file name.
	CreditsFile = "credits.cache"
	// OutputsFile is the default outputs.cache file name.
	OutputsFile = "outputs.cache"
)

// SaveCredits writes v as a raw sequence of 3-byte little-endian
// entries to path.
func SaveCredits(path string, v *u24.Vector) error {
	data, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadCredits reads a credits.cache file back into a vector.
func LoadCredits(path string) (*u24.Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v := u24.NewVector()
	if err := v.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return v, nil
}

// SaveOutputs writes outputs as a raw sequence of 8-byte little-endian
// wire ids to path.
func SaveOutputs(path string, outputs []wire.ID) error {
	data := make([]byte, 8*len(outputs))
	for i, w := range outputs {
		binary.LittleEndian.PutUint64(data[i*8:], uint64(w))
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadOutputs reads an outputs.cache file back into a wire id slice.
func LoadOutputs(path string) ([]wire.ID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%8 != 0 {
		return nil, io.ErrUnexpectedEOF
	}
	outputs := make([]wire.ID, len(data)/8)
	for i := range outputs {
		outputs[i] = wire.ID(binary.LittleEndian.Uint64(data[i*8:]))
	}
	return outputs, nil
}

// TryLoad attempts to load both cache files, mirroring the original's
// try_load_cache: any missing or malformed file means the caller
// should fall through to a fresh credit-collection pass instead of
// failing outright.
func TryLoad(creditsPath, outputsPath string) (*u24.Vector, []wire.ID, bool) {
	credits, err := LoadCredits(creditsPath)
	if err != nil {
		return nil, nil, false
	}
	outputs, err := LoadOutputs(outputsPath)
	if err != nil {
		return nil, nil, false
	}
	return credits, outputs, true
}

// Save writes both cache files, mirroring the original's save_cache.
func Save(creditsPath, outputsPath string, credits *u24.Vector, outputs []wire.ID) error {
	if err := SaveCredits(creditsPath, credits); err != nil {
		return err
	}
	return SaveOutputs(outputsPath, outputs)
}
