//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Package mode implements the polymorphic "circuit context" gadgets
// run under (spec §4.2): Metadata, CreditCollection, Translation and
// Execute. Each is a small closed variant rather than an inheritance
// hierarchy, per the Design Notes' "polymorphism over modes".
package mode

import "github.com/streamcc/gatestream/wire"

// Context is the capability set a gadget is written against. Gadgets
// are polymorphic over Context: the same gadget source runs unchanged
// under any mode (spec §4.2).
type Context interface {
	// IssueWire returns a fresh wire id, born with zero declared
	// credits.
	IssueWire() wire.ID

	// AllocateWire returns a fresh wire id born with the given
	// declared consumer count (spec §4.2, §4.4).
	AllocateWire(birthCredits uint32) wire.ID

	// AddGate submits a source gate. Inputs must already be
	// allocated; the output must be fresh.
	AddGate(g wire.Gate) error

	// AddCredits declares that each wire will be consumed n
	// additional times beyond what prior AddGate/AddCredits calls
	// already asserted. n must be >= 1.
	AddCredits(wires []wire.ID, n uint32) error

	// FeedWire and LookupWire are only meaningful under Execute; they
	// are no-ops under Metadata/CreditCollection/Translation.
	FeedWire(w wire.ID, v bool)
	LookupWire(w wire.ID) (value bool, ok bool)

	// FalseValue and TrueValue return the mode's representation of
	// the boolean constants, always the reserved wire.False/wire.One
	// identities (spec §4.1: constants are pre-allocated and never
	// gate outputs).
	FalseValue() wire.ID
	TrueValue() wire.ID
}

// Gadget is the shape every reusable circuit sub-program takes: given
// a mode context and its input wires, it issues allocation requests,
// emits source gates, and returns its output wires.
type Gadget func(ctx Context, inputs []wire.ID) ([]wire.ID, error)
