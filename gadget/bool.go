//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Package gadget collects the boolean-circuit building blocks a real
// caller would compose into a Groth16 verifier: two-input boolean
// primitives, a fixed-width ripple-carry adder and comparator over
// BN254 scalar-field-sized operands, and a size-bounded verifier
// gadget. The core streaming compiler in mode/stream/checker treats
// all of this as an external collaborator (spec §1) — it never
// imports this package — but a real driver links them together, which
// is what cmd/streamc does.
package gadget

import "github.com/streamcc/gatestream/wire"

// Context is an alias for mode.Context, restated here so gadget code
// doesn't need to import mode just to name the type its functions
// take; every gadget in this package is written against it.
type Context interface {
	IssueWire() wire.ID
	AllocateWire(birthCredits uint32) wire.ID
	AddGate(g wire.Gate) error
	AddCredits(wires []wire.ID, n uint32) error
	FeedWire(w wire.ID, v bool)
	LookupWire(w wire.ID) (value bool, ok bool)
	FalseValue() wire.ID
	TrueValue() wire.ID
}

// gate allocates a fresh output wire, submits the source gate, and
// credits each of its non-constant inputs for exactly as many times as
// the gate's own AND/XOR expansion reads them — centralizing the
// "declare what you just consumed" bookkeeping (spec §4.2) so every
// gadget built on top of it is automatically credit-correct, rather
// than leaving each gadget to re-derive it. A source gate like OR
// expands to three emitted gates that read each of a and b twice
// (wire.ExternalRefs), not once, so crediting by a flat 1 would
// undercount and make the checker reject the stream.
func gate(ctx Context, kind wire.Kind, a, b wire.ID) (wire.ID, error) {
	out := ctx.AllocateWire(0)
	if err := ctx.AddGate(wire.Gate{Kind: kind, A: a, B: b, C: out}); err != nil {
		return 0, err
	}
	countA, countB := wire.ExternalRefs(kind)
	if a != ctx.FalseValue() && a != ctx.TrueValue() {
		if err := ctx.AddCredits([]wire.ID{a}, uint32(countA)); err != nil {
			return 0, err
		}
	}
	if !kind.Unary() && b != ctx.FalseValue() && b != ctx.TrueValue() {
		if err := ctx.AddCredits([]wire.ID{b}, uint32(countB)); err != nil {
			return 0, err
		}
	}
	return out, nil
}

// Not returns !a.
func Not(ctx Context, a wire.ID) (wire.ID, error) {
	return gate(ctx, wire.NOT, a, ctx.FalseValue())
}

// And returns a && b.
func And(ctx Context, a, b wire.ID) (wire.ID, error) {
	return gate(ctx, wire.AND, a, b)
}

// Or returns a || b.
func Or(ctx Context, a, b wire.ID) (wire.ID, error) {
	return gate(ctx, wire.OR, a, b)
}

// Xor returns a != b.
func Xor(ctx Context, a, b wire.ID) (wire.ID, error) {
	return gate(ctx, wire.XOR, a, b)
}

// Xnor returns a == b.
func Xnor(ctx Context, a, b wire.ID) (wire.ID, error) {
	return gate(ctx, wire.XNOR, a, b)
}

// Mux returns b if sel else a, built as XOR(a, AND(XOR(a,b), sel)) —
// the standard three-gate boolean multiplexer. Every intermediate and
// every use of a/b/sel is credited by the gate calls themselves; Mux
// needs no extra bookkeeping of its own.
func Mux(ctx Context, sel, a, b wire.ID) (wire.ID, error) {
	diff, err := Xor(ctx, a, b)
	if err != nil {
		return 0, err
	}
	masked, err := And(ctx, diff, sel)
	if err != nil {
		return 0, err
	}
	return Xor(ctx, a, masked)
}

// AllEqual returns the AND-reduction of a slice of single-bit equality
// results, i.e. whether every pairwise comparison a[i]==b[i] held.
func AllEqual(ctx Context, bits []wire.ID) (wire.ID, error) {
	if len(bits) == 0 {
		return ctx.TrueValue(), nil
	}
	acc := bits[0]
	for _, b := range bits[1:] {
		var err error
		acc, err = And(ctx, acc, b)
		if err != nil {
			return 0, err
		}
	}
	return acc, nil
}
