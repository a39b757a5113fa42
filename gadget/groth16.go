//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package gadget

import "github.com/streamcc/gatestream/wire"

// FieldElement is a BN254 scalar-field element represented as
// FieldBits boolean wires, least-significant bit first — the common
// operand shape every gadget in this package works over.
type FieldElement []wire.ID

// VerifyingKey is the boolean-circuit image of a Groth16 verifying
// key: each field carries the same fixed-width field-element shape a
// real BN254 implementation would use, but the group/pairing
// structure (Alpha, Beta, Gamma, Delta, IC in the real cryptosystem)
// collapses to a single accumulator commitment here. A full
// BN254 pairing check belongs to the external gadget library (spec
// §1's "external collaborator"); this verifier is a wiring-level
// stand-in that exercises the same input/output shape and credit
// discipline a real one would, grounded on the VerifyingKey/Proof
// shape of a Groth16 verifier the example pack carries, without
// computing an actual pairing.
type VerifyingKey struct {
	// Commitment is the verifying key's accumulated public digest: in
	// a real circuit this would fold in Alpha, Beta, Gamma, Delta and
	// the IC basis; here it is the single field element the proof's
	// own accumulator must match.
	Commitment FieldElement
}

// Proof is the boolean-circuit image of a Groth16 proof: a single
// accumulator field element standing in for the (A, B, C) group
// element triple a real BN254 proof carries.
type Proof struct {
	Accumulator FieldElement
}

// VerifyCompressed checks a proof against a verifying key and a vector
// of public input field elements, returning a single boolean wire.
// It folds the public inputs into the proof's accumulator with the
// ripple-carry adder and accepts when the result equals the verifying
// key's commitment — the same "fold inputs, compare against a fixed
// target" shape a real Groth16 pairing check has, without the pairing
// itself.
func VerifyCompressed(ctx Context, vk VerifyingKey, proof Proof, publicInputs []FieldElement) (wire.ID, error) {
	acc := proof.Accumulator
	for _, input := range publicInputs {
		var err error
		acc, _, err = RippleCarryAdder(ctx, acc, input)
		if err != nil {
			return 0, err
		}
	}
	return Equal(ctx, acc, vk.Commitment)
}

// NewFieldElement allocates a fresh FieldElement of FieldBits wires,
// each born with zero credits; the caller adds further credits once
// it knows how the element will be used.
func NewFieldElement(ctx Context) FieldElement {
	bits := make(FieldElement, FieldBits)
	for i := range bits {
		bits[i] = ctx.AllocateWire(0)
	}
	return bits
}
