//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package gadget

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/streamcc/gatestream/wire"
)

// FieldBits is the bit width of a BN254 scalar-field element, the
// size every field-element operand in the verifier gadgets below is
// represented at. It is read off gnark-crypto's modulus rather than
// hard-coded, so the gadgets track the library's notion of the field
// instead of a copied constant.
var FieldBits = fr.Modulus().BitLen()

// halfAdder returns (sum, carry) for a single bit pair.
func halfAdder(ctx Context, a, b wire.ID) (sum, carry wire.ID, err error) {
	sum, err = Xor(ctx, a, b)
	if err != nil {
		return 0, 0, err
	}
	carry, err = And(ctx, a, b)
	if err != nil {
		return 0, 0, err
	}
	return sum, carry, nil
}

// fullAdder returns (sum, carryOut) for a bit pair plus an incoming
// carry, built from two half adders and an OR combining the two
// partial carries.
func fullAdder(ctx Context, a, b, carryIn wire.ID) (sum, carryOut wire.ID, err error) {
	s1, c1, err := halfAdder(ctx, a, b)
	if err != nil {
		return 0, 0, err
	}
	sum, c2, err := halfAdder(ctx, s1, carryIn)
	if err != nil {
		return 0, 0, err
	}
	carryOut, err = Or(ctx, c1, c2)
	if err != nil {
		return 0, 0, err
	}
	return sum, carryOut, nil
}

// RippleCarryAdder adds two equal-length bit vectors, least-significant
// bit first, and returns their sum (same length) plus the final
// carry-out.
func RippleCarryAdder(ctx Context, a, b []wire.ID) (sum []wire.ID, carryOut wire.ID, err error) {
	if len(a) != len(b) {
		panic("gadget: operand length mismatch")
	}
	carry := ctx.FalseValue()
	sum = make([]wire.ID, len(a))
	for i := range a {
		var s wire.ID
		s, carry, err = fullAdder(ctx, a[i], b[i], carry)
		if err != nil {
			return nil, 0, err
		}
		sum[i] = s
	}
	return sum, carry, nil
}

// LessThan returns whether the bit vector a, interpreted as an
// unsigned little-endian integer, is strictly less than b. It is built
// as the borrow-out of a ripple-borrow subtractor, the bitwise dual of
// RippleCarryAdder.
func LessThan(ctx Context, a, b []wire.ID) (wire.ID, error) {
	if len(a) != len(b) {
		panic("gadget: operand length mismatch")
	}
	borrow := ctx.FalseValue()
	var err error
	for i := range a {
		// borrow_out = (!a & b) | ((a XNOR b) & borrow_in), the
		// standard full-subtractor borrow equation.
		notA, e := Not(ctx, a[i])
		if e != nil {
			return 0, e
		}
		t1, e := And(ctx, notA, b[i])
		if e != nil {
			return 0, e
		}
		xnorAB, e := Xnor(ctx, a[i], b[i])
		if e != nil {
			return 0, e
		}
		t2, e := And(ctx, xnorAB, borrow)
		if e != nil {
			return 0, e
		}
		borrow, err = Or(ctx, t1, t2)
		if err != nil {
			return 0, err
		}
	}
	return borrow, nil
}
