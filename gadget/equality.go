//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package gadget

import "github.com/streamcc/gatestream/wire"

// Equal returns whether two equal-length bit vectors are identical,
// bit for bit.
func Equal(ctx Context, a, b []wire.ID) (wire.ID, error) {
	if len(a) != len(b) {
		panic("gadget: operand length mismatch")
	}
	bits := make([]wire.ID, len(a))
	for i := range a {
		eq, err := Xnor(ctx, a[i], b[i])
		if err != nil {
			return 0, err
		}
		bits[i] = eq
	}
	return AllEqual(ctx, bits)
}
