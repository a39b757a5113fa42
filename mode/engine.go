//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package mode

import "github.com/streamcc/gatestream/wire"

// expandGate walks g's expansion table entry, allocating each
// expansion-local temporary through allocTemp and handing every
// resulting two-input emitted gate to emit, in order. CreditCollection
// and Translation both call this with their own allocTemp/emit, which
// is what keeps their two independent wire counters from ever drifting
// apart: neither pass hand-codes the per-kind gate shapes itself, both
// read them from wire.Expansion.
func expandGate(
	g wire.Gate,
	allocTemp func(i int) wire.ID,
	emit func(kind wire.EmittedKind, in1, in2, out wire.ID) error,
) error {
	steps := wire.Expansion(g.Kind)
	temps := make([]wire.ID, wire.ExtraWires(g.Kind))
	for i := range temps {
		temps[i] = allocTemp(i)
	}
	resolve := func(op wire.Operand) wire.ID {
		switch op {
		case wire.OperandA:
			return g.A
		case wire.OperandB:
			return g.B
		case wire.OperandOne:
			return wire.One
		case wire.OperandOut:
			return g.C
		default:
			return temps[op-wire.OperandT1]
		}
	}
	for _, step := range steps {
		if err := emit(step.Kind, resolve(step.In1), resolve(step.In2), resolve(step.Out)); err != nil {
			return err
		}
	}
	return nil
}

// wireSet is a growable dense set of wire ids, used to detect a wire
// id being defined as a gate's output more than once (testable
// property 2).
type wireSet struct {
	bits []bool
}

func (s *wireSet) set(id wire.ID) {
	idx := int(id)
	if idx >= len(s.bits) {
		grown := make([]bool, idx+1)
		copy(grown, s.bits)
		s.bits = grown
	}
	s.bits[idx] = true
}

func (s *wireSet) test(id wire.ID) bool {
	idx := int(id)
	if idx >= len(s.bits) {
		return false
	}
	return s.bits[idx]
}
