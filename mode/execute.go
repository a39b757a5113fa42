//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package mode

import (
	"fmt"

	"github.com/streamcc/gatestream/gserr"
	"github.com/streamcc/gatestream/wire"
)

// Execute evaluates a gadget directly against concrete boolean
// values, independent of credits and streaming. It is the reference
// evaluator for what a gadget computes: a gadget
// that transforms correctly under Execute but whose Translation output
// disagrees with an independent checker points at a pass, not at the
// gadget (spec §8's scenarios all run a gadget under Execute first).
type Execute struct {
	next          wire.ID
	primaryInputs []wire.ID
	values        map[wire.ID]bool
}

// NewExecute starts an execution over a gadget invoked with
// primaryInputCount primary input wires. Callers feed input values
// with FeedWire before running the gadget.
func NewExecute(primaryInputCount int) *Execute {
	e := &Execute{next: wire.FirstInput, values: make(map[wire.ID]bool)}
	e.values[wire.False] = false
	e.values[wire.One] = true
	e.primaryInputs = make([]wire.ID, primaryInputCount)
	for i := range e.primaryInputs {
		e.primaryInputs[i] = e.next
		e.next++
	}
	return e
}

// PrimaryInputs returns the wire ids to pass as the gadget's inputs.
func (e *Execute) PrimaryInputs() []wire.ID { return e.primaryInputs }

// NumAllocated returns the total number of wires issued so far.
func (e *Execute) NumAllocated() int { return int(e.next) }

func (e *Execute) issue() wire.ID {
	id := e.next
	e.next++
	return id
}

func (e *Execute) IssueWire() wire.ID          { return e.issue() }
func (e *Execute) AllocateWire(uint32) wire.ID { return e.issue() }

// AddGate evaluates g against the current values of its inputs and
// records the result as g.C's value.
func (e *Execute) AddGate(g wire.Gate) error {
	a, ok := e.values[g.A]
	if !ok {
		return fmt.Errorf("%w: wire %s", gserr.ErrUseBeforeAlloc, g.A)
	}
	var b bool
	if !g.Kind.Unary() {
		b, ok = e.values[g.B]
		if !ok {
			return fmt.Errorf("%w: wire %s", gserr.ErrUseBeforeAlloc, g.B)
		}
	}
	if _, defined := e.values[g.C]; defined {
		return fmt.Errorf("%w: wire %s", gserr.ErrDoubleDefinition, g.C)
	}
	// Skip the ids of the expansion's temporaries, keeping later ids
	// aligned with the other modes.
	e.next += wire.ID(wire.ExtraWires(g.Kind))
	e.values[g.C] = evalKind(g.Kind, a, b)
	return nil
}

// AddCredits is a no-op: execution has no notion of credits.
func (e *Execute) AddCredits([]wire.ID, uint32) error { return nil }

// FeedWire assigns w's concrete value, typically used to seed primary
// inputs before running the gadget.
func (e *Execute) FeedWire(w wire.ID, v bool) { e.values[w] = v }

// LookupWire returns w's value and whether it has been assigned yet.
func (e *Execute) LookupWire(w wire.ID) (bool, bool) {
	v, ok := e.values[w]
	return v, ok
}

func (e *Execute) FalseValue() wire.ID { return wire.False }
func (e *Execute) TrueValue() wire.ID  { return wire.One }

func evalKind(k wire.Kind, a, b bool) bool {
	switch k {
	case wire.AND:
		return a && b
	case wire.XOR:
		return a != b
	case wire.NAND:
		return !(a && b)
	case wire.XNOR:
		return a == b
	case wire.NOT:
		return !a
	case wire.OR:
		return a || b
	case wire.NOR:
		return !(a || b)
	case wire.NIMP:
		return a && !b
	case wire.NCIMP:
		return !a && b
	case wire.IMP:
		return !a || b
	case wire.CIMP:
		return a || !b
	default:
		panic("mode: unknown gate kind")
	}
}
