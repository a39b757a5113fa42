//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package mode

import (
	"fmt"

	"github.com/streamcc/gatestream/gserr"
	"github.com/streamcc/gatestream/u24"
	"github.com/streamcc/gatestream/wire"
)

// Translation is the third pass (spec §4.5, §4.6). Given the credits
// vector the CreditCollection pass computed, it re-runs the same
// gadget a second time and calls Emit once per emitted AND/XOR gate,
// in program order, with that wire's final credit filled in from the
// vector. It allocates temporaries through the identical expandGate
// sequence CreditCollection used, which is what keeps the two passes'
// independent wire counters — and therefore the credit vector's
// indices — from ever drifting apart.
type Translation struct {
	next          wire.ID
	primaryInputs []wire.ID
	credits       *u24.Vector
	defined       wireSet
	emit          func(wire.EmittedGate) error
}

// NewTranslation starts a translation pass over a gadget invoked with
// primaryInputCount primary input wires, reading credits from a
// previously completed CreditCollection.Credits() vector. emit is
// called once per emitted gate; a non-nil return aborts the pass and
// is propagated back through AddGate.
func NewTranslation(primaryInputCount int, credits *u24.Vector, emit func(wire.EmittedGate) error) *Translation {
	t := &Translation{next: wire.FirstInput, credits: credits, emit: emit}
	t.primaryInputs = make([]wire.ID, primaryInputCount)
	for i := range t.primaryInputs {
		t.primaryInputs[i] = t.next
		t.next++
	}
	return t
}

// PrimaryInputs returns the wire ids to pass as the gadget's inputs.
func (t *Translation) PrimaryInputs() []wire.ID { return t.primaryInputs }

// NumAllocated returns the total number of wires issued so far.
func (t *Translation) NumAllocated() int { return int(t.next) }

func (t *Translation) issue() wire.ID {
	id := t.next
	t.next++
	return id
}

func (t *Translation) IssueWire() wire.ID          { return t.issue() }
func (t *Translation) AllocateWire(uint32) wire.ID { return t.issue() }

func (t *Translation) checkAllocated(w wire.ID, g wire.Kind) error {
	if w >= t.next {
		return fmt.Errorf("%w: wire %s (gate %s)", gserr.ErrUseBeforeAlloc, w, g)
	}
	return nil
}

// AddGate validates g's operands, allocates any temporaries its
// expansion needs, and emits every resulting AND/XOR gate with its
// output wire's credit read from the credits vector.
func (t *Translation) AddGate(g wire.Gate) error {
	if err := t.checkAllocated(g.A, g.Kind); err != nil {
		return err
	}
	if err := t.checkAllocated(g.B, g.Kind); err != nil {
		return err
	}
	if err := t.checkAllocated(g.C, g.Kind); err != nil {
		return err
	}
	if t.defined.test(g.C) {
		return fmt.Errorf("%w: wire %s", gserr.ErrDoubleDefinition, g.C)
	}
	t.defined.set(g.C)

	return expandGate(g, func(int) wire.ID {
		return t.issue()
	}, func(kind wire.EmittedKind, in1, in2, out wire.ID) error {
		return t.emit(wire.EmittedGate{
			Kind:    kind,
			A:       in1,
			B:       in2,
			C:       out,
			Credits: t.credits.Get(int(out)),
		})
	})
}

// AddCredits is a no-op: credit totals were already computed by the
// credit-collection pass this translation pass is replaying.
func (t *Translation) AddCredits([]wire.ID, uint32) error { return nil }

func (t *Translation) FeedWire(wire.ID, bool)          {}
func (t *Translation) LookupWire(wire.ID) (bool, bool) { return false, false }

func (t *Translation) FalseValue() wire.ID { return wire.False }
func (t *Translation) TrueValue() wire.ID  { return wire.One }
