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

// CreditCollection is the second pass (spec §4.4). It re-runs the same
// gadget the metadata pass ran and computes, for every wire the gadget
// ever allocates, the total number of times it will be consumed. A
// wire's credit is the sum of its declared birth (AllocateWire's
// argument) and every later AddCredits call naming it; AddGate itself
// never adds an implicit credit to the wires it reads, since the
// gadget is expected to declare consumption explicitly (spec §4.2).
// Expansion-local temporaries are the one exception: they are never
// visible to the gadget, so their credit is the fixed per-kind count
// wire.TempCredits derives from the shared expansion table.
type CreditCollection struct {
	next               wire.ID
	primaryInputs      []wire.ID
	credits            *u24.Vector
	defined            wireSet
	biggestCreditsSeen uint32
}

// NewCreditCollection starts a credit-collection pass over a gadget
// invoked with primaryInputCount primary input wires.
func NewCreditCollection(primaryInputCount int) *CreditCollection {
	c := &CreditCollection{next: wire.FirstInput, credits: u24.NewVector()}
	c.primaryInputs = make([]wire.ID, primaryInputCount)
	for i := range c.primaryInputs {
		c.primaryInputs[i] = c.next
		c.next++
	}
	return c
}

// PrimaryInputs returns the wire ids to pass as the gadget's inputs.
func (c *CreditCollection) PrimaryInputs() []wire.ID { return c.primaryInputs }

// NumAllocated returns the total number of wires issued so far.
func (c *CreditCollection) NumAllocated() int { return int(c.next) }

// Credits returns the computed credit vector, indexed by wire id. The
// translation pass reads it to fill in each emitted gate's credit
// field; it never recomputes a credit value itself.
func (c *CreditCollection) Credits() *u24.Vector { return c.credits }

// BiggestCreditsSeen returns the largest single credit value observed,
// a cheap telemetry figure surfaced in pass-completion log lines.
func (c *CreditCollection) BiggestCreditsSeen() uint32 { return c.biggestCreditsSeen }

// ZeroOutputs forces the credit of every wire in outputs to 0 (spec
// §4.4's mandated post-pass adjustment: a circuit's user-facing output
// wires are consumed by the caller, not by any later gate, so their
// declared credit must read zero no matter what it accumulated during
// the gadget's own run). The caller runs this once, after the credit
// pass completes and before translation reads the vector.
func (c *CreditCollection) ZeroOutputs(outputs []wire.ID) {
	for _, w := range outputs {
		c.credits.Set(int(w), 0)
	}
}

func (c *CreditCollection) issue() wire.ID {
	id := c.next
	c.next++
	return id
}

func (c *CreditCollection) noteCredit(v uint32) {
	if v > c.biggestCreditsSeen {
		c.biggestCreditsSeen = v
	}
}

func (c *CreditCollection) IssueWire() wire.ID { return c.AllocateWire(0) }

func (c *CreditCollection) AllocateWire(birth uint32) wire.ID {
	id := c.issue()
	c.credits.Set(int(id), birth)
	c.noteCredit(birth)
	return id
}

func (c *CreditCollection) checkAllocated(w wire.ID, g wire.Kind) error {
	if w >= c.next {
		return fmt.Errorf("%w: wire %s (gate %s)", gserr.ErrUseBeforeAlloc, w, g)
	}
	return nil
}

// AddGate validates g's operands and walks its expansion, allocating
// and crediting any internal temporaries the expansion needs. It does
// not record the gate itself: the translation pass rebuilds the
// emitted stream independently from the same gadget.
func (c *CreditCollection) AddGate(g wire.Gate) error {
	if err := c.checkAllocated(g.A, g.Kind); err != nil {
		return err
	}
	if err := c.checkAllocated(g.B, g.Kind); err != nil {
		return err
	}
	if err := c.checkAllocated(g.C, g.Kind); err != nil {
		return err
	}
	if c.defined.test(g.C) {
		return fmt.Errorf("%w: wire %s", gserr.ErrDoubleDefinition, g.C)
	}
	c.defined.set(g.C)

	return expandGate(g, func(i int) wire.ID {
		id := c.issue()
		cr := wire.TempCredits(g.Kind, i)
		c.credits.Set(int(id), cr)
		c.noteCredit(cr)
		return id
	}, func(wire.EmittedKind, wire.ID, wire.ID, wire.ID) error {
		return nil
	})
}

// AddCredits adds n to every named wire's credit total.
func (c *CreditCollection) AddCredits(wires []wire.ID, n uint32) error {
	if n == 0 {
		return nil
	}
	for _, w := range wires {
		if w >= c.next {
			return fmt.Errorf("%w: wire %s", gserr.ErrUseBeforeAlloc, w)
		}
		if !c.credits.Add(int(w), n) {
			return fmt.Errorf("%w: wire %s", gserr.ErrCreditOverflow, w)
		}
		c.noteCredit(c.credits.Get(int(w)))
	}
	return nil
}

func (c *CreditCollection) FeedWire(wire.ID, bool)          {}
func (c *CreditCollection) LookupWire(wire.ID) (bool, bool) { return false, false }

func (c *CreditCollection) FalseValue() wire.ID { return wire.False }
func (c *CreditCollection) TrueValue() wire.ID  { return wire.One }
