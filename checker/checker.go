//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Package checker implements an independent verifier of credit
// correctness (spec §4.7): it reads an emitted gate stream and
// replays only the credit bookkeeping, never the gate semantics,
// checking that every wire's declared credit is consumed exactly.
package checker

import (
	"fmt"

	"github.com/streamcc/gatestream/gserr"
	"github.com/streamcc/gatestream/wire"
)

// Checker maintains the live dictionary wire -> remaining_credits
// described in spec §4.7. Constants and primary-input wires
// (normalized id < primaryInputCount+2, the convention spec.md's Open
// Questions section asks implementations to settle on) are exempt:
// they are always available and never inserted into the dictionary.
type Checker struct {
	primaryInputBound wire.ID
	live              map[wire.ID]uint32
	gatesSeen         uint64
}

// New starts a checker for a circuit declaring primaryInputCount
// primary inputs.
func New(primaryInputCount int) *Checker {
	return &Checker{
		primaryInputBound: wire.FirstInput + wire.ID(primaryInputCount),
		live:              make(map[wire.ID]uint32),
	}
}

func (c *Checker) exempt(w wire.ID) bool {
	return w < c.primaryInputBound
}

// Check processes one emitted gate, decrementing its inputs' credits
// and inserting its output's declared credit.
func (c *Checker) Check(g wire.EmittedGate) error {
	if err := c.consume(g.A); err != nil {
		return fmt.Errorf("gate %d (%s): %w", c.gatesSeen, g, err)
	}
	if err := c.consume(g.B); err != nil {
		return fmt.Errorf("gate %d (%s): %w", c.gatesSeen, g, err)
	}
	if _, exists := c.live[g.C]; exists {
		return fmt.Errorf("gate %d (%s): %w: wire %s already has a live entry",
			c.gatesSeen, g, gserr.ErrDoubleDefinition, g.C)
	}
	// A wire declared with zero credits has no future consumer (spec
	// §4.4's "output wires forced to 0"); it never needs a dictionary
	// entry, so the live set drains to empty rather than accumulating
	// one dead zero-entry per such wire.
	if g.Credits > 0 {
		c.live[g.C] = g.Credits
	}
	c.gatesSeen++
	return nil
}

func (c *Checker) consume(w wire.ID) error {
	if c.exempt(w) {
		return nil
	}
	remaining, ok := c.live[w]
	if !ok {
		return fmt.Errorf("%w: wire %s", gserr.ErrCreditExhausted, w)
	}
	remaining--
	if remaining == 0 {
		delete(c.live, w)
	} else {
		c.live[w] = remaining
	}
	return nil
}

// CheckAll runs Check over every gate in order.
func (c *Checker) CheckAll(gates []wire.EmittedGate) error {
	for _, g := range gates {
		if err := c.Check(g); err != nil {
			return err
		}
	}
	return nil
}

// Dangling returns the wires still live in the dictionary. Declared
// circuit outputs carry credit 0 and are never inserted, so a
// well-formed circuit's dangling set is empty once the whole stream
// has been checked (spec §8 testable
// property 7: "consumes every dictionary entry to zero by
// end-of-stream").
func (c *Checker) Dangling() map[wire.ID]uint32 {
	return c.live
}

// GatesSeen returns the number of gates processed so far.
func (c *Checker) GatesSeen() uint64 { return c.gatesSeen }
