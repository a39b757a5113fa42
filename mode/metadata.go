//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package mode

import "github.com/streamcc/gatestream/wire"

// Metadata is the first of the three passes (spec §4.3). It exists so
// the driver can learn, from a single cheap dry run, how many wires a
// gadget's root invocation allocates in total and which final ids
// carry its outputs, before constructing the credit-collection pass
// (which needs the primary input count up front) and before the
// translation pass (which needs to know which ids to list in the
// output-wire manifest). No gate is recorded or validated; ids are
// pure placeholders used only for counting and shape discovery.
type Metadata struct {
	next          wire.ID
	primaryInputs []wire.ID
}

// NewMetadata starts a metadata pass over a gadget invoked with
// primaryInputCount primary input wires.
func NewMetadata(primaryInputCount int) *Metadata {
	m := &Metadata{next: wire.FirstInput}
	m.primaryInputs = make([]wire.ID, primaryInputCount)
	for i := range m.primaryInputs {
		m.primaryInputs[i] = m.next
		m.next++
	}
	return m
}

// PrimaryInputs returns the wire ids to pass as the gadget's inputs.
func (m *Metadata) PrimaryInputs() []wire.ID { return m.primaryInputs }

// NumAllocated returns the total number of wires issued so far,
// including the reserved constants and primary inputs.
func (m *Metadata) NumAllocated() int { return int(m.next) }

func (m *Metadata) issue() wire.ID {
	id := m.next
	m.next++
	return id
}

func (m *Metadata) IssueWire() wire.ID          { return m.issue() }
func (m *Metadata) AllocateWire(uint32) wire.ID { return m.issue() }

// AddGate records no gate (spec §4.3); it only advances the allocator
// past the temporaries g's expansion introduces, so that ids issued
// afterwards match the ones the credit-collection and translation
// passes issue.
func (m *Metadata) AddGate(g wire.Gate) error {
	m.next += wire.ID(wire.ExtraWires(g.Kind))
	return nil
}

// AddCredits is a no-op: credit accounting belongs to the second pass.
func (m *Metadata) AddCredits([]wire.ID, uint32) error { return nil }

func (m *Metadata) FeedWire(wire.ID, bool)          {}
func (m *Metadata) LookupWire(wire.ID) (bool, bool) { return false, false }

func (m *Metadata) FalseValue() wire.ID { return wire.False }
func (m *Metadata) TrueValue() wire.ID  { return wire.One }
