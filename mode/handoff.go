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

// Handoff is what a metadata pass learns about a gadget's root
// invocation: its primary input ids, its output ids, and the total
// number of wires it allocated. A later pass (credit collection or
// translation) re-runs the same gadget under its own mode and checks
// its own root invocation against the Handoff (spec §4.3's
// to_root_ctx). Because every mode allocates ids in the same
// deterministic order for the same primary input count, a correctly
// behaving gadget produces ids that match the metadata pass's
// value-for-value; Verify turns that into an explicit check instead
// of a silent assumption.
type Handoff struct {
	PrimaryInputs []wire.ID
	Outputs       []wire.ID
	NumAllocated  int
}

// Verify checks a later pass's own outputs and allocation count
// against the metadata pass's record. A gadget that allocates a
// different number of wires, or disagrees on which ids are outputs,
// across passes is ill-formed (spec §4.3 Failure).
func (h Handoff) Verify(gotOutputs []wire.ID, gotAllocated int) error {
	if gotAllocated != h.NumAllocated {
		return fmt.Errorf("%w: metadata pass allocated %d wires, this pass allocated %d",
			gserr.ErrAllocationMismatch, h.NumAllocated, gotAllocated)
	}
	if len(gotOutputs) != len(h.Outputs) {
		return fmt.Errorf("%w: metadata pass produced %d output wires, this pass produced %d",
			gserr.ErrAllocationMismatch, len(h.Outputs), len(gotOutputs))
	}
	for i := range gotOutputs {
		if gotOutputs[i] != h.Outputs[i] {
			return fmt.Errorf("%w: output wire %d diverged: metadata=%s this=%s",
				gserr.ErrAllocationMismatch, i, h.Outputs[i], gotOutputs[i])
		}
	}
	return nil
}
