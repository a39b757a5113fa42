//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Package gserr defines the fatal error kinds the streaming compiler
// can raise (spec §7). Every kind is a sentinel error value so callers
// can test for it with errors.Is; wrapping adds the offending wire or
// gate so the message stays actionable, following the same
// "format, wrap, propagate immediately" discipline as the teacher's
// compiler/utils.Logger.Errorf.
package gserr

import "errors"

// Sentinel errors for the kinds spec.md §7 lists as fatal. RingStall
// is explicitly not an error (§7) and has no sentinel here.
var (
	// ErrAllocationMismatch is returned when the metadata pass and a
	// later pass disagree on the number of wires a gadget allocates.
	ErrAllocationMismatch = errors.New("gatestream: allocation mismatch between passes")

	// ErrCreditOverflow is returned when add_credits would push a
	// wire's credit past 2^24-1.
	ErrCreditOverflow = errors.New("gatestream: credit overflow")

	// ErrUseBeforeAlloc is returned when an emitted gate references a
	// wire that has not yet been defined.
	ErrUseBeforeAlloc = errors.New("gatestream: wire used before allocation")

	// ErrCreditExhausted is returned by the checker when an input wire
	// is absent from the live set.
	ErrCreditExhausted = errors.New("gatestream: credit exhausted for live wire")

	// ErrWriterIO is returned when the streaming writer fails to
	// write to its backing file.
	ErrWriterIO = errors.New("gatestream: writer i/o error")

	// ErrDoubleDefinition is returned when a normalized id appears as
	// the output of more than one emitted gate (testable property 2).
	ErrDoubleDefinition = errors.New("gatestream: wire defined by more than one gate")
)
