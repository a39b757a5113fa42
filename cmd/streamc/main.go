//
// main.go
//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Command streamc drives the three-pass pipeline over a fixed
// demonstration gadget (an N-bit ripple-carry adder) and streams the
// result to disk. It is glue for local testing and manual inspection
// of the pipeline, not a general circuit-description front end: it
// takes no circuit source, only a bit width and an output path.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/streamcc/gatestream/checker"
	"github.com/streamcc/gatestream/gadget"
	gslog "github.com/streamcc/gatestream/log"
	"github.com/streamcc/gatestream/mode"
	"github.com/streamcc/gatestream/params"
	"github.com/streamcc/gatestream/stream"
	"github.com/streamcc/gatestream/wire"
)

func adderGadget(bits int) mode.Gadget {
	return func(ctx mode.Context, inputs []wire.ID) ([]wire.ID, error) {
		a := inputs[:bits]
		b := inputs[bits:]
		sum, carry, err := gadget.RippleCarryAdder(ctx, a, b)
		if err != nil {
			return nil, err
		}
		return append(sum, carry), nil
	}
}

func run() error {
	bits := flag.Int("bits", 64, "operand width in bits")
	out := flag.String("o", "adder.gats", "output gate-stream path")
	verify := flag.Bool("verify", true, "run the independent checker over the result")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	p := params.Defaults()
	p.Verbose = *verbose
	gslog.SetVerbose(p.Verbose)
	logger := gslog.For("streamc")

	g := adderGadget(*bits)
	n := 2 * *bits

	meta := mode.NewMetadata(n)
	metaOut, err := g(meta, meta.PrimaryInputs())
	if err != nil {
		return fmt.Errorf("metadata pass: %w", err)
	}
	logger.Info().Int("allocated", meta.NumAllocated()).Int("outputs", len(metaOut)).
		Msg("metadata pass complete")

	cc := mode.NewCreditCollection(n)
	ccOut, err := g(cc, cc.PrimaryInputs())
	if err != nil {
		return fmt.Errorf("credit-collection pass: %w", err)
	}
	handoff := mode.Handoff{PrimaryInputs: meta.PrimaryInputs(), Outputs: metaOut, NumAllocated: meta.NumAllocated()}
	if err := handoff.Verify(ccOut, cc.NumAllocated()); err != nil {
		return fmt.Errorf("credit-collection pass: %w", err)
	}
	logger.Info().Uint32("biggest_credit", cc.BiggestCreditsSeen()).Msg("credit-collection pass complete")
	cc.ZeroOutputs(ccOut)

	w, err := stream.NewWriter(*out, n, ccOut)
	if err != nil {
		return fmt.Errorf("open writer: %w", err)
	}

	var chk *checker.Checker
	if *verify {
		chk = checker.New(n)
	}

	tr := mode.NewTranslation(n, cc.Credits(), func(eg wire.EmittedGate) error {
		if chk != nil {
			if err := chk.Check(eg); err != nil {
				return err
			}
		}
		w.Push(eg)
		return nil
	})
	trOut, err := g(tr, tr.PrimaryInputs())
	if err != nil {
		w.Close()
		return fmt.Errorf("translation pass: %w", err)
	}
	if err := handoff.Verify(trOut, tr.NumAllocated()); err != nil {
		w.Close()
		return fmt.Errorf("translation pass: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	logger.Info().Str("path", *out).Msg("gate stream written")

	if chk != nil {
		if dangling := chk.Dangling(); len(dangling) > 0 {
			return fmt.Errorf("checker: %d wires still live at end of stream", len(dangling))
		}
		logger.Info().Uint64("gates_checked", chk.GatesSeen()).Msg("checker accepted the stream")
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "streamc:", err)
		os.Exit(1)
	}
}
