//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

package stream

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/streamcc/gatestream/gserr"
	"github.com/streamcc/gatestream/log"
	"github.com/streamcc/gatestream/wire"
)

// Writer streams emitted gates to a file concurrently with circuit
// construction. Push is called from the gadget (producer) thread;
// internally a dedicated goroutine (the consumer) drains a bounded
// ring buffer, packs gates into SoA blocks, and writes them to disk
// (spec §4.6, §5).
//
// The ring buffer is a capacity-RingCapacity Go channel. Push spins on
// a non-blocking send exactly the way the reference implementation's
// try_push loop does (spec §5: "the producer spins... it does not
// yield"); the writer goroutine polls the same channel non-blockingly
// before ever entering a blocking select against the stop signal, so a
// gate pushed in the instant before Close is called is always drained
// before the file is finalized (spec §5's biased-select guarantee).
type Writer struct {
	ring chan wire.EmittedGate
	stop chan struct{}
	done chan error
}

// NewWriter opens path and starts the writer goroutine. primaryInputs
// is the declared primary-input count; outputs lists the normalized
// ids of the circuit's output wires, in order (spec §6 header).
func NewWriter(path string, primaryInputs int, outputs []wire.ID) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
	}

	totalGatesOffset, err := writeHeader(f, primaryInputs, outputs)
	if err != nil {
		f.Close()
		return nil, err
	}

	w := &Writer{
		ring: make(chan wire.EmittedGate, RingCapacity),
		stop: make(chan struct{}, 1),
		done: make(chan error, 1),
	}
	go w.run(f, totalGatesOffset)
	return w, nil
}

// writeHeader writes the header and returns the byte
// offset of the total_gates field, so it can be patched in at
// Close/Finalize once the true gate count is known.
func writeHeader(f *os.File, primaryInputs int, outputs []wire.ID) (int64, error) {
	fields := []interface{}{
		Magic,
		Version,
		uint64(primaryInputs),
		uint64(len(outputs)),
	}
	for _, v := range fields {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return 0, fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
		}
	}
	for _, o := range outputs {
		if err := binary.Write(f, binary.LittleEndian, uint64(o)); err != nil {
			return 0, fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
		}
	}
	offset, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint64(0)); err != nil {
		return 0, fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
	}
	return offset, nil
}

// Push enqueues an emitted gate, busy-waiting if the ring is full
// (RingStall, spec §7: "not an error").
func (w *Writer) Push(g wire.EmittedGate) {
	for {
		select {
		case w.ring <- g:
			return
		default:
		}
	}
}

// Close signals the writer goroutine to drain the remaining buffer,
// finalize the file (patch the gate count, flush any partial block),
// and returns the first error encountered, if any.
func (w *Writer) Close() error {
	w.stop <- struct{}{}
	return <-w.done
}

func (w *Writer) run(f *os.File, totalGatesOffset int64) {
	logger := log.For("stream-writer")
	b := newBlock()
	var total uint64

	flush := func() error {
		if b.len() == 0 {
			return nil
		}
		if err := b.writeTo(f); err != nil {
			return fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
		}
		b.reset()
		return nil
	}

	writeGate := func(g wire.EmittedGate) error {
		b.add(g)
		total++
		if b.full() {
			return flush()
		}
		return nil
	}

	finalize := func() error {
		if err := flush(); err != nil {
			return err
		}
		if _, err := f.Seek(totalGatesOffset, io.SeekStart); err != nil {
			return fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
		}
		if err := binary.Write(f, binary.LittleEndian, total); err != nil {
			return fmt.Errorf("%w: %v", gserr.ErrWriterIO, err)
		}
		return f.Close()
	}

	for {
		// Prefer draining the ring over ever observing the stop
		// signal: a non-blocking poll first, so a gate sent just
		// before Close is still seen here rather than racing the
		// blocking select below.
		select {
		case g := <-w.ring:
			if err := writeGate(g); err != nil {
				w.done <- err
				return
			}
			continue
		default:
		}

		select {
		case g := <-w.ring:
			if err := writeGate(g); err != nil {
				w.done <- err
				return
			}
		case <-w.stop:
			for {
				select {
				case g := <-w.ring:
					if err := writeGate(g); err != nil {
						w.done <- err
						return
					}
				default:
					logger.Info().Uint64("total_gates", total).Msg("finalizing gate stream")
					w.done <- finalize()
					return
				}
			}
		}
	}
}
