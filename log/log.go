//
// Copyright (c) 2020 Markku Rossi
//
// All rights reserved.
//

// Package log wires structured, per-component logging for the
// compiler's passes on top of zerolog. It mirrors the shape of the
// distilled Rust original's `tracing::info!("completed credits pass
// ({}) in {:?}", ...)` calls, and replaces the teacher's bare
// fmt.Printf progress lines (circuit/player.go, compiler/circuits/
// rewrite.go) with structured, leveled events instead.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	level            = zerolog.InfoLevel
)

// SetOutput redirects the output of component loggers created after
// the call, e.g. to capture log lines instead of writing to stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetVerbose raises or lowers the global log level, the same knob the
// teacher's utils.Params.Verbose flag controls.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		level = zerolog.DebugLevel
	} else {
		level = zerolog.InfoLevel
	}
}

// For returns a logger for the named pass or component ("metadata",
// "credit", "translate", "checker", ...).
func For(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return zerolog.New(output).Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()
}
