// Package source delivers raw MIDI messages from an input backend to a
// Sink, one cycle at a time, in arrival order and from a single goroutine
// or thread.
package source

import (
	"log/slog"
	"os"

	"midi2key"
)

// Sink consumes one cycle worth of raw MIDI messages. The slices are only
// valid for the duration of the call.
type Sink interface {
	Process(events [][]byte) midi2key.Control
}

// Source is a started MIDI input. Close stops delivery; no Process call is
// in flight once it returns.
type Source interface {
	Close() error
}

// maxCycleEvents bounds the reusable per-cycle event slice.
const maxCycleEvents = 512

// abortExitCode is used when a realtime callback panics.
const abortExitCode = 70

// abortOnPanic turns a panic inside a callback into a logged process exit.
// Unwinding into the host's audio thread is never an option.
func abortOnPanic(logger *slog.Logger) {
	if p := recover(); p != nil {
		logger.Error("fatal fault in MIDI callback", "panic", p)
		os.Exit(abortExitCode)
	}
}
