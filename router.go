package midi2key

import (
	"context"
	"log/slog"
	"sync/atomic"

	"midi2key/keysim"
)

// Keyer injects key sequences into the windowing system.
type Keyer interface {
	KeyDown(seq string, mods keysim.Modifiers) error
	KeyUp(seq string, mods keysim.Modifiers) error
}

// Control is what a process callback tells its host. A Router only ever
// answers Continue.
type Control int

const Continue Control = 0

// Stats counts what a Router has seen since it was created.
type Stats struct {
	Handled   uint64
	KeyDowns  uint64
	KeyUps    uint64
	Unmapped  uint64
	Malformed uint64
	Failed    uint64
}

// Router turns MIDI note messages into key presses. It keeps no note state
// between calls: two note ons for the same note both press the key.
//
// A Router is driven from exactly one goroutine or thread at a time; its
// keybinds are copied at construction and never change.
type Router struct {
	keybinds [NoteCount]string
	keyer    Keyer
	logger   *slog.Logger

	handled   atomic.Uint64
	keyDowns  atomic.Uint64
	keyUps    atomic.Uint64
	unmapped  atomic.Uint64
	malformed atomic.Uint64
	failed    atomic.Uint64
}

// NewRouter captures config's keybinds and takes ownership of keyer.
func NewRouter(config *Config, keyer Keyer, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		keybinds: config.Keybinds,
		keyer:    keyer,
		logger:   logger,
	}
}

// Process handles one cycle worth of raw messages in order.
func (r *Router) Process(events [][]byte) Control {
	for _, raw := range events {
		r.Handle(raw)
	}
	return Continue
}

// Handle routes a single raw MIDI message. Errors are logged and counted,
// never returned.
func (r *Router) Handle(raw []byte) {
	r.handled.Add(1)

	ev, err := ParseMessage(raw)
	if err != nil {
		r.malformed.Add(1)
		r.logger.LogAttrs(context.Background(), slog.LevelError, "unable to parse MIDI message",
			slog.String("err", err.Error()), slog.Int("len", len(raw)))
		return
	}

	switch ev.Kind {
	case KindNoteOn:
		action := r.keybinds[ev.Note]
		if action == "" {
			r.unmapped.Add(1)
			r.logger.LogAttrs(context.Background(), slog.LevelInfo, "unmapped note",
				slog.Int("note", int(ev.Note)))
			return
		}
		r.keyDowns.Add(1)
		if err := r.keyer.KeyDown(action, 0); err != nil {
			r.failed.Add(1)
			r.logger.LogAttrs(context.Background(), slog.LevelError, "unable to send key sequence down",
				slog.String("keys", action), slog.String("err", err.Error()))
		}
	case KindNoteOff:
		action := r.keybinds[ev.Note]
		if action == "" {
			return
		}
		r.keyUps.Add(1)
		if err := r.keyer.KeyUp(action, 0); err != nil {
			r.failed.Add(1)
			r.logger.LogAttrs(context.Background(), slog.LevelError, "unable to send key sequence up",
				slog.String("keys", action), slog.String("err", err.Error()))
		}
	}
}

// Stats returns a snapshot of the counters. It is safe to call from any
// goroutine.
func (r *Router) Stats() Stats {
	return Stats{
		Handled:   r.handled.Load(),
		KeyDowns:  r.keyDowns.Load(),
		KeyUps:    r.keyUps.Load(),
		Unmapped:  r.unmapped.Load(),
		Malformed: r.malformed.Load(),
		Failed:    r.failed.Load(),
	}
}
