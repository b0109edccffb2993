package source

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/xthexder/go-jack"

	"midi2key"
)

// JACK reads a JACK MIDI input port once per process cycle.
type JACK struct {
	client *jack.Client
	port   *jack.Port
	logger *slog.Logger
	cycle  [][]byte
}

// StartJACK registers client name with a MIDI input port and activates it.
// A JACK server is never started on demand.
func StartJACK(name, portName string, sink Sink, logger *slog.Logger) (*JACK, error) {
	client, status := jack.ClientOpen(name, jack.NoStartServer)
	if err := checkOpen(client != nil, status); err != nil {
		return nil, err
	}
	if status != 0 {
		logger.Info("jack: client opened with status", "client", name, "status", status)
	}

	port := client.PortRegister(portName, jack.DEFAULT_MIDI_TYPE, jack.PortIsInput, 0)
	if port == nil {
		client.Close()
		return nil, errors.Errorf("could not register jack port %v", portName)
	}

	j := &JACK{
		client: client,
		port:   port,
		logger: logger,
		cycle:  make([][]byte, 0, maxCycleEvents),
	}
	if code := client.SetProcessCallback(func(nframes uint32) int {
		return j.process(nframes, sink)
	}); code != 0 {
		client.Close()
		return nil, jackError(code, "could not set jack process callback")
	}
	if code := client.Activate(); code != 0 {
		client.Close()
		return nil, jackError(code, "could not activate jack client")
	}
	logger.Info("jack: client active", "client", name, "port", portName)
	return j, nil
}

// process runs on the JACK realtime thread.
func (j *JACK) process(nframes uint32, sink Sink) int {
	defer abortOnPanic(j.logger)

	events := j.port.GetMidiEvents(nframes)
	j.cycle = j.cycle[:0]
	for _, ev := range events {
		j.cycle = append(j.cycle, ev.Buffer)
	}
	if sink.Process(j.cycle) != midi2key.Continue {
		return 1
	}
	return 0
}

// Close deactivates and closes the client.
func (j *JACK) Close() error {
	if code := j.client.Close(); code != 0 {
		return jackError(code, "could not close jack client")
	}
	return nil
}

// checkOpen fails only when no client came back. JACK also sets status
// bits for a client that did open, e.g. one renamed because its name was
// taken.
func checkOpen(opened bool, status int) error {
	if opened {
		return nil
	}
	return jackError(status, "could not open jack client")
}

func jackError(code int, msg string) error {
	if err := jack.StrError(code); err != nil {
		return errors.Wrap(err, msg)
	}
	return errors.Errorf("%v (status %d)", msg, code)
}
