package source

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rakyll/portmidi"

	"midi2key"
)

// PollInterval is how often the PortMIDI input is drained.
const PollInterval = time.Millisecond

// PortMIDI polls a PortMIDI input device. Every poll that yields events is
// one cycle.
type PortMIDI struct {
	stream *portmidi.Stream
	logger *slog.Logger
	stop   chan struct{}
	done   chan struct{}

	raw   [maxCycleEvents][3]byte
	cycle [][]byte
}

// StartPortMIDI opens the first input device whose name contains device
// (case-insensitive), or the default input when device is empty.
func StartPortMIDI(device string, sink Sink, logger *slog.Logger) (*PortMIDI, error) {
	if err := portmidi.Initialize(); err != nil {
		return nil, errors.Wrap(err, "could not initialize portmidi")
	}

	id, err := findInputDevice(device)
	if err != nil {
		portmidi.Terminate()
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "MIDI input from %v\n", portmidi.Info(id).Name)

	stream, err := portmidi.NewInputStream(id, 1024)
	if err != nil {
		portmidi.Terminate()
		return nil, errors.Wrap(err, "could not create midi input")
	}

	p := &PortMIDI{
		stream: stream,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		cycle:  make([][]byte, 0, maxCycleEvents),
	}
	go p.loop(sink)
	return p, nil
}

func findInputDevice(device string) (portmidi.DeviceID, error) {
	if device == "" {
		id := portmidi.DefaultInputDeviceID()
		if id < 0 {
			return 0, errors.New("no default midi input device")
		}
		return id, nil
	}
	want := strings.ToLower(device)
	for i := 0; i < portmidi.CountDevices(); i++ {
		id := portmidi.DeviceID(i)
		info := portmidi.Info(id)
		if info == nil || !info.IsInputAvailable {
			continue
		}
		if strings.Contains(strings.ToLower(info.Name), want) {
			return id, nil
		}
	}
	return 0, errors.Errorf("no midi input device matching %q", device)
}

func (p *PortMIDI) loop(sink Sink) {
	defer close(p.done)
	defer abortOnPanic(p.logger)

	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
		}

		ok, err := p.stream.Poll()
		if err != nil {
			p.logger.Error("portmidi: poll failed", "err", err.Error())
			continue
		}
		if !ok {
			continue
		}
		events, err := p.stream.Read(maxCycleEvents)
		if err != nil {
			p.logger.Error("portmidi: read failed", "err", err.Error())
			continue
		}
		sink.Process(p.fill(events))
	}
}

// fill converts PortMIDI events into the reusable cycle slice. Sysex is
// dropped since PortMIDI delivers it split across events.
func (p *PortMIDI) fill(events []portmidi.Event) [][]byte {
	p.cycle = p.cycle[:0]
	for i, ev := range events {
		if i == maxCycleEvents {
			break
		}
		status := byte(ev.Status)
		n := midi2key.MessageLength(status)
		if n == 0 {
			continue
		}
		buf := &p.raw[i]
		buf[0], buf[1], buf[2] = status, byte(ev.Data1), byte(ev.Data2)
		p.cycle = append(p.cycle, buf[:n])
	}
	return p.cycle
}

// Close stops polling, then closes the stream.
func (p *PortMIDI) Close() error {
	close(p.stop)
	<-p.done
	err := p.stream.Close()
	portmidi.Terminate()
	if err != nil {
		return errors.Wrap(err, "could not close midi input")
	}
	return nil
}
