package midi2key

// NoteCount is the number of addressable MIDI notes.
const NoteCount = 128

// Note is a MIDI note number in [0,127].
type Note uint8

// Config is the main config document.
type Config struct {
	Meta  *Meta
	Input Input
	Log   Log

	// Keybinds maps a note to the key sequence it triggers. An empty string
	// means the note is unmapped.
	Keybinds [NoteCount]string
}

// Meta is informational and never changes behaviour.
type Meta struct {
	Game string
}

// Backend names a MIDI input source.
type Backend string

const (
	BackendJACK     Backend = "jack"
	BackendPortMIDI Backend = "portmidi"
	BackendOSC      Backend = "osc"
)

// Input selects and configures the MIDI input source.
type Input struct {
	Backend Backend
	Client  string
	Port    string
	Device  string
	Listen  string
}

// Log configures the process logger.
type Log struct {
	Level string
}

// Action returns the key sequence bound to n.
func (c *Config) Action(n Note) (string, bool) {
	if int(n) >= NoteCount {
		return "", false
	}
	a := c.Keybinds[n]
	return a, a != ""
}

// Mapped returns the number of bound notes.
func (c *Config) Mapped() int {
	count := 0
	for _, a := range c.Keybinds {
		if a != "" {
			count++
		}
	}
	return count
}

// DefaultInput is used for every field the config file leaves empty.
var DefaultInput = Input{
	Backend: BackendJACK,
	Client:  "jack_midi_xdo",
	Port:    "in",
	Listen:  "127.0.0.1:8000",
}
