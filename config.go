package midi2key

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFilename is read when no path is given on the command line.
const DefaultConfigFilename = "config.toml"

// Format is the text format of a config document.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFor picks the format from the file extension. Anything that is not
// YAML is read as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ConfigError reports a config document that parsed but is not acceptable.
type ConfigError struct {
	Path string
	Key  string
	Msg  string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Key != "" {
		fmt.Fprintf(&b, "%s: ", e.Key)
	}
	b.WriteString(e.Msg)
	return b.String()
}

type rawConfig struct {
	Meta     *rawMeta           `toml:"meta" yaml:"meta"`
	Input    rawInput           `toml:"input" yaml:"input"`
	Log      rawLog             `toml:"log" yaml:"log"`
	Keybinds *map[string]string `toml:"keybinds" yaml:"keybinds"`
}

type rawMeta struct {
	Game string `toml:"game" yaml:"game"`
}

type rawInput struct {
	Backend string `toml:"backend" yaml:"backend"`
	Client  string `toml:"client" yaml:"client"`
	Port    string `toml:"port" yaml:"port"`
	Device  string `toml:"device" yaml:"device"`
	Listen  string `toml:"listen" yaml:"listen"`
}

type rawLog struct {
	Level string `toml:"level" yaml:"level"`
}

// LoadConfig reads and validates the config file at path. No partially
// valid config is ever returned.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("config file %v does not exist", path)
		}
		return nil, errors.Wrap(err, "could not read config file")
	}
	config, err := ParseConfig(data, FormatFor(path))
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Path = path
			return nil, ce
		}
		return nil, errors.Wrapf(err, "could not parse config file %v", path)
	}
	return config, nil
}

// ParseConfig decodes a config document. Duplicate note keys are rejected,
// including numerically equal keys spelled differently ("60" and "060").
func ParseConfig(data []byte, format Format) (*Config, error) {
	raw := &rawConfig{}
	switch format {
	case FormatYAML:
		if err := yaml.UnmarshalStrict(data, raw); err != nil {
			return nil, err
		}
	default:
		if err := toml.Unmarshal(data, raw); err != nil {
			return nil, err
		}
	}
	return raw.build()
}

func (raw *rawConfig) build() (*Config, error) {
	config := &Config{
		Input: DefaultInput,
		Log:   Log{Level: "info"},
	}

	if raw.Meta != nil {
		config.Meta = &Meta{Game: raw.Meta.Game}
	}

	if raw.Input.Backend != "" {
		config.Input.Backend = Backend(strings.ToLower(raw.Input.Backend))
	}
	switch config.Input.Backend {
	case BackendJACK, BackendPortMIDI, BackendOSC:
	default:
		return nil, &ConfigError{Key: "input.backend", Msg: fmt.Sprintf("unknown backend %q", raw.Input.Backend)}
	}
	if raw.Input.Client != "" {
		config.Input.Client = raw.Input.Client
	}
	if raw.Input.Port != "" {
		config.Input.Port = raw.Input.Port
	}
	if raw.Input.Listen != "" {
		config.Input.Listen = raw.Input.Listen
	}
	config.Input.Device = raw.Input.Device

	if raw.Log.Level != "" {
		if _, err := ParseLevel(raw.Log.Level); err != nil {
			return nil, &ConfigError{Key: "log.level", Msg: err.Error()}
		}
		config.Log.Level = raw.Log.Level
	}

	// A present but empty table decodes to a non-nil pointer to a nil map.
	if raw.Keybinds == nil {
		return nil, &ConfigError{Key: "keybinds", Msg: "missing keybinds table"}
	}
	keybinds := *raw.Keybinds

	keys := make([]string, 0, len(keybinds))
	for k := range keybinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var seen [NoteCount]string
	for _, k := range keys {
		n, err := ParseNote(k)
		if err != nil {
			return nil, &ConfigError{Key: "keybinds." + k, Msg: err.Error()}
		}
		if prev := seen[n]; prev != "" {
			return nil, &ConfigError{Key: "keybinds." + k, Msg: fmt.Sprintf("note %d is already bound by key %q", n, prev)}
		}
		action := keybinds[k]
		if strings.TrimSpace(action) == "" {
			return nil, &ConfigError{Key: "keybinds." + k, Msg: "empty action"}
		}
		seen[n] = k
		config.Keybinds[n] = action
	}
	return config, nil
}

// ParseNote parses the decimal text form of a note number.
func ParseNote(s string) (Note, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("note %q is not a decimal number", s)
	}
	if v >= NoteCount {
		return 0, errors.Errorf("note %v is out of range 0-127", v)
	}
	return Note(v), nil
}
