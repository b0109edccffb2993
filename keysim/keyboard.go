// Package keysim injects key sequences such as "ctrl+alt+F1" into the
// windowing system.
package keysim

import (
	"strings"

	"github.com/pkg/errors"
)

// Modifiers are extra modifier keys held around a sequence.
type Modifiers uint8

const (
	Shift Modifiers = 1 << iota
	Control
	Alt
	Super
)

var modifierKeysyms = [...]struct {
	flag Modifiers
	sym  Keysym
}{
	{Shift, XKShiftL},
	{Control, XKControl},
	{Alt, XKAltL},
	{Super, XKSuperL},
}

// MaxSequence is the longest sequence a single call accepts, modifiers and
// implied shifts included.
const MaxSequence = 16

var (
	ErrEmptySequence   = errors.New("empty key sequence")
	ErrSequenceTooLong = errors.New("key sequence too long")
)

// UnknownKeyError names a key that is not a known keysym or that the
// current keyboard mapping cannot produce.
type UnknownKeyError struct {
	Name     string
	Unmapped bool
}

func (e *UnknownKeyError) Error() string {
	if e.Unmapped {
		return "key " + e.Name + " is not on the keyboard map"
	}
	return "unknown key " + e.Name
}

// SendFunc emits one physical key transition.
type SendFunc func(press bool, code Keycode) error

// Keyboard resolves sequences through a Keymap and hands the resulting
// key transitions to a SendFunc. It is not safe for concurrent use.
type Keyboard struct {
	keymap *Keymap
	send   SendFunc
	shift  Keycode
}

// NewKeyboard returns a Keyboard that sends through send.
func NewKeyboard(keymap *Keymap, send SendFunc) *Keyboard {
	k := &Keyboard{keymap: keymap, send: send}
	if e, ok := keymap.Lookup(XKShiftL); ok {
		k.shift = e.Code
	}
	return k
}

// KeyDown presses every key of seq from left to right.
func (k *Keyboard) KeyDown(seq string, mods Modifiers) error {
	var buf [MaxSequence]Keycode
	codes, err := k.resolve(seq, mods, buf[:0])
	if err != nil {
		return err
	}
	for _, c := range codes {
		if err := k.send(true, c); err != nil {
			return errors.Wrapf(err, "press %v", seq)
		}
	}
	return nil
}

// KeyUp releases every key of seq from right to left.
func (k *Keyboard) KeyUp(seq string, mods Modifiers) error {
	var buf [MaxSequence]Keycode
	codes, err := k.resolve(seq, mods, buf[:0])
	if err != nil {
		return err
	}
	for i := len(codes) - 1; i >= 0; i-- {
		if err := k.send(false, codes[i]); err != nil {
			return errors.Wrapf(err, "release %v", seq)
		}
	}
	return nil
}

// resolve validates the whole sequence before anything is sent.
func (k *Keyboard) resolve(seq string, mods Modifiers, codes []Keycode) ([]Keycode, error) {
	if strings.TrimSpace(seq) == "" {
		return nil, ErrEmptySequence
	}
	for _, m := range modifierKeysyms {
		if mods&m.flag == 0 {
			continue
		}
		e, ok := k.keymap.Lookup(m.sym)
		if !ok {
			return nil, &UnknownKeyError{Name: modifierName(m.flag), Unmapped: true}
		}
		codes = append(codes, e.Code)
	}

	rest := seq
	for {
		name := rest
		i := strings.IndexByte(rest, '+')
		if i >= 0 {
			name = rest[:i]
		}
		// A lone "+" or a trailing "+" names the plus key.
		if name == "" && (i < 0 || i == len(rest)-1) {
			name = "+"
			i = -1
		}
		name = strings.TrimSpace(name)
		sym, ok := Lookup(name)
		if !ok {
			return nil, &UnknownKeyError{Name: name}
		}
		e, ok := k.keymap.Lookup(sym)
		if !ok {
			return nil, &UnknownKeyError{Name: name, Unmapped: true}
		}
		if e.Shifted && k.shift != 0 {
			if len(codes) == MaxSequence {
				return nil, ErrSequenceTooLong
			}
			codes = append(codes, k.shift)
		}
		if len(codes) == MaxSequence {
			return nil, ErrSequenceTooLong
		}
		codes = append(codes, e.Code)
		if i < 0 {
			return codes, nil
		}
		rest = rest[i+1:]
	}
}

func modifierName(m Modifiers) string {
	switch m {
	case Shift:
		return "Shift_L"
	case Control:
		return "Control_L"
	case Alt:
		return "Alt_L"
	default:
		return "Super_L"
	}
}
