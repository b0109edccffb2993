package keysim

// Keycode is a physical key as the X server numbers it.
type Keycode byte

// KeymapEntry is where a keysym lives on the keyboard.
type KeymapEntry struct {
	Code    Keycode
	Shifted bool
}

// Keymap is the inverse of the server's keycode to keysym table.
type Keymap struct {
	entries map[Keysym]KeymapEntry
}

// NewKeymap builds a Keymap from a GetKeyboardMapping reply: perCode keysyms
// for every keycode starting at first. Only the unshifted and shifted
// levels are used; the unshifted position wins when a keysym is on both.
func NewKeymap(first Keycode, perCode int, syms []Keysym) *Keymap {
	m := &Keymap{entries: make(map[Keysym]KeymapEntry)}
	if perCode <= 0 {
		return m
	}
	for level := 0; level < 2 && level < perCode; level++ {
		for i := 0; (i+1)*perCode <= len(syms); i++ {
			sym := syms[i*perCode+level]
			if sym == NoSymbol {
				continue
			}
			if _, ok := m.entries[sym]; ok {
				continue
			}
			m.entries[sym] = KeymapEntry{
				Code:    first + Keycode(i),
				Shifted: level == 1,
			}
		}
	}
	return m
}

// Lookup finds sym on the keyboard.
func (m *Keymap) Lookup(sym Keysym) (KeymapEntry, bool) {
	e, ok := m.entries[sym]
	return e, ok
}

// Len returns the number of reachable keysyms.
func (m *Keymap) Len() int {
	return len(m.entries)
}
