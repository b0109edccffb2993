package keysim

import "strconv"

// Keysym is an X11 keysym value.
type Keysym uint32

const (
	NoSymbol  Keysym = 0
	XKShiftL  Keysym = 0xffe1
	XKControl Keysym = 0xffe3
	XKAltL    Keysym = 0xffe9
	XKSuperL  Keysym = 0xffeb
	xkF1      Keysym = 0xffbe
	maxFKey          = 35
)

var keysyms = map[string]Keysym{
	"BackSpace":   0xff08,
	"Tab":         0xff09,
	"Return":      0xff0d,
	"Pause":       0xff13,
	"Scroll_Lock": 0xff14,
	"Escape":      0xff1b,
	"Home":        0xff50,
	"Left":        0xff51,
	"Up":          0xff52,
	"Right":       0xff53,
	"Down":        0xff54,
	"Prior":       0xff55,
	"Page_Up":     0xff55,
	"Next":        0xff56,
	"Page_Down":   0xff56,
	"End":         0xff57,
	"Print":       0xff61,
	"Insert":      0xff63,
	"Menu":        0xff67,
	"Num_Lock":    0xff7f,
	"KP_Enter":    0xff8d,
	"KP_Multiply": 0xffaa,
	"KP_Add":      0xffab,
	"KP_Subtract": 0xffad,
	"KP_Decimal":  0xffae,
	"KP_Divide":   0xffaf,
	"KP_0":        0xffb0,
	"KP_1":        0xffb1,
	"KP_2":        0xffb2,
	"KP_3":        0xffb3,
	"KP_4":        0xffb4,
	"KP_5":        0xffb5,
	"KP_6":        0xffb6,
	"KP_7":        0xffb7,
	"KP_8":        0xffb8,
	"KP_9":        0xffb9,
	"Shift_L":     0xffe1,
	"Shift_R":     0xffe2,
	"Control_L":   0xffe3,
	"Control_R":   0xffe4,
	"Caps_Lock":   0xffe5,
	"Meta_L":      0xffe7,
	"Meta_R":      0xffe8,
	"Alt_L":       0xffe9,
	"Alt_R":       0xffea,
	"Super_L":     0xffeb,
	"Super_R":     0xffec,
	"Delete":      0xffff,

	"space":        0x0020,
	"exclam":       0x0021,
	"quotedbl":     0x0022,
	"numbersign":   0x0023,
	"dollar":       0x0024,
	"percent":      0x0025,
	"ampersand":    0x0026,
	"apostrophe":   0x0027,
	"parenleft":    0x0028,
	"parenright":   0x0029,
	"asterisk":     0x002a,
	"plus":         0x002b,
	"comma":        0x002c,
	"minus":        0x002d,
	"period":       0x002e,
	"slash":        0x002f,
	"colon":        0x003a,
	"semicolon":    0x003b,
	"less":         0x003c,
	"equal":        0x003d,
	"greater":      0x003e,
	"question":     0x003f,
	"at":           0x0040,
	"bracketleft":  0x005b,
	"backslash":    0x005c,
	"bracketright": 0x005d,
	"underscore":   0x005f,
	"grave":        0x0060,
	"braceleft":    0x007b,
	"bar":          0x007c,
	"braceright":   0x007d,
	"asciitilde":   0x007e,

	"XF86AudioLowerVolume": 0x1008ff11,
	"XF86AudioMute":        0x1008ff12,
	"XF86AudioRaiseVolume": 0x1008ff13,
	"XF86AudioPlay":        0x1008ff14,
	"XF86AudioStop":        0x1008ff15,
	"XF86AudioPrev":        0x1008ff16,
	"XF86AudioNext":        0x1008ff17,
	"XF86AudioMicMute":     0x1008ffb2,

	// xdotool style aliases.
	"ctrl":    XKControl,
	"Ctrl":    XKControl,
	"control": XKControl,
	"alt":     XKAltL,
	"Alt":     XKAltL,
	"shift":   XKShiftL,
	"Shift":   XKShiftL,
	"super":   XKSuperL,
	"Super":   XKSuperL,
	"meta":    0xffe7,
	"Meta":    0xffe7,
	"Enter":   0xff0d,
	"enter":   0xff0d,
	"Esc":     0xff1b,
	"esc":     0xff1b,
}

// Lookup resolves a key name. Single printable ASCII characters map to
// themselves, F1 to F35 are computed, everything else comes from the table.
func Lookup(name string) (Keysym, bool) {
	if len(name) == 1 && name[0] >= 0x20 && name[0] <= 0x7e {
		return Keysym(name[0]), true
	}
	if ks, ok := keysyms[name]; ok {
		return ks, true
	}
	if len(name) >= 2 && (name[0] == 'F' || name[0] == 'f') && name[1] >= '1' && name[1] <= '9' {
		n, err := strconv.Atoi(name[1:])
		if err == nil && n >= 1 && n <= maxFKey {
			return xkF1 + Keysym(n-1), true
		}
	}
	return NoSymbol, false
}
