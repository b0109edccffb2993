package keysim

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Keysym
		ok   bool
	}{
		{"a", 'a', true},
		{"Z", 'Z', true},
		{"5", '5', true},
		{"+", '+', true},
		{" ", ' ', true},
		{"space", 0x20, true},
		{"Return", 0xff0d, true},
		{"Enter", 0xff0d, true},
		{"ctrl", XKControl, true},
		{"Control_L", XKControl, true},
		{"alt", XKAltL, true},
		{"super", XKSuperL, true},
		{"F1", 0xffbe, true},
		{"F12", 0xffc9, true},
		{"f35", 0xffe0, true},
		{"F0", NoSymbol, false},
		{"F01", NoSymbol, false},
		{"F36", NoSymbol, false},
		{"F+1", NoSymbol, false},
		{"XF86AudioPlay", 0x1008ff14, true},
		{"", NoSymbol, false},
		{"\t", NoSymbol, false},
		{"nosuchkey", NoSymbol, false},
		{"RETURN", NoSymbol, false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %#x, %v; want %#x, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewKeymap(t *testing.T) {
	m := NewKeymap(8, 4, []Keysym{
		'q', 'Q', 0xe6, 0xc6,
		'w', 'W', NoSymbol, NoSymbol,
		'Q', NoSymbol, NoSymbol, NoSymbol,
	})

	tests := []struct {
		sym  Keysym
		want KeymapEntry
		ok   bool
	}{
		{'q', KeymapEntry{Code: 8}, true},
		{'Q', KeymapEntry{Code: 10}, true},
		{'W', KeymapEntry{Code: 9, Shifted: true}, true},
		{0xe6, KeymapEntry{}, false},
		{'e', KeymapEntry{}, false},
	}
	for _, tt := range tests {
		got, ok := m.Lookup(tt.sym)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%#x) = %+v, %v; want %+v, %v", tt.sym, got, ok, tt.want, tt.ok)
		}
	}
	if m.Len() != 4 {
		t.Errorf("Len() = %d, want 4", m.Len())
	}

	if NewKeymap(8, 0, []Keysym{'a'}).Len() != 0 {
		t.Error("NewKeymap with zero keysyms per keycode should be empty")
	}
}
