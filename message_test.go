package midi2key

import (
	"errors"
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		want    Event
		wantErr error
	}{
		{"note on", []byte{0x90, 60, 100}, Event{Kind: KindNoteOn, Note: 60}, nil},
		{"note on channel 16", []byte{0x9F, 127, 1}, Event{Kind: KindNoteOn, Note: 127}, nil},
		{"note off", []byte{0x80, 60, 64}, Event{Kind: KindNoteOff, Note: 60}, nil},
		{"note on zero velocity", []byte{0x90, 0, 0}, Event{Kind: KindNoteOn, Note: 0}, nil},
		{"control change", []byte{0xB0, 1, 2}, Event{Kind: KindOther}, nil},
		{"poly aftertouch", []byte{0xA0, 60, 2}, Event{Kind: KindOther}, nil},
		{"program change", []byte{0xC0, 1}, Event{Kind: KindOther}, nil},
		{"pitch bend", []byte{0xE0, 0, 64}, Event{Kind: KindOther}, nil},
		{"clock", []byte{0xF8}, Event{Kind: KindOther}, nil},
		{"start", []byte{0xFA}, Event{Kind: KindOther}, nil},
		{"song position", []byte{0xF2, 0, 0}, Event{Kind: KindOther}, nil},
		{"sysex", []byte{0xF0, 0x7E, 0x00, 0xF7}, Event{Kind: KindOther}, nil},
		{"trailing bytes ignored", []byte{0x90, 61, 100, 0}, Event{Kind: KindNoteOn, Note: 61}, nil},
		{"empty", nil, Event{}, ErrEmptyMessage},
		{"data byte first", []byte{60, 100}, Event{}, ErrMissingStatus},
		{"short note on", []byte{0x90, 60}, Event{}, ErrTruncatedMessage},
		{"short program change", []byte{0xC0}, Event{}, ErrTruncatedMessage},
		{"short song position", []byte{0xF2, 1}, Event{}, ErrTruncatedMessage},
		{"unterminated sysex", []byte{0xF0, 0x7E}, Event{}, ErrTruncatedMessage},
		{"bad data byte", []byte{0x90, 0x80, 1}, Event{}, ErrBadDataByte},
		{"undefined system", []byte{0xF4}, Event{Kind: KindOther}, nil},
		{"undefined realtime", []byte{0xFD}, Event{Kind: KindOther}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessage(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseMessage() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMessage() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseMessage_Encoded(t *testing.T) {
	tests := []struct {
		name string
		msg  midi.Message
		want Event
	}{
		{"note on", midi.NoteOn(3, 64, 90), Event{Kind: KindNoteOn, Note: 64}},
		{"note on zero velocity", midi.NoteOn(0, 64, 0), Event{Kind: KindNoteOn, Note: 64}},
		{"note off", midi.NoteOff(15, 12), Event{Kind: KindNoteOff, Note: 12}},
		{"note off velocity", midi.NoteOffVelocity(1, 12, 70), Event{Kind: KindNoteOff, Note: 12}},
		{"control change", midi.ControlChange(0, 7, 100), Event{Kind: KindOther}},
		{"program change", midi.ProgramChange(2, 5), Event{Kind: KindOther}},
		{"timing clock", midi.TimingClock(), Event{Kind: KindOther}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessage(tt.msg)
			if err != nil {
				t.Fatalf("ParseMessage(% X) error = %v", []byte(tt.msg), err)
			}
			if got != tt.want {
				t.Errorf("ParseMessage(% X) = %+v, want %+v", []byte(tt.msg), got, tt.want)
			}
		})
	}
}

func TestParseMessage_DoesNotAllocate(t *testing.T) {
	msgs := [][]byte{{0x90, 60, 100}, {0x80, 60, 0}, {0xB0, 1, 1}, {0x90}, {}}
	allocs := testing.AllocsPerRun(100, func() {
		for _, m := range msgs {
			_, _ = ParseMessage(m)
		}
	})
	if allocs != 0 {
		t.Errorf("ParseMessage allocated %v times per run", allocs)
	}
}

func TestMessageLength(t *testing.T) {
	tests := map[byte]int{
		0x00: 0,
		0x7F: 0,
		0x80: 3,
		0x9A: 3,
		0xB0: 3,
		0xC3: 2,
		0xD0: 2,
		0xEF: 3,
		0xF0: 0,
		0xF1: 2,
		0xF2: 3,
		0xF3: 2,
		0xF6: 1,
		0xF8: 1,
		0xFF: 1,
	}
	for status, want := range tests {
		if got := MessageLength(status); got != want {
			t.Errorf("MessageLength(%#x) = %d, want %d", status, got, want)
		}
	}
}
