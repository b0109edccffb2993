package midi2key

import (
	"github.com/pkg/errors"
)

// Kind classifies a parsed MIDI message.
type Kind uint8

const (
	KindOther Kind = iota
	KindNoteOn
	KindNoteOff
)

// Parse errors. They are preallocated so the realtime path never builds one.
var (
	ErrEmptyMessage     = errors.New("empty MIDI message")
	ErrMissingStatus    = errors.New("MIDI message does not start with a status byte")
	ErrTruncatedMessage = errors.New("truncated MIDI message")
	ErrBadDataByte      = errors.New("MIDI data byte has the high bit set")
)

// Event is a classified MIDI message. Only note messages carry a note.
type Event struct {
	Kind Kind
	Note Note
}

// channelLength is the total length of a channel voice message indexed by
// the high nibble of its status byte.
var channelLength = [16]int{
	0x8: 3, // note off
	0x9: 3, // note on
	0xA: 3, // poly aftertouch
	0xB: 3, // control change
	0xC: 2, // program change
	0xD: 2, // channel aftertouch
	0xE: 3, // pitch bend
}

// ParseMessage classifies raw bytes without allocating. Notes are told
// apart by status alone, so a note on with velocity zero still presses.
func ParseMessage(raw []byte) (Event, error) {
	if len(raw) == 0 {
		return Event{}, ErrEmptyMessage
	}
	status := raw[0]
	if status < 0x80 {
		return Event{}, ErrMissingStatus
	}

	if status < 0xF0 {
		n := channelLength[status>>4]
		if len(raw) < n {
			return Event{}, ErrTruncatedMessage
		}
		for _, b := range raw[1:n] {
			if b >= 0x80 {
				return Event{}, ErrBadDataByte
			}
		}
		switch status >> 4 {
		case 0x9:
			return Event{Kind: KindNoteOn, Note: Note(raw[1])}, nil
		case 0x8:
			return Event{Kind: KindNoteOff, Note: Note(raw[1])}, nil
		}
		return Event{Kind: KindOther}, nil
	}

	switch status {
	case 0xF4, 0xF5, 0xF9, 0xFD:
		// Reserved; ignored like any other non-note message.
		return Event{Kind: KindOther}, nil
	case 0xF0:
		if raw[len(raw)-1] != 0xF7 {
			return Event{}, ErrTruncatedMessage
		}
		return Event{Kind: KindOther}, nil
	}
	if len(raw) < MessageLength(status) {
		return Event{}, ErrTruncatedMessage
	}
	return Event{Kind: KindOther}, nil
}

// MessageLength returns the full length of the message starting with
// status, or 0 for sysex and data bytes.
func MessageLength(status byte) int {
	switch {
	case status < 0x80:
		return 0
	case status < 0xF0:
		return channelLength[status>>4]
	case status == 0xF1, status == 0xF3:
		return 2
	case status == 0xF2:
		return 3
	case status == 0xF0:
		return 0
	default:
		return 1
	}
}
