package ps2

import (
	"fmt"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// EventKind classifies a decoded input event
type EventKind int

const (
	EventNone EventKind = iota
	EventModifierPress
	EventModifierRelease
	EventToggleSelect
	EventDirection
)

func (k EventKind) String() string {
	switch k {
	case EventModifierPress:
		return "modifier_press"
	case EventModifierRelease:
		return "modifier_release"
	case EventToggleSelect:
		return "toggle_select"
	case EventDirection:
		return "direction"
	default:
		return "none"
	}
}

// Event is one player action extracted from the byte stream
type Event struct {
	Kind      EventKind
	Side      core.Side
	Direction core.Direction
}

func (e Event) String() string {
	if e.Kind == EventDirection {
		return fmt.Sprintf("%s %s %s", e.Side, e.Kind, e.Direction)
	}
	return fmt.Sprintf("%s %s", e.Side, e.Kind)
}

// Decoder keeps the last three bytes received and classifies each new byte
// by looking at the window it completes. Every packet is at most three bytes.
type Decoder struct {
	window [3]byte
}

// NewDecoder returns a decoder with an empty window
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Reset clears the byte history
func (d *Decoder) Reset() {
	d.window = [3]byte{}
}

// Window returns the byte history, oldest first
func (d *Decoder) Window() [3]byte {
	return d.window
}

// Feed shifts b into the window and returns the event it completes.
// Once the game has ended bytes are still recorded but produce nothing.
func (d *Decoder) Feed(b byte, ended bool) Event {
	d.window[0] = d.window[1]
	d.window[1] = d.window[2]
	d.window[2] = b

	if ended {
		return Event{}
	}

	prev, last := d.window[1], d.window[2]

	if prev == BreakPrefix {
		switch last {
		case CodeLeftShift:
			return Event{Kind: EventModifierRelease, Side: core.SideA}
		case CodeLeftCtrl:
			return Event{Kind: EventModifierRelease, Side: core.SideB}
		}
		return Event{}
	}

	switch last {
	case CodeEnter:
		return Event{Kind: EventToggleSelect, Side: core.SideB}
	case CodeSpace:
		return Event{Kind: EventToggleSelect, Side: core.SideA}
	case CodeLeftShift:
		return Event{Kind: EventModifierPress, Side: core.SideA}
	case CodeLeftCtrl:
		return Event{Kind: EventModifierPress, Side: core.SideB}
	}

	side := core.SideA
	if prev == ExtendedPrefix {
		side = core.SideB
	}
	dir := LookupDirection(last)
	if dir == core.DirNone {
		return Event{}
	}
	return Event{Kind: EventDirection, Side: side, Direction: dir}
}

// FeedAll decodes a burst of bytes, dropping empty events
func (d *Decoder) FeedAll(bs []byte, ended bool) []Event {
	var out []Event
	for _, b := range bs {
		if ev := d.Feed(b, ended); ev.Kind != EventNone {
			out = append(out, ev)
		}
	}
	return out
}
