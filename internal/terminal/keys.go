package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/input/ps2"
)

// Action is what one terminal key press does to the board
type Action struct {
	// Bytes are scan codes for the keyboard port
	Bytes  []byte
	Reset  bool
	Toggle bool
	Quit   bool
}

// Terminals report no key releases, so every press becomes a make code
// immediately followed by its break code. Held modifiers arrive as an
// upper-case letter (shift) or ModCtrl on an arrow key.
var (
	letterKeys = map[rune]ps2.Key{'w': ps2.KeyW, 'a': ps2.KeyA, 's': ps2.KeyS, 'd': ps2.KeyD}
	shiftKeys  = map[rune]ps2.Key{'W': ps2.KeyW, 'A': ps2.KeyA, 'S': ps2.KeyS, 'D': ps2.KeyD}
	arrowKeys  = map[tcell.Key]ps2.Key{
		tcell.KeyUp:    ps2.KeyUp,
		tcell.KeyDown:  ps2.KeyDown,
		tcell.KeyLeft:  ps2.KeyLeft,
		tcell.KeyRight: ps2.KeyRight,
	}
)

// Translate maps a terminal key to a board action
func Translate(key tcell.Key, r rune, mod tcell.ModMask) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Quit: true}
	case tcell.KeyEnter:
		return Action{Bytes: tap(ps2.KeyEnter)}
	case tcell.KeyRune:
		return translateRune(r)
	}

	if k, ok := arrowKeys[key]; ok {
		if mod&tcell.ModCtrl != 0 {
			return Action{Bytes: tapWith(ps2.KeyCtrl, k)}
		}
		return Action{Bytes: tap(k)}
	}
	return Action{}
}

func translateRune(r rune) Action {
	switch r {
	case ' ':
		return Action{Bytes: tap(ps2.KeySpace)}
	case 'r', 'R':
		return Action{Reset: true}
	case 't', 'T':
		return Action{Toggle: true}
	case 'q':
		return Action{Quit: true}
	}
	if k, ok := letterKeys[r]; ok {
		return Action{Bytes: tap(k)}
	}
	if k, ok := shiftKeys[r]; ok {
		return Action{Bytes: tapWith(ps2.KeyShift, k)}
	}
	return Action{}
}

func tap(k ps2.Key) []byte {
	return append(ps2.MakeSequence(k), ps2.BreakSequence(k)...)
}

func tapWith(mod, k ps2.Key) []byte {
	out := ps2.MakeSequence(mod)
	out = append(out, tap(k)...)
	return append(out, ps2.BreakSequence(mod)...)
}
