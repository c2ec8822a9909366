// Package ps2 decodes PS/2 scan code set 2 byte streams into player input
// events and encodes front-end key presses back into that byte stream.
package ps2

import "github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"

// Prefix bytes of scan code set 2
const (
	BreakPrefix    byte = 0xF0
	ExtendedPrefix byte = 0xE0
)

// Make codes the decoder reacts to
const (
	CodeW          byte = 0x1D
	CodeA          byte = 0x1C
	CodeS          byte = 0x1B
	CodeD          byte = 0x23
	CodeSpace      byte = 0x29
	CodeEnter      byte = 0x5A
	CodeLeftShift  byte = 0x12
	CodeLeftCtrl   byte = 0x14 // right ctrl is E0 14
	CodeArrowUp    byte = 0x75 // E0 prefixed
	CodeArrowDown  byte = 0x72 // E0 prefixed
	CodeArrowLeft  byte = 0x6B // E0 prefixed
	CodeArrowRight byte = 0x74 // E0 prefixed
)

// directionTable maps a final scan byte to a direction. The same table
// serves both players; the E0 prefix decides which player it belongs to.
var directionTable = map[byte]core.Direction{
	CodeW:          core.Up,
	CodeArrowUp:    core.Up,
	CodeA:          core.Left,
	CodeArrowLeft:  core.Left,
	CodeD:          core.Right,
	CodeArrowRight: core.Right,
	CodeS:          core.Down,
	CodeArrowDown:  core.Down,
}

// LookupDirection returns the direction for a scan byte, or DirNone
func LookupDirection(code byte) core.Direction {
	if d, ok := directionTable[code]; ok {
		return d
	}
	return core.DirNone
}

// Key is a front-end independent physical key
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyEnter
	KeyShift
	KeyCtrl
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

type keyCode struct {
	code     byte
	extended bool
}

var keyCodes = map[Key]keyCode{
	KeyW:     {CodeW, false},
	KeyA:     {CodeA, false},
	KeyS:     {CodeS, false},
	KeyD:     {CodeD, false},
	KeySpace: {CodeSpace, false},
	KeyEnter: {CodeEnter, false},
	KeyShift: {CodeLeftShift, false},
	KeyCtrl:  {CodeLeftCtrl, false},
	KeyUp:    {CodeArrowUp, true},
	KeyDown:  {CodeArrowDown, true},
	KeyLeft:  {CodeArrowLeft, true},
	KeyRight: {CodeArrowRight, true},
}

// MakeSequence returns the bytes a keyboard sends when key goes down
func MakeSequence(key Key) []byte {
	kc, ok := keyCodes[key]
	if !ok {
		return nil
	}
	if kc.extended {
		return []byte{ExtendedPrefix, kc.code}
	}
	return []byte{kc.code}
}

// BreakSequence returns the bytes a keyboard sends when key is released
func BreakSequence(key Key) []byte {
	kc, ok := keyCodes[key]
	if !ok {
		return nil
	}
	if kc.extended {
		return []byte{ExtendedPrefix, BreakPrefix, kc.code}
	}
	return []byte{BreakPrefix, kc.code}
}
