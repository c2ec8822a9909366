// Package input turns ebiten key state into board input.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/input/ps2"
)

// keyMap lists the keys wired to the PS/2 port
var keyMap = map[ebiten.Key]ps2.Key{
	ebiten.KeyW:           ps2.KeyW,
	ebiten.KeyA:           ps2.KeyA,
	ebiten.KeyS:           ps2.KeyS,
	ebiten.KeyD:           ps2.KeyD,
	ebiten.KeySpace:       ps2.KeySpace,
	ebiten.KeyEnter:       ps2.KeyEnter,
	ebiten.KeyShiftLeft:   ps2.KeyShift,
	ebiten.KeyControlLeft: ps2.KeyCtrl,
	ebiten.KeyArrowUp:     ps2.KeyUp,
	ebiten.KeyArrowDown:   ps2.KeyDown,
	ebiten.KeyArrowLeft:   ps2.KeyLeft,
	ebiten.KeyArrowRight:  ps2.KeyRight,
}

// Board controls outside the keyboard
const (
	KeyReset  = ebiten.KeyR
	KeySwitch = ebiten.KeyT
	KeyCopy   = ebiten.KeyF9
	KeyQuit   = ebiten.KeyEscape
)

// Input is one frame's worth of board input
type Input struct {
	// Bytes are scan codes for the keyboard port, make and break codes in
	// the order the keys changed
	Bytes  []byte
	Reset  bool
	Toggle bool
	Copy   bool
	Quit   bool
}

// Keyboard polls ebiten once per Update
type Keyboard struct {
	pressed  []ebiten.Key
	released []ebiten.Key
}

// NewKeyboard creates a keyboard poller
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Poll reads the keys that changed since the last frame
func (k *Keyboard) Poll() Input {
	k.pressed = inpututil.AppendJustPressedKeys(k.pressed[:0])
	k.released = inpututil.AppendJustReleasedKeys(k.released[:0])
	return Translate(k.pressed, k.released)
}

// Translate maps key changes to board input. Presses are sent before
// releases.
func Translate(pressed, released []ebiten.Key) Input {
	var in Input
	for _, key := range pressed {
		switch key {
		case KeyReset:
			in.Reset = true
		case KeySwitch:
			in.Toggle = true
		case KeyCopy:
			in.Copy = true
		case KeyQuit:
			in.Quit = true
		}
		if k, ok := keyMap[key]; ok {
			in.Bytes = append(in.Bytes, ps2.MakeSequence(k)...)
		}
	}
	for _, key := range released {
		if k, ok := keyMap[key]; ok {
			in.Bytes = append(in.Bytes, ps2.BreakSequence(k)...)
		}
	}
	return in
}
