package system

import (
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/device"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/input/ps2"
)

// keyboardISR reads one byte from the PS/2 port and acts on the event it
// completes. The port keeps its line raised while bytes remain, so a burst
// is consumed one interrupt per byte.
func (b *Board) keyboardISR() {
	data := b.Keyboard.ReadData()
	if data&device.PS2ReadValid == 0 {
		return
	}
	code := byte(data & device.PS2DataMask)

	ev := b.decoder.Feed(code, b.engine.IsEnded())
	if ev.Kind == ps2.EventNone {
		return
	}
	b.logger.Trace().Uint8("code", code).Stringer("event", ev).Msg("Key event")

	switch ev.Kind {
	case ps2.EventModifierPress:
		b.engine.SetModifier(ev.Side, true)
	case ps2.EventModifierRelease:
		b.engine.SetModifier(ev.Side, false)
	case ps2.EventToggleSelect:
		b.engine.ToggleSelect(ev.Side)
	case ps2.EventDirection:
		b.engine.Direction(ev.Side, ev.Direction)
	}
}

// timerISR counts a hardware tick and clears the timer status bit
func (b *Board) timerISR() {
	b.engine.OnHardwareTick()
	b.Timer.Ack()
}

// buttonISR latches a reset request for the main loop
func (b *Board) buttonISR() {
	edges := b.Buttons.EdgeCapture()
	b.Buttons.Ack(buttonAckMask)
	if edges&(1<<ResetButton) != 0 {
		b.resetRequested.Store(true)
	}
}
