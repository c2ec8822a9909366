package device

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_ExpireAndAck(t *testing.T) {
	tm := NewTimer(time.Hour, zerolog.Nop())
	assert.False(t, tm.Pending())

	tm.Expire()
	assert.True(t, tm.Pending())
	assert.Equal(t, uint64(1), tm.Expiries())

	tm.Expire()
	assert.Equal(t, uint64(1), tm.Overruns(), "second expiry before ack is an overrun")

	tm.Ack()
	assert.False(t, tm.Pending())
	assert.Equal(t, uint64(2), tm.Expiries())
}

func TestTimer_StartStop(t *testing.T) {
	tm := NewTimer(2*time.Millisecond, zerolog.Nop())
	tm.Start(context.Background())
	tm.Start(context.Background()) // second start is a no-op

	require.Eventually(t, tm.Pending, time.Second, time.Millisecond)

	tm.Stop()
	tm.Stop()
	n := tm.Expiries()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, n, tm.Expiries(), "no expiries after stop")
}

func TestTimer_StopsWithContext(t *testing.T) {
	tm := NewTimer(time.Millisecond, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	tm.Start(ctx)
	cancel()
	tm.Stop()
}

func TestPS2Port_FIFO(t *testing.T) {
	p := NewPS2Port(4, zerolog.Nop())
	assert.False(t, p.Pending())
	assert.Equal(t, uint32(0), p.ReadData())

	p.Push(0xE0, 0x75)
	assert.True(t, p.Pending())
	assert.Equal(t, 2, p.Len())

	v := p.ReadData()
	assert.Equal(t, uint32(0xE0), v&PS2DataMask)
	assert.NotZero(t, v&PS2ReadValid)
	assert.Equal(t, uint32(1), v>>PS2AvailShift)

	v = p.ReadData()
	assert.Equal(t, uint32(0x75), v&PS2DataMask)
	assert.Equal(t, uint32(0), v>>PS2AvailShift)
	assert.False(t, p.Pending())
}

func TestPS2Port_OverflowDrops(t *testing.T) {
	p := NewPS2Port(3, zerolog.Nop())
	p.Push(1, 2)
	p.Push(3, 4, 5)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, uint64(2), p.Dropped())
	assert.Equal(t, uint32(1), p.ReadData()&PS2DataMask)

	p.Clear()
	assert.False(t, p.Pending())
}

func TestButtons(t *testing.T) {
	b := NewButtons(0x1)
	assert.False(t, b.Pending())

	b.Press(1)
	assert.False(t, b.Pending(), "button 1 is not interrupt-enabled")
	assert.Equal(t, uint32(0x2), b.EdgeCapture())

	b.Press(0)
	assert.True(t, b.Pending())

	b.Ack(b.EdgeCapture())
	assert.False(t, b.Pending())
	assert.Equal(t, uint32(0), b.EdgeCapture())
}

func TestSwitch(t *testing.T) {
	s := NewSwitch()
	assert.False(t, s.On())

	s.Toggle()
	assert.True(t, s.On())
	s.Set(true)
	s.Toggle()
	assert.False(t, s.On())

	assert.True(t, <-s.Changes())
	assert.False(t, <-s.Changes())
	select {
	case v := <-s.Changes():
		t.Fatalf("unexpected change %v", v)
	default:
	}
}

func TestSwitch_Drain(t *testing.T) {
	s := NewSwitch()
	s.Toggle()
	s.Toggle()
	s.Toggle()

	assert.Equal(t, 3, s.Drain())
	assert.Zero(t, s.Drain())
	assert.True(t, s.On(), "draining does not move the switch")
}
