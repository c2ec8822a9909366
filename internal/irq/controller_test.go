package irq

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLine struct {
	asserted bool
}

func (l *fakeLine) Pending() bool { return l.asserted }

type fakeFIFO struct {
	n int
}

func (f *fakeFIFO) Pending() bool { return f.n > 0 }
func (f *fakeFIFO) Len() int      { return f.n }

func TestISERAndIPTRLocations(t *testing.T) {
	tests := []struct {
		id         int
		iserOffset uint32
		iserMask   uint32
		iptrOffset uint32
	}{
		{IDTimer, 0x100, 1 << 29, 0x81D},
		{IDButton, 0x108, 1 << 9, 0x849},
		{IDKeyboard, 0x108, 1 << 15, 0x84F},
		{0, 0x100, 1, 0x800},
		{255, 0x11C, 1 << 31, 0x8FF},
	}

	for _, tt := range tests {
		offset, mask := ISERLocation(tt.id)
		assert.Equal(t, tt.iserOffset, offset, "iser offset for %d", tt.id)
		assert.Equal(t, tt.iserMask, mask, "iser mask for %d", tt.id)
		assert.Equal(t, tt.iptrOffset, IPTRLocation(tt.id), "iptr offset for %d", tt.id)
	}
}

func TestConfigure_ProgramsRegisters(t *testing.T) {
	c := NewController(zerolog.Nop())
	handler := func() {}
	require.NoError(t, c.Register(IDKeyboard, "ps2", 0, &fakeLine{}, handler))
	require.NoError(t, c.Register(IDTimer, "timer", 0, &fakeLine{}, handler))
	require.NoError(t, c.Register(IDButton, "button", 0, &fakeLine{}, handler))

	c.Configure()
	regs := c.Registers()

	assert.Equal(t, uint32(0xFFFF), regs.ICCPMR)
	assert.Equal(t, uint32(1), regs.ICCICR)
	assert.Equal(t, uint32(1), regs.ICDDCR)
	assert.Equal(t, uint32(1<<29), regs.ICDISER[0])
	assert.Equal(t, uint32(1<<9|1<<15), regs.ICDISER[2])
	assert.Equal(t, CPU0, regs.ICDIPTR[IDTimer])
	assert.Equal(t, CPU0, regs.ICDIPTR[IDButton])
	assert.Equal(t, CPU0, regs.ICDIPTR[IDKeyboard])
	assert.Equal(t, uint8(0), regs.ICDIPTR[30])
}

func TestRegister_Validation(t *testing.T) {
	c := NewController(zerolog.Nop())

	assert.Error(t, c.Register(-1, "neg", 0, nil, func() {}))
	assert.Error(t, c.Register(NumLines, "big", 0, nil, func() {}))
	assert.Error(t, c.Register(IDTimer, "nil handler", 0, nil, nil))
}

func TestDispatch_RoutesToHandler(t *testing.T) {
	c := NewController(zerolog.Nop())
	calls := map[string]int{}
	require.NoError(t, c.Register(IDTimer, "timer", 0, &fakeLine{}, func() { calls["timer"]++ }))
	require.NoError(t, c.Register(IDKeyboard, "ps2", 0, &fakeLine{}, func() { calls["ps2"]++ }))

	c.Dispatch(IDTimer)
	c.Dispatch(IDTimer)
	c.Dispatch(IDKeyboard)

	assert.Equal(t, 2, calls["timer"])
	assert.Equal(t, 1, calls["ps2"])
	assert.Equal(t, uint64(2), c.Count(IDTimer))
	assert.Equal(t, uint64(0), c.Count(IDButton))
}

func TestDispatch_UnknownIDHalts(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(zerolog.New(&buf))
	require.NoError(t, c.Register(IDTimer, "timer", 0, &fakeLine{}, func() {}))

	defer func() {
		r := recover()
		require.NotNil(t, r, "unknown interrupt must panic")
		herr, ok := r.(*HaltError)
		require.True(t, ok)
		assert.Equal(t, 42, herr.ID)
		assert.Contains(t, herr.Error(), "42")
		assert.True(t, c.Halted())
		assert.Contains(t, buf.String(), "Unknown interrupt")

		// nothing is serviced after a halt
		assert.Equal(t, 0, c.Service())
	}()

	c.Dispatch(42)
}

func TestService_DispatchesUntilLinesClear(t *testing.T) {
	c := NewController(zerolog.Nop())
	timer := &fakeLine{}
	keyboard := &fakeLine{}
	var order []int

	require.NoError(t, c.Register(IDKeyboard, "ps2", 0, keyboard, func() {
		order = append(order, IDKeyboard)
		keyboard.asserted = false
	}))
	require.NoError(t, c.Register(IDTimer, "timer", 0, timer, func() {
		order = append(order, IDTimer)
		timer.asserted = false
	}))
	c.Configure()

	assert.Equal(t, 0, c.Service(), "nothing pending")

	timer.asserted = true
	keyboard.asserted = true
	assert.Equal(t, 2, c.Service())
	assert.Equal(t, []int{IDTimer, IDKeyboard}, order, "equal priority breaks ties by lowest id")
	assert.Equal(t, uint32(SpuriousID), c.Registers().ICCIAR)
}

func TestService_PriorityOrder(t *testing.T) {
	c := NewController(zerolog.Nop())
	timer := &fakeLine{asserted: true}
	button := &fakeLine{asserted: true}
	var order []int

	require.NoError(t, c.Register(IDTimer, "timer", 0xA0, timer, func() {
		order = append(order, IDTimer)
		timer.asserted = false
	}))
	require.NoError(t, c.Register(IDButton, "button", 0x10, button, func() {
		order = append(order, IDButton)
		button.asserted = false
	}))
	c.Configure()

	c.Service()
	assert.Equal(t, []int{IDButton, IDTimer}, order)
}

func TestService_RequiresConfiguration(t *testing.T) {
	c := NewController(zerolog.Nop())
	line := &fakeLine{asserted: true}
	require.NoError(t, c.Register(IDTimer, "timer", 0, line, func() { line.asserted = false }))

	assert.Equal(t, 0, c.Service(), "disabled distributor forwards nothing")
	assert.True(t, line.asserted)

	c.Configure()
	assert.Equal(t, 1, c.Service())
}

func TestService_UnacknowledgedLineIsBoundedStorm(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(zerolog.New(&buf))
	c.SetMaxDispatchPerService(5)
	stuck := &fakeLine{asserted: true}
	calls := 0
	require.NoError(t, c.Register(IDButton, "button", 0, stuck, func() { calls++ }))
	c.Configure()

	assert.Equal(t, 5, c.Service())
	assert.Equal(t, 5, calls)
	assert.Equal(t, uint64(1), c.Stats().Storms)
	assert.Contains(t, buf.String(), "Interrupt storm")

	// level-sensitive: it fires again on the next pass
	assert.Equal(t, 5, c.Service())
}

func TestService_DrainingFIFOIsDeferredNotStorm(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(zerolog.New(&buf).Level(zerolog.InfoLevel))
	c.SetMaxDispatchPerService(5)
	fifo := &fakeFIFO{n: 12}
	require.NoError(t, c.Register(IDKeyboard, "keyboard", 0, fifo, func() { fifo.n-- }))
	c.Configure()

	assert.Equal(t, 5, c.Service())
	assert.Equal(t, 5, c.Service())
	assert.Equal(t, 2, c.Service())
	assert.Zero(t, fifo.n)

	st := c.Stats()
	assert.Zero(t, st.Storms)
	assert.Equal(t, uint64(2), st.Deferred)
	assert.Equal(t, uint64(12), st.Dispatched["keyboard"])
	assert.NotContains(t, buf.String(), "Interrupt storm")
}

func TestService_UndrainedFIFOIsStorm(t *testing.T) {
	c := NewController(zerolog.Nop())
	c.SetMaxDispatchPerService(3)
	fifo := &fakeFIFO{n: 4}
	require.NoError(t, c.Register(IDKeyboard, "keyboard", 0, fifo, func() {}))
	c.Configure()

	assert.Equal(t, 3, c.Service())
	assert.Equal(t, uint64(1), c.Stats().Storms)
	assert.Zero(t, c.Stats().Deferred)
}

func TestStats(t *testing.T) {
	c := NewController(zerolog.Nop())
	require.NoError(t, c.Register(IDTimer, "timer", 0, &fakeLine{}, func() {}))
	require.NoError(t, c.Register(IDButton, "button", 0, &fakeLine{}, func() {}))

	c.Dispatch(IDTimer)

	st := c.Stats()
	assert.Equal(t, uint64(1), st.Dispatched["timer"])
	assert.Equal(t, uint64(0), st.Dispatched["button"])
	assert.False(t, st.Halted)
}
