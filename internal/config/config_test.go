package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
log:
  level: debug
hardware:
  timer_period: 100ms
  keyboard_fifo: 32
game:
  seed: 1234
ui:
  window:
    width: 1024
    height: 768
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	resetGlobals()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 100*time.Millisecond, c.Hardware.TimerPeriod)
	assert.Equal(t, 32, c.Hardware.KeyboardFIFO)
	assert.Equal(t, int64(1234), c.Game.Seed)
	assert.Equal(t, 1024, c.UI.Window.Width)
	assert.Equal(t, 768, c.UI.Window.Height)
	assert.Equal(t, configFile, ConfigFilePath())

	// untouched keys keep their defaults
	assert.Equal(t, 64, c.Hardware.MaxDispatchPerService)
	assert.Equal(t, "console", c.Log.Format)
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals()

	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 250*time.Millisecond, c.Hardware.TimerPeriod)
	assert.Equal(t, 256, c.Hardware.KeyboardFIFO)
	assert.Equal(t, int64(0), c.Game.Seed)
	assert.False(t, c.Audio.Enabled)
	assert.Equal(t, 8000, c.Audio.SampleRate)
	assert.Equal(t, 5*time.Second, c.Monitoring.Interval)
	assert.Equal(t, 8, c.Monitoring.LagAlertTicks)
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals()

	t.Setenv("GIRQ_GAME_SEED", "99")
	t.Setenv("GIRQ_HARDWARE_TIMER_PERIOD", "1s")
	t.Setenv("GIRQ_AUDIO_ENABLED", "true")

	require.NoError(t, Init("/non/existent/config.yaml"))

	c := Get()
	assert.Equal(t, int64(99), c.Game.Seed)
	assert.Equal(t, time.Second, c.Hardware.TimerPeriod)
	assert.True(t, c.Audio.Enabled)
}

func TestInitRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"bad level", "log:\n  level: chatty\n", "log.level"},
		{"bad format", "log:\n  format: xml\n", "log.format"},
		{"zero fifo", "hardware:\n  keyboard_fifo: 0\n", "hardware.keyboard_fifo"},
		{"negative timer", "hardware:\n  timer_period: -1s\n", "hardware.timer_period"},
		{"frame rate", "ui:\n  frame_rate: 1000\n", "ui.frame_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(file, []byte(tt.content), 0644))

			resetGlobals()
			err := Init(file)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestSet(t *testing.T) {
	resetGlobals()
	require.NoError(t, Init("/non/existent/config.yaml"))

	Set("log.level", "warn")
	Set("ui.window.width", 1280)

	c := Get()
	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, 1280, c.UI.Window.Width)
}

func TestGetViperPanicsBeforeInit(t *testing.T) {
	resetGlobals()
	assert.Panics(t, func() { GetViper() })
}
