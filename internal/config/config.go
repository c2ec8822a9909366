package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/GeneralsIRQ/internal/common"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Hardware   HardwareConfig   `mapstructure:"hardware"`
	Game       GameConfig       `mapstructure:"game"`
	UI         UIConfig         `mapstructure:"ui"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// HardwareConfig holds the simulated board settings
type HardwareConfig struct {
	// TimerPeriod is the private timer load value expressed as wall time
	TimerPeriod           time.Duration `mapstructure:"timer_period"`
	KeyboardFIFO          int           `mapstructure:"keyboard_fifo"`
	MaxDispatchPerService int           `mapstructure:"max_dispatch_per_service"`
}

// GameConfig holds session settings. The grid itself is fixed.
type GameConfig struct {
	// Seed 0 asks the entropy source for a seed
	Seed int64 `mapstructure:"seed"`
}

// UIConfig holds front end settings
type UIConfig struct {
	Window    WindowConfig `mapstructure:"window"`
	TileSize  int          `mapstructure:"tile_size"`
	FrameRate int          `mapstructure:"frame_rate"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// AudioConfig holds chip-tune settings
type AudioConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate int     `mapstructure:"sample_rate"`
	Volume     float64 `mapstructure:"volume"`
}

// MonitoringConfig holds lag monitor settings
type MonitoringConfig struct {
	Interval      time.Duration `mapstructure:"interval"`
	LagAlertTicks int           `mapstructure:"lag_alert_ticks"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("hardware.timer_period", 250*time.Millisecond)
	v.SetDefault("hardware.keyboard_fifo", 256)
	v.SetDefault("hardware.max_dispatch_per_service", 64)

	v.SetDefault("game.seed", 0)

	v.SetDefault("ui.window.width", 640)
	v.SetDefault("ui.window.height", 480)
	v.SetDefault("ui.window.title", "Generals IRQ")
	v.SetDefault("ui.tile_size", 40)
	v.SetDefault("ui.frame_rate", 60)

	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.sample_rate", 8000)
	v.SetDefault("audio.volume", -1.0)

	v.SetDefault("monitoring.interval", 5*time.Second)
	v.SetDefault("monitoring.lag_alert_ticks", 8)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/generals-irq")
	}

	v.SetEnvPrefix("GIRQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// A missing file, or an explicit path that does not exist, means defaults
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value any) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the re-decoded config; an invalid edit is reported and the previous
// config stays in place.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			cfg = next
		}
		if onChange != nil {
			onChange(cfg, err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if _, err := common.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json")
	}

	if c.Hardware.TimerPeriod <= 0 {
		return fmt.Errorf("hardware.timer_period must be positive")
	}
	if err := common.ValidatePositive("hardware.keyboard_fifo", c.Hardware.KeyboardFIFO); err != nil {
		return err
	}
	if err := common.ValidatePositive("hardware.max_dispatch_per_service", c.Hardware.MaxDispatchPerService); err != nil {
		return err
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if err := common.ValidatePositive("ui.tile_size", c.UI.TileSize); err != nil {
		return err
	}
	if err := common.ValidateRange("ui.frame_rate", c.UI.FrameRate, 1, 240); err != nil {
		return err
	}

	if err := common.ValidateRange("audio.sample_rate", c.Audio.SampleRate, 4000, 48000); err != nil {
		return err
	}

	if c.Monitoring.Interval <= 0 {
		return fmt.Errorf("monitoring.interval must be positive")
	}
	if c.Monitoring.LagAlertTicks < 0 {
		return fmt.Errorf("monitoring.lag_alert_ticks must be non-negative")
	}

	return nil
}
