package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iburimskiy/box-breathing/internal/logging"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Initial breathing rectangle
	RectWidth  = 200
	RectHeight = 200

	// Dot speed in px/s
	Speed = 80

	// Audio cues
	CueVolume = 0.0 // beep exponent, base 2
	CueMillis = 150

	// Border glow after each phase change
	GlowSeconds = 0.6
	GlowEasing  = "outCubic"

	LogLevel = "info"

	EnvPrefix = "BOXBREATH"
)

// CueTones are the default tone frequencies in Hz for Inhale, Hold, Exhale, Hold.
var CueTones = []float64{523.25, 659.25, 392.00, 329.63}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type RectConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type CueConfig struct {
	Enabled bool      `mapstructure:"enabled"`
	Volume  float64   `mapstructure:"volume"`
	Millis  int       `mapstructure:"millis"`
	File    string    `mapstructure:"file"`
	Tones   []float64 `mapstructure:"tones"`
}

type GlowConfig struct {
	Seconds float64 `mapstructure:"seconds"`
	Easing  string  `mapstructure:"easing"`
}

// Config is the full application configuration.
type Config struct {
	LogLevel string       `mapstructure:"logLevel"`
	Speed    float64      `mapstructure:"speed"`
	Window   WindowConfig `mapstructure:"window"`
	Rect     RectConfig   `mapstructure:"rect"`
	Cues     CueConfig    `mapstructure:"cues"`
	Glow     GlowConfig   `mapstructure:"glow"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"log-level":     "logLevel",
	"speed":         "speed",
	"width":         "rect.width",
	"height":        "rect.height",
	"window-width":  "window.width",
	"window-height": "window.height",
	"cue-file":      "cues.file",
	"volume":        "cues.volume",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", LogLevel)
	v.SetDefault("speed", Speed)
	v.SetDefault("window.width", WindowWidth)
	v.SetDefault("window.height", WindowHeight)
	v.SetDefault("rect.width", RectWidth)
	v.SetDefault("rect.height", RectHeight)
	v.SetDefault("cues.enabled", true)
	v.SetDefault("cues.volume", CueVolume)
	v.SetDefault("cues.millis", CueMillis)
	v.SetDefault("cues.file", "")
	v.SetDefault("cues.tones", CueTones)
	v.SetDefault("glow.seconds", GlowSeconds)
	v.SetDefault("glow.easing", GlowEasing)
}

// Load builds the configuration from defaults, an optional config file,
// BOXBREATH_* environment variables and the given flags, in increasing
// order of precedence. An empty path means no config file. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("binding flag %q: %w", name, err)
			}
		}
		// --no-cues is the inverse of cues.enabled, so it cannot be bound directly.
		if f := flags.Lookup("no-cues"); f != nil && f.Changed {
			if off, err := flags.GetBool("no-cues"); err == nil && off {
				v.Set("cues.enabled", false)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed must be positive, got %v", c.Speed))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Rect.Width <= 0 || c.Rect.Height <= 0 {
		errs = append(errs, fmt.Errorf("rect size must be positive, got %vx%v", c.Rect.Width, c.Rect.Height))
	}
	if c.Cues.Millis <= 0 {
		errs = append(errs, fmt.Errorf("cues.millis must be positive, got %d", c.Cues.Millis))
	}
	if len(c.Cues.Tones) != 4 {
		errs = append(errs, fmt.Errorf("cues.tones needs 4 frequencies, got %d", len(c.Cues.Tones)))
	} else {
		for i, hz := range c.Cues.Tones {
			if hz <= 0 {
				errs = append(errs, fmt.Errorf("cues.tones[%d] must be positive, got %v", i, hz))
			}
		}
	}
	if c.Glow.Seconds < 0 {
		errs = append(errs, fmt.Errorf("glow.seconds must not be negative, got %v", c.Glow.Seconds))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
