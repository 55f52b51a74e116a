// Package config provides TOML-based configuration for textfit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gitlab.com/tinyland/lab/textfit/pkg/fit"
	"gitlab.com/tinyland/lab/textfit/pkg/transition"
	"gitlab.com/tinyland/lab/textfit/pkg/trigger"
)

// Config is the top-level textfit configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Font    FontConfig    `toml:"font"`
	Fit     FitConfig     `toml:"fit"`
	Timing  TimingConfig  `toml:"timing"`
}

// GeneralConfig covers logging.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // debug, info, warn, error
	LogFile  string `toml:"log_file"`
}

// FontConfig selects the measurement font.
type FontConfig struct {
	// Family is a display name carried through FontSpec; it does not
	// select a system font.
	Family string `toml:"family"`
	// Path points at a TTF/OTF file. Empty means the embedded Go Regular.
	Path string `toml:"path"`
}

// FitConfig bounds the size search.
type FitConfig struct {
	MinSize      int `toml:"min_size"`
	MaxSize      int `toml:"max_size"`
	DefaultSize  int `toml:"default_size"`
	SafetyMargin int `toml:"safety_margin"`
	// Padding is subtracted from each side of the surface before the
	// viewport is handed to the solver, in pixels.
	Padding int `toml:"padding"`
}

// TimingConfig controls the boundary scheduling.
type TimingConfig struct {
	// Debounce is the quiescence window before a coalesced fit runs.
	Debounce Duration `toml:"debounce"`
	// Transition is the font size animation duration.
	Transition Duration `toml:"transition"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logFile := filepath.Join(xdgCacheHome(home), "textfit", "textfit.log")

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  logFile,
		},
		Font: FontConfig{
			Family: "Go Regular",
			Path:   "",
		},
		Fit: FitConfig{
			MinSize:      fit.MinSize,
			MaxSize:      fit.MaxSize,
			DefaultSize:  fit.DefaultSize,
			SafetyMargin: fit.SafetyMargin,
			Padding:      20,
		},
		Timing: TimingConfig{
			Debounce:   Duration{trigger.DefaultWindow},
			Transition: Duration{transition.DefaultDuration},
		},
	}
}

// Validate checks the configuration for values the rest of the program
// cannot clamp its way around.
func (c *Config) Validate() error {
	switch c.General.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("general.log_level %q: must be debug, info, warn, or error", c.General.LogLevel)
	}

	if c.Fit.MinSize < 1 {
		return fmt.Errorf("fit.min_size %d: must be at least 1", c.Fit.MinSize)
	}
	if c.Fit.MaxSize < c.Fit.MinSize {
		return fmt.Errorf("fit.max_size %d: must be >= fit.min_size (%d)", c.Fit.MaxSize, c.Fit.MinSize)
	}
	if c.Fit.SafetyMargin < 0 {
		return fmt.Errorf("fit.safety_margin %d: must not be negative", c.Fit.SafetyMargin)
	}
	if c.Fit.Padding < 0 {
		return fmt.Errorf("fit.padding %d: must not be negative", c.Fit.Padding)
	}

	if c.Font.Path != "" {
		if _, err := os.Stat(c.Font.Path); err != nil {
			return fmt.Errorf("font.path: %w", err)
		}
	}
	return nil
}

// Bounds returns the configured size search range. The default size is
// clamped at use, not here.
func (c *Config) Bounds() fit.Bounds {
	return fit.Bounds{Min: c.Fit.MinSize, Max: c.Fit.MaxSize}
}

// DebounceWindow returns a usable quiescence window even when the config
// left it zero.
func (c *Config) DebounceWindow() time.Duration {
	if c.Timing.Debounce.Duration <= 0 {
		return trigger.DefaultWindow
	}
	return c.Timing.Debounce.Duration
}

// TransitionDuration returns the animation duration; zero disables
// animation (snap).
func (c *Config) TransitionDuration() time.Duration {
	return c.Timing.Transition.Duration
}

// xdgCacheHome resolves the cache base directory.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
