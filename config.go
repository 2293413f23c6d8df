package keybind

import (
	"flag"
	"os"
	"time"
)

// Config holds the user-facing configuration of a Keybind
type Config struct {
	Combo    string
	Interval time.Duration

	Quiet bool
	Once  bool
}

// DefaultConfig returns the default configuration.
// The combination can be overridden using the KEYBIND_COMBO environment variable.
func DefaultConfig() Config {
	combo := os.Getenv("KEYBIND_COMBO")
	if combo == "" {
		combo = "ctrl+g"
	}

	return Config{
		Combo:    combo,
		Interval: DefaultInterval,
	}
}

// AddFlagsTo adds flags for this Config to the provided flagset.
// When flagset is nil, uses flag.CommandLine
func (c *Config) AddFlagsTo(flagset *flag.FlagSet) {
	if flagset == nil {
		flagset = flag.CommandLine
	}

	flagset.StringVar(&c.Combo, "combo", c.Combo, "Key combination to wait for, e.g. \"ctrl+g\". Can also be given via KEYBIND_COMBO environment variable. ")
	flagset.DurationVar(&c.Interval, "interval", c.Interval, "Time between two polls of the keyboard state")

	flagset.BoolVar(&c.Quiet, "quiet", c.Quiet, "Supress all logging output")
	flagset.BoolVar(&c.Once, "once", c.Once, "Exit after the combination has been pressed once")
}

// Keybind creates a new Keybind on source from this configuration
func (c Config) Keybind(source Source) (*Keybind, error) {
	combo, err := ParseCombination(c.Combo)
	if err != nil {
		return nil, err
	}

	kb := New(source, combo.Keys()...)
	kb.Interval = c.Interval
	return kb, nil
}
