// Package config holds the run parameters parsed from the command line.
package config

import "fmt"

// Luminosity bounds. The upper bound leaves headroom for the rotating boost
// within the gamma range the X server accepts.
const (
	MinLuminosity = 0.1
	MaxLuminosity = 9.9
)

// Config is the run configuration. It is fixed after Validate and never
// mutated by the loop.
type Config struct {
	// TimeLimit is how long to run, in seconds. Negative means run until
	// interrupted.
	TimeLimit float64

	// Speed multiplies the elapsed time fed to the hue rotation.
	Speed float64

	// Luminosity is the base gamma applied to all three channels before the
	// rotating boost is added.
	Luminosity float64

	// Display is the X display to connect to. Empty means $DISPLAY.
	Display string

	// Screen is the X screen whose gamma is cycled. Negative means the
	// display's default screen.
	Screen int

	// Debug enables debug diagnostics on stderr.
	Debug bool
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		TimeLimit:  -1,
		Speed:      1,
		Luminosity: 1.0 / 3.0,
		Screen:     -1,
	}
}

// Validate reports whether the configuration can be run. Any time limit is
// accepted; speed and luminosity are range checked.
func (c Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be greater than 0, got %g", c.Speed)
	}
	if c.Luminosity < MinLuminosity || c.Luminosity > MaxLuminosity {
		return fmt.Errorf("luminosity must be in [%g, %g], got %g", MinLuminosity, MaxLuminosity, c.Luminosity)
	}
	return nil
}
