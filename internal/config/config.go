// Package config loads the motor-control configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sweeney/motor-control/internal/gpio"
	"github.com/sweeney/motor-control/internal/logic"
)

// DefaultChip is the GPIO character device used when none is configured.
const DefaultChip = "gpiochip0"

// Motor configures one output channel.
type Motor struct {
	Pin int
	// State is ON, OFF or UNKNOWN.
	State string
	// ActiveLow drives the pin LOW for ON instead of HIGH.
	ActiveLow bool
}

// Config is the full process configuration. Motor entries are in channel order.
type Config struct {
	Chip   string
	DryRun bool
	Hold   bool
	Motor  []Motor
}

// Default returns the built-in configuration: the default gpio pins with states
// ON, OFF, UNKNOWN.
func Default() Config {
	pins := gpio.DefaultPins()
	return Config{
		Chip: DefaultChip,
		Motor: []Motor{
			{Pin: pins[0], State: logic.StateOn.String()},
			{Pin: pins[1], State: logic.StateOff.String()},
			{Pin: pins[2], State: logic.StateUnknown.String()},
		},
	}
}

// Load reads the TOML file at path on top of the defaults. An empty path
// or a missing file yields the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	// Decode into a copy without motors so a file that lists motors
	// replaces the defaults instead of appending to them.
	f := c
	f.Motor = nil
	md, err := toml.DecodeFile(path, &f)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return c, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if f.Motor == nil {
		f.Motor = c.Motor
	}
	return f, nil
}

// Validate checks that exactly three motors are configured with usable
// pins and parseable states.
func (c Config) Validate() error {
	if c.Chip == "" && !c.DryRun {
		return errors.New("no gpio chip configured")
	}
	if len(c.Motor) != 3 {
		return fmt.Errorf("expected 3 motors, got %d", len(c.Motor))
	}
	if err := c.Pins().Validate(); err != nil {
		return err
	}
	for i, m := range c.Motor {
		if _, err := logic.ParseMotorState(m.State); err != nil {
			return fmt.Errorf("motor %d: %w", i+1, err)
		}
	}
	return nil
}

// Pins returns the channel to pin mapping. Call Validate first.
func (c Config) Pins() gpio.Pins {
	var p gpio.Pins
	for i := range p {
		if i < len(c.Motor) {
			p[i] = c.Motor[i].Pin
		}
	}
	return p
}

// ActiveLow returns the per-channel inversion flags.
func (c Config) ActiveLow() [3]bool {
	var a [3]bool
	for i := range a {
		if i < len(c.Motor) {
			a[i] = c.Motor[i].ActiveLow
		}
	}
	return a
}

// MotorStates parses the configured states.
func (c Config) MotorStates() (logic.Motors, error) {
	var m logic.Motors
	if len(c.Motor) != len(m) {
		return m, fmt.Errorf("expected %d motors, got %d", len(m), len(c.Motor))
	}
	for i := range m {
		s, err := logic.ParseMotorState(c.Motor[i].State)
		if err != nil {
			return m, fmt.Errorf("motor %d: %w", i+1, err)
		}
		m[i] = s
	}
	return m, nil
}

// Encode renders c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
