package common

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/engine/engines/dense"
	"github.com/ValentinKolb/vrpstate/lib/engine/engines/synced"
	"github.com/ValentinKolb/vrpstate/lib/state"
)

// --------------------------------------------------------------------------
// State manager configuration struct
// --------------------------------------------------------------------------

// Config holds the parameters used to create a state.Manager
type Config struct {
	// Storage engine, one of engine.ImplDense or engine.ImplSynced
	Engine engine.Implementation `yaml:"engine"`

	// Dense engine sizing (0 = engine default)
	RowHint  int `yaml:"row_hint"`
	SlotHint int `yaml:"slot_hint"`

	// Count operations per scope
	Metrics bool `yaml:"metrics"`

	// Logging configuration
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Engine:   engine.ImplDense,
		Metrics:  true,
		LogLevel: "info",
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.Engine {
	case engine.ImplDense, engine.ImplSynced:
	default:
		return fmt.Errorf("unknown engine %q (must be %s or %s)", c.Engine, engine.ImplDense, engine.ImplSynced)
	}
	if c.RowHint < 0 || c.SlotHint < 0 {
		return fmt.Errorf("row hint and slot hint must not be negative (got %d, %d)", c.RowHint, c.SlotHint)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ToManagerOptions converts the Config to state.Options
func (c *Config) ToManagerOptions() (*state.Options, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var factory engine.Factory
	switch c.Engine {
	case engine.ImplSynced:
		factory = synced.Factory()
	default:
		factory = dense.Factory(&dense.Options{
			RowHint:  c.RowHint,
			SlotHint: c.SlotHint,
		})
	}

	return &state.Options{
		Engine:  factory,
		Metrics: c.Metrics,
	}, nil
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("State Engine")
	addField("Engine", string(c.Engine))
	if c.Engine == engine.ImplDense {
		addField("Row Hint", hint(c.RowHint))
		addField("Slot Hint", hint(c.SlotHint))
	}

	addSection("Metrics")
	addField("Enabled", fmt.Sprintf("%t", c.Metrics))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

func hint(v int) string {
	if v == 0 {
		return "default"
	}
	return fmt.Sprintf("%d", v)
}
