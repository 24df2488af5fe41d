package common

import (
	"testing"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/problem"
	"github.com/ValentinKolb/vrpstate/lib/state"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())

	opts, err := c.ToManagerOptions()
	require.NoError(t, err)
	assert.True(t, opts.Metrics)

	m := state.NewManager(nil, opts)
	assert.Equal(t, engine.ImplDense, m.Info().Engine.EngineType)
}

func TestSyncedConfig(t *testing.T) {
	c := DefaultConfig()
	c.Engine = engine.ImplSynced
	c.Metrics = false

	opts, err := c.ToManagerOptions()
	require.NoError(t, err)
	assert.False(t, opts.Metrics)

	vrp := problem.NewProblemBuilder().AddVehicle(problem.NewVehicleBuilder("v").Build()).Build()
	m := state.NewManager(vrp, opts)
	assert.Equal(t, engine.ImplSynced, m.Info().Engine.EngineType)
}

func TestInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"unknown engine", func(c *Config) { c.Engine = "btree" }},
		{"negative row hint", func(c *Config) { c.RowHint = -1 }},
		{"negative slot hint", func(c *Config) { c.SlotHint = -1 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			assert.Error(t, c.Validate())
			_, err := c.ToManagerOptions()
			assert.Error(t, err)
		})
	}
}

func TestConfigString(t *testing.T) {
	c := DefaultConfig()
	c.RowHint = 128
	s := c.String()
	assert.Contains(t, s, "STATE ENGINE")
	assert.Contains(t, s, "dense")
	assert.Contains(t, s, "128")
	assert.Contains(t, s, "default")

	c.Engine = engine.ImplSynced
	assert.NotContains(t, c.String(), "Row Hint")
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, logger.WARNING, lvl)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)

	assert.Error(t, InitLoggers("verbose"))
	assert.NoError(t, InitLoggers("error"))
}
