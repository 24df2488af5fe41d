package util

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapString(text), "\n") {
		assert.LessOrEqual(t, len(line), Wrap)
	}
	assert.Equal(t, "short text", WrapString("  short   text "))
	assert.Empty(t, WrapString(""))
}

func TestGetConfigFromFlagsAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("VRPSTATE_ROW_HINT", "256")

	cmd := &cobra.Command{Use: "test"}
	SetupStateFlags(cmd)
	cmd.PersistentFlags().String("log-level", "warn", "")
	require.NoError(t, cmd.ParseFlags([]string{"--engine", "synced"}))

	InitConfig()
	require.NoError(t, BindCommandFlags(cmd))

	conf := GetConfig()
	assert.Equal(t, engine.ImplSynced, conf.Engine)
	assert.Equal(t, 256, conf.RowHint, "environment variables override flag defaults")
	assert.Equal(t, 0, conf.SlotHint)
	assert.True(t, conf.Metrics)
	assert.Equal(t, "warn", conf.LogLevel)
	assert.NoError(t, conf.Validate())
}
