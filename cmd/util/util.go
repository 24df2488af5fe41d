package util

import (
	"strings"

	"github.com/ValentinKolb/vrpstate/lib/common"
	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by the commands
	EnvPrefix = "vrpstate"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupStateFlags adds the state manager flags to a command
func SetupStateFlags(cmd *cobra.Command) {
	defaults := common.DefaultConfig()

	key := "engine"
	cmd.PersistentFlags().String(key, string(defaults.Engine), WrapString("Storage engine of the state manager (dense, synced)"))

	key = "row-hint"
	cmd.PersistentFlags().Int(key, defaults.RowHint, WrapString("Initial number of rows per entity table of the dense engine (0 = engine default)"))

	key = "slot-hint"
	cmd.PersistentFlags().Int(key, defaults.SlotHint, WrapString("Initial slot capacity of a new row of the dense engine (0 = engine default)"))

	key = "metrics"
	cmd.PersistentFlags().Bool(key, defaults.Metrics, WrapString("Count state operations per scope"))
}

// InitConfig loads .env files and initializes viper to read environment variables.
// The format of the environment variables is VRPSTATE_<flag> (e.g. VRPSTATE_ROW_HINT=128)
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetConfig reads the state manager configuration from viper
func GetConfig() common.Config {
	return common.Config{
		Engine:   engine.Implementation(viper.GetString("engine")),
		RowHint:  viper.GetInt("row-hint"),
		SlotHint: viper.GetInt("slot-hint"),
		Metrics:  viper.GetBool("metrics"),
		LogLevel: viper.GetString("log-level"),
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
