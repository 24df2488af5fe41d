package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/vrpstate/cmd/bench"
	"github.com/ValentinKolb/vrpstate/cmd/slots"
	"github.com/ValentinKolb/vrpstate/cmd/util"
	"github.com/ValentinKolb/vrpstate/lib/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "vrpstate",
		Short: "algorithm state store for vehicle routing solvers",
		Long: fmt.Sprintf(`vrpstate (v%s)

A scoped, indexed state store for vehicle routing solvers. Search operators
memoize loads, costs and vehicle parameters per problem, route and activity
and read them back type-checked.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: initCommand,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of vrpstate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("vrpstate v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(slots.SlotsCmd)
	RootCmd.AddCommand(bench.BenchCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, common.DefaultConfig().LogLevel, util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// initCommand loads the configuration sources and sets up logging before any command runs
func initCommand(cmd *cobra.Command, _ []string) error {
	util.InitConfig()
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
