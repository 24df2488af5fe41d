package bench

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/vrpstate/cmd/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	benchWorkload = DefaultWorkload()

	// BenchCmd runs a synthetic local search against the state manager
	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the state manager with a synthetic local search",
		Long: `Benchmark the state manager with a synthetic local search.

Every iteration reassigns all activities to new routes, runs load updaters that
write activity, route and vehicle dependent state, reads it back for feasibility
checks and clears the state manager. The configuration can be set via command line
flags or environment variables (VRPSTATE_<flag>, e.g. VRPSTATE_ITERATIONS=1000).`,
		PreRunE: processBenchConfig,
		RunE:    run,
	}
)

func init() {
	util.SetupStateFlags(BenchCmd)

	defaults := DefaultWorkload()

	key := "routes"
	BenchCmd.Flags().Int(key, defaults.Routes, util.WrapString("Number of routes per iteration"))
	key = "activities"
	BenchCmd.Flags().Int(key, defaults.ActivitiesPerRoute, util.WrapString("Number of activities per route"))
	key = "vehicles"
	BenchCmd.Flags().Int(key, defaults.Vehicles, util.WrapString("Number of vehicles (each with its own type and capacity)"))
	key = "iterations"
	BenchCmd.Flags().Int(key, defaults.Iterations, util.WrapString("Number of search iterations"))
	key = "seed"
	BenchCmd.Flags().Int64(key, defaults.Seed, util.WrapString("Seed of the random route assignment"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save the timer results as CSV"))
	key = "yaml"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save the full report as YAML"))
	key = "print-metrics"
	BenchCmd.Flags().Bool(key, false, util.WrapString("Print the state operation counters in Prometheus format after the run"))
}

func processBenchConfig(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	benchWorkload = Workload{
		Routes:             viper.GetInt("routes"),
		ActivitiesPerRoute: viper.GetInt("activities"),
		Vehicles:           viper.GetInt("vehicles"),
		Iterations:         viper.GetInt("iterations"),
		Seed:               viper.GetInt64("seed"),
	}
	return benchWorkload.Validate()
}

func run(_ *cobra.Command, _ []string) error {
	conf := util.GetConfig()

	fmt.Println("Benchmark of the vrpstate state manager")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(conf.String())

	report, m, err := Run(conf, benchWorkload)
	if err != nil {
		return err
	}

	printReport(os.Stdout, report)

	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, report); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
	}

	if yamlPath := viper.GetString("yaml"); yamlPath != "" {
		fmt.Printf("\nExporting report to YAML: %s\n", yamlPath)
		if err := writeResultsToYAML(yamlPath, report); err != nil {
			return fmt.Errorf("failed to export report to YAML: %v", err)
		}
	}

	if viper.GetBool("print-metrics") {
		fmt.Println()
		m.WriteMetrics(os.Stdout)
	}

	return nil
}
