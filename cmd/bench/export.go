package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// --------------------------------------------------------------------------
// Report output
// --------------------------------------------------------------------------

// printReport writes a human readable summary of the report
func printReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "%-12s%10s%12s%12s%12s%12s%12s\n", "phase", "count", "mean", "p50", "p95", "p99", "max")
	for _, t := range report.Timers {
		fmt.Fprintf(w, "%-12s%10d%12s%12s%12s%12s%12s\n",
			t.Name, t.Count, t.Mean, t.P50, t.P95, t.P99, t.Max)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "feasible route/vehicle pairs: %d\n", report.Feasible)
	fmt.Fprintf(w, "load checksum:                %d\n", report.Checksum)
	fmt.Fprintf(w, "slots:                        %d\n", report.State.Slots)
	fmt.Fprintf(w, "iterations:                   %d\n", report.State.Iterations)
}

// writeResultsToCSV writes one row per timer to csvPath
func writeResultsToCSV(csvPath string, report *Report) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := []string{
		"Phase", "Count", "MeanNs", "MinNs", "MaxNs", "P50Ns", "P95Ns", "P99Ns",
		"Engine", "Routes", "ActivitiesPerRoute", "Vehicles", "Iterations", "Seed",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	ns := func(d time.Duration) string { return strconv.FormatInt(d.Nanoseconds(), 10) }
	for _, t := range report.Timers {
		row := []string{
			t.Name,
			strconv.FormatInt(t.Count, 10),
			ns(t.Mean), ns(t.Min), ns(t.Max), ns(t.P50), ns(t.P95), ns(t.P99),
			string(report.Config.Engine),
			strconv.Itoa(report.Workload.Routes),
			strconv.Itoa(report.Workload.ActivitiesPerRoute),
			strconv.Itoa(report.Workload.Vehicles),
			strconv.Itoa(report.Workload.Iterations),
			strconv.FormatInt(report.Workload.Seed, 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for phase %s: %v", t.Name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeResultsToYAML writes the full report to yamlPath
func writeResultsToYAML(yamlPath string, report *Report) error {
	file, err := os.Create(yamlPath)
	if err != nil {
		return fmt.Errorf("failed to create YAML file: %v", err)
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %v", err)
	}
	return enc.Close()
}
