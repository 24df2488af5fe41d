package bench

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/vrpstate/lib/common"
	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func smallWorkload() Workload {
	return Workload{
		Routes:             4,
		ActivitiesPerRoute: 5,
		Vehicles:           3,
		Iterations:         10,
		Seed:               42,
	}
}

func TestRunIsEngineIndependent(t *testing.T) {
	dense := common.DefaultConfig()
	synced := common.DefaultConfig()
	synced.Engine = engine.ImplSynced

	denseReport, _, err := Run(dense, smallWorkload())
	require.NoError(t, err)
	syncedReport, _, err := Run(synced, smallWorkload())
	require.NoError(t, err)

	assert.Equal(t, denseReport.Feasible, syncedReport.Feasible)
	assert.Equal(t, denseReport.Checksum, syncedReport.Checksum)
	assert.Positive(t, denseReport.Checksum)
}

func TestRunReport(t *testing.T) {
	w := smallWorkload()
	report, m, err := Run(common.DefaultConfig(), w)
	require.NoError(t, err)

	assert.Equal(t, uint64(w.Iterations), report.State.Iterations)
	assert.Equal(t, uint64(w.Iterations), report.State.Metrics.Clears)
	assert.Zero(t, report.State.Engine.Entries, "every iteration ends with a Clear")
	assert.Equal(t, 12, report.State.Slots, "built-ins plus two user slots")

	names := make([]string, 0, len(report.Timers))
	for _, timer := range report.Timers {
		names = append(names, timer.Name)
		assert.Equal(t, int64(w.Iterations), timer.Count, "timer %s", timer.Name)
	}
	assert.Equal(t, []string{phaseClear, phaseIteration, phaseRead, phaseWrite}, names)

	// every route fits at least the largest vehicle
	assert.GreaterOrEqual(t, report.Feasible, w.Routes*w.Iterations)

	var buf bytes.Buffer
	m.WriteMetrics(&buf)
	assert.Contains(t, buf.String(), "vrpstate_puts_total")

	buf.Reset()
	printReport(&buf, report)
	assert.Contains(t, buf.String(), "feasible route/vehicle pairs")
}

func TestRunRejectsInvalidInput(t *testing.T) {
	w := smallWorkload()
	w.Routes = 0
	_, _, err := Run(common.DefaultConfig(), w)
	assert.Error(t, err)

	conf := common.DefaultConfig()
	conf.Engine = "unknown"
	_, _, err = Run(conf, smallWorkload())
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	report, _, err := Run(common.DefaultConfig(), smallWorkload())
	require.NoError(t, err)

	dir := t.TempDir()

	csvPath := filepath.Join(dir, "bench.csv")
	require.NoError(t, writeResultsToCSV(csvPath, report))
	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(report.Timers)+1)
	assert.Equal(t, "Phase", rows[0][0])
	assert.Equal(t, "dense", rows[1][8])

	yamlPath := filepath.Join(dir, "bench.yaml")
	require.NoError(t, writeResultsToYAML(yamlPath, report))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, report.Feasible, decoded["feasible_assignments"])
	assert.Contains(t, decoded, "timers")
	assert.Contains(t, decoded, "state")
}
