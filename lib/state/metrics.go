package state

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// scope identifies one of the storage scopes in metric labels
type scope uint8

const (
	scopeProblem scope = iota
	scopeRoute
	scopeRouteVehicle
	scopeActivity
	scopeActivityVehicle
	numScopes
)

func (s scope) String() string {
	switch s {
	case scopeProblem:
		return "problem"
	case scopeRoute:
		return "route"
	case scopeRouteVehicle:
		return "route_vehicle"
	case scopeActivity:
		return "activity"
	case scopeActivityVehicle:
		return "activity_vehicle"
	default:
		return "unknown"
	}
}

// opMetrics counts manager operations per scope. A nil *opMetrics records nothing.
type opMetrics struct {
	set        *metrics.Set
	puts       [numScopes]*metrics.Counter
	hits       [numScopes]*metrics.Counter
	misses     [numScopes]*metrics.Counter
	mismatches [numScopes]*metrics.Counter
	defaults   *metrics.Counter
	clears     *metrics.Counter
}

func newOpMetrics(runID string) *opMetrics {
	m := &opMetrics{set: metrics.NewSet()}
	for s := scope(0); s < numScopes; s++ {
		labels := fmt.Sprintf(`{run=%q,scope=%q}`, runID, s.String())
		m.puts[s] = m.set.NewCounter("vrpstate_puts_total" + labels)
		m.hits[s] = m.set.NewCounter("vrpstate_get_hits_total" + labels)
		m.misses[s] = m.set.NewCounter("vrpstate_get_misses_total" + labels)
		m.mismatches[s] = m.set.NewCounter("vrpstate_type_mismatches_total" + labels)
	}
	runLabel := fmt.Sprintf(`{run=%q}`, runID)
	m.defaults = m.set.NewCounter("vrpstate_default_fallbacks_total" + runLabel)
	m.clears = m.set.NewCounter("vrpstate_clears_total" + runLabel)
	return m
}

func (m *opMetrics) put(s scope) {
	if m != nil {
		m.puts[s].Inc()
	}
}

func (m *opMetrics) get(s scope, loaded bool) {
	if m == nil {
		return
	}
	if loaded {
		m.hits[s].Inc()
	} else {
		m.misses[s].Inc()
	}
}

func (m *opMetrics) mismatch(s scope) {
	if m != nil {
		m.mismatches[s].Inc()
	}
}

func (m *opMetrics) defaulted() {
	if m != nil {
		m.defaults.Inc()
	}
}

func (m *opMetrics) cleared() {
	if m != nil {
		m.clears.Inc()
	}
}

// Snapshot is a point-in-time copy of the operation counters of a manager.
type Snapshot struct {
	Puts       map[string]uint64 `json:"puts" yaml:"puts"`
	Hits       map[string]uint64 `json:"hits" yaml:"hits"`
	Misses     map[string]uint64 `json:"misses" yaml:"misses"`
	Mismatches map[string]uint64 `json:"mismatches" yaml:"mismatches"`
	Defaults   uint64            `json:"defaults" yaml:"defaults"`
	Clears     uint64            `json:"clears" yaml:"clears"`
}

func (m *opMetrics) snapshot() Snapshot {
	snap := Snapshot{
		Puts:       make(map[string]uint64, numScopes),
		Hits:       make(map[string]uint64, numScopes),
		Misses:     make(map[string]uint64, numScopes),
		Mismatches: make(map[string]uint64, numScopes),
	}
	if m == nil {
		return snap
	}
	for s := scope(0); s < numScopes; s++ {
		snap.Puts[s.String()] = m.puts[s].Get()
		snap.Hits[s.String()] = m.hits[s].Get()
		snap.Misses[s.String()] = m.misses[s].Get()
		snap.Mismatches[s.String()] = m.mismatches[s].Get()
	}
	snap.Defaults = m.defaults.Get()
	snap.Clears = m.clears.Get()
	return snap
}

func (m *opMetrics) writePrometheus(w io.Writer) {
	if m != nil {
		m.set.WritePrometheus(w)
	}
}
