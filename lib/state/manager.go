package state

import (
	"io"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/engine/engines/dense"
	"github.com/ValentinKolb/vrpstate/lib/problem"
	"github.com/google/uuid"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger("state")

// Options configures a Manager
type Options struct {
	Engine  engine.Factory // Creates the storage engine (nil = dense engine with default options)
	Metrics bool           // Count operations per scope
}

// DefaultOptions returns the default manager options: a dense engine with metrics enabled
func DefaultOptions() *Options {
	return &Options{
		Engine:  dense.Factory(nil),
		Metrics: true,
	}
}

// Manager holds the algorithm state of one solver run: the slot registry, the scoped
// storage and the declared defaults. Values are read and written through the generic
// accessor functions of this package.
//
// Thread-safety: A Manager is meant to be driven by a single goroutine. Concurrent reads
// are only safe if the engine supports engine.FeatureConcurrentReads and no goroutine
// writes at the same time.
type Manager struct {
	runID    string
	vrp      problem.Problem
	engine   engine.Engine
	registry *Registry
	defaults *defaults
	metrics  *opMetrics

	iterations uint64
}

// Info describes the current state of a Manager
type Info struct {
	RunID      string      `json:"run_id" yaml:"run_id"`
	Iterations uint64      `json:"iterations" yaml:"iterations"`
	Slots      int         `json:"slots" yaml:"slots"`
	Defaults   int         `json:"defaults" yaml:"defaults"`
	Engine     engine.Info `json:"engine" yaml:"engine"`
	Metrics    Snapshot    `json:"metrics" yaml:"metrics"`
}

// NewManager creates the state manager for one run over vrp (may be nil).
// The vehicles of vrp are handed to the engine to pre-size vehicle dependent storage.
func NewManager(vrp problem.Problem, opts *Options) *Manager {
	if opts == nil {
		opts = DefaultOptions()
	}
	factory := opts.Engine
	if factory == nil {
		factory = dense.Factory(nil)
	}

	m := &Manager{
		runID:    uuid.NewString(),
		vrp:      vrp,
		engine:   factory(vrp),
		registry: NewRegistry(),
		defaults: newDefaults(),
	}
	if opts.Metrics {
		m.metrics = newOpMetrics(m.runID)
	}

	plog.Infof("created state manager %s (engine: %s, metrics: %t)",
		m.runID, m.engine.GetInfo().EngineType, opts.Metrics)
	return m
}

// RunID returns the unique id of the run this manager belongs to.
func (m *Manager) RunID() string { return m.runID }

// Problem returns the problem the manager was created for.
func (m *Manager) Problem() problem.Problem { return m.vrp }

// Registry returns the slot registry of the manager.
func (m *Manager) Registry() *Registry { return m.registry }

// Iterations returns the number of Clear calls so far.
func (m *Manager) Iterations() uint64 { return m.iterations }

// CreateStateId returns the id for name, allocating a new slot on first use.
// Equal names always return the same id.
func (m *Manager) CreateStateId(name string) StateId {
	return m.registry.CreateOrGet(name)
}

// Clear drops every live value of every scope. Registered ids and declared defaults
// are kept. Call it between search iterations.
func (m *Manager) Clear() {
	m.engine.Clear()
	m.iterations++
	m.metrics.cleared()
	plog.Debugf("cleared state of run %s (iteration %d)", m.runID, m.iterations)
}

// Info returns statistics about the manager and its engine.
func (m *Manager) Info() Info {
	return Info{
		RunID:      m.runID,
		Iterations: m.iterations,
		Slots:      m.registry.Len(),
		Defaults:   m.defaults.len(),
		Engine:     m.engine.GetInfo(),
		Metrics:    m.metrics.snapshot(),
	}
}

// WriteMetrics writes the operation counters in Prometheus text format.
// Nothing is written if metrics are disabled.
func (m *Manager) WriteMetrics(w io.Writer) {
	m.metrics.writePrometheus(w)
}

// checkId rejects ids that were not handed out by a registry (the zero StateId)
func (m *Manager) checkId(id StateId) *Error {
	if id.name == "" {
		return NewError(RetCInvalidOperation, "state id is not registered")
	}
	return nil
}
