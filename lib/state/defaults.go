package state

// defaults holds the declared fallback values per scope family, keyed by slot index.
// Vehicle dependent scopes share the table of their entity.
type defaults struct {
	problem  map[int]any
	route    map[int]any
	activity map[int]any
}

func newDefaults() *defaults {
	return &defaults{
		problem:  make(map[int]any),
		route:    make(map[int]any),
		activity: make(map[int]any),
	}
}

func (d *defaults) len() int {
	return len(d.problem) + len(d.route) + len(d.activity)
}

// table returns the default table of the scope family s belongs to
func (d *defaults) table(s scope) map[int]any {
	switch s {
	case scopeProblem:
		return d.problem
	case scopeRoute, scopeRouteVehicle:
		return d.route
	default:
		return d.activity
	}
}

func declareDefault[T any](m *Manager, s scope, id StateId, value T) {
	if err := m.checkId(id); err != nil {
		plog.Errorf("ignoring %s default: %v", s, err)
		return
	}
	m.defaults.table(s)[id.index] = value
	plog.Debugf("declared %s default for %s (%T)", s, id, value)
}

// DeclareDefaultProblemState registers the value returned by ProblemStateOrDefault
// whenever no live problem value exists for id. Redeclaring overwrites.
// The live value is never touched.
func DeclareDefaultProblemState[T any](m *Manager, id StateId, value T) {
	declareDefault(m, scopeProblem, id, value)
}

// DeclareDefaultRouteState registers the fallback of RouteStateOrDefault and
// RouteVehicleStateOrDefault for id.
func DeclareDefaultRouteState[T any](m *Manager, id StateId, value T) {
	declareDefault(m, scopeRoute, id, value)
}

// DeclareDefaultActivityState registers the fallback of ActivityStateOrDefault and
// ActivityVehicleStateOrDefault for id.
func DeclareDefaultActivityState[T any](m *Manager, id StateId, value T) {
	declareDefault(m, scopeActivity, id, value)
}
