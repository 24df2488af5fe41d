package synced

import (
	"sync/atomic"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/problem"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var plog = logger.GetLogger("engine")

// --------------------------------------------------------------------------
// Key Types
// --------------------------------------------------------------------------

type scopeKind uint8

const (
	kindRoute scopeKind = iota
	kindActivity
	kindRouteVehicle
	kindActivityVehicle
)

func (k scopeKind) String() string {
	switch k {
	case kindRoute:
		return "Route"
	case kindActivity:
		return "Activity"
	case kindRouteVehicle:
		return "RouteVehicle"
	case kindActivityVehicle:
		return "ActivityVehicle"
	default:
		return "Unknown"
	}
}

// scopeKey addresses one slot of one entity (and vehicle) in one scope
type scopeKey struct {
	kind    scopeKind
	entity  any
	vehicle problem.Vehicle
	slot    int
}

// --------------------------------------------------------------------------
// Core synced engine structure
// --------------------------------------------------------------------------

type syncedImpl struct {
	problem *xsync.MapOf[int, any]
	scoped  *xsync.MapOf[scopeKey, any]
	clears  atomic.Uint64
}

// NewSyncedEngine creates a new engine that is safe for concurrent use.
// The vehicles of vrp (may be nil) are only used as a size hint.
func NewSyncedEngine(vrp problem.Problem) engine.Engine {
	presize := 0
	if vrp != nil {
		presize = len(vrp.Vehicles())
	}

	plog.Debugf("created synced engine (vehicle size hint: %d)", presize)

	return &syncedImpl{
		problem: xsync.NewMapOf[int, any](),
		scoped:  xsync.NewMapOf[scopeKey, any](xsync.WithPresize(max(presize, 1) * 64)),
	}
}

// Factory returns an engine.Factory creating synced engines.
func Factory() engine.Factory {
	return NewSyncedEngine
}

// --------------------------------------------------------------------------
// Interface Methods (docu see engine/engine.go)
// --------------------------------------------------------------------------

func (s *syncedImpl) PutProblem(slot int, value any) {
	s.problem.Store(slot, value)
}

func (s *syncedImpl) GetProblem(slot int) (any, bool) {
	return s.problem.Load(slot)
}

func (s *syncedImpl) PutRoute(route problem.Route, slot int, value any) {
	s.scoped.Store(scopeKey{kind: kindRoute, entity: route, slot: slot}, value)
}

func (s *syncedImpl) GetRoute(route problem.Route, slot int) (any, bool) {
	return s.scoped.Load(scopeKey{kind: kindRoute, entity: route, slot: slot})
}

func (s *syncedImpl) PutRouteVehicle(route problem.Route, vehicle problem.Vehicle, slot int, value any) {
	s.scoped.Store(scopeKey{kind: kindRouteVehicle, entity: route, vehicle: vehicle, slot: slot}, value)
}

func (s *syncedImpl) GetRouteVehicle(route problem.Route, vehicle problem.Vehicle, slot int) (any, bool) {
	return s.scoped.Load(scopeKey{kind: kindRouteVehicle, entity: route, vehicle: vehicle, slot: slot})
}

func (s *syncedImpl) PutActivity(activity problem.Activity, slot int, value any) {
	s.scoped.Store(scopeKey{kind: kindActivity, entity: activity, slot: slot}, value)
}

func (s *syncedImpl) GetActivity(activity problem.Activity, slot int) (any, bool) {
	return s.scoped.Load(scopeKey{kind: kindActivity, entity: activity, slot: slot})
}

func (s *syncedImpl) PutActivityVehicle(activity problem.Activity, vehicle problem.Vehicle, slot int, value any) {
	s.scoped.Store(scopeKey{kind: kindActivityVehicle, entity: activity, vehicle: vehicle, slot: slot}, value)
}

func (s *syncedImpl) GetActivityVehicle(activity problem.Activity, vehicle problem.Vehicle, slot int) (any, bool) {
	return s.scoped.Load(scopeKey{kind: kindActivityVehicle, entity: activity, vehicle: vehicle, slot: slot})
}

func (s *syncedImpl) Clear() {
	s.problem.Clear()
	s.scoped.Clear()
	s.clears.Add(1)
}

// GetInfo walks the scoped map once, so it is linear in the number of live entries.
func (s *syncedImpl) GetInfo() engine.Info {
	routes := make(map[any]struct{})
	activities := make(map[any]struct{})
	vehicles := make(map[problem.Vehicle]struct{})
	perKind := make(map[string]int)

	s.scoped.Range(func(key scopeKey, _ any) bool {
		perKind[key.kind.String()]++
		switch key.kind {
		case kindRoute, kindRouteVehicle:
			routes[key.entity] = struct{}{}
		case kindActivity, kindActivityVehicle:
			activities[key.entity] = struct{}{}
		}
		if key.vehicle != nil {
			vehicles[key.vehicle] = struct{}{}
		}
		return true
	})

	meta := &struct {
		Clears          uint64         `json:"clears"`
		EntriesPerScope map[string]int `json:"entries_per_scope"`
	}{
		Clears:          s.clears.Load(),
		EntriesPerScope: perKind,
	}

	return engine.Info{
		Entries:          s.problem.Size() + s.scoped.Size(),
		RouteRows:        len(routes),
		ActivityRows:     len(activities),
		VehicleDimension: len(vehicles),
		EngineType:       engine.ImplSynced,
		SupportedFeatures: []engine.Feature{
			engine.FeatureConcurrentReads,
			engine.FeatureConcurrentWrites,
		},
		Metadata: meta,
	}
}

func (s *syncedImpl) SupportsFeature(feature engine.Feature) bool {
	supportedFeatures := engine.FeatureConcurrentReads |
		engine.FeatureConcurrentWrites
	return supportedFeatures&feature == feature
}
