package engine

import "github.com/ValentinKolb/vrpstate/lib/problem"

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplDense  Implementation = "dense"
	ImplSynced Implementation = "synced"
)

// Feature represents engine features as bit flags
type Feature uint64

const (
	FeatureVehiclePresizing Feature = 1 << iota // Vehicle dimension is pre-sized from the problem
	FeatureConcurrentReads                      // Gets may run concurrently with each other
	FeatureConcurrentWrites                     // Puts may run concurrently with puts and gets
	FeatureRowReuse                             // Row storage is recycled across Clear calls
)

func (f Feature) String() string {
	switch f {
	case FeatureVehiclePresizing:
		return "VehiclePresizing"
	case FeatureConcurrentReads:
		return "ConcurrentReads"
	case FeatureConcurrentWrites:
		return "ConcurrentWrites"
	case FeatureRowReuse:
		return "RowReuse"
	default:
		return "Unknown"
	}
}

type Info struct {
	Entries           int            `json:"entries"`
	RouteRows         int            `json:"route_rows"`
	ActivityRows      int            `json:"activity_rows"`
	VehicleDimension  int            `json:"vehicle_dimension"`
	EngineType        Implementation `json:"engine_type"`
	SupportedFeatures []Feature      `json:"supported_features"`
	Metadata          interface{}    `json:"metadata"`
}

// Factory creates a new engine for one solver run.
// The problem is only used to learn the vehicle set for pre-sizing.
type Factory func(vrp problem.Problem) Engine

// --------------------------------------------------------------------------
// Engine Interface
// --------------------------------------------------------------------------

// Engine defines the interface for scoped storage engines.
// Every put overwrites any prior value for the exact key. Every get returns the value
// and whether it was loaded; keys that were never written or were cleared are not loaded.
type Engine interface {

	// --------------------------------------------------------------------------
	// Problem Scope
	// --------------------------------------------------------------------------

	// PutProblem stores a problem-global value for the slot.
	PutProblem(slot int, value any)

	// GetProblem returns the problem-global value for the slot.
	GetProblem(slot int) (value any, loaded bool)

	// --------------------------------------------------------------------------
	// Route Scopes
	// --------------------------------------------------------------------------

	// PutRoute stores a vehicle-independent value for the route and slot.
	PutRoute(route problem.Route, slot int, value any)

	// GetRoute returns the vehicle-independent value for the route and slot.
	GetRoute(route problem.Route, slot int) (value any, loaded bool)

	// PutRouteVehicle stores a vehicle-dependent value for the route, vehicle and slot.
	PutRouteVehicle(route problem.Route, vehicle problem.Vehicle, slot int, value any)

	// GetRouteVehicle returns the vehicle-dependent value for the route, vehicle and slot.
	GetRouteVehicle(route problem.Route, vehicle problem.Vehicle, slot int) (value any, loaded bool)

	// --------------------------------------------------------------------------
	// Activity Scopes
	// --------------------------------------------------------------------------

	// PutActivity stores a vehicle-independent value for the activity and slot.
	PutActivity(activity problem.Activity, slot int, value any)

	// GetActivity returns the vehicle-independent value for the activity and slot.
	GetActivity(activity problem.Activity, slot int) (value any, loaded bool)

	// PutActivityVehicle stores a vehicle-dependent value for the activity, vehicle and slot.
	PutActivityVehicle(activity problem.Activity, vehicle problem.Vehicle, slot int, value any)

	// GetActivityVehicle returns the vehicle-dependent value for the activity, vehicle and slot.
	GetActivityVehicle(activity problem.Activity, vehicle problem.Vehicle, slot int) (value any, loaded bool)

	// --------------------------------------------------------------------------
	// Lifecycle
	// --------------------------------------------------------------------------

	// Clear discards every live entry of every scope. Afterwards every get returns
	// loaded=false until the key is written again. Engines must drop all references
	// to stored values so they can be collected.
	Clear()

	// --------------------------------------------------------------------------
	// Feature Support
	// --------------------------------------------------------------------------

	// SupportsFeature checks if the engine supports the specified feature.
	// Multiple features can be checked at once using bitwise OR (|) operator.
	SupportsFeature(feature Feature) (ok bool)

	// GetInfo returns information about the engine.
	GetInfo() (info Info)
}
