package dense

import (
	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/engine/engines/dense/internal"
	"github.com/ValentinKolb/vrpstate/lib/engine/util"
	"github.com/ValentinKolb/vrpstate/lib/problem"
	"github.com/lni/dragonboat/v4/logger"
)

var plog = logger.GetLogger("engine")

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	defaultRowHint  = 64 // Initial number of rows per entity table
	defaultSlotHint = 16 // Initial slot capacity of a new row
)

// --------------------------------------------------------------------------
// Core dense engine structure
// --------------------------------------------------------------------------

// denseImpl implements engine.Engine with slice-backed rows
type denseImpl struct {
	problem     []internal.Cell // Problem-global slots
	problemLive int             // Number of set problem slots

	routes          *internal.Rows[problem.Route]
	activities      *internal.Rows[problem.Activity]
	routeVehicles   *internal.VehicleRows[problem.Route]
	activityVehicle *internal.VehicleRows[problem.Activity]
	vehicles        *internal.VehicleIndex

	clears uint64 // Number of Clear calls
}

// Options configures the dense engine during initialization
type Options struct {
	RowHint  int // Initial number of rows per entity table (0 = use default)
	SlotHint int // Initial slot capacity of a new row (0 = use default)
}

// DefaultOptions returns the default dense engine options
func DefaultOptions() *Options {
	return &Options{
		RowHint:  defaultRowHint,
		SlotHint: defaultSlotHint,
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewDenseEngine creates a new dense engine with the specified options (optional).
// The vehicles of vrp (may be nil) pre-size the vehicle dimension; vehicles that are
// not part of vrp are added on first write.
//
// Thread-safety: The returned engine is not thread-safe. It is meant to be driven by
// a single solver goroutine.
func NewDenseEngine(vrp problem.Problem, opts *Options) engine.Engine {

	// Generate default options if not provided
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.RowHint <= 0 {
		opts.RowHint = defaultRowHint
	}
	if opts.SlotHint <= 0 {
		opts.SlotHint = defaultSlotHint
	}

	var vehicles []problem.Vehicle
	if vrp != nil {
		vehicles = vrp.Vehicles()
	}
	vehicleIndex := internal.NewVehicleIndex(vehicles)

	plog.Debugf("created dense engine (pre-sized vehicles: %d)", vehicleIndex.Presized())

	return &denseImpl{
		problem:         make([]internal.Cell, 0, opts.SlotHint),
		routes:          internal.NewRows[problem.Route](opts.RowHint, opts.SlotHint),
		activities:      internal.NewRows[problem.Activity](opts.RowHint, opts.SlotHint),
		routeVehicles:   internal.NewVehicleRows[problem.Route](vehicleIndex, opts.RowHint, opts.SlotHint),
		activityVehicle: internal.NewVehicleRows[problem.Activity](vehicleIndex, opts.RowHint, opts.SlotHint),
		vehicles:        vehicleIndex,
	}
}

// Factory returns an engine.Factory creating dense engines with opts.
func Factory(opts *Options) engine.Factory {
	return func(vrp problem.Problem) engine.Engine {
		var o *Options
		if opts != nil {
			copied := *opts
			o = &copied
		}
		return NewDenseEngine(vrp, o)
	}
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Problem Scope
// --------------------------------------------------------------------------

func (d *denseImpl) PutProblem(slot int, value any) {
	if slot >= len(d.problem) {
		d.problem = internal.GrowCells(d.problem, slot+1)
	}
	if !d.problem[slot].Set {
		d.problemLive++
	}
	d.problem[slot] = internal.Cell{Value: value, Set: true}
}

func (d *denseImpl) GetProblem(slot int) (any, bool) {
	if slot >= len(d.problem) {
		return nil, false
	}
	c := d.problem[slot]
	return c.Value, c.Set
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Route Scopes
// --------------------------------------------------------------------------

func (d *denseImpl) PutRoute(route problem.Route, slot int, value any) {
	d.routes.Put(route, slot, value)
}

func (d *denseImpl) GetRoute(route problem.Route, slot int) (any, bool) {
	return d.routes.Get(route, slot)
}

func (d *denseImpl) PutRouteVehicle(route problem.Route, vehicle problem.Vehicle, slot int, value any) {
	d.routeVehicles.Put(route, vehicle, slot, value)
}

func (d *denseImpl) GetRouteVehicle(route problem.Route, vehicle problem.Vehicle, slot int) (any, bool) {
	return d.routeVehicles.Get(route, vehicle, slot)
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Activity Scopes
// --------------------------------------------------------------------------

func (d *denseImpl) PutActivity(activity problem.Activity, slot int, value any) {
	d.activities.Put(activity, slot, value)
}

func (d *denseImpl) GetActivity(activity problem.Activity, slot int) (any, bool) {
	return d.activities.Get(activity, slot)
}

func (d *denseImpl) PutActivityVehicle(activity problem.Activity, vehicle problem.Vehicle, slot int, value any) {
	d.activityVehicle.Put(activity, vehicle, slot, value)
}

func (d *denseImpl) GetActivityVehicle(activity problem.Activity, vehicle problem.Vehicle, slot int) (any, bool) {
	return d.activityVehicle.Get(activity, vehicle, slot)
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Lifecycle
// --------------------------------------------------------------------------

// Clear zeroes every used cell so stored values can be collected.
// Row backing arrays and vehicle positions are kept for the next iteration.
func (d *denseImpl) Clear() {
	clear(d.problem)
	d.problemLive = 0
	d.routes.Reset()
	d.activities.Reset()
	d.routeVehicles.Reset()
	d.activityVehicle.Reset()
	d.clears++
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Features and Metadata
// --------------------------------------------------------------------------

// GetInfo returns statistics about the engine
func (d *denseImpl) GetInfo() engine.Info {

	meta := &struct {
		Clears             uint64                 `json:"clears"`
		PresizedVehicles   int                    `json:"presized_vehicles"`
		RouteSlotSpread    util.DistributionStats `json:"route_slot_spread"`
		ActivitySlotSpread util.DistributionStats `json:"activity_slot_spread"`
		VehicleRouteRows   int                    `json:"vehicle_route_rows"`
		VehicleActRows     int                    `json:"vehicle_activity_rows"`
	}{
		Clears:             d.clears,
		PresizedVehicles:   d.vehicles.Presized(),
		RouteSlotSpread:    util.NewDistributionStats(d.routes.RowSizes()),
		ActivitySlotSpread: util.NewDistributionStats(d.activities.RowSizes()),
		VehicleRouteRows:   d.routeVehicles.Len(),
		VehicleActRows:     d.activityVehicle.Len(),
	}

	supportedFeatures := []engine.Feature{
		engine.FeatureVehiclePresizing,
		engine.FeatureRowReuse,
	}

	return engine.Info{
		Entries: d.problemLive + d.routes.Live() + d.activities.Live() +
			d.routeVehicles.Live() + d.activityVehicle.Live(),
		RouteRows:         d.routes.Len(),
		ActivityRows:      d.activities.Len(),
		VehicleDimension:  d.vehicles.Len(),
		EngineType:        engine.ImplDense,
		SupportedFeatures: supportedFeatures,
		Metadata:          meta,
	}
}

// SupportsFeature checks if this implementation supports a specific engine feature
func (d *denseImpl) SupportsFeature(feature engine.Feature) bool {
	supportedFeatures := engine.FeatureVehiclePresizing |
		engine.FeatureRowReuse
	return supportedFeatures&feature == feature
}
