package problem

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// VehicleType describes the shared parameters of a group of vehicles.
type VehicleType interface {
	// TypeId returns the identifier of the type.
	TypeId() string
	// Capacity returns the capacity every vehicle of this type offers.
	Capacity() Capacity
	// CostPerDistance returns the variable cost per distance unit.
	CostPerDistance() float64
	// FixedCost returns the cost of using a vehicle of this type at all.
	FixedCost() float64
}

// Vehicle is the identity handle of a vehicle.
type Vehicle interface {
	// Id returns the identifier of the vehicle. Ids are not required to be unique,
	// the state layer keys vehicles by identity only.
	Id() string
	// Type returns the vehicle type.
	Type() VehicleType
}

// Activity is the identity handle of a tour activity.
type Activity interface {
	// Name returns a human-readable name of the activity.
	Name() string
	// Size returns the capacity demand of the activity.
	Size() Capacity
}

// Route is the identity handle of a vehicle route.
type Route interface {
	// Vehicle returns the vehicle currently assigned to the route.
	Vehicle() Vehicle
	// Activities returns the tour activities in visiting order.
	Activities() []Activity
}

// Problem exposes the finite, enumerable vehicle set of a routing problem.
type Problem interface {
	// Vehicles returns all vehicles of the problem.
	Vehicles() []Vehicle
}
