package problem

// --------------------------------------------------------------------------
// Vehicle Types
// --------------------------------------------------------------------------

// VehicleTypeImpl is the reference VehicleType implementation.
type VehicleTypeImpl struct {
	typeId          string
	capacity        Capacity
	costPerDistance float64
	fixedCost       float64
}

// VehicleTypeBuilder assembles a VehicleTypeImpl.
type VehicleTypeBuilder struct {
	t VehicleTypeImpl
}

// NewVehicleTypeBuilder starts a vehicle type with a cost per distance of 1.
func NewVehicleTypeBuilder(typeId string) *VehicleTypeBuilder {
	return &VehicleTypeBuilder{t: VehicleTypeImpl{
		typeId:          typeId,
		costPerDistance: 1.0,
	}}
}

// SetCapacity sets the capacity of the type.
func (b *VehicleTypeBuilder) SetCapacity(capacity Capacity) *VehicleTypeBuilder {
	b.t.capacity = capacity
	return b
}

// SetCostPerDistance sets the variable cost per distance unit.
func (b *VehicleTypeBuilder) SetCostPerDistance(cost float64) *VehicleTypeBuilder {
	b.t.costPerDistance = cost
	return b
}

// SetFixedCost sets the fixed cost.
func (b *VehicleTypeBuilder) SetFixedCost(cost float64) *VehicleTypeBuilder {
	b.t.fixedCost = cost
	return b
}

// Build returns the vehicle type.
func (b *VehicleTypeBuilder) Build() *VehicleTypeImpl {
	t := b.t
	return &t
}

func (t *VehicleTypeImpl) TypeId() string           { return t.typeId }
func (t *VehicleTypeImpl) Capacity() Capacity       { return t.capacity }
func (t *VehicleTypeImpl) CostPerDistance() float64 { return t.costPerDistance }
func (t *VehicleTypeImpl) FixedCost() float64       { return t.fixedCost }

// defaultVehicleType is used by vehicles built without an explicit type.
var defaultVehicleType = NewVehicleTypeBuilder("default").Build()

// --------------------------------------------------------------------------
// Vehicles
// --------------------------------------------------------------------------

// VehicleImpl is the reference Vehicle implementation.
type VehicleImpl struct {
	id            string
	startLocation string
	vehicleType   VehicleType
}

// VehicleBuilder assembles a VehicleImpl.
type VehicleBuilder struct {
	v VehicleImpl
}

// NewVehicleBuilder starts a vehicle with the default vehicle type.
func NewVehicleBuilder(id string) *VehicleBuilder {
	return &VehicleBuilder{v: VehicleImpl{id: id, vehicleType: defaultVehicleType}}
}

// SetStartLocation sets the location id the vehicle starts from.
func (b *VehicleBuilder) SetStartLocation(location string) *VehicleBuilder {
	b.v.startLocation = location
	return b
}

// SetType sets the vehicle type.
func (b *VehicleBuilder) SetType(t VehicleType) *VehicleBuilder {
	b.v.vehicleType = t
	return b
}

// Build returns a new vehicle. Every call returns a distinct instance.
func (b *VehicleBuilder) Build() *VehicleImpl {
	v := b.v
	return &v
}

func (v *VehicleImpl) Id() string            { return v.id }
func (v *VehicleImpl) Type() VehicleType     { return v.vehicleType }
func (v *VehicleImpl) StartLocation() string { return v.startLocation }

// --------------------------------------------------------------------------
// Activities
// --------------------------------------------------------------------------

// ServiceActivity is the reference Activity implementation: a service visited at a location.
type ServiceActivity struct {
	name     string
	location string
	size     Capacity
}

// NewServiceActivity returns a new activity. Every call returns a distinct instance.
func NewServiceActivity(name, location string, size Capacity) *ServiceActivity {
	return &ServiceActivity{name: name, location: location, size: size}
}

func (a *ServiceActivity) Name() string     { return a.name }
func (a *ServiceActivity) Size() Capacity   { return a.size }
func (a *ServiceActivity) Location() string { return a.location }

// --------------------------------------------------------------------------
// Routes
// --------------------------------------------------------------------------

// RouteImpl is the reference Route implementation.
type RouteImpl struct {
	vehicle    Vehicle
	activities []Activity
}

// RouteBuilder assembles a RouteImpl.
type RouteBuilder struct {
	vehicle    Vehicle
	activities []Activity
}

// NewRouteBuilder starts a route served by vehicle.
func NewRouteBuilder(vehicle Vehicle) *RouteBuilder {
	return &RouteBuilder{vehicle: vehicle}
}

// AddActivity appends an activity to the tour.
func (b *RouteBuilder) AddActivity(a Activity) *RouteBuilder {
	b.activities = append(b.activities, a)
	return b
}

// Build returns a new route.
func (b *RouteBuilder) Build() *RouteImpl {
	acts := make([]Activity, len(b.activities))
	copy(acts, b.activities)
	return &RouteImpl{vehicle: b.vehicle, activities: acts}
}

func (r *RouteImpl) Vehicle() Vehicle       { return r.vehicle }
func (r *RouteImpl) Activities() []Activity { return r.activities }

// --------------------------------------------------------------------------
// Problem
// --------------------------------------------------------------------------

// ProblemImpl is the reference Problem implementation.
type ProblemImpl struct {
	vehicles []Vehicle
}

// ProblemBuilder assembles a ProblemImpl.
type ProblemBuilder struct {
	vehicles []Vehicle
}

// NewProblemBuilder returns an empty builder.
func NewProblemBuilder() *ProblemBuilder {
	return &ProblemBuilder{}
}

// AddVehicle adds a vehicle to the problem.
func (b *ProblemBuilder) AddVehicle(v Vehicle) *ProblemBuilder {
	b.vehicles = append(b.vehicles, v)
	return b
}

// Build returns the problem.
func (b *ProblemBuilder) Build() *ProblemImpl {
	vehicles := make([]Vehicle, len(b.vehicles))
	copy(vehicles, b.vehicles)
	return &ProblemImpl{vehicles: vehicles}
}

// Vehicles returns a copy of the vehicle set.
func (p *ProblemImpl) Vehicles() []Vehicle {
	vehicles := make([]Vehicle, len(p.vehicles))
	copy(vehicles, p.vehicles)
	return vehicles
}
