package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/engine/engines/dense"
	"github.com/ValentinKolb/vrpstate/lib/engine/engines/synced"
	"github.com/ValentinKolb/vrpstate/lib/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

var engines = map[string]engine.Factory{
	"dense":  dense.Factory(nil),
	"synced": synced.Factory(),
}

// forEachEngine runs fn once per engine implementation
func forEachEngine(t *testing.T, fn func(t *testing.T, factory engine.Factory)) {
	for name, factory := range engines {
		t.Run(name, func(t *testing.T) {
			fn(t, factory)
		})
	}
}

func newTestManager(vrp problem.Problem, factory engine.Factory) *Manager {
	return NewManager(vrp, &Options{Engine: factory, Metrics: true})
}

func getRoute(vehicle problem.Vehicle) problem.Route {
	s := problem.NewServiceActivity("s", "loc", problem.Capacity{})
	return problem.NewRouteBuilder(vehicle).AddActivity(s).Build()
}

func newActivity() problem.Activity {
	return problem.NewServiceActivity("act", "loc", problem.Capacity{})
}

func capacity500() problem.Capacity {
	return problem.NewCapacityBuilder().AddDimension(0, 500).Build()
}

// twoVehicleProblem returns two vehicles with the same id, the second one with a cost
// per distance of 4, and a problem containing both
func twoVehicleProblem() (problem.Vehicle, problem.Vehicle, problem.Problem) {
	vt := problem.NewVehicleTypeBuilder("t").SetCostPerDistance(4.).Build()
	v1 := problem.NewVehicleBuilder("v").SetStartLocation("loc").Build()
	v2 := problem.NewVehicleBuilder("v").SetStartLocation("loc").SetType(vt).Build()
	vrp := problem.NewProblemBuilder().AddVehicle(v1).AddVehicle(v2).Build()
	return v1, v2, vrp
}

// --------------------------------------------------------------------------
// Route scope
// --------------------------------------------------------------------------

func TestRouteStateBoolean(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		route := getRoute(problem.NewVehicleBuilder("v").Build())
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutRouteState(m, route, id, true)
		v, ok, err := RouteState[bool](m, route, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, v)
	})
}

func TestRouteStateInteger(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		route := getRoute(problem.NewVehicleBuilder("v").Build())
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutRouteState(m, route, id, 3)
		v, ok, err := RouteState[int](m, route, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, v)
	})
}

func TestRouteStateCapacity(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		route := getRoute(problem.NewVehicleBuilder("v").Build())
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutRouteState(m, route, id, capacity500())
		v, ok, err := RouteState[problem.Capacity](m, route, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 500, v.Get(0))
	})
}

func TestRouteStateNeverWritten(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		route := getRoute(problem.NewVehicleBuilder("v").Build())
		m := newTestManager(nil, factory)

		v, ok, err := RouteState[int](m, route, m.CreateStateId("myState"))
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, v)
	})
}

// --------------------------------------------------------------------------
// Activity scope
// --------------------------------------------------------------------------

func TestActivityStateBoolean(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		act := newActivity()
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutActivityState(m, act, id, true)
		v, ok, err := ActivityState[bool](m, act, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, v)
	})
}

func TestActivityStateInteger(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		act := newActivity()
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutActivityState(m, act, id, 3)
		v, ok, err := ActivityState[int](m, act, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, v)
	})
}

func TestActivityStateCapacity(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		act := newActivity()
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutActivityState(m, act, id, capacity500())
		v, ok, err := ActivityState[problem.Capacity](m, act, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 500, v.Get(0))
	})
}

// --------------------------------------------------------------------------
// Problem scope
// --------------------------------------------------------------------------

func TestProblemState(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		m := newTestManager(nil, factory)
		id := m.CreateStateId("problemState")

		PutProblemState(m, id, true)
		v, ok, err := ProblemState[bool](m, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, v)
	})
}

func TestProblemStateAbsentAfterClear(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		m := newTestManager(nil, factory)
		id := m.CreateStateId("problemState")

		PutProblemState(m, id, true)
		m.Clear()

		v, ok, err := ProblemState[bool](m, id)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, v)
	})
}

func TestProblemStateDefaultNotReturnedByPlainGetter(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		m := newTestManager(nil, factory)
		id := m.CreateStateId("problemState")

		DeclareDefaultProblemState(m, id, false)
		PutProblemState(m, id, true)
		m.Clear()

		_, ok, err := ProblemState[bool](m, id)
		assert.NoError(t, err)
		assert.False(t, ok, "plain getter must not fall back to the default")

		v, ok, err := ProblemStateOrDefault[bool](m, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, v)
	})
}

func TestProblemStateOrDefaultPrefersLiveValue(t *testing.T) {
	m := NewManager(nil, nil)
	id := m.CreateStateId("problemState")

	DeclareDefaultProblemState(m, id, 1)
	v, ok, err := ProblemStateOrDefault[int](m, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	PutProblemState(m, id, 2)
	v, _, err = ProblemStateOrDefault[int](m, id)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// declaring a default never touches the live value
	DeclareDefaultProblemState(m, id, 3)
	v, _, err = ProblemState[int](m, id)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// redeclaring overwrites
	m.Clear()
	v, _, err = ProblemStateOrDefault[int](m, id)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestProblemStateOrDefaultWithoutDefault(t *testing.T) {
	m := NewManager(nil, nil)
	v, ok, err := ProblemStateOrDefault[string](m, m.CreateStateId("x"))
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

// --------------------------------------------------------------------------
// Vehicle dependent scopes
// --------------------------------------------------------------------------

func TestVehicleDependentRouteState(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		vehicle := problem.NewVehicleBuilder("v").SetStartLocation("loc").Build()
		route := getRoute(vehicle)
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutRouteVehicleState(m, route, vehicle, id, capacity500())
		v, ok, err := RouteVehicleState[problem.Capacity](m, route, vehicle, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 500, v.Get(0))
	})
}

func TestVehicleDependentActivityState(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		vehicle := problem.NewVehicleBuilder("v").SetStartLocation("loc").Build()
		act := newActivity()
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutActivityVehicleState(m, act, vehicle, id, capacity500())
		v, ok, err := ActivityVehicleState[problem.Capacity](m, act, vehicle, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 500, v.Get(0))
	})
}

func TestMemorizingVehicleInfo(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		vehicle := problem.NewVehicleBuilder("v").SetStartLocation("loc").Build()
		route := getRoute(vehicle)
		m := newTestManager(nil, factory)
		id := m.CreateStateId("vehicleParam")

		PutRouteVehicleState(m, route, vehicle, id, vehicle.Type().CostPerDistance())
		v, ok, err := RouteVehicleState[float64](m, route, vehicle, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.InDelta(t, 1., v, 0.01)
	})
}

func TestMemorizingTwoVehicleInfoForRoute(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		v1, v2, vrp := twoVehicleProblem()
		route := getRoute(v1)
		m := newTestManager(vrp, factory)
		id := m.CreateStateId("vehicleParam")

		PutRouteVehicleState(m, route, v1, id, v1.Type().CostPerDistance())
		PutRouteVehicleState(m, route, v2, id, v2.Type().CostPerDistance())

		got1, _, err := RouteVehicleState[float64](m, route, v1, id)
		require.NoError(t, err)
		got2, _, err := RouteVehicleState[float64](m, route, v2, id)
		require.NoError(t, err)
		assert.InDelta(t, 1., got1, 0.01)
		assert.InDelta(t, 4., got2, 0.01)
	})
}

func TestMemorizingTwoVehicleInfoForActivity(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		v1, v2, vrp := twoVehicleProblem()
		act := newActivity()
		m := newTestManager(vrp, factory)
		id := m.CreateStateId("vehicleParam")

		PutActivityVehicleState(m, act, v1, id, v1.Type().CostPerDistance())
		PutActivityVehicleState(m, act, v2, id, v2.Type().CostPerDistance())

		got1, _, err := ActivityVehicleState[float64](m, act, v1, id)
		require.NoError(t, err)
		got2, _, err := ActivityVehicleState[float64](m, act, v2, id)
		require.NoError(t, err)
		assert.InDelta(t, 1., got1, 0.01)
		assert.InDelta(t, 4., got2, 0.01)
	})
}

func TestClearingEmptiesVehicleDependentState(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		v1, v2, vrp := twoVehicleProblem()
		act := newActivity()
		m := newTestManager(vrp, factory)
		id := m.CreateStateId("vehicleParam")

		PutActivityVehicleState(m, act, v1, id, v1.Type().CostPerDistance())
		PutActivityVehicleState(m, act, v2, id, v2.Type().CostPerDistance())
		m.Clear()

		_, ok, err := ActivityVehicleState[float64](m, act, v1, id)
		assert.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = ActivityVehicleState[float64](m, act, v2, id)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestVehicleIndependentAndDependentDoNotAlias(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		vehicle := problem.NewVehicleBuilder("v").Build()
		route := getRoute(vehicle)
		act := route.Activities()[0]
		m := newTestManager(nil, factory)
		id := m.CreateStateId("s")

		PutRouteState(m, route, id, 1)
		PutActivityState(m, act, id, 2)

		_, ok, err := RouteVehicleState[int](m, route, vehicle, id)
		assert.NoError(t, err)
		assert.False(t, ok)
		_, ok, err = ActivityVehicleState[int](m, act, vehicle, id)
		assert.NoError(t, err)
		assert.False(t, ok)

		PutRouteVehicleState(m, route, vehicle, id, 10)
		v, _, err := RouteState[int](m, route, id)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})
}

func TestUnknownVehicleGrowsStorage(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		v1, _, vrp := twoVehicleProblem()
		late := problem.NewVehicleBuilder("late").Build()
		route := getRoute(v1)
		m := newTestManager(vrp, factory)
		id := m.CreateStateId("vehicleParam")

		_, ok, err := RouteVehicleState[float64](m, route, late, id)
		assert.NoError(t, err)
		assert.False(t, ok)

		PutRouteVehicleState(m, route, late, id, 7.)
		v, ok, err := RouteVehicleState[float64](m, route, late, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 7., v)
	})
}

// --------------------------------------------------------------------------
// Defaults for entity scopes
// --------------------------------------------------------------------------

func TestRouteAndActivityDefaults(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		vehicle := problem.NewVehicleBuilder("v").Build()
		route := getRoute(vehicle)
		act := route.Activities()[0]
		m := newTestManager(nil, factory)
		id := m.CreateStateId("slack")

		DeclareDefaultRouteState(m, id, 0.5)
		DeclareDefaultActivityState(m, id, 1.5)

		v, ok, err := RouteStateOrDefault[float64](m, route, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0.5, v)

		v, ok, err = RouteVehicleStateOrDefault[float64](m, route, vehicle, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 0.5, v, "vehicle dependent route state falls back to the route default")

		v, ok, err = ActivityStateOrDefault[float64](m, act, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1.5, v)

		v, ok, err = ActivityVehicleStateOrDefault[float64](m, act, vehicle, id)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 1.5, v)

		PutActivityVehicleState(m, act, vehicle, id, 9.)
		v, _, err = ActivityVehicleStateOrDefault[float64](m, act, vehicle, id)
		require.NoError(t, err)
		assert.Equal(t, 9., v)

		// problem defaults are a separate table
		_, ok, err = ProblemStateOrDefault[float64](m, id)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

// --------------------------------------------------------------------------
// Type checks and edge cases
// --------------------------------------------------------------------------

func TestTypeMismatch(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		route := getRoute(problem.NewVehicleBuilder("v").Build())
		m := newTestManager(nil, factory)
		id := m.CreateStateId("myState")

		PutRouteState(m, route, id, 3)
		v, ok, err := RouteState[string](m, route, id)
		require.Error(t, err)
		assert.True(t, ok, "the value is present, it only has another type")
		assert.Empty(t, v)
		assert.True(t, IsTypeMismatch(err))

		var se *Error
		require.True(t, errors.As(err, &se))
		assert.Equal(t, RetCTypeMismatch, se.Code)
		assert.Contains(t, err.Error(), "TypeMismatch")
		assert.Contains(t, err.Error(), "int")

		// values are never coerced
		_, _, err = RouteState[int64](m, route, id)
		assert.True(t, IsTypeMismatch(err))
		_, _, err = RouteState[float64](m, route, id)
		assert.True(t, IsTypeMismatch(err))
	})
}

func TestDefaultTypeMismatch(t *testing.T) {
	m := NewManager(nil, nil)
	id := m.CreateStateId("x")
	DeclareDefaultProblemState(m, id, "text")

	_, _, err := ProblemStateOrDefault[int](m, id)
	assert.True(t, IsTypeMismatch(err))
}

func TestInterfaceTypedReads(t *testing.T) {
	m := NewManager(nil, nil)
	act := newActivity()
	id := m.CreateStateId("iface")

	PutActivityState[fmt.Stringer](m, act, id, capacity500())
	v, ok, err := ActivityState[fmt.Stringer](m, act, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[0=500]", v.String())

	// stored nil is present
	PutActivityState[fmt.Stringer](m, act, id, nil)
	v, ok, err = ActivityState[fmt.Stringer](m, act, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, v)

	// a nil pointer keeps its type
	var p *problem.ServiceActivity
	PutActivityState(m, act, id, p)
	got, ok, err := ActivityState[*problem.ServiceActivity](m, act, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, got)
}

func TestEntitiesAreKeyedByIdentity(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		vehicle := problem.NewVehicleBuilder("v").Build()
		r1 := getRoute(vehicle)
		r2 := getRoute(vehicle)
		m := newTestManager(nil, factory)
		id := m.CreateStateId("s")

		PutRouteState(m, r1, id, 1)
		_, ok, err := RouteState[int](m, r2, id)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUnregisteredId(t *testing.T) {
	m := NewManager(nil, nil)
	route := getRoute(problem.NewVehicleBuilder("v").Build())

	PutRouteState(m, route, StateId{}, 1)
	_, ok, err := RouteState[int](m, route, StateId{})
	require.Error(t, err)
	assert.False(t, ok)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, RetCInvalidOperation, se.Code)

	// the dropped write must not land in the Load slot
	_, ok, err = RouteState[int](m, route, Load)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestBuiltinSlotsAreUsable(t *testing.T) {
	forEachEngine(t, func(t *testing.T, factory engine.Factory) {
		route := getRoute(problem.NewVehicleBuilder("v").Build())
		m := newTestManager(nil, factory)

		PutRouteState(m, route, MaxLoad, capacity500())
		PutRouteState(m, route, Costs, 12.5)

		maxLoad, ok, err := RouteState[problem.Capacity](m, route, MaxLoad)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 500, maxLoad.Get(0))

		costs, _, err := RouteState[float64](m, route, Costs)
		require.NoError(t, err)
		assert.Equal(t, 12.5, costs)

		user := m.CreateStateId("user")
		_, ok, err = RouteState[float64](m, route, user)
		assert.NoError(t, err)
		assert.False(t, ok, "user slots never alias built-in slots")
	})
}
