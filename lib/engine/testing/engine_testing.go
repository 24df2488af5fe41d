package testing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/problem"
)

// RunEngineTests runs a comprehensive test suite for an Engine implementation.
func RunEngineTests(t *testing.T, name string, factory engine.Factory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Problem", func(t *testing.T) {
			testProblemScope(t, factory(nil))
		})

		t.Run("Route", func(t *testing.T) {
			testRouteScope(t, factory(nil))
		})

		t.Run("Activity", func(t *testing.T) {
			testActivityScope(t, factory(nil))
		})

		t.Run("VehicleDependent", func(t *testing.T) {
			testVehicleDependent(t, factory)
		})

		t.Run("ScopeIsolation", func(t *testing.T) {
			testScopeIsolation(t, factory(nil))
		})

		t.Run("EntityIdentity", func(t *testing.T) {
			testEntityIdentity(t, factory(nil))
		})

		t.Run("NilValues", func(t *testing.T) {
			testNilValues(t, factory(nil))
		})

		t.Run("Clear", func(t *testing.T) {
			testClear(t, factory)
		})

		t.Run("ReuseAfterClear", func(t *testing.T) {
			testReuseAfterClear(t, factory(nil))
		})

		t.Run("DynamicVehicles", func(t *testing.T) {
			testDynamicVehicles(t, factory)
		})

		t.Run("Info", func(t *testing.T) {
			testInfo(t, factory(nil))
		})

		t.Run("ConcurrentAccess", func(t *testing.T) {
			testConcurrentAccess(t, factory(nil))
		})

		t.Run("RealisticUsage", func(t *testing.T) {
			testRealisticUsage(t, factory)
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// Checks if the engine supports the specified feature
// Skip the test if it is not supported
func requireFeature(t testing.TB, e engine.Engine, feature engine.Feature) {
	if !e.SupportsFeature(feature) {
		t.Skip()
	}
}

func newVehicle(id string) problem.Vehicle {
	return problem.NewVehicleBuilder(id).SetStartLocation("loc").Build()
}

func newActivity(name string) problem.Activity {
	return problem.NewServiceActivity(name, "loc", problem.NewCapacityBuilder().AddDimension(0, 1).Build())
}

func newRoute(vehicle problem.Vehicle, activities ...problem.Activity) problem.Route {
	b := problem.NewRouteBuilder(vehicle)
	for _, a := range activities {
		b.AddActivity(a)
	}
	return b.Build()
}

func newProblem(vehicles ...problem.Vehicle) problem.Problem {
	b := problem.NewProblemBuilder()
	for _, v := range vehicles {
		b.AddVehicle(v)
	}
	return b.Build()
}

func expectValue(t *testing.T, scope string, got any, loaded bool, want any) {
	t.Helper()
	if !loaded {
		t.Errorf("%s: expected value %v to be loaded", scope, want)
		return
	}
	if got != want {
		t.Errorf("%s: expected value %v, got %v", scope, want, got)
	}
}

func expectAbsent(t *testing.T, scope string, got any, loaded bool) {
	t.Helper()
	if loaded {
		t.Errorf("%s: expected absent value, got %v", scope, got)
	}
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testProblemScope(t *testing.T, e engine.Engine) {
	v, ok := e.GetProblem(10)
	expectAbsent(t, "problem (never written)", v, ok)

	e.PutProblem(10, true)
	v, ok = e.GetProblem(10)
	expectValue(t, "problem", v, ok, true)

	e.PutProblem(10, 3)
	v, ok = e.GetProblem(10)
	expectValue(t, "problem (overwritten)", v, ok, 3)

	v, ok = e.GetProblem(11)
	expectAbsent(t, "problem (other slot)", v, ok)

	// slots far beyond the current size must work
	e.PutProblem(1000, "far")
	v, ok = e.GetProblem(1000)
	expectValue(t, "problem (far slot)", v, ok, "far")
}

func testRouteScope(t *testing.T, e engine.Engine) {
	route := newRoute(newVehicle("v"), newActivity("s"))

	v, ok := e.GetRoute(route, 10)
	expectAbsent(t, "route (never written)", v, ok)

	e.PutRoute(route, 10, true)
	v, ok = e.GetRoute(route, 10)
	expectValue(t, "route bool", v, ok, true)

	e.PutRoute(route, 10, 3)
	v, ok = e.GetRoute(route, 10)
	expectValue(t, "route int", v, ok, 3)

	capacity := problem.NewCapacityBuilder().AddDimension(0, 500).Build()
	e.PutRoute(route, 11, capacity)
	v, ok = e.GetRoute(route, 11)
	if !ok {
		t.Fatalf("route capacity: expected value to be loaded")
	}
	if got := v.(problem.Capacity).Get(0); got != 500 {
		t.Errorf("route capacity: expected dimension 0 to be 500, got %d", got)
	}

	v, ok = e.GetRoute(route, 12)
	expectAbsent(t, "route (other slot)", v, ok)
}

func testActivityScope(t *testing.T, e engine.Engine) {
	act := newActivity("s")

	v, ok := e.GetActivity(act, 10)
	expectAbsent(t, "activity (never written)", v, ok)

	e.PutActivity(act, 10, true)
	v, ok = e.GetActivity(act, 10)
	expectValue(t, "activity bool", v, ok, true)

	e.PutActivity(act, 10, 3)
	v, ok = e.GetActivity(act, 10)
	expectValue(t, "activity int", v, ok, 3)

	e.PutActivity(act, 10, 2.5)
	v, ok = e.GetActivity(act, 10)
	expectValue(t, "activity float", v, ok, 2.5)
}

func testVehicleDependent(t *testing.T, factory engine.Factory) {
	v1 := newVehicle("v")
	v2 := newVehicle("v") // same id, distinct instance
	e := factory(newProblem(v1, v2))

	route := newRoute(v1, newActivity("s"))
	act := newActivity("s")

	e.PutRouteVehicle(route, v1, 10, 1.0)
	e.PutRouteVehicle(route, v2, 10, 4.0)
	e.PutActivityVehicle(act, v1, 10, 1.0)
	e.PutActivityVehicle(act, v2, 10, 4.0)

	v, ok := e.GetRouteVehicle(route, v1, 10)
	expectValue(t, "route/v1", v, ok, 1.0)
	v, ok = e.GetRouteVehicle(route, v2, 10)
	expectValue(t, "route/v2", v, ok, 4.0)
	v, ok = e.GetActivityVehicle(act, v1, 10)
	expectValue(t, "activity/v1", v, ok, 1.0)
	v, ok = e.GetActivityVehicle(act, v2, 10)
	expectValue(t, "activity/v2", v, ok, 4.0)

	v, ok = e.GetRouteVehicle(route, v1, 11)
	expectAbsent(t, "route/v1 (other slot)", v, ok)
}

func testScopeIsolation(t *testing.T, e engine.Engine) {
	vehicle := newVehicle("v")
	act := newActivity("s")
	route := newRoute(vehicle, act)

	// vehicle-independent writes must not leak into vehicle-dependent scopes
	e.PutRoute(route, 10, "route")
	e.PutActivity(act, 10, "activity")

	v, ok := e.GetRouteVehicle(route, vehicle, 10)
	expectAbsent(t, "route/vehicle after route put", v, ok)
	v, ok = e.GetActivityVehicle(act, vehicle, 10)
	expectAbsent(t, "activity/vehicle after activity put", v, ok)
	v, ok = e.GetProblem(10)
	expectAbsent(t, "problem after entity puts", v, ok)

	// and the other way round
	e.PutRouteVehicle(route, vehicle, 11, "route/vehicle")
	e.PutActivityVehicle(act, vehicle, 11, "activity/vehicle")

	v, ok = e.GetRoute(route, 11)
	expectAbsent(t, "route after route/vehicle put", v, ok)
	v, ok = e.GetActivity(act, 11)
	expectAbsent(t, "activity after activity/vehicle put", v, ok)

	// route and activity scopes are separate even for the same slot
	v, ok = e.GetRoute(route, 10)
	expectValue(t, "route", v, ok, "route")
	v, ok = e.GetActivity(act, 10)
	expectValue(t, "activity", v, ok, "activity")
}

func testEntityIdentity(t *testing.T, e engine.Engine) {
	vehicle := newVehicle("v")
	act := newActivity("s")
	r1 := newRoute(vehicle, act)
	r2 := newRoute(vehicle, act) // identical contents, distinct instance

	e.PutRoute(r1, 10, 1)
	v, ok := e.GetRoute(r2, 10)
	expectAbsent(t, "route with identical contents", v, ok)

	a1 := newActivity("same")
	a2 := newActivity("same")
	e.PutActivity(a1, 10, 1)
	v, ok = e.GetActivity(a2, 10)
	expectAbsent(t, "activity with identical contents", v, ok)
}

func testNilValues(t *testing.T, e engine.Engine) {
	act := newActivity("s")

	e.PutActivity(act, 10, nil)
	v, ok := e.GetActivity(act, 10)
	if !ok {
		t.Errorf("Expected stored nil to be loaded")
	}
	if v != nil {
		t.Errorf("Expected stored nil, got %v", v)
	}

	e.PutProblem(10, nil)
	if _, ok := e.GetProblem(10); !ok {
		t.Errorf("Expected stored problem nil to be loaded")
	}
}

func testClear(t *testing.T, factory engine.Factory) {
	v1 := newVehicle("v1")
	v2 := newVehicle("v2")
	e := factory(newProblem(v1, v2))

	const routes = 20
	var (
		rs   []problem.Route
		acts []problem.Activity
	)
	for i := 0; i < routes; i++ {
		act := newActivity(fmt.Sprintf("s%d", i))
		route := newRoute(v1, act)
		rs = append(rs, route)
		acts = append(acts, act)

		e.PutRoute(route, 10, i)
		e.PutActivity(act, 10, i)
		e.PutRouteVehicle(route, v1, 10, i)
		e.PutRouteVehicle(route, v2, 10, i)
		e.PutActivityVehicle(act, v1, 10, i)
		e.PutActivityVehicle(act, v2, 10, i)
	}
	e.PutProblem(10, true)

	e.Clear()

	if v, ok := e.GetProblem(10); ok {
		t.Errorf("Expected problem value to be absent after Clear, got %v", v)
	}
	for i := 0; i < routes; i++ {
		for _, check := range []struct {
			scope string
			get   func() (any, bool)
		}{
			{"route", func() (any, bool) { return e.GetRoute(rs[i], 10) }},
			{"activity", func() (any, bool) { return e.GetActivity(acts[i], 10) }},
			{"route/v1", func() (any, bool) { return e.GetRouteVehicle(rs[i], v1, 10) }},
			{"route/v2", func() (any, bool) { return e.GetRouteVehicle(rs[i], v2, 10) }},
			{"activity/v1", func() (any, bool) { return e.GetActivityVehicle(acts[i], v1, 10) }},
			{"activity/v2", func() (any, bool) { return e.GetActivityVehicle(acts[i], v2, 10) }},
		} {
			v, ok := check.get()
			expectAbsent(t, fmt.Sprintf("%s %d after Clear", check.scope, i), v, ok)
		}
	}

	if info := e.GetInfo(); info.Entries != 0 {
		t.Errorf("Expected 0 entries after Clear, got %d", info.Entries)
	}

	// clearing an empty engine is fine
	e.Clear()
}

func testReuseAfterClear(t *testing.T, e engine.Engine) {
	vehicle := newVehicle("v")

	// first iteration writes many slots on a route
	first := newRoute(vehicle)
	for slot := 0; slot < 32; slot++ {
		e.PutRoute(first, slot, slot)
	}
	e.Clear()

	// second iteration uses a new route which may reuse the old row
	second := newRoute(vehicle)
	e.PutRoute(second, 3, "new")

	for slot := 0; slot < 32; slot++ {
		v, ok := e.GetRoute(second, slot)
		if slot == 3 {
			expectValue(t, "reused row", v, ok, "new")
			continue
		}
		expectAbsent(t, fmt.Sprintf("reused row slot %d", slot), v, ok)
	}

	v, ok := e.GetRoute(first, 3)
	expectAbsent(t, "old route after Clear", v, ok)
}

func testDynamicVehicles(t *testing.T, factory engine.Factory) {
	known := newVehicle("known")
	e := factory(newProblem(known))

	act := newActivity("s")
	route := newRoute(known, act)

	unknown := newVehicle("unknown")

	// reading an unknown vehicle is simply absent
	v, ok := e.GetRouteVehicle(route, unknown, 10)
	expectAbsent(t, "unknown vehicle before put", v, ok)

	e.PutRouteVehicle(route, known, 10, "known")
	e.PutRouteVehicle(route, unknown, 10, "unknown")
	e.PutActivityVehicle(act, unknown, 12, "unknown")

	v, ok = e.GetRouteVehicle(route, known, 10)
	expectValue(t, "known vehicle", v, ok, "known")
	v, ok = e.GetRouteVehicle(route, unknown, 10)
	expectValue(t, "unknown vehicle", v, ok, "unknown")
	v, ok = e.GetActivityVehicle(act, unknown, 12)
	expectValue(t, "unknown vehicle activity", v, ok, "unknown")

	// many vehicles added after rows exist
	for i := 0; i < 50; i++ {
		veh := newVehicle(fmt.Sprintf("late-%d", i))
		e.PutRouteVehicle(route, veh, 10, i)
		v, ok = e.GetRouteVehicle(route, veh, 10)
		expectValue(t, fmt.Sprintf("late vehicle %d", i), v, ok, i)
	}
	v, ok = e.GetRouteVehicle(route, known, 10)
	expectValue(t, "known vehicle after growth", v, ok, "known")
}

func testInfo(t *testing.T, e engine.Engine) {
	vehicle := newVehicle("v")
	act := newActivity("s")
	route := newRoute(vehicle, act)

	e.PutProblem(1, 1)
	e.PutRoute(route, 1, 1)
	e.PutRoute(route, 1, 2) // overwrite does not add an entry
	e.PutActivity(act, 1, 1)
	e.PutRouteVehicle(route, vehicle, 1, 1)

	info := e.GetInfo()
	if info.Entries != 4 {
		t.Errorf("Expected 4 entries, got %d", info.Entries)
	}
	if info.RouteRows < 1 {
		t.Errorf("Expected at least one route row, got %d", info.RouteRows)
	}
	if info.ActivityRows != 1 {
		t.Errorf("Expected one activity row, got %d", info.ActivityRows)
	}
	if info.EngineType == "" {
		t.Errorf("Expected engine type to be set")
	}
	for _, f := range info.SupportedFeatures {
		if !e.SupportsFeature(f) {
			t.Errorf("Info lists feature %s which SupportsFeature denies", f)
		}
	}
}

func testConcurrentAccess(t *testing.T, e engine.Engine) {
	requireFeature(t, e, engine.FeatureConcurrentReads|engine.FeatureConcurrentWrites)

	vehicle := newVehicle("v")
	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				act := newActivity(fmt.Sprintf("w%d-%d", w, i))
				e.PutActivity(act, 10, i)
				e.PutActivityVehicle(act, vehicle, 10, i)
				if v, ok := e.GetActivity(act, 10); !ok || v != i {
					t.Errorf("worker %d: expected %d, got %v (loaded=%t)", w, i, v, ok)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := e.GetInfo().Entries; got != workers*perWorker*2 {
		t.Errorf("Expected %d entries, got %d", workers*perWorker*2, got)
	}
}

// testRealisticUsage simulates a few local search iterations: forward load
// propagation per activity, route totals, per vehicle cost parameters and a Clear
// after every iteration.
func testRealisticUsage(t *testing.T, factory engine.Factory) {
	const (
		slotLoad   = 0
		slotMaxLd  = 1
		slotCost   = 2
		iterations = 5
	)

	cheap := problem.NewVehicleBuilder("cheap").Build()
	pricey := problem.NewVehicleBuilder("pricey").
		SetType(problem.NewVehicleTypeBuilder("t").SetCostPerDistance(4).Build()).Build()
	vehicles := []problem.Vehicle{cheap, pricey}
	e := factory(newProblem(vehicles...))

	for it := 0; it < iterations; it++ {
		var routes []problem.Route
		for r := 0; r < 5; r++ {
			b := problem.NewRouteBuilder(vehicles[r%2])
			for a := 0; a < 4; a++ {
				size := problem.NewCapacityBuilder().AddDimension(0, a+1).Build()
				b.AddActivity(problem.NewServiceActivity(fmt.Sprintf("s%d-%d", r, a), "loc", size))
			}
			routes = append(routes, b.Build())
		}

		for _, route := range routes {
			load := problem.Capacity{}
			for _, act := range route.Activities() {
				load = problem.AddUp(load, act.Size())
				e.PutActivity(act, slotLoad, load)
			}
			e.PutRoute(route, slotMaxLd, load)
			for _, veh := range vehicles {
				e.PutRouteVehicle(route, veh, slotCost, veh.Type().CostPerDistance())
			}
		}

		for _, route := range routes {
			acts := route.Activities()
			last, ok := e.GetActivity(acts[len(acts)-1], slotLoad)
			if !ok || last.(problem.Capacity).Get(0) != 10 {
				t.Fatalf("iteration %d: expected final load 10, got %v", it, last)
			}
			maxLoad, ok := e.GetRoute(route, slotMaxLd)
			if !ok || maxLoad.(problem.Capacity).Get(0) != 10 {
				t.Fatalf("iteration %d: expected route load 10, got %v", it, maxLoad)
			}
			cost, ok := e.GetRouteVehicle(route, pricey, slotCost)
			expectValue(t, "pricey cost", cost, ok, 4.0)
		}

		e.Clear()

		for _, route := range routes {
			if v, ok := e.GetRoute(route, slotMaxLd); ok {
				t.Fatalf("iteration %d: expected cleared route load, got %v", it, v)
			}
		}
	}
}
