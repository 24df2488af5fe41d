package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/vrpstate/lib/engine"
	"github.com/ValentinKolb/vrpstate/lib/problem"
)

// RunEngineBenchmarks runs all benchmarks for an engine implementation
func RunEngineBenchmarks(b *testing.B, name string, factory engine.Factory) {

	b.Run("PutActivity", func(b *testing.B) {
		benchmarkPutActivity(b, factory)
	})

	b.Run("GetActivity", func(b *testing.B) {
		benchmarkGetActivity(b, factory)
	})

	b.Run("PutRouteVehicle", func(b *testing.B) {
		benchmarkPutRouteVehicle(b, factory)
	})

	b.Run("GetRouteVehicle", func(b *testing.B) {
		benchmarkGetRouteVehicle(b, factory)
	})

	b.Run("Clear", func(b *testing.B) {
		benchmarkClear(b, factory)
	})

	b.Run("Iteration", func(b *testing.B) {
		benchmarkIteration(b, factory)
	})

	b.Run("ParallelGet", func(b *testing.B) {
		benchmarkParallelGet(b, factory)
	})
}

// --------------------------------------------------------------------------
// Fixtures
// --------------------------------------------------------------------------

type fixture struct {
	vrp        problem.Problem
	vehicles   []problem.Vehicle
	routes     []problem.Route
	activities []problem.Activity
}

// newFixture builds a problem with the given number of vehicles and one route per
// vehicle, each visiting actsPerRoute activities
func newFixture(vehicles, actsPerRoute int) *fixture {
	f := &fixture{}
	pb := problem.NewProblemBuilder()
	for v := 0; v < vehicles; v++ {
		veh := newVehicle(fmt.Sprintf("v%d", v))
		f.vehicles = append(f.vehicles, veh)
		pb.AddVehicle(veh)

		rb := problem.NewRouteBuilder(veh)
		for a := 0; a < actsPerRoute; a++ {
			act := newActivity(fmt.Sprintf("s%d-%d", v, a))
			f.activities = append(f.activities, act)
			rb.AddActivity(act)
		}
		f.routes = append(f.routes, rb.Build())
	}
	f.vrp = pb.Build()
	return f
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

func benchmarkPutActivity(b *testing.B, factory engine.Factory) {
	f := newFixture(10, 100)
	e := factory(f.vrp)
	n := len(f.activities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.PutActivity(f.activities[i%n], 10+i%4, i)
	}
}

func benchmarkGetActivity(b *testing.B, factory engine.Factory) {
	f := newFixture(10, 100)
	e := factory(f.vrp)
	for i, act := range f.activities {
		e.PutActivity(act, 10, i)
	}
	n := len(f.activities)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.GetActivity(f.activities[i%n], 10)
	}
}

func benchmarkPutRouteVehicle(b *testing.B, factory engine.Factory) {
	f := newFixture(20, 5)
	e := factory(f.vrp)
	nr, nv := len(f.routes), len(f.vehicles)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.PutRouteVehicle(f.routes[i%nr], f.vehicles[(i/nr)%nv], 10, float64(i))
	}
}

func benchmarkGetRouteVehicle(b *testing.B, factory engine.Factory) {
	f := newFixture(20, 5)
	e := factory(f.vrp)
	for _, r := range f.routes {
		for _, v := range f.vehicles {
			e.PutRouteVehicle(r, v, 10, 1.0)
		}
	}
	nr, nv := len(f.routes), len(f.vehicles)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.GetRouteVehicle(f.routes[i%nr], f.vehicles[(i/nr)%nv], 10)
	}
}

// Clear after a realistic fill, fill time excluded
func benchmarkClear(b *testing.B, factory engine.Factory) {
	f := newFixture(10, 50)
	e := factory(f.vrp)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for j, act := range f.activities {
			e.PutActivity(act, 10, j)
		}
		b.StartTimer()
		e.Clear()
	}
}

// One local search iteration: write per activity and per route/vehicle, read back, Clear
func benchmarkIteration(b *testing.B, factory engine.Factory) {
	f := newFixture(10, 20)
	e := factory(f.vrp)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range f.routes {
			for j, act := range r.Activities() {
				e.PutActivity(act, 0, j)
				e.PutActivity(act, 1, j*2)
			}
			for _, v := range f.vehicles {
				e.PutRouteVehicle(r, v, 2, v.Type().CostPerDistance())
			}
		}
		for _, r := range f.routes {
			for _, act := range r.Activities() {
				e.GetActivity(act, 0)
			}
			e.GetRouteVehicle(r, r.Vehicle(), 2)
		}
		e.Clear()
	}
}

func benchmarkParallelGet(b *testing.B, factory engine.Factory) {
	f := newFixture(10, 100)
	e := factory(f.vrp)

	requireFeature(b, e, engine.FeatureConcurrentReads)

	for i, act := range f.activities {
		e.PutActivity(act, 10, i)
	}
	n := len(f.activities)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			e.GetActivity(f.activities[counter%n], 10)
			counter++
		}
	})
}
