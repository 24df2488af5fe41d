package bench

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/ValentinKolb/vrpstate/lib/common"
	"github.com/ValentinKolb/vrpstate/lib/problem"
	"github.com/ValentinKolb/vrpstate/lib/state"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

var plog = logger.GetLogger("bench")

// Phases of one iteration, each measured by its own timer
const (
	phaseWrite     = "write"
	phaseRead      = "read"
	phaseClear     = "clear"
	phaseIteration = "iteration"
)

// Workload describes the synthetic local search the benchmark runs
type Workload struct {
	Routes             int   `yaml:"routes"`
	ActivitiesPerRoute int   `yaml:"activities_per_route"`
	Vehicles           int   `yaml:"vehicles"`
	Iterations         int   `yaml:"iterations"`
	Seed               int64 `yaml:"seed"`
}

// DefaultWorkload returns a small but realistic workload
func DefaultWorkload() Workload {
	return Workload{
		Routes:             20,
		ActivitiesPerRoute: 25,
		Vehicles:           10,
		Iterations:         200,
		Seed:               1,
	}
}

// Validate checks the workload for invalid values
func (w Workload) Validate() error {
	if w.Routes <= 0 || w.ActivitiesPerRoute <= 0 || w.Vehicles <= 0 || w.Iterations <= 0 {
		return fmt.Errorf("routes, activities, vehicles and iterations must be positive (got %d, %d, %d, %d)",
			w.Routes, w.ActivitiesPerRoute, w.Vehicles, w.Iterations)
	}
	return nil
}

// TimerStats summarizes one go-metrics timer
type TimerStats struct {
	Name  string        `yaml:"name"`
	Count int64         `yaml:"count"`
	Mean  time.Duration `yaml:"mean"`
	Min   time.Duration `yaml:"min"`
	Max   time.Duration `yaml:"max"`
	P50   time.Duration `yaml:"p50"`
	P95   time.Duration `yaml:"p95"`
	P99   time.Duration `yaml:"p99"`
}

// Report is the outcome of a benchmark run
type Report struct {
	Config   common.Config `yaml:"config"`
	Workload Workload      `yaml:"workload"`
	Timers   []TimerStats  `yaml:"timers"`
	Feasible int           `yaml:"feasible_assignments"` // route/vehicle pairs whose max load fits the vehicle
	Checksum int           `yaml:"checksum"`             // sum of all route end loads, engine independent
	State    state.Info    `yaml:"state"`
}

// --------------------------------------------------------------------------
// Workload execution
// --------------------------------------------------------------------------

// runner holds everything a benchmark run works on
type runner struct {
	w          Workload
	rnd        *rand.Rand
	vehicles   []problem.Vehicle
	activities []problem.Activity
	m          *state.Manager
	registry   gometrics.Registry

	// user slots
	costParam state.StateId
	slack     state.StateId
}

// Run executes the workload against a state manager created from conf
func Run(conf common.Config, w Workload) (*Report, *state.Manager, error) {
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}
	opts, err := conf.ToManagerOptions()
	if err != nil {
		return nil, nil, err
	}

	r := &runner{
		w:        w,
		rnd:      rand.New(rand.NewSource(w.Seed)),
		registry: gometrics.NewRegistry(),
	}
	vrp := r.buildProblem()
	r.m = state.NewManager(vrp, opts)
	r.costParam = r.m.CreateStateId("cost_per_distance")
	r.slack = r.m.CreateStateId("capacity_slack")

	// defaults are declared once per run and survive every Clear
	state.DeclareDefaultRouteState(r.m, state.MaxLoad, problem.Capacity{})
	state.DeclareDefaultActivityState(r.m, r.slack, 0)

	plog.Infof("running %d iterations (%d routes, %d activities, %d vehicles) on %s engine",
		w.Iterations, w.Routes, len(r.activities), w.Vehicles, conf.Engine)

	report := &Report{Config: conf, Workload: w}
	for it := 0; it < w.Iterations; it++ {
		feasible, checksum, err := r.iteration()
		if err != nil {
			return nil, nil, fmt.Errorf("iteration %d: %w", it, err)
		}
		report.Feasible += feasible
		report.Checksum += checksum
	}

	report.Timers = r.timerStats()
	report.State = r.m.Info()
	return report, r.m, nil
}

// maxActivitySize is the largest demand of a generated activity
const maxActivitySize = 5

// buildProblem creates vehicles with increasing capacity and the pool of activities.
// The largest vehicle fits every possible route.
func (r *runner) buildProblem() problem.Problem {
	pb := problem.NewProblemBuilder()
	for v := 0; v < r.w.Vehicles; v++ {
		capacity := (v + 1) * maxActivitySize * r.w.ActivitiesPerRoute / r.w.Vehicles
		vt := problem.NewVehicleTypeBuilder(fmt.Sprintf("type-%d", v)).
			SetCapacity(problem.NewCapacityBuilder().AddDimension(0, capacity).Build()).
			SetCostPerDistance(1 + float64(v)/2).
			Build()
		veh := problem.NewVehicleBuilder(fmt.Sprintf("v%d", v)).SetStartLocation("depot").SetType(vt).Build()
		r.vehicles = append(r.vehicles, veh)
		pb.AddVehicle(veh)
	}

	total := r.w.Routes * r.w.ActivitiesPerRoute
	for a := 0; a < total; a++ {
		size := problem.NewCapacityBuilder().AddDimension(0, 1+r.rnd.Intn(maxActivitySize)).Build()
		r.activities = append(r.activities, problem.NewServiceActivity(fmt.Sprintf("s%d", a), fmt.Sprintf("loc%d", a), size))
	}
	return pb.Build()
}

// recreate assigns the shuffled activities to fresh routes, like a ruin and recreate step
func (r *runner) recreate() []problem.Route {
	r.rnd.Shuffle(len(r.activities), func(i, j int) {
		r.activities[i], r.activities[j] = r.activities[j], r.activities[i]
	})

	routes := make([]problem.Route, r.w.Routes)
	for i := range routes {
		rb := problem.NewRouteBuilder(r.vehicles[i%len(r.vehicles)])
		for _, act := range r.activities[i*r.w.ActivitiesPerRoute : (i+1)*r.w.ActivitiesPerRoute] {
			rb.AddActivity(act)
		}
		routes[i] = rb.Build()
	}
	return routes
}

// iteration runs the state updaters, the feasibility checks and the Clear of one iteration
func (r *runner) iteration() (feasible, checksum int, err error) {
	start := time.Now()
	routes := r.recreate()

	r.timer(phaseWrite).Time(func() {
		for _, route := range routes {
			r.updateLoads(route)
			for _, veh := range r.vehicles {
				state.PutRouteVehicleState(r.m, route, veh, r.costParam, veh.Type().CostPerDistance())
			}
		}
	})

	r.timer(phaseRead).Time(func() {
		for _, route := range routes {
			var f, c int
			if f, c, err = r.checkRoute(route); err != nil {
				return
			}
			feasible += f
			checksum += c
		}
	})
	if err != nil {
		return 0, 0, err
	}

	r.timer(phaseClear).Time(r.m.Clear)
	r.timer(phaseIteration).UpdateSince(start)
	return feasible, checksum, nil
}

// updateLoads runs a forward and a backward pass over the route like the load updaters
// of a solver: loads per activity, past and future max loads and route totals
func (r *runner) updateLoads(route problem.Route) {
	acts := route.Activities()

	load := problem.Capacity{}
	pastMax := problem.Capacity{}
	for _, act := range acts {
		load = problem.AddUp(load, act.Size())
		pastMax = problem.Max(pastMax, load)
		state.PutActivityState(r.m, act, state.Load, load)
		state.PutActivityState(r.m, act, state.PastMaxLoad, pastMax)
	}
	state.PutRouteState(r.m, route, state.LoadAtEnd, load)
	state.PutRouteState(r.m, route, state.MaxLoad, pastMax)

	futureMax := problem.Capacity{}
	for i := len(acts) - 1; i >= 0; i-- {
		actLoad, _, _ := state.ActivityState[problem.Capacity](r.m, acts[i], state.Load)
		futureMax = problem.Max(futureMax, actLoad)
		state.PutActivityState(r.m, acts[i], state.FutureMaxLoad, futureMax)
	}

	// slack per vehicle: how much more the vehicle could load at the activity
	for _, veh := range r.vehicles {
		capacity := veh.Type().Capacity()
		for _, act := range acts {
			fm, _, _ := state.ActivityState[problem.Capacity](r.m, act, state.FutureMaxLoad)
			state.PutActivityVehicleState(r.m, act, veh, r.slack, capacity.Get(0)-fm.Get(0))
		}
	}
}

// checkRoute reads back the route state and counts the vehicles the route fits
func (r *runner) checkRoute(route problem.Route) (feasible, endLoad int, err error) {
	maxLoad, _, err := state.RouteStateOrDefault[problem.Capacity](r.m, route, state.MaxLoad)
	if err != nil {
		return 0, 0, err
	}
	end, ok, err := state.RouteState[problem.Capacity](r.m, route, state.LoadAtEnd)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return 0, 0, fmt.Errorf("route end load missing")
	}

	first := route.Activities()[0]
	for _, veh := range r.vehicles {
		if _, _, err := state.RouteVehicleState[float64](r.m, route, veh, r.costParam); err != nil {
			return 0, 0, err
		}
		slack, _, err := state.ActivityVehicleStateOrDefault[int](r.m, first, veh, r.slack)
		if err != nil {
			return 0, 0, err
		}
		if maxLoad.IsLessOrEqual(veh.Type().Capacity()) != (slack >= 0) {
			return 0, 0, fmt.Errorf("slack %d of vehicle %s disagrees with max load %s", slack, veh.Id(), maxLoad)
		}
		if slack >= 0 {
			feasible++
		}
	}
	return feasible, end.Get(0), nil
}

// --------------------------------------------------------------------------
// Timers
// --------------------------------------------------------------------------

func (r *runner) timer(name string) gometrics.Timer {
	return gometrics.GetOrRegisterTimer(name, r.registry)
}

var percentiles = []float64{0.5, 0.95, 0.99}

func (r *runner) timerStats() []TimerStats {
	var stats []TimerStats
	r.registry.Each(func(name string, i interface{}) {
		t, ok := i.(gometrics.Timer)
		if !ok {
			return
		}
		snap := t.Snapshot()
		ps := snap.Percentiles(percentiles)
		stats = append(stats, TimerStats{
			Name:  name,
			Count: snap.Count(),
			Mean:  time.Duration(snap.Mean()),
			Min:   time.Duration(snap.Min()),
			Max:   time.Duration(snap.Max()),
			P50:   time.Duration(ps[0]),
			P95:   time.Duration(ps[1]),
			P99:   time.Duration(ps[2]),
		})
	})
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}
