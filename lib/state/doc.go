// Package state provides the algorithm state store of a vehicle routing solver.
// Search operators use it to memoize intermediate values such as loads, costs,
// time window slack or vehicle parameters, and to read them back type-checked.
//
// Key Components:
//
//   - Registry and StateId: Slots are identified by name and mapped to compact,
//     stable indices. The built-in slots (Load, Costs, Duration, ...) occupy the indices
//     below FirstUserIndex; user slots are allocated from there on.
//
//   - Manager: Holds the state of one solver run. It owns the registry, a storage
//     engine (see the engine package) and the declared default values. Clear drops
//     all live values between search iterations while ids and defaults survive.
//
//   - Accessors: Generic functions read and write the five scopes (problem, route,
//     activity, route per vehicle, activity per vehicle). The requested type is the type
//     argument; a stored value of another type yields a *Error with RetCTypeMismatch.
//     Absent values are reported through the boolean result, not as an error.
//
// Defaults:
//
//	Plain getters only ever return live values. The ...OrDefault getters return the
//	declared default whenever no live value exists, also right after Clear.
//
// Usage Example:
//
//	m := state.NewManager(vrp, nil)
//	slack := m.CreateStateId("slack")
//
//	state.PutActivityState(m, act, slack, 12.5)
//	v, ok, err := state.ActivityState[float64](m, act, slack)
//
//	m.Clear()
package state
