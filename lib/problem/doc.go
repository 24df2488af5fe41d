// Package problem defines the parts of the vehicle routing problem model that the
// state layer consumes. The state layer never inspects these entities; it only uses
// them as identity handles (routes, activities, vehicles) and learns the enumerated
// vehicle set once per run to pre-size its vehicle dimension.
//
// Key Components:
//
//   - Vehicle, Route, Activity: identity-comparable handles. Implementations must be
//     pointer types, so that two distinct instances with equal contents stay distinct
//     keys in the state layer.
//
//   - Problem: exposes the finite vehicle set of a routing problem.
//
//   - Capacity: an immutable multi-dimensional capacity vector (weight, volume, ...),
//     the most common composite value memoized by search operators.
//
// The package also ships small reference implementations (VehicleImpl, RouteImpl,
// ServiceActivity, ProblemImpl) which are used by the tests and the bench command.
// Real solvers are expected to bring their own model.
package problem
