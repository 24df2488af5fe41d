// Package dense implements the default scoped storage engine (engine.Engine) for
// the routing state layer. It is tuned for the hot path of local search: one solver
// goroutine writing and reading memoized values once per evaluated move.
//
// The package focuses on:
//   - Index-addressed access: one identity lookup per entity, then plain slice indexing
//     by slot (and by vehicle position for vehicle-dependent scopes)
//   - Allocation-free steady state: rows are recycled across Clear calls
//   - Reference hygiene: Clear zeroes every used cell so no stale value survives
//
// Key Components:
//
//   - denseImpl: The engine structure implementing engine.Engine. It owns one cell
//     slice for problem-global slots and four row tables for the entity scopes.
//
//   - Rows: Maps an entity handle to a dense row number through a Go map keyed by the
//     handle itself (identity for pointer handles). Each row is a slice of cells indexed
//     by slot. Rows grow on demand when a slot beyond their length is written.
//
//   - VehicleRows: Like Rows, but each row is split into one cell slice per vehicle
//     position, so (entity, vehicle, slot) is addressed by two slice lookups.
//
//   - VehicleIndex: Assigns dense positions to vehicles. The vehicles of the problem
//     are registered at construction (pre-sizing); a vehicle that appears later gets
//     the next free position on its first write. Reads never assign positions.
//
//   - Cell: A value plus a set flag, so a stored nil stays distinguishable from an
//     absent value.
//
// Internal Mechanisms:
//
//   - Clear: All used rows are zeroed with the clear builtin and the identity maps are
//     emptied. The row slices themselves stay allocated and are handed out again in
//     order, so after the first few iterations a search loop stops allocating rows.
//     Vehicle positions are not reset because vehicles belong to the problem, not to
//     an iteration.
//
//   - Metrics: GetInfo reports live entries, row counts and the distribution of slot
//     lengths over rows (util.DistributionStats), which shows whether a few entities
//     carry most of the memoized state.
//
// Thread Safety:
//
//	The engine performs no locking. Use the synced engine when moves are evaluated
//	in parallel.
package dense
