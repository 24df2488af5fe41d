// Package engine provides a standardized interface for the scoped storage engines
// behind the routing state layer. An engine stores untyped values in five independent
// scopes and addresses them by slot index rather than by name, because lookups run
// once per evaluated move during local search.
//
// The package focuses on:
//   - A unified Engine interface for put/get on every scope shape
//   - Feature discovery through capability flags
//   - Bulk invalidation (Clear) once per search iteration
//   - Standardized metadata reporting
//
// Key Components:
//
//   - Engine Interface: The core interface that all engines must satisfy. The scopes
//     are problem-global (slot), per-route (route, slot), per-activity (activity, slot),
//     per-route-per-vehicle (route, vehicle, slot) and per-activity-per-vehicle
//     (activity, vehicle, slot). Scopes never alias each other: writing the
//     vehicle-independent form of an (entity, slot) pair leaves every vehicle-dependent
//     form untouched and vice versa.
//
//   - Feature Flags: The Feature type defines capability flags that engines advertise
//     through the SupportsFeature method (vehicle pre-sizing, concurrent access, row reuse).
//
//   - Implementation Identifiers: The Implementation type provides string constants
//     for the available engines ("dense", "synced").
//
//   - Engine Information: The Info structure reports the number of live entries, the
//     number of entity rows, the vehicle dimension and engine-specific metadata.
//
// Note on Values:
//   - Engines never validate the type of a value. Type checks happen in the state
//     package when a value is read back.
//   - A stored nil is a present value. Only keys that were never written (or were
//     written and then cleared) are absent.
//
// Note on Entity Identity:
//   - Routes, activities and vehicles are compared by identity. The problem package
//     requires pointer implementations, so two distinct route instances with identical
//     contents are distinct keys.
//   - Engines never mutate or retain ownership of entities beyond the next Clear.
//
// Related Packages:
//
// The engines/dense package provides the default single-writer engine with slice-backed
// rows. The engines/synced package provides an engine built on xsync.MapOf that
// tolerates concurrent readers and writers. The testing package provides a conformance
// suite (RunEngineTests) and benchmarks (RunEngineBenchmarks) for any Engine.
package engine
