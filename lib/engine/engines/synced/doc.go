// Package synced implements a scoped storage engine (engine.Engine) on top of
// xsync.MapOf. It trades the raw speed of the dense engine for safe concurrent access,
// supporting solvers that evaluate moves in parallel against a shared state snapshot
// and commit the winning move from a single goroutine.
//
// Key Features:
//   - All scopes share one concurrent map keyed by (scope, entity, vehicle, slot)
//   - Problem-global slots live in a separate map keyed by slot
//   - Concurrent gets and puts are safe; Clear is safe but not atomic with respect
//     to concurrent puts
//
// Implementation Details:
//
//   - Keys: scopeKey combines the scope kind with the entity and vehicle handles as
//     interface values, so equality is handle identity for pointer handles. The scope
//     kind keeps scopes from aliasing even when the same handle is used in two scopes.
//
//   - Pre-sizing: The vehicle count of the problem is used as a size hint for the
//     vehicle-dependent map only; there is no positional vehicle dimension.
//
// Thread Safety:
//
//	Every method is safe for concurrent use. A Clear running concurrently with puts
//	may keep some of the concurrently written values. Callers that need a clean cut
//	run Clear in their single-threaded commit phase.
package synced
