// Package testing provides standardised tests and benchmarks for
// state engines that satisfy the engine.Engine interface.
//
// The package contains:
//   - testing: A conformance suite for the Engine contract (scope isolation, identity keys,
//     presence of stored nil values, Clear and row reuse, dynamic vehicle growth)
//   - benchmark: Performance tests for the access patterns of a local search iteration
//
// Example usage:
//
//	// Running the standard test suite
//	enginetesting.RunEngineTests(t, "MyEngine", func(vrp problem.Problem) engine.Engine {
//		return NewMyEngine(vrp)
//	})
//
//	// Running performance benchmarks
//	enginetesting.RunEngineBenchmarks(b, "MyEngine", myengine.Factory())
package testing
