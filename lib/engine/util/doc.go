// Package util provides utility components for engines that satisfy the
// engine.Engine interface.
//
// The package contains:
//   - statistics: Utility tools for describing how stored slots are distributed
//     over entity rows, reported through engine.Info metadata
//
// This package is particularly useful for:
//   - Engine developers implementing the Engine interface
//   - Monitoring the memory shape of a solver run (e.g. a few routes carrying
//     most of the slots)
package util
