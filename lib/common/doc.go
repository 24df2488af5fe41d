// Package common provides configuration and logging shared by the vrpstate commands.
//
// Key Components:
//
//   - Config: Settings of a state manager (engine choice, dense engine sizing hints,
//     metrics, log level) with a printable summary and a conversion to state.Options.
//
//   - Logger: Custom logging implementation that plugs into dragonboats logger
//     registry, so library packages only ever call logger.GetLogger.
package common
