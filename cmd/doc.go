// Package cmd implements the command-line interface of vrpstate.
//
// The package is organized into several subpackages:
//
//   - bench: Synthetic local search benchmark of the state manager
//   - slots: Prints the slot table (built-in and user slots)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See vrpstate -help for a list of all commands.
package cmd
