// Package cmd implements the command-line interface for the fieldstate
// serialization toolkit. It provides a hierarchical command structure for
// inspecting serialized state streams and measuring codec performance.
//
// The package is organized into several subpackages:
//
//   - inspect: Commands for validating and describing serialized stream files
//   - bench: Commands for benchmarking the codec on a built-in sample state
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See fieldstate -help for a list of all commands.
package cmd
