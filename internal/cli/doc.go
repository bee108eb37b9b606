// Package cli wires together the Cobra command tree for the guardian binary.
//
// It defines the root command and all subcommands (review, serve, config,
// models, cache, version), binds flags, reads configuration, invokes the
// review engine, and returns deterministic exit codes.
package cli
