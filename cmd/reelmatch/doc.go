// Package main hosts the reelmatch CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into matching
// passes, episode lookups, history inspection, and configuration scaffolding.
// It centralizes configuration resolution, provider wiring, and structured
// logging setup so subcommands can focus on user experience instead of
// plumbing.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
