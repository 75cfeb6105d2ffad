// Package logging constructs the process-wide slog logger. Console output
// uses a compact single-line handler; JSON output is available for log
// shippers. Components attach themselves via NewComponentLogger so every
// line carries its origin.
package logging
