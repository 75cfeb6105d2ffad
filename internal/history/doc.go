// Package history persists completed renames in SQLite so batches can be
// listed and reverted. A file lock serializes writers across concurrent
// invocations.
package history
