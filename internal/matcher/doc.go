// Package matcher implements the matching and disambiguation engine: search
// result selection, greedy bipartite file-to-episode assignment, batch
// grouping, and derived-file linking. All functions are pure over their
// inputs; policy thresholds arrive via Policy and strictness is an explicit
// argument, never ambient state.
package matcher
