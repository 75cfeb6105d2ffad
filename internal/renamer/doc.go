// Package renamer drives the end-to-end flow: classify a batch, resolve
// identities through metadata providers, assign files to candidates, build
// a rename plan, and apply it to the filesystem with history recording.
package renamer
