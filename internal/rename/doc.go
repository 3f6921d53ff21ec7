// Package rename implements the tag-stripping rename pipeline.
//
// A batch flows through four steps that share one ordered slice of
// *models.Candidate:
//
//	Collect   scan a root and propose a target for every name that changes
//	Resolve   flag or suffix targets that collide with each other or the disk
//	Apply     perform (or simulate) the renames, deepest directories first
//	Summarize count the outcomes
//
// The order Collect returns is the apply order and is never re-sorted.
// Everything runs on the calling goroutine; the filesystem is the only
// shared state and nothing but Apply writes to it.
package rename
