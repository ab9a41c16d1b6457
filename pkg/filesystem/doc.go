// Package filesystem provides filesystem implementations for genout.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem used by the synchronizer and an afero-backed one
// used to plan and verify against in-memory trees.
package filesystem
