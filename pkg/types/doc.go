// Package types defines the core types and interfaces used throughout genout.
// This includes the Target and ContentRecord data model shared by the content
// registry and the disk synchronizer, the per-call FileOptions, the Document
// handed to a generation pass, and the FS seam used for all disk access.
package types
