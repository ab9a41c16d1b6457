package types

import "sort"

// ContentRecord is one planned output file within a target.
type ContentRecord struct {
	// Content is the exact text to write
	Content string

	// Overwrite is the effective overwrite flag, resolved when the record was
	// created from the call's preference or the target's default
	Overwrite bool

	// Source names the generation pass that produced the record. Only used in
	// conflict and error messages.
	Source string
}

// GeneratedContent maps a relative output path to its ContentRecord.
type GeneratedContent map[string]ContentRecord

// Paths returns the output paths in sorted order
func (g GeneratedContent) Paths() []string {
	paths := make([]string, 0, len(g))
	for p := range g {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns a shallow copy of the map. Records are values, so the copy is
// independent of the original.
func (g GeneratedContent) Clone() GeneratedContent {
	c := make(GeneratedContent, len(g))
	for p, r := range g {
		c[p] = r
	}
	return c
}
