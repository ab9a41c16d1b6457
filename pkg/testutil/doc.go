// Package testutil provides utilities for testing genout components.
//
// Key components:
//   - MockFS: testify mock of types.FS for injecting I/O failures
//   - WriteTree / ReadTree: lay out and snapshot a directory tree on any
//     types.FS, real or in-memory
//
// Usage guidelines:
//   - Planning and verification tests should run on filesystem.NewMemory()
//   - Tests that depend on modification times use t.TempDir() with the OS
//     filesystem
//   - All test data should be defined inline, not in external files
package testutil
