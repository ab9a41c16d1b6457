// Package registry provides a generic, append-only, thread-safe table of
// named items. It backs the target table of a generation session: names are
// registered once, never replaced and never removed.
package registry
