// Package display renders genout results for the terminal, as plain text,
// or as JSON. Library packages never print; commands hand their results to
// a Renderer.
package display
