// Package core runs a genout generation session.
//
// A session loads the configuration, registers the configured targets with
// a fresh content.Manager, runs the generation pass of every document, and
// then synchronizes (or plans, or verifies) each target against its output
// root. Every step fails fast: the first error ends the session.
package core
