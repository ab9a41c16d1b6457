// Package content collects the files declared by generation passes.
//
// A Manager is one generation session: it owns the target table and, per
// target, the map from output path to ContentRecord. Each generation pass
// obtains a Handle bound to its source document and declares files through
// it. Declaring the same path twice is accepted only when content and
// overwrite flag are identical; anything else is a conflict reported with
// both contributing sources.
//
// Usage:
//
//	m := content.NewManager("file:///ws")
//	_ = m.AddTarget("LIB", false, false)
//
//	h := m.HandleFor(types.Document{URI: "file:///ws/models/a.dsl"})
//	_ = h.CreateFile("src-gen/a.ts", "// generated")
//	_ = h.CreateFile("src/a.ts", "// initial", content.WithOverwrite(false))
//	_ = h.CreateFile("lib/a.ts", "// lib", content.WithTarget("LIB"))
//
// Writing the collected content to disk is done by pkg/synchronizer.
package content
