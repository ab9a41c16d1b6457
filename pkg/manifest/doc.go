// Package manifest reads generation documents and runs their generation
// pass.
//
// A generation document lists the files it produces, in YAML:
//
//	files:
//	  - path: src/version.go
//	    content: |
//	      package src
//	  - path: README.md
//	    from: templates/readme.md
//	    overwrite: false
//	    target: DOCS
//
// or in TOML as an array of [[files]] tables. Each file carries either
// inline content or a path, relative to the document, to read it from.
package manifest
