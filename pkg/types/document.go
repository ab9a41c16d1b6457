package types

// UnknownDocument is the source description used when a generation pass has
// neither a workspace-relative path nor a document URI.
const UnknownDocument = "document URI undefined"

// Document is the input of one generation pass.
type Document struct {
	// URI is the document's location, e.g. "file:///ws/models/a.gen.yaml"
	// or a plain path. May be empty.
	URI string

	// Model is the parsed document, passed through to the pass unexamined
	Model any
}
