package manifest

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/arthur-debert/genout/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is one output declared by a generation document
type File struct {
	Path string `yaml:"path" toml:"path"`
	// Content is the inline text of the file. It may be empty, but then it
	// must be given explicitly.
	Content *string `yaml:"content,omitempty" toml:"content,omitempty"`
	// From names a file, relative to the document, holding the content
	From      string `yaml:"from,omitempty" toml:"from,omitempty"`
	Overwrite *bool  `yaml:"overwrite,omitempty" toml:"overwrite,omitempty"`
	Target    string `yaml:"target,omitempty" toml:"target,omitempty"`
}

// Document is a parsed generation document
type Document struct {
	// Path is where the document was read from
	Path  string `yaml:"-" toml:"-"`
	Files []File `yaml:"files" toml:"files"`
}

// Input returns the document as the input of a generation pass
func (d *Document) Input() types.Document {
	return types.Document{URI: d.Path, Model: d}
}

// Dir is the directory From paths are relative to
func (d *Document) Dir() string {
	return filepath.Dir(d.Path)
}

// Parse decodes data as a generation document. The format follows the
// extension of path: .yaml, .yml or .toml. Unknown fields are rejected.
func Parse(path string, data []byte) (*Document, error) {
	doc := &Document{Path: path}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil && err != io.EOF {
			return nil, parseError(err, path, "invalid YAML")
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, parseError(err, path, "invalid TOML")
		}
	default:
		return nil, errors.Newf(errors.ErrManifestParse,
			"%s: unsupported document format %q (expected .yaml, .yml or .toml)", path, ext).
			WithDetail("document", path)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and parses the document at path
func Load(fsys types.FS, path string) (*Document, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read document %s", path).
			WithDetail("document", path)
	}
	return Parse(path, data)
}

func (d *Document) validate() error {
	for i, f := range d.Files {
		var problem string
		switch {
		case f.Path == "":
			problem = "has no path"
		case f.Content != nil && f.From != "":
			problem = "sets both content and from"
		case f.Content == nil && f.From == "":
			problem = "sets neither content nor from"
		}
		if problem != "" {
			return errors.Newf(errors.ErrManifestParse, "%s: file #%d %s", d.Path, i+1, problem).
				WithDetails(map[string]interface{}{
					"document": d.Path,
					"index":    i,
				})
		}
	}
	return nil
}

func parseError(err error, path, what string) error {
	return errors.Wrapf(err, errors.ErrManifestParse, "%s: %s", path, what).
		WithDetail("document", path)
}

// String summarizes a file declaration for logs
func (f File) String() string {
	source := "inline"
	if f.From != "" {
		source = "from " + f.From
	}
	target := f.Target
	if target == "" {
		target = types.DefaultTargetName
	}
	return fmt.Sprintf("%s (%s, target %s)", f.Path, source, target)
}
