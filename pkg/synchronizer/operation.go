package synchronizer

import (
	"github.com/arthur-debert/genout/pkg/types"
)

// OperationType is the kind of change a plan makes to one path
type OperationType string

const (
	// OperationCreateDir creates a missing directory
	OperationCreateDir OperationType = "mkdir"
	// OperationCreateFile writes a file that does not exist yet
	OperationCreateFile OperationType = "create"
	// OperationUpdateFile replaces a file whose content differs
	OperationUpdateFile OperationType = "update"
	// OperationUnchanged records a file whose content already matches
	OperationUnchanged OperationType = "unchanged"
	// OperationPreserve records an existing file kept because its record
	// does not allow overwriting
	OperationPreserve OperationType = "preserve"
	// OperationRemoveFile deletes a file not declared by a clean target
	OperationRemoveFile OperationType = "remove"
	// OperationRemoveDir deletes a directory left empty by the clean pass
	OperationRemoveDir OperationType = "rmdir"
)

// Operation is a single planned change.
type Operation struct {
	Type OperationType
	// Path is relative to the plan root, slash separated
	Path string
	// FullPath is Path joined to the plan root
	FullPath string
	// Content is set for create and update operations
	Content string
	// ReplaceLink is set on an update whose path is a symbolic link. The
	// link is removed and a regular file written in its place.
	ReplaceLink bool
}

// Mutates reports whether applying the operation touches the disk
func (o Operation) Mutates() bool {
	switch o.Type {
	case OperationUnchanged, OperationPreserve:
		return false
	}
	return true
}

// Plan is the complete set of operations reconciling one output root with a
// target's content. Operations are grouped by phase: directory creation,
// file writes, then removals (files first, directories bottom-up).
type Plan struct {
	Target types.Target
	Root   string
	// CreateRoot is set when the output root itself does not exist
	CreateRoot bool
	Dirs       []Operation
	Files      []Operation
	Removals   []Operation
}

// Operations returns every operation in execution order
func (p *Plan) Operations() []Operation {
	ops := make([]Operation, 0, len(p.Dirs)+len(p.Files)+len(p.Removals))
	ops = append(ops, p.Dirs...)
	ops = append(ops, p.Files...)
	ops = append(ops, p.Removals...)
	return ops
}

// Writes returns the file operations that write content
func (p *Plan) Writes() []Operation {
	var writes []Operation
	for _, op := range p.Files {
		if op.Mutates() {
			writes = append(writes, op)
		}
	}
	return writes
}

// IsNoop reports whether applying the plan would leave the disk untouched
func (p *Plan) IsNoop() bool {
	return !p.CreateRoot && len(p.Dirs) == 0 && len(p.Writes()) == 0 && len(p.Removals) == 0
}
