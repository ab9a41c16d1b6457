package types

// FileOptions are the per-call settings of CreateFile. Every field is
// independently optional:
//
//   - Target: name of the target to write to. Empty selects DEFAULT.
//   - Overwrite: nil defers to the target's DefaultOverwrite.
type FileOptions struct {
	Target    string
	Overwrite *bool
}

// ResolveOverwrite returns the effective overwrite flag for a record
// created with these options in a target with the given default.
func (o FileOptions) ResolveOverwrite(targetDefault bool) bool {
	if o.Overwrite != nil {
		return *o.Overwrite
	}
	return targetDefault
}

// TargetName returns the selected target name, DEFAULT when none was given
func (o FileOptions) TargetName() string {
	if o.Target == "" {
		return DefaultTargetName
	}
	return o.Target
}
