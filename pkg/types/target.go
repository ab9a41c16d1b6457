package types

// DefaultTargetName is the reserved name of the implicit target every
// content registry starts with. It cannot be registered explicitly.
const DefaultTargetName = "DEFAULT"

// Target identifies an output destination of a generation session.
type Target struct {
	// Name is unique across the registry's lifetime
	Name string

	// DefaultOverwrite is used when a CreateFile call does not say whether an
	// existing file on disk may be replaced
	DefaultOverwrite bool

	// Clean marks the target's content map as the complete desired state of
	// its output root: anything else found there is removed on sync
	Clean bool
}

// DefaultTarget returns the implicit target: overwriting, not clean.
func DefaultTarget() Target {
	return Target{
		Name:             DefaultTargetName,
		DefaultOverwrite: true,
		Clean:            false,
	}
}

// IsDefault reports whether t is the implicit default target
func (t Target) IsDefault() bool {
	return t.Name == DefaultTargetName
}
