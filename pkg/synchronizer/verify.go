package synchronizer

import (
	"github.com/arthur-debert/genout/pkg/errors"
)

// Drift lists the differences between an output root and a target's
// content. Files kept because their record does not allow overwriting are
// only checked for existence.
type Drift struct {
	Target string
	Root   string

	// Missing files are declared but absent
	Missing []string
	// Different files exist with content other than declared
	Different []string
	// Unexpected files exist under the root of a clean target without
	// being declared
	Unexpected []string
}

// HasDrift reports whether the root differs from the content
func (d *Drift) HasDrift() bool {
	return len(d.Missing)+len(d.Different)+len(d.Unexpected) > 0
}

// Err returns a DRIFT error describing d, or nil when there is no drift
func (d *Drift) Err() error {
	if !d.HasDrift() {
		return nil
	}
	return errors.Newf(errors.ErrDrift,
		"target %q is out of date in %s: %d missing, %d different, %d unexpected",
		d.Target, d.Root, len(d.Missing), len(d.Different), len(d.Unexpected)).
		WithDetails(map[string]interface{}{
			"target":     d.Target,
			"root":       d.Root,
			"missing":    d.Missing,
			"different":  d.Different,
			"unexpected": d.Unexpected,
		})
}

// Verify compares root with the named target's content without touching
// the disk
func (s *Synchronizer) Verify(src ContentSource, targetName, root string) (*Drift, error) {
	plan, err := s.Plan(src, targetName, root)
	if err != nil {
		return nil, err
	}
	return driftFromPlan(plan), nil
}

func driftFromPlan(plan *Plan) *Drift {
	d := &Drift{Target: plan.Target.Name, Root: plan.Root}
	for _, op := range plan.Files {
		switch op.Type {
		case OperationCreateFile:
			d.Missing = append(d.Missing, op.Path)
		case OperationUpdateFile:
			d.Different = append(d.Different, op.Path)
		}
	}
	for _, op := range plan.Removals {
		if op.Type == OperationRemoveFile {
			d.Unexpected = append(d.Unexpected, op.Path)
		}
	}
	return d
}
