package synchronizer

// Report summarizes a synchronization. Paths are relative to Root and listed
// in plan order.
type Report struct {
	Target string
	Root   string
	DryRun bool

	Created   []string
	Updated   []string
	Unchanged []string
	Preserved []string
	Removed   []string
}

// NewReport builds the report of plan, as if it had been fully applied
func NewReport(plan *Plan, dryRun bool) *Report {
	r := &Report{
		Target: plan.Target.Name,
		Root:   plan.Root,
		DryRun: dryRun,
	}
	for _, op := range plan.Files {
		switch op.Type {
		case OperationCreateFile:
			r.Created = append(r.Created, op.Path)
		case OperationUpdateFile:
			r.Updated = append(r.Updated, op.Path)
		case OperationUnchanged:
			r.Unchanged = append(r.Unchanged, op.Path)
		case OperationPreserve:
			r.Preserved = append(r.Preserved, op.Path)
		}
	}
	for _, op := range plan.Removals {
		if op.Type == OperationRemoveFile {
			r.Removed = append(r.Removed, op.Path)
		}
	}
	return r
}

// Changed reports whether anything was written or removed
func (r *Report) Changed() bool {
	return len(r.Created)+len(r.Updated)+len(r.Removed) > 0
}
