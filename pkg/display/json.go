package display

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/genout/pkg/core"
	"github.com/arthur-debert/genout/pkg/errors"
)

// jsonRenderer renders machine-readable output
type jsonRenderer struct {
	w io.Writer
}

type jsonTarget struct {
	Target    string   `json:"target"`
	Root      string   `json:"root"`
	Files     int      `json:"files"`
	Created   []string `json:"created,omitempty"`
	Updated   []string `json:"updated,omitempty"`
	Unchanged []string `json:"unchanged,omitempty"`
	Preserved []string `json:"preserved,omitempty"`
	Removed   []string `json:"removed,omitempty"`

	Missing    []string `json:"missing,omitempty"`
	Different  []string `json:"different,omitempty"`
	Unexpected []string `json:"unexpected,omitempty"`
}

type jsonSession struct {
	SessionID  string       `json:"session_id"`
	Mode       string       `json:"mode"`
	DryRun     bool         `json:"dry_run"`
	Drift      bool         `json:"drift"`
	Documents  []string     `json:"documents"`
	Targets    []jsonTarget `json:"targets"`
	DurationMS int64        `json:"duration_ms"`
}

type jsonTargetInfo struct {
	Name      string `json:"name"`
	Overwrite bool   `json:"overwrite"`
	Clean     bool   `json:"clean"`
	Output    string `json:"output"`
}

type jsonError struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (r *jsonRenderer) encode(v interface{}) error {
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
	}
	return nil
}

func (r *jsonRenderer) RenderSession(result *core.SessionResult) error {
	out := jsonSession{
		SessionID:  result.SessionID,
		Mode:       string(result.Mode),
		DryRun:     result.DryRun,
		Drift:      result.HasDrift(),
		Documents:  result.Documents,
		Targets:    make([]jsonTarget, 0, len(result.Targets)),
		DurationMS: result.Duration.Milliseconds(),
	}
	if out.Documents == nil {
		out.Documents = []string{}
	}
	for _, t := range result.Targets {
		jt := jsonTarget{Target: t.Target.Name, Root: t.Root, Files: t.Files}
		if t.Report != nil {
			jt.Created = t.Report.Created
			jt.Updated = t.Report.Updated
			jt.Unchanged = t.Report.Unchanged
			jt.Preserved = t.Report.Preserved
			jt.Removed = t.Report.Removed
		}
		if t.Drift != nil {
			jt.Missing = t.Drift.Missing
			jt.Different = t.Drift.Different
			jt.Unexpected = t.Drift.Unexpected
		}
		out.Targets = append(out.Targets, jt)
	}
	return r.encode(out)
}

func (r *jsonRenderer) RenderTargets(targets []core.TargetInfo) error {
	out := make([]jsonTargetInfo, 0, len(targets))
	for _, t := range targets {
		out = append(out, jsonTargetInfo{
			Name:      t.Target.Name,
			Overwrite: t.Target.DefaultOverwrite,
			Clean:     t.Target.Clean,
			Output:    t.Root,
		})
	}
	return r.encode(out)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encode(jsonError{
		Error:   err.Error(),
		Code:    string(errors.GetErrorCode(err)),
		Details: errors.GetErrorDetails(err),
	})
}
