package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arthur-debert/genout/pkg/core"
	"github.com/arthur-debert/genout/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Renderer writes command results in one output format
type Renderer interface {
	RenderSession(result *core.SessionResult) error
	RenderTargets(targets []core.TargetInfo) error
	RenderError(err error) error
}

// NewRenderer returns the renderer of format writing to w. FormatAuto is
// treated as plain text; callers resolve it first with Resolve.
func NewRenderer(w io.Writer, format Format) Renderer {
	switch format {
	case FormatJSON:
		return &jsonRenderer{w: w}
	case FormatTerminal:
		return &textRenderer{w: w, styled: true}
	default:
		return &textRenderer{w: w}
	}
}

// textRenderer renders human readable output, styled for terminals or plain
type textRenderer struct {
	w      io.Writer
	styled bool
}

func (r *textRenderer) paint(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

func (r *textRenderer) status(word string) string {
	padded := fmt.Sprintf("%-10s", word)
	if !r.styled {
		return padded
	}
	return statusStyle(word).Sprint(padded)
}

func (r *textRenderer) RenderSession(result *core.SessionResult) error {
	var b strings.Builder

	title := string(result.Mode)
	if result.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(&b, "%s %s\n", r.paint(TitleStyle, title), r.paint(MutedStyle, result.SessionID))

	if len(result.Targets) == 0 {
		b.WriteString(r.paint(MutedStyle, "no generated content") + "\n")
	}

	var counts [5]int
	for _, t := range result.Targets {
		fmt.Fprintf(&b, "\n%s -> %s\n", r.paint(TargetStyle, t.Target.Name), r.paint(PathStyle, t.Root))
		switch {
		case t.Report != nil:
			rows := r.reportRows(t)
			counts[0] += len(t.Report.Created)
			counts[1] += len(t.Report.Updated)
			counts[2] += len(t.Report.Unchanged)
			counts[3] += len(t.Report.Preserved)
			counts[4] += len(t.Report.Removed)
			if len(rows) == 0 {
				b.WriteString("  " + r.paint(MutedStyle, "nothing to do") + "\n")
			}
			for _, row := range rows {
				b.WriteString(row)
			}
		case t.Drift != nil:
			if !t.Drift.HasDrift() {
				b.WriteString("  " + r.paint(SuccessStyle, "up to date") + "\n")
				continue
			}
			r.writeGroup(&b, "missing", t.Drift.Missing)
			r.writeGroup(&b, "different", t.Drift.Different)
			r.writeGroup(&b, "unexpected", t.Drift.Unexpected)
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d documents, %d targets", len(result.Documents), len(result.Targets))
	if result.Mode == core.ModeSync {
		summary += fmt.Sprintf(", %d created, %d updated, %d unchanged, %d preserved, %d removed",
			counts[0], counts[1], counts[2], counts[3], counts[4])
	}
	summary += fmt.Sprintf(" in %s", result.Duration.Round(time.Millisecond))
	b.WriteString(r.paint(MutedStyle, summary) + "\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

// reportRows lists every file of a report that is not unchanged
func (r *textRenderer) reportRows(t core.TargetResult) []string {
	var rows []string
	add := func(word string, paths []string) {
		for _, p := range paths {
			rows = append(rows, fmt.Sprintf("  %s %s\n", r.status(word), p))
		}
	}
	add("created", t.Report.Created)
	add("updated", t.Report.Updated)
	add("preserved", t.Report.Preserved)
	add("removed", t.Report.Removed)
	return rows
}

func (r *textRenderer) writeGroup(b *strings.Builder, word string, paths []string) {
	for _, p := range paths {
		fmt.Fprintf(b, "  %s %s\n", r.status(word), p)
	}
}

func (r *textRenderer) RenderTargets(targets []core.TargetInfo) error {
	data := pterm.TableData{{"TARGET", "OVERWRITE", "CLEAN", "OUTPUT"}}
	for _, t := range targets {
		data = append(data, []string{
			t.Target.Name,
			yesNo(t.Target.DefaultOverwrite),
			yesNo(t.Target.Clean),
			t.Root,
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render targets")
	}
	_, err = fmt.Fprintln(r.w, out)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.w, r.paint(ErrorStyle, "error:"), err.Error())
	return werr
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
