// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotsetup/pkg/cobrax/topics"
	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/arthur-debert/dotsetup/pkg/style"
	"github.com/arthur-debert/dotsetup/pkg/ui/markdown"
	"github.com/arthur-debert/dotsetup/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss and pterm
type Renderer struct {
	output   io.Writer
	markdown topics.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, markdown: topics.NewGlamourRenderer()}
}

// RenderReport renders a table of step results, the failures in detail
// and a summary box
func (r *Renderer) RenderReport(report *provision.Report) error {
	var b strings.Builder

	title := "dotsetup"
	if report.DryRun {
		title += style.MutedStyle.Render(" (dry run)")
	}
	b.WriteString(style.TitleStyle.Render(title) + "\n\n")

	data := pterm.TableData{{"", "Step", "Status", "Duration", "Details"}}
	for _, res := range report.Results {
		details := strings.Join(res.Notes, "; ")
		if res.Status == provision.StatusFailed {
			details = style.ErrorStyle.Render(res.Code)
		}
		data = append(data, []string{
			style.StatusIndicator(res.Status),
			style.StepStyle.Render(res.Step),
			style.StatusBadge(res.Status),
			style.MutedStyle.Render(text.Round(res.Duration).String()),
			details,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	b.WriteString(table + "\n")

	var failures []string
	for _, res := range report.Results {
		if res.Status == provision.StatusFailed {
			failures = append(failures, fmt.Sprintf("%s %s\n%s",
				style.ErrorIndicator,
				style.StepStyle.Render(res.Step),
				style.Indent(res.Error, 1)))
		}
	}
	if len(failures) > 0 {
		b.WriteString("\n" + strings.Join(failures, "\n") + "\n")
	}

	summary := fmt.Sprintf("%s %d ok   %s %d skipped   %s %d failed   %s",
		style.SuccessIndicator, report.Count(provision.StatusOK),
		style.SkippedIndicator, report.Count(provision.StatusSkipped),
		style.ErrorIndicator, report.Count(provision.StatusFailed),
		style.MutedStyle.Render(text.Round(report.Duration()).String()))
	b.WriteString("\n" + style.BoxStyle.Render(summary) + "\n")
	if report.DryRun {
		b.WriteString(style.WarningStyle.Render(text.MsgDryRunNotice) + "\n")
	}

	_, err = io.WriteString(r.output, b.String())
	return err
}

// RenderPlan renders the plan markdown with glamour
func (r *Renderer) RenderPlan(plan *provision.Plan) error {
	_, err := io.WriteString(r.output, r.markdown.Render(markdown.Plan(plan), ".md"))
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %s\n", style.ErrorIndicator, style.ErrorStyle.Render(err.Error()))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
