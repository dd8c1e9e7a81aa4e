// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/arthur-debert/dotsetup/pkg/provision"
	"github.com/arthur-debert/dotsetup/pkg/ui/markdown"
)

// Message constants
const (
	MsgDryRunNotice = "DRY RUN MODE - No changes were made"
	MsgSummary      = "%d ok, %d skipped, %d failed (%s)\n"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderReport renders one line per step followed by a summary
func (r *Renderer) RenderReport(report *provision.Report) error {
	tw := tabwriter.NewWriter(r.output, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tSTATUS\tDURATION\tDETAILS")
	for _, res := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Step, res.Status, Round(res.Duration), Details(res))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(r.output, "\n"+MsgSummary,
		report.Count(provision.StatusOK),
		report.Count(provision.StatusSkipped),
		report.Count(provision.StatusFailed),
		Round(report.Duration()))
	if err != nil {
		return err
	}
	if report.DryRun {
		_, err = fmt.Fprintln(r.output, MsgDryRunNotice)
	}
	return err
}

// RenderPlan writes the plan as raw markdown
func (r *Renderer) RenderPlan(plan *provision.Plan) error {
	_, err := io.WriteString(r.output, markdown.Plan(plan))
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// Details is the one-line description of a step result
func Details(res provision.StepResult) string {
	if res.Status == provision.StatusFailed {
		return res.Error
	}
	return strings.Join(res.Notes, "; ")
}

// Round shortens a duration for display
func Round(d time.Duration) time.Duration {
	if d < time.Millisecond {
		return d.Round(time.Microsecond)
	}
	return d.Round(time.Millisecond)
}
