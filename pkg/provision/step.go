package provision

import (
	"context"
	"strings"
)

// Status is the final state of a step
type Status string

const (
	// StatusOK means the step did its work
	StatusOK Status = "ok"

	// StatusSkipped means there was nothing to do
	StatusSkipped Status = "skipped"

	// StatusFailed means the step returned an error
	StatusFailed Status = "failed"
)

// Outcome is what a successful step reports back
type Outcome struct {
	Skipped bool
	Notes   []string
}

// Done is a successful outcome
func Done(notes ...string) Outcome {
	return Outcome{Notes: notes}
}

// Skip is an outcome for a step that found nothing to do
func Skip(notes ...string) Outcome {
	return Outcome{Skipped: true, Notes: notes}
}

// Step is one named stage of the pipeline
type Step struct {
	Name        string
	Description string
	// Plan lists what the step would do, for display only
	Plan []string
	Run  func(ctx context.Context) (Outcome, error)
}

// Group returns the part of the name before ":", e.g. "clone" for
// "clone:wallpapers"
func (s Step) Group() string {
	group, _, _ := strings.Cut(s.Name, ":")
	return group
}

// Matches reports whether the step is selected by name. A bare group
// name selects every step of that group.
func (s Step) Matches(name string) bool {
	return s.Name == name || s.Group() == name
}
