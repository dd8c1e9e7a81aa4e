package provision

import (
	"time"

	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// StepResult records how a single step ended
type StepResult struct {
	Step     string        `json:"step" yaml:"step"`
	Status   Status        `json:"status" yaml:"status"`
	Code     string        `json:"code,omitempty" yaml:"code,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
	Notes    []string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Err is the error returned by the step
	Err error `json:"-" yaml:"-"`
}

// Report is the result of a pipeline run
type Report struct {
	StartTime time.Time    `json:"start_time" yaml:"start_time"`
	EndTime   time.Time    `json:"end_time" yaml:"end_time"`
	DryRun    bool         `json:"dry_run" yaml:"dry_run"`
	Results   []StepResult `json:"results" yaml:"results"`
}

func newStepResult(name string, outcome Outcome, err error, d time.Duration) StepResult {
	r := StepResult{Step: name, Notes: outcome.Notes, Duration: d}
	switch {
	case err != nil:
		r.Status = StatusFailed
		r.Err = err
		r.Error = err.Error()
		r.Code = string(errors.GetErrorCode(err))
	case outcome.Skipped:
		r.Status = StatusSkipped
	default:
		r.Status = StatusOK
	}
	return r
}

// Count returns how many steps ended with status
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any step failed
func (r *Report) Failed() bool {
	return r.Count(StatusFailed) > 0
}

// Duration is the wall time of the whole run
func (r *Report) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Result returns the result of the named step
func (r *Report) Result(step string) (StepResult, bool) {
	for _, res := range r.Results {
		if res.Step == step {
			return res, true
		}
	}
	return StepResult{}, false
}
