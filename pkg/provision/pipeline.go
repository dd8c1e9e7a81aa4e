package provision

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/arthur-debert/dotsetup/pkg/errors"
	"github.com/arthur-debert/dotsetup/pkg/logging"
	"github.com/rs/zerolog"
)

// Pipeline runs steps in order, continuing past failures
type Pipeline struct {
	steps  []Step
	logger zerolog.Logger
	dryRun bool
}

// NewPipeline creates a pipeline over steps
func NewPipeline(logger zerolog.Logger, steps ...Step) *Pipeline {
	return &Pipeline{steps: steps, logger: logger}
}

// SetDryRun marks reports produced by Run as dry runs
func (p *Pipeline) SetDryRun(dryRun bool) *Pipeline {
	p.dryRun = dryRun
	return p
}

// Steps returns the steps in execution order
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Names returns the step names in execution order
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.steps))
	for _, s := range p.steps {
		names = append(names, s.Name)
	}
	return names
}

// Only returns a pipeline restricted to the selected steps, keeping the
// original order. Every name must select at least one step.
func (p *Pipeline) Only(names ...string) (*Pipeline, error) {
	if len(names) == 0 {
		return p, nil
	}
	if err := p.checkNames(names); err != nil {
		return nil, err
	}
	return p.filter(func(s Step) bool { return matchesAny(s, names) }), nil
}

// Skip returns a pipeline without the selected steps. Unknown names are
// logged and ignored.
func (p *Pipeline) Skip(names ...string) *Pipeline {
	if len(names) == 0 {
		return p
	}
	if err := p.checkNames(names); err != nil {
		p.logger.Warn().Err(err).Msg("Ignoring unknown steps in skip list")
	}
	return p.filter(func(s Step) bool { return !matchesAny(s, names) })
}

func (p *Pipeline) filter(keep func(Step) bool) *Pipeline {
	out := &Pipeline{logger: p.logger, dryRun: p.dryRun}
	for _, s := range p.steps {
		if keep(s) {
			out.steps = append(out.steps, s)
		}
	}
	return out
}

func (p *Pipeline) checkNames(names []string) error {
	var unknown []string
	for _, name := range names {
		found := false
		for _, s := range p.steps {
			if s.Matches(name) {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown step(s): %s", strings.Join(unknown, ", ")).
		WithDetail("unknown", unknown).
		WithDetail("available", p.Names())
}

func matchesAny(s Step, names []string) bool {
	for _, name := range names {
		if s.Matches(name) {
			return true
		}
	}
	return false
}

// Run executes every step and returns the report. Step failures are
// logged and recorded; they never stop the pipeline. Once ctx is done the
// remaining steps are recorded as cancelled without running.
func (p *Pipeline) Run(ctx context.Context) *Report {
	report := &Report{StartTime: time.Now(), DryRun: p.dryRun}
	p.logger.Info().Int("steps", len(p.steps)).Bool("dryRun", p.dryRun).Msg("Starting provisioning")

	for _, step := range p.steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err := errors.Wrap(ctxErr, errors.ErrCancelled, "not started")
			p.logger.Error().Str("step", step.Name).Str("code", string(errors.ErrCancelled)).Msg("Step cancelled")
			report.Results = append(report.Results, newStepResult(step.Name, Outcome{}, err, 0))
			continue
		}
		report.Results = append(report.Results, p.runStep(ctx, step))
	}

	report.EndTime = time.Now()
	p.logger.Info().
		Int("ok", report.Count(StatusOK)).
		Int("skipped", report.Count(StatusSkipped)).
		Int("failed", report.Count(StatusFailed)).
		Dur("duration", report.Duration()).
		Msg("Provisioning finished")
	return report
}

func (p *Pipeline) runStep(ctx context.Context, step Step) StepResult {
	logger := p.logger.With().Str("step", step.Name).Logger()
	done := logging.LogOperationStart(logger, step.Name)
	defer done()

	logger.Info().Str("description", step.Description).Msg("Starting step")
	start := time.Now()
	outcome, err := safeRun(ctx, step, logger)
	result := newStepResult(step.Name, outcome, err, time.Since(start))

	switch result.Status {
	case StatusFailed:
		logger.Error().
			Err(err).
			Str("code", result.Code).
			Interface("details", errors.GetErrorDetails(err)).
			Msg("Step failed, continuing")
	case StatusSkipped:
		logger.Info().Strs("notes", result.Notes).Msg("Step skipped")
	default:
		logger.Info().Strs("notes", result.Notes).Dur("duration", result.Duration).Msg("Step completed")
	}
	return result
}

// safeRun converts a panic inside the step into an UNEXPECTED error
func safeRun(ctx context.Context, step Step, logger zerolog.Logger) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug().Str("stack", string(debug.Stack())).Msg("Recovered panic")
			outcome = Outcome{}
			err = errors.New(errors.ErrUnexpected, fmt.Sprintf("step %s panicked: %v", step.Name, r)).
				WithDetail("panic", fmt.Sprint(r))
		}
	}()
	if step.Run == nil {
		return Outcome{}, errors.Newf(errors.ErrInvalidInput, "step %s has nothing to run", step.Name)
	}
	return step.Run(ctx)
}
