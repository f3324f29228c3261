package framework

import (
	"context"
	"errors"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/logging"
)

// Step is one stage of a suite.
type Step struct {
	Name string

	// Critical steps produce data that every later step depends on; if one fails, the run
	// stops. Critical steps are never skipped by filters.
	Critical bool

	Action func(*T)
}

type RunOptions struct {
	RunID       string
	BaseURL     string
	Title       string
	Subtitle    string
	CommandLine string

	Reporter Reporter

	// Filter, if set, selects which non-critical steps run.
	Filter Filter

	// DebugLogger receives all step debug output as it happens, in addition to the
	// per-step capture that is passed to the reporter.
	DebugLogger logging.Logger

	Now func() time.Time
}

// RunSteps runs the steps in order, one at a time.
//
// A passing step increments the pass count. A failing step increments the failure count; if
// it was critical, or if it failed with an UnclassifiedError, nothing after it runs. If ctx
// is cancelled, the current step is recorded as interrupted (and not counted) and nothing
// after it runs.
func RunSteps(ctx context.Context, steps []Step, opts RunOptions) Results {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NullReporter()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	results := Results{
		RunID:     opts.RunID,
		BaseURL:   opts.BaseURL,
		StartedAt: now(),
	}
	reporter.RunStarted(RunInfo{
		RunID:       opts.RunID,
		BaseURL:     opts.BaseURL,
		Title:       opts.Title,
		Subtitle:    opts.Subtitle,
		CommandLine: opts.CommandLine,
		StartedAt:   results.StartedAt,
	})

	for i, step := range steps {
		id := StepID{Index: i + 1, Name: step.Name}

		if ctx.Err() != nil {
			results.Interrupted = true
			break
		}

		if !step.Critical && opts.Filter != nil && !opts.Filter(id) {
			results.Skipped++
			results.Steps = append(results.Steps, StepResult{ID: id, Status: StepSkipped})
			reporter.StepSkipped(id, "excluded by filter parameters")
			continue
		}

		reporter.StepStarted(id)
		t := newT(ctx, id, reporter, opts.DebugLogger)
		start := now()
		t.run(step.Action)
		result := StepResult{
			ID:       id,
			Critical: step.Critical,
			Status:   StepPassed,
			Err:      t.result(),
			Duration: now().Sub(start),
		}

		var unclassified *UnclassifiedError
		switch {
		case result.Err == nil:
			results.Passed++
		case ctx.Err() != nil && !errors.As(result.Err, &unclassified):
			result.Status = StepInterrupted
			result.Err = errors.Join(ErrInterrupted, result.Err)
			results.Interrupted = true
		default:
			result.Status = StepFailed
			results.Failed++
			if step.Critical || errors.As(result.Err, &unclassified) {
				results.Aborted = true
				results.AbortedBy = id
			}
		}

		results.Steps = append(results.Steps, result)
		reporter.StepFinished(result, t.debugLogger.Output())

		if results.Aborted || results.Interrupted {
			break
		}
	}

	results.FinishedAt = now()
	reporter.RunFinished(results)
	return results
}

// Sleep waits for d, or until ctx is done, whichever comes first. It returns ctx.Err() in the
// latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
