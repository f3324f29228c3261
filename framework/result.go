package framework

import (
	"fmt"
	"time"
)

type StepID struct {
	Index int
	Name  string
}

func (id StepID) String() string {
	return fmt.Sprintf("%d. %s", id.Index, id.Name)
}

type StepStatus string

const (
	StepPassed      StepStatus = "passed"
	StepFailed      StepStatus = "failed"
	StepSkipped     StepStatus = "skipped"
	StepInterrupted StepStatus = "interrupted"
)

type StepResult struct {
	ID       StepID
	Critical bool
	Status   StepStatus
	Err      error
	Duration time.Duration
}

func (r StepResult) OK() bool {
	return r.Status == StepPassed
}

// Results describes a whole run. Steps holds only the steps that were reached; anything after
// an abort or an interruption does not appear.
type Results struct {
	RunID      string
	BaseURL    string
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []StepResult

	Passed  int
	Failed  int
	Skipped int

	// Aborted is true if the run stopped early because a critical step failed, or because a
	// step failed in a way that could not be classified. AbortedBy is that step.
	Aborted   bool
	AbortedBy StepID

	Interrupted bool
}

func (r Results) OK() bool {
	return r.Failed == 0 && !r.Aborted && !r.Interrupted
}

func (r Results) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
