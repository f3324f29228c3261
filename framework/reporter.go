package framework

import (
	"time"

	"github.com/kirkepsteinify/weather-api-tests/logging"
)

type RunInfo struct {
	RunID       string
	BaseURL     string
	Title       string
	Subtitle    string
	CommandLine string
	StartedAt   time.Time
}

// Reporter receives everything that happens during a run, in order. Implementations are only
// ever called from the goroutine that is running the steps.
type Reporter interface {
	RunStarted(info RunInfo)
	StepStarted(id StepID)
	Message(id StepID, kind MessageKind, text string)
	StepSkipped(id StepID, reason string)
	StepFinished(result StepResult, debugOutput logging.CapturedOutput)
	RunFinished(results Results)
}

type nullReporter struct{}

func NullReporter() Reporter { return nullReporter{} }

func (n nullReporter) RunStarted(RunInfo)                              {}
func (n nullReporter) StepStarted(StepID)                              {}
func (n nullReporter) Message(StepID, MessageKind, string)             {}
func (n nullReporter) StepSkipped(StepID, string)                      {}
func (n nullReporter) StepFinished(StepResult, logging.CapturedOutput) {}
func (n nullReporter) RunFinished(Results)                             {}

// MultiReporter passes every call on to each of its reporters.
type MultiReporter []Reporter

func (m MultiReporter) RunStarted(info RunInfo) {
	for _, r := range m {
		r.RunStarted(info)
	}
}

func (m MultiReporter) StepStarted(id StepID) {
	for _, r := range m {
		r.StepStarted(id)
	}
}

func (m MultiReporter) Message(id StepID, kind MessageKind, text string) {
	for _, r := range m {
		r.Message(id, kind, text)
	}
}

func (m MultiReporter) StepSkipped(id StepID, reason string) {
	for _, r := range m {
		r.StepSkipped(id, reason)
	}
}

func (m MultiReporter) StepFinished(result StepResult, debugOutput logging.CapturedOutput) {
	for _, r := range m {
		r.StepFinished(result, debugOutput)
	}
}

func (m MultiReporter) RunFinished(results Results) {
	for _, r := range m {
		r.RunFinished(results)
	}
}
