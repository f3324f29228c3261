package framework

import (
	"encoding/json"
	"io"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/logging"
)

// JSONReporter writes a single JSON document describing the run when the run finishes. It is
// intended for CI systems that want to consume results rather than read them.
type JSONReporter struct {
	Out io.Writer

	// Err is set if writing the report failed.
	Err error

	info     RunInfo
	messages map[int][]JSONMessage
}

type JSONReport struct {
	RunID       string     `json:"runId"`
	BaseURL     string     `json:"baseUrl"`
	StartedAt   time.Time  `json:"startedAt"`
	FinishedAt  time.Time  `json:"finishedAt"`
	DurationMS  int64      `json:"durationMs"`
	Passed      int        `json:"passed"`
	Failed      int        `json:"failed"`
	Skipped     int        `json:"skipped"`
	Aborted     bool       `json:"aborted"`
	AbortedBy   string     `json:"abortedBy,omitempty"`
	Interrupted bool       `json:"interrupted"`
	Steps       []JSONStep `json:"steps"`
}

type JSONStep struct {
	Index      int           `json:"index"`
	Name       string        `json:"name"`
	Critical   bool          `json:"critical"`
	Status     StepStatus    `json:"status"`
	Error      string        `json:"error,omitempty"`
	DurationMS int64         `json:"durationMs"`
	Messages   []JSONMessage `json:"messages,omitempty"`
}

type JSONMessage struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{Out: out, messages: make(map[int][]JSONMessage)}
}

func (j *JSONReporter) RunStarted(info RunInfo) {
	j.info = info
}

func (j *JSONReporter) StepStarted(id StepID) {}

func (j *JSONReporter) Message(id StepID, kind MessageKind, text string) {
	j.messages[id.Index] = append(j.messages[id.Index], JSONMessage{Kind: kind, Text: text})
}

func (j *JSONReporter) StepSkipped(id StepID, reason string) {
	if reason != "" {
		j.Message(id, MessageInfo, reason)
	}
}

func (j *JSONReporter) StepFinished(StepResult, logging.CapturedOutput) {}

func (j *JSONReporter) RunFinished(results Results) {
	report := JSONReport{
		RunID:       results.RunID,
		BaseURL:     results.BaseURL,
		StartedAt:   results.StartedAt,
		FinishedAt:  results.FinishedAt,
		DurationMS:  results.Duration().Milliseconds(),
		Passed:      results.Passed,
		Failed:      results.Failed,
		Skipped:     results.Skipped,
		Aborted:     results.Aborted,
		Interrupted: results.Interrupted,
		Steps:       make([]JSONStep, 0, len(results.Steps)),
	}
	if results.Aborted {
		report.AbortedBy = results.AbortedBy.Name
	}
	for _, s := range results.Steps {
		step := JSONStep{
			Index:      s.ID.Index,
			Name:       s.ID.Name,
			Critical:   s.Critical,
			Status:     s.Status,
			DurationMS: s.Duration.Milliseconds(),
			Messages:   j.messages[s.ID.Index],
		}
		if s.Err != nil {
			step.Error = s.Err.Error()
		}
		report.Steps = append(report.Steps, step)
	}

	enc := json.NewEncoder(j.Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	j.Err = enc.Encode(report)
}
