package framework

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	startTime  = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	finishTime = startTime.Add(2 * time.Second)
)

func TestConsoleReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true})

	r.RunStarted(RunInfo{
		Title:     "Weather API Test Suite",
		BaseURL:   "http://localhost:5000",
		RunID:     "run-1",
		StartedAt: startTime,
	})
	id := StepID{Index: 1, Name: "HEALTH CHECK"}
	r.StepStarted(id)
	r.Message(id, MessageSuccess, "Server is healthy")
	r.Message(id, MessageDetail, "Status: OK")
	r.Message(id, MessageFailure, "first\nsecond")
	r.Message(id, MessageInfo, "note")
	r.StepFinished(StepResult{ID: id, Status: StepPassed}, nil)
	r.RunFinished(Results{Passed: 1, FinishedAt: finishTime})

	out := buf.String()
	assert.Contains(t, out, "║  Weather API Test Suite  ║")
	assert.Contains(t, out, "ℹ Testing API at: http://localhost:5000\n")
	assert.Contains(t, out, "ℹ Started at: 2024-03-01 10:00:00\n")
	assert.Contains(t, out, "ℹ Run ID: run-1\n")
	assert.Contains(t, out, "==================================================\n1. HEALTH CHECK\n")
	assert.Contains(t, out, "✓ Server is healthy\n")
	assert.Contains(t, out, "\nStatus: OK\n")
	assert.Contains(t, out, "✗ first\n  second\n")
	assert.Contains(t, out, "ℹ note\n")
	assert.Contains(t, out, "TEST SUMMARY")
	assert.Contains(t, out, "✓ Tests passed: 1\n")
	assert.Contains(t, out, "✗ Tests failed: 0\n")
	assert.Contains(t, out, "ℹ Completed at: 2024-03-01 10:00:02\n")
	assert.Contains(t, out, "All tests completed!")
	assert.NotContains(t, out, "\x1b[")
}

func TestConsoleReporterAbortAndInterrupt(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true})
	register := StepID{Index: 2, Name: "USER REGISTRATION"}

	r.StepFinished(StepResult{ID: register, Critical: true, Status: StepFailed, Err: errors.New("x")}, nil)
	r.RunFinished(Results{Passed: 1, Failed: 1, Aborted: true, AbortedBy: register})
	assert.Contains(t, buf.String(), "FAILED: 2. USER REGISTRATION (critical, no further steps will run)")
	assert.Contains(t, buf.String(), "Run aborted after critical step failure: 2. USER REGISTRATION")
	assert.NotContains(t, buf.String(), "All tests completed!")

	buf.Reset()
	r.RunFinished(Results{Interrupted: true})
	assert.Contains(t, buf.String(), "Tests interrupted by user")
}

func TestConsoleReporterDebugOutput(t *testing.T) {
	debugOutput := logging.CapturedOutput{{Time: startTime, Message: ">> GET /health"}}
	id := StepID{Index: 1, Name: "HEALTH CHECK"}

	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true, DebugOutputOnFailure: true})
	r.StepFinished(StepResult{ID: id, Status: StepPassed}, debugOutput)
	assert.Empty(t, buf.String())
	r.StepFinished(StepResult{ID: id, Status: StepFailed}, debugOutput)
	assert.Equal(t, "    DEBUG [2024-03-01 10:00:00.000] >> GET /health\n", buf.String())

	buf.Reset()
	r = NewConsoleReporter(&buf, ConsoleOptions{NoColor: true, DebugOutputOnSuccess: true})
	r.StepFinished(StepResult{ID: id, Status: StepPassed}, debugOutput)
	assert.Contains(t, buf.String(), ">> GET /health")
}

func TestConsoleReporterSkipped(t *testing.T) {
	var buf bytes.Buffer
	r := NewConsoleReporter(&buf, ConsoleOptions{NoColor: true})
	r.StepSkipped(StepID{Index: 3, Name: "USER LOGIN"}, "excluded by filter parameters")
	r.RunFinished(Results{Skipped: 1})
	assert.Contains(t, buf.String(), "ℹ SKIPPED: 3. USER LOGIN (excluded by filter parameters)\n")
	assert.Contains(t, buf.String(), "ℹ Tests skipped: 1\n")
}

func TestBanner(t *testing.T) {
	assert.Equal(t, []string{
		"╔══════════╗",
		"║  abcdef  ║",
		"║  ab      ║",
		"╚══════════╝",
	}, banner("abcdef", "ab"))
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)

	health := StepID{Index: 1, Name: "HEALTH CHECK"}
	register := StepID{Index: 2, Name: "USER REGISTRATION"}
	r.RunStarted(RunInfo{RunID: "run-1"})
	r.StepStarted(health)
	r.Message(health, MessageSuccess, "Server is healthy")
	r.StepFinished(StepResult{ID: health, Status: StepPassed}, nil)
	r.StepStarted(register)
	r.Message(register, MessageFailure, `Registration failed: {"error":"Email already exists"}`)
	r.RunFinished(Results{
		RunID:      "run-1",
		BaseURL:    "http://localhost:5000",
		StartedAt:  startTime,
		FinishedAt: finishTime,
		Passed:     1,
		Failed:     1,
		Aborted:    true,
		AbortedBy:  register,
		Steps: []StepResult{
			{ID: health, Critical: true, Status: StepPassed, Duration: 15 * time.Millisecond},
			{ID: register, Critical: true, Status: StepFailed, Err: errors.New("HTTP 409")},
		},
	})
	require.NoError(t, r.Err)

	var report JSONReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, int64(2000), report.DurationMS)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.Aborted)
	assert.Equal(t, "USER REGISTRATION", report.AbortedBy)
	require.Len(t, report.Steps, 2)
	assert.Equal(t, int64(15), report.Steps[0].DurationMS)
	assert.Equal(t, []JSONMessage{{Kind: MessageSuccess, Text: "Server is healthy"}}, report.Steps[0].Messages)
	assert.Equal(t, StepFailed, report.Steps[1].Status)
	assert.Equal(t, "HTTP 409", report.Steps[1].Error)
}

func TestMultiReporterFansOut(t *testing.T) {
	a, b := &recordingReporter{}, &recordingReporter{}
	m := MultiReporter{a, b}
	id := StepID{Index: 1, Name: "x"}
	m.RunStarted(RunInfo{RunID: "r"})
	m.StepStarted(id)
	m.Message(id, MessageInfo, "hi")
	m.StepSkipped(id, "")
	m.StepFinished(StepResult{ID: id, Status: StepPassed}, nil)
	m.RunFinished(Results{})
	assert.Equal(t, a.events, b.events)
	assert.Len(t, a.events, 6)
}
