package framework

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kirkepsteinify/weather-api-tests/logging"

	"github.com/fatih/color"
)

const (
	headerRuleWidth        = 50
	displayTimestampFormat = "2006-01-02 15:04:05"
)

// ConsoleReporter prints human-readable, color-coded progress to a terminal.
type ConsoleReporter struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool

	success *color.Color
	failure *color.Color
	info    *color.Color
	header  *color.Color
}

type ConsoleOptions struct {
	NoColor              bool
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func NewConsoleReporter(out io.Writer, opts ConsoleOptions) *ConsoleReporter {
	c := &ConsoleReporter{
		Out:                  out,
		DebugOutputOnFailure: opts.DebugOutputOnFailure,
		DebugOutputOnSuccess: opts.DebugOutputOnSuccess,
		success:              color.New(color.FgHiGreen),
		failure:              color.New(color.FgHiRed),
		info:                 color.New(color.FgHiYellow),
		header:               color.New(color.FgHiBlue),
	}
	if opts.NoColor {
		for _, col := range []*color.Color{c.success, c.failure, c.info, c.header} {
			col.DisableColor()
		}
	}
	return c
}

func (c *ConsoleReporter) RunStarted(info RunInfo) {
	fmt.Fprintln(c.Out)
	if info.Title != "" {
		for _, line := range banner(info.Title, info.Subtitle) {
			c.header.Fprintln(c.Out, line)
		}
		fmt.Fprintln(c.Out)
	}
	c.printInfo("Testing API at: %s", info.BaseURL)
	c.printInfo("Started at: %s", info.StartedAt.Format(displayTimestampFormat))
	if info.RunID != "" {
		c.printInfo("Run ID: %s", info.RunID)
	}
	if info.CommandLine != "" {
		c.printInfo("Command: %s", info.CommandLine)
	}
}

func (c *ConsoleReporter) StepStarted(id StepID) {
	c.printHeader(id.String())
}

func (c *ConsoleReporter) Message(id StepID, kind MessageKind, text string) {
	switch kind {
	case MessageSuccess:
		c.success.Fprintf(c.Out, "✓ %s\n", text)
	case MessageFailure:
		for i, line := range strings.Split(text, "\n") {
			if i == 0 {
				c.failure.Fprintf(c.Out, "✗ %s\n", line)
			} else {
				c.failure.Fprintf(c.Out, "  %s\n", line)
			}
		}
	case MessageInfo:
		c.printInfo("%s", text)
	default:
		fmt.Fprintln(c.Out, text)
	}
}

func (c *ConsoleReporter) StepSkipped(id StepID, reason string) {
	if reason == "" {
		c.printInfo("SKIPPED: %s", id)
	} else {
		c.printInfo("SKIPPED: %s (%s)", id, reason)
	}
}

func (c *ConsoleReporter) StepFinished(result StepResult, debugOutput logging.CapturedOutput) {
	failed := !result.OK()
	if failed && result.Critical && result.Status == StepFailed {
		c.failure.Fprintf(c.Out, "  FAILED: %s (critical, no further steps will run)\n", result.ID)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleReporter) RunFinished(results Results) {
	c.printHeader("TEST SUMMARY")
	c.success.Fprintf(c.Out, "✓ Tests passed: %d\n", results.Passed)
	c.failure.Fprintf(c.Out, "✗ Tests failed: %d\n", results.Failed)
	if results.Skipped > 0 {
		c.printInfo("Tests skipped: %d", results.Skipped)
	}
	c.printInfo("Completed at: %s", results.FinishedAt.Format(displayTimestampFormat))
	fmt.Fprintln(c.Out)
	switch {
	case results.Interrupted:
		c.failure.Fprintln(c.Out, "Tests interrupted by user")
	case results.Aborted:
		c.failure.Fprintf(c.Out, "Run aborted after critical step failure: %s\n", results.AbortedBy)
	default:
		c.success.Fprintln(c.Out, "All tests completed!")
	}
	fmt.Fprintln(c.Out)
}

func (c *ConsoleReporter) printHeader(text string) {
	rule := strings.Repeat("=", headerRuleWidth)
	fmt.Fprintln(c.Out)
	c.header.Fprintln(c.Out, rule)
	c.header.Fprintln(c.Out, text)
	c.header.Fprintln(c.Out, rule)
	fmt.Fprintln(c.Out)
}

func (c *ConsoleReporter) printInfo(format string, args ...interface{}) {
	c.info.Fprintf(c.Out, "ℹ "+format+"\n", args...)
}

func banner(lines ...string) []string {
	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	width += 4
	ret := []string{"╔" + strings.Repeat("═", width) + "╗"}
	for _, l := range lines {
		if l == "" {
			continue
		}
		pad := width - 2 - utf8.RuneCountInString(l)
		ret = append(ret, "║  "+l+strings.Repeat(" ", pad)+"║")
	}
	return append(ret, "╚"+strings.Repeat("═", width)+"╝")
}
