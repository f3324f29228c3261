package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"
	"github.com/kirkepsteinify/weather-api-tests/logging"
	"github.com/kirkepsteinify/weather-api-tests/metrics"
	"github.com/kirkepsteinify/weather-api-tests/weathertests"

	"github.com/google/uuid"
)

const appName = "weather-api-tests"

var errRunNotOK = errors.New("test run did not pass")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the whole program apart from signal setup, returning the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(os.Getenv, func(p *commandParams) error {
		return runTests(ctx, p, args, stdout, stderr)
	})
	cmd.SetArgs(args[1:])
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errRunNotOK) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func runTests(ctx context.Context, p *commandParams, args []string, stdout, stderr io.Writer) (err error) {
	level := p.cfg.LogLevel
	if p.debugAll {
		level = slog.LevelDebug
	}
	logger := logging.New(stderr, logging.Options{
		Level:   level,
		JSON:    p.cfg.LogFormat == "json",
		NoColor: p.noColor,
	}, appName)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected error", "error", r)
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	logger.Info("starting test run",
		"url", p.cfg.BaseURL,
		"timeout", p.cfg.HTTPTimeout,
		"batch_delay", p.cfg.BatchDelay,
		"period", p.cfg.HistoryPeriod)

	var reporters framework.MultiReporter
	if p.jsonOutput {
		reporters = append(reporters, framework.NewJSONReporter(stdout))
	} else {
		reporters = append(reporters, framework.NewConsoleReporter(stdout, framework.ConsoleOptions{
			NoColor:              p.noColor,
			DebugOutputOnFailure: p.debug || p.debugAll,
			DebugOutputOnSuccess: p.debugAll,
		}))
		framework.PrintFilterDescription(stdout, p.filters)
	}
	var recorder *metrics.Recorder
	if p.metricsFile != "" {
		recorder = metrics.NewRecorder()
		reporters = append(reporters, recorder)
	}

	var commandLine commandBuilder
	commandLine.add(args...)

	runOpts := framework.RunOptions{
		RunID:       runID,
		BaseURL:     p.cfg.BaseURL,
		CommandLine: commandLine.String(),
		Reporter:    reporters,
	}
	if p.filters.IsDefined() {
		runOpts.Filter = p.filters.AsFilter
	}
	if p.debugAll {
		runOpts.DebugLogger = logging.FromSlog(logger)
	}

	results := weathertests.RunTestSuite(ctx,
		apiclient.New(p.cfg.BaseURL, p.cfg.HTTPTimeout),
		weathertests.SuiteOptions{
			Tokens: &framework.ClockTokens{},
			Batch: weathertests.BatchPolicy{
				Delay:          batchDelay(p.cfg.BatchDelay),
				AbortOnFailure: p.cfg.BatchAbortOnFailure,
			},
			HistoryPeriod: p.cfg.HistoryPeriod,
		},
		runOpts,
	)

	logger.Info("test run finished",
		"passed", results.Passed,
		"failed", results.Failed,
		"skipped", results.Skipped,
		"aborted", results.Aborted,
		"interrupted", results.Interrupted,
		"duration", results.Duration())

	if recorder != nil {
		if err := recorder.WriteTextfile(p.metricsFile); err != nil {
			logger.Error("could not write metrics file", "path", p.metricsFile, "error", err)
			return fmt.Errorf("writing metrics file: %w", err)
		}
	}

	if p.strict && !results.OK() {
		return errRunNotOK
	}
	return nil
}

// batchDelay maps a configured zero, which means no pause, onto the suite's own setting for
// that; the suite treats an unset delay as its default.
func batchDelay(d time.Duration) time.Duration {
	if d == 0 {
		return weathertests.NoBatchDelay
	}
	return d
}
