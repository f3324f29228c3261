package main

import (
	"fmt"
	"strings"

	"github.com/kirkepsteinify/weather-api-tests/config"
	"github.com/kirkepsteinify/weather-api-tests/framework"

	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"
)

type commandParams struct {
	cfg         config.Config
	filters     framework.RegexFilters
	jsonOutput  bool
	noColor     bool
	debug       bool
	debugAll    bool
	metricsFile string
	strict      bool
}

// flagEnvVars maps each flag that has an environment counterpart to that variable.
var flagEnvVars = map[string]string{
	"url":                    "WEATHER_API_URL",
	"timeout":                "HTTP_TIMEOUT",
	"batch-delay":            "BATCH_DELAY",
	"batch-abort-on-failure": "BATCH_ABORT_ON_FAILURE",
	"period":                 "HISTORY_PERIOD",
}

// newRootCommand builds the command line parser. Configuration is only read once the flags
// have been parsed: a flag that was given replaces its variable before anything is parsed, so
// a flag always wins over a variable, even one that is malformed.
func newRootCommand(getenv func(string) string, run func(*commandParams) error) *cobra.Command {
	p := &commandParams{}
	var flagValues config.Config

	cmd := &cobra.Command{
		Use:           "weather-api-tests",
		Short:         "Runs an end-to-end workflow against a deployed weather service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromFlags := make(map[string]string)
			for name, envVar := range flagEnvVars {
				if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
					fromFlags[envVar] = f.Value.String()
				}
			}
			cfg, err := config.Load(func(name string) string {
				if v, ok := fromFlags[name]; ok {
					return v
				}
				return getenv(name)
			})
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			p.cfg = cfg
			return run(p)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flagValues.BaseURL, "url", config.DefaultBaseURL, "base URL of the weather service (WEATHER_API_URL)")
	f.DurationVar(&flagValues.HTTPTimeout, "timeout", 0, "timeout for each HTTP request, 0 for none (HTTP_TIMEOUT)")
	f.DurationVar(&flagValues.BatchDelay, "batch-delay", config.DefaultBatchDelay,
		"pause after each batch measurement, 0 for none (BATCH_DELAY)")
	f.BoolVar(&flagValues.BatchAbortOnFailure, "batch-abort-on-failure", false,
		"fail the batch step at the first rejected measurement (BATCH_ABORT_ON_FAILURE)")
	f.StringVar(&flagValues.HistoryPeriod, "period", config.DefaultHistoryPeriod,
		fmt.Sprintf("measurement history period, one of %s (HISTORY_PERIOD)", strings.Join(config.ValidPeriods, ", ")))
	f.Var(&p.filters.MustMatch, "run", "regex pattern(s) selecting non-critical steps to run")
	f.Var(&p.filters.MustNotMatch, "skip", "regex pattern(s) selecting non-critical steps not to run")
	f.BoolVar(&p.jsonOutput, "json", false, "print a JSON report instead of console output")
	f.BoolVar(&p.noColor, "no-color", false, "disable colored output")
	f.BoolVar(&p.debug, "debug", false, "show HTTP traffic for failed steps")
	f.BoolVar(&p.debugAll, "debug-all", false, "show HTTP traffic for all steps")
	f.StringVar(&p.metricsFile, "metrics-file", "", "write Prometheus metrics for the run to this file")
	f.BoolVar(&p.strict, "strict", false, "exit with status 1 if any step failed or the run did not complete")

	return cmd
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
