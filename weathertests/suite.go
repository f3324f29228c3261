package weathertests

import (
	"context"
	"fmt"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"
)

const (
	SuiteTitle    = "KirkEpsteinify API Test Suite"
	SuiteSubtitle = "Backend Testing Tool"

	DefaultHistoryPeriod = "24h"
)

type SuiteOptions struct {
	// Tokens makes emails, usernames, and station names unique. Defaults to the clock.
	Tokens framework.TokenSource

	Batch BatchPolicy

	// HistoryPeriod is passed to the history query. Defaults to DefaultHistoryPeriod.
	HistoryPeriod string
}

// Steps returns the workflow in the order it must run. Handles produced by earlier steps are
// shared with later ones through the closures, so the same slice must not be run twice.
func Steps(api *apiclient.Client, opts SuiteOptions) []framework.Step {
	tokens := opts.Tokens
	if tokens == nil {
		tokens = &framework.ClockTokens{}
	}
	period := opts.HistoryPeriod
	if period == "" {
		period = DefaultHistoryPeriod
	}

	var (
		user    UserHandle
		creds   Credentials
		station StationHandle
	)

	return []framework.Step{
		{
			Name:     "HEALTH CHECK",
			Critical: true,
			Action:   func(t *framework.T) { CheckHealth(t, api) },
		},
		{
			Name:     "USER REGISTRATION",
			Critical: true,
			Action:   func(t *framework.T) { user, creds = RegisterUser(t, api, tokens) },
		},
		{
			Name:   "USER LOGIN",
			Action: func(t *framework.T) { Login(t, api, creds) },
		},
		{
			Name:     "ADD WEATHER STATION",
			Critical: true,
			Action:   func(t *framework.T) { station = AddStation(t, api, user, tokens) },
		},
		{
			Name:   "GET USER STATIONS",
			Action: func(t *framework.T) { ListStations(t, api, user) },
		},
		{
			Name:   "POST MEASUREMENT",
			Action: func(t *framework.T) { PostMeasurement(t, api, station) },
		},
		{
			Name:   "POST MULTIPLE MEASUREMENTS",
			Action: func(t *framework.T) { PostMeasurementBatch(t, api, station, BatchSamples, opts.Batch) },
		},
		{
			Name:   fmt.Sprintf("GET MEASUREMENTS HISTORY (%s)", period),
			Action: func(t *framework.T) { GetMeasurementHistory(t, api, station, period) },
		},
	}
}

// RunTestSuite runs the whole workflow against the service behind api.
func RunTestSuite(
	ctx context.Context,
	api *apiclient.Client,
	opts SuiteOptions,
	runOpts framework.RunOptions,
) framework.Results {
	if runOpts.Title == "" {
		runOpts.Title = SuiteTitle
		runOpts.Subtitle = SuiteSubtitle
	}
	if runOpts.BaseURL == "" {
		runOpts.BaseURL = api.BaseURL()
	}
	return framework.RunSteps(ctx, Steps(api, opts), runOpts)
}
