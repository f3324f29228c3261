package weathertests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/require"
)

type receivedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	At     time.Time
}

// fakeService imitates the weather service. Routes are keyed by "METHOD /path"; anything
// not routed gets a 404.
type fakeService struct {
	routes   map[string]http.Handler
	received []receivedRequest
	lock     sync.Mutex
}

func jsonHandler(status int, body string) http.Handler {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	return httphelpers.HandlerWithResponse(status, headers, []byte(body))
}

const historyBody = `{"count":5,"measurements":[
	{"temperature":20.5,"humidity":70.5,"pressure":1015.2},
	{"temperature":23.1,"humidity":68,"pressure":1014},
	{"temperature":21.8,"humidity":62.5,"pressure":1012.8},
	{"temperature":22.5,"humidity":65,"pressure":1013.25},
	{"temperature":19,"humidity":60,"pressure":1011}]}`

func newFakeService() *fakeService {
	return &fakeService{
		routes: map[string]http.Handler{
			"GET /health":                       jsonHandler(200, `{"status":"OK","database":"Connected"}`),
			"POST /api/auth/register":           jsonHandler(201, `{"message":"User registered","user":{"id":"u1"}}`),
			"POST /api/auth/login":              jsonHandler(200, `{"token":"tok","user":{"id":"u1","role":"user"}}`),
			"POST /api/stations":                jsonHandler(201, `{"station":{"id":"s1"}}`),
			"GET /api/stations":                 jsonHandler(200, `{"stations":[{"id":"s1","name":"Test Station t2"}]}`),
			"POST /api/measurements":            jsonHandler(201, `{"measurement":{"temperature":22.5,"humidity":65,"pressure":1013.25}}`),
			"GET /api/stations/s1/measurements": jsonHandler(200, historyBody),
		},
	}
}

func (f *fakeService) route(key string, h http.Handler) *fakeService {
	f.routes[key] = h
	return f
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.lock.Lock()
	f.received = append(f.received, receivedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
		At:     time.Now(),
	})
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.lock.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	h.ServeHTTP(w, r)
}

func (f *fakeService) requests() []receivedRequest {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]receivedRequest(nil), f.received...)
}

func (f *fakeService) requestsTo(method, path string) []receivedRequest {
	var ret []receivedRequest
	for _, r := range f.requests() {
		if r.Method == method && r.Path == path {
			ret = append(ret, r)
		}
	}
	return ret
}

func (f *fakeService) paths() []string {
	var ret []string
	for _, r := range f.requests() {
		ret = append(ret, r.Method+" "+r.Path)
	}
	return ret
}

func decodeBody(t *testing.T, r receivedRequest) map[string]interface{} {
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &m))
	return m
}

type suiteRun struct {
	results framework.Results
	output  string
}

func runAgainst(ctx context.Context, svc http.Handler, opts SuiteOptions, runOpts framework.RunOptions) suiteRun {
	if opts.Tokens == nil {
		opts.Tokens = &framework.SequenceTokens{Prefix: "t"}
	}
	if opts.Batch.Delay == 0 {
		opts.Batch.Delay = NoBatchDelay
	}
	var buf bytes.Buffer
	reporter := framework.NewConsoleReporter(&buf, framework.ConsoleOptions{NoColor: true})
	if runOpts.Reporter != nil {
		runOpts.Reporter = framework.MultiReporter{reporter, runOpts.Reporter}
	} else {
		runOpts.Reporter = reporter
	}

	var run suiteRun
	httphelpers.WithServer(svc, func(server *httptest.Server) {
		run.results = RunTestSuite(ctx, apiclient.New(server.URL, 0), opts, runOpts)
	})
	run.output = buf.String()
	return run
}

func runSuite(svc http.Handler) suiteRun {
	return runAgainst(context.Background(), svc, SuiteOptions{}, framework.RunOptions{})
}

func statuses(results framework.Results) []framework.StepStatus {
	var ret []framework.StepStatus
	for _, s := range results.Steps {
		ret = append(ret, s.Status)
	}
	return ret
}
