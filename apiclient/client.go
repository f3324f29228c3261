// Package apiclient is a thin JSON-over-HTTP adapter for the weather service under test.
//
// It never retries and never interprets status codes on its own: every response the service
// sends back is returned to the caller, who decides what counts as success.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/logging"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const maxLoggedBodyLength = 2000

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Response is a response from the service, whatever its status code.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte

	// JSON is the parsed body, or a null value if the body was empty or not valid JSON.
	JSON ldvalue.Value
}

// New creates a Client. A zero timeout leaves the transport defaults in place.
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, logger logging.Logger) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, logger)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, logger logging.Logger) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, logger)
}

// Request sends a request to a path relative to the base URL. If body is non-nil it is
// marshaled as JSON.
//
// The only errors returned are *TransportError, or a marshaling error for a body that
// cannot be represented as JSON.
func (c *Client) Request(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	logger logging.Logger,
) (*Response, error) {
	if logger == nil {
		logger = logging.NullLogger()
	}
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		logger.Printf(">> %s %s %s", method, url, string(data))
		bodyReader = bytes.NewReader(data)
	} else {
		logger.Printf(">> %s %s", method, url)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Printf("<< error: %s", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Printf("<< HTTP %d, error reading body: %s", resp.StatusCode, err)
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("error reading response body: %w", err)}
	}
	logger.Printf("<< HTTP %d in %s: %s", resp.StatusCode, time.Since(start).Round(time.Millisecond), truncate(string(data)))

	r := &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       data,
	}
	if len(data) > 0 {
		var parsed ldvalue.Value
		if err := json.Unmarshal(data, &parsed); err == nil {
			r.JSON = parsed
		}
	}
	return r, nil
}

// ExpectStatus returns an *UnexpectedStatusError if the status code is not the expected one.
func (r *Response) ExpectStatus(expected int) error {
	if r.StatusCode == expected {
		return nil
	}
	return &UnexpectedStatusError{
		Method:   r.Method,
		Path:     r.Path,
		Expected: expected,
		Actual:   r.StatusCode,
		Body:     r.BodyString(),
	}
}

// BodyString returns the body in compact form if it was JSON, or as raw text otherwise.
func (r *Response) BodyString() string {
	if !r.JSON.IsNull() {
		return r.JSON.JSONString()
	}
	return strings.TrimSpace(string(r.Body))
}

func truncate(s string) string {
	if len(s) <= maxLoggedBodyLength {
		return s
	}
	return s[:maxLoggedBodyLength] + "..."
}
