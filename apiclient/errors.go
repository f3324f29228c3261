package apiclient

import "fmt"

// TransportError means no HTTP response was obtained: connection refused, DNS failure,
// timeout, cancellation, or a failure while reading the response body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UnexpectedStatusError means the service responded, but not with the status code the
// caller required. Body is the raw response body, so the operator can see what the
// service complained about.
type UnexpectedStatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
}

func (e *UnexpectedStatusError) Error() string {
	msg := fmt.Sprintf("%s %s returned HTTP %d (expected %d)", e.Method, e.Path, e.Actual, e.Expected)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}
