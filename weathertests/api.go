package weathertests

import (
	"fmt"
	"strconv"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Credentials for the account created by the registration step.
type Credentials struct {
	Email    string
	Username string
	Password string
}

// UserHandle is the identifier the service assigned to the registered user. It is kept as
// a JSON value because the service decides whether identifiers are numbers or strings.
type UserHandle struct {
	ID ldvalue.Value
}

// StationHandle is the identifier the service assigned to the station.
type StationHandle struct {
	ID ldvalue.Value
}

func (h UserHandle) String() string    { return display(h.ID) }
func (h StationHandle) String() string { return display(h.ID) }

func missingHandle(v ldvalue.Value) bool {
	switch v.Type() {
	case ldvalue.StringType:
		return v.StringValue() == ""
	case ldvalue.NumberType:
		return false
	default:
		return true
	}
}

// display formats a response field or identifier the way an operator expects to read it:
// strings without quotes, everything else as JSON.
func display(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// expect fails the step unless the request produced a response with the expected status.
// Transport errors are reported as they are; a wrong status is reported with the response
// body, so the operator can see what the service said.
func expect(
	t *framework.T,
	resp *apiclient.Response,
	err error,
	expected int,
	failure string,
) *apiclient.Response {
	if err != nil {
		t.Failure("Error: %s", err)
		t.Fail(err)
	}
	if statusErr := resp.ExpectStatus(expected); statusErr != nil {
		t.Failure("%s (HTTP %d): %s", failure, resp.StatusCode, resp.BodyString())
		t.Fail(statusErr)
	}
	return resp
}

// requireHandle fails the step if an identifier the service should have returned is missing.
func requireHandle(t *framework.T, resp *apiclient.Response, v ldvalue.Value, field string) ldvalue.Value {
	if missingHandle(v) {
		t.Failure("Response did not include %s: %s", field, resp.BodyString())
		t.Fail(fmt.Errorf("response to %s %s did not include %s", resp.Method, resp.Path, field))
	}
	return v
}
