package weathertests

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"
	"github.com/kirkepsteinify/weather-api-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const historyPreviewSize = 3

const (
	// DefaultBatchDelay is the pause after each post in the batch step. It keeps successive
	// measurements from landing on the same timestamp.
	DefaultBatchDelay = 500 * time.Millisecond

	// NoBatchDelay posts the batch back to back.
	NoBatchDelay time.Duration = -1
)

// BatchPolicy controls the batch measurement step.
type BatchPolicy struct {
	// Delay is slept after every post, including the last one. Zero means DefaultBatchDelay;
	// use NoBatchDelay to not pause at all.
	Delay time.Duration

	// AbortOnFailure makes the first rejected measurement fail the whole step. By default
	// rejected measurements are reported and the remaining ones are still posted.
	AbortOnFailure bool
}

// Sample is one set of readings to post.
type Sample struct {
	Temperature float64
	Humidity    float64
	Pressure    float64
	WindSpeed   *float64
	Rainfall    *float64
	LightLevel  *float64
}

func (p BatchPolicy) delay() time.Duration {
	if p.Delay == 0 {
		return DefaultBatchDelay
	}
	return p.Delay
}

func (s Sample) params(station StationHandle) servicedef.MeasurementParams {
	return servicedef.MeasurementParams{
		StationID:   station.ID,
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Pressure:    s.Pressure,
		WindSpeed:   s.WindSpeed,
		Rainfall:    s.Rainfall,
		LightLevel:  s.LightLevel,
	}
}

func float(f float64) *float64 { return &f }

// SingleSample is posted by the single measurement step.
var SingleSample = Sample{
	Temperature: 22.5,
	Humidity:    65.0,
	Pressure:    1013.25,
	WindSpeed:   float(5.2),
	Rainfall:    float(0.0),
	LightLevel:  float(750.0),
}

// BatchSamples are posted in order by the batch measurement step.
var BatchSamples = []Sample{
	{Temperature: 21.8, Humidity: 62.5, Pressure: 1012.80},
	{Temperature: 23.1, Humidity: 68.0, Pressure: 1014.00},
	{Temperature: 20.5, Humidity: 70.5, Pressure: 1015.20},
}

// PostMeasurement records a single reading with all optional fields present.
func PostMeasurement(t *framework.T, api *apiclient.Client, station StationHandle) {
	resp, err := api.Post(t.Context(), servicedef.PathMeasurements, SingleSample.params(station), t.DebugLogger())
	expect(t, resp, err, http.StatusCreated, "Failed to post measurement")

	m := resp.JSON.GetByKey("measurement")
	t.Success("Measurement recorded successfully")
	t.Detail("Temperature: %s°C", display(m.GetByKey("temperature")))
	t.Detail("Humidity: %s%%", display(m.GetByKey("humidity")))
	t.Detail("Pressure: %s hPa", display(m.GetByKey("pressure")))
}

// PostMeasurementBatch posts each sample in turn. A sample that is rejected, or that cannot
// be sent at all, is reported and, unless the policy says otherwise, does not stop the rest
// from being posted or fail the step.
//
// A transport error is deliberately treated like a rejection: the remaining samples are still
// tried, so one dropped connection does not hide whether the service accepts the others.
func PostMeasurementBatch(
	t *framework.T,
	api *apiclient.Client,
	station StationHandle,
	samples []Sample,
	policy BatchPolicy,
) {
	posted := 0
	for i, sample := range samples {
		if err := postSample(t, api, station, i+1, sample); err != nil {
			if policy.AbortOnFailure || t.Context().Err() != nil {
				t.Fail(err)
			}
		} else {
			posted++
		}

		if err := framework.Sleep(t.Context(), policy.delay()); err != nil {
			t.Fail(err)
		}
	}
	t.Info("%d of %d measurements accepted", posted, len(samples))
}

func postSample(t *framework.T, api *apiclient.Client, station StationHandle, n int, sample Sample) error {
	resp, err := api.Post(t.Context(), servicedef.PathMeasurements, sample.params(station), t.DebugLogger())
	if err != nil {
		t.Failure("Measurement %d failed: Error: %s", n, err)
		return err
	}
	if err := resp.ExpectStatus(http.StatusCreated); err != nil {
		t.Failure("Measurement %d failed (HTTP %d): %s", n, resp.StatusCode, resp.BodyString())
		return err
	}
	t.Success("Measurement %d posted: %s°C", n, formatFloat(sample.Temperature))
	return nil
}

// GetMeasurementHistory fetches the station's measurements for the given period and prints
// the first few of them.
func GetMeasurementHistory(t *framework.T, api *apiclient.Client, station StationHandle, period string) {
	path := fmt.Sprintf("%s/%s/measurements?period=%s",
		servicedef.PathStations, url.PathEscape(station.String()), url.QueryEscape(period))
	resp, err := api.Get(t.Context(), path, t.DebugLogger())
	expect(t, resp, err, http.StatusOK, "Failed to get measurements")

	measurements := resp.JSON.GetByKey("measurements")
	if measurements.Type() != ldvalue.ArrayType {
		t.Failure("Response did not include a measurements list: %s", resp.BodyString())
		t.Fail(fmt.Errorf("response to GET %s did not include a measurements list", path))
	}

	count := resp.JSON.GetByKey("count")
	if count.IsNull() {
		count = ldvalue.Int(measurements.Count())
	}
	t.Success("Retrieved %s measurements", display(count))

	for i := 0; i < measurements.Count() && i < historyPreviewSize; i++ {
		m := measurements.GetByIndex(i)
		t.Detail("  %d. T: %s°C, H: %s%%, P: %s hPa", i+1,
			display(m.GetByKey("temperature")),
			display(m.GetByKey("humidity")),
			display(m.GetByKey("pressure")))
	}
	if extra := measurements.Count() - historyPreviewSize; extra > 0 {
		t.Detail("  ... and %d more", extra)
	}
}
