package weathertests

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"
	"github.com/kirkepsteinify/weather-api-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const stationLocation = "Kyiv, Ukraine"

// AddStation creates a station owned by the given user and returns its identifier.
func AddStation(
	t *framework.T,
	api *apiclient.Client,
	user UserHandle,
	tokens framework.TokenSource,
) StationHandle {
	name := "Test Station " + tokens.NextToken()

	resp, err := api.Post(t.Context(), servicedef.PathStations, servicedef.CreateStationParams{
		UserID:   user.ID,
		Name:     name,
		Location: stationLocation,
	}, t.DebugLogger())
	expect(t, resp, err, http.StatusCreated, "Station creation failed")

	id := requireHandle(t, resp, resp.JSON.GetByKey("station").GetByKey("id"), "station.id")
	t.Success("Station created: %s", name)
	t.Detail("Station ID: %s", display(id))
	return StationHandle{ID: id}
}

// ListStations fetches the user's stations and prints each one.
func ListStations(t *framework.T, api *apiclient.Client, user UserHandle) {
	path := servicedef.PathStations + "?userId=" + url.QueryEscape(user.String())
	resp, err := api.Get(t.Context(), path, t.DebugLogger())
	expect(t, resp, err, http.StatusOK, "Failed to get stations")

	stations := resp.JSON.GetByKey("stations")
	if stations.Type() != ldvalue.ArrayType {
		t.Failure("Response did not include a stations list: %s", resp.BodyString())
		t.Fail(fmt.Errorf("response to GET %s did not include a stations list", path))
	}

	t.Success("Retrieved %d stations", stations.Count())
	for i := 0; i < stations.Count(); i++ {
		s := stations.GetByIndex(i)
		t.Detail("  - %s (%s)", display(s.GetByKey("name")), display(s.GetByKey("id")))
	}
}
