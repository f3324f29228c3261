package weathertests

import (
	"net/http"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"
	"github.com/kirkepsteinify/weather-api-tests/servicedef"
)

// CheckHealth verifies that the service is up. Nothing else is worth trying if it is not.
func CheckHealth(t *framework.T, api *apiclient.Client) {
	resp, err := api.Get(t.Context(), servicedef.PathHealth, t.DebugLogger())
	expect(t, resp, err, http.StatusOK, "Health check failed")

	t.Success("Server is healthy")
	t.Detail("Status: %s", display(resp.JSON.GetByKey("status")))
	if db := resp.JSON.GetByKey("database"); !db.IsNull() {
		t.Detail("Database: %s", display(db))
	}
}
