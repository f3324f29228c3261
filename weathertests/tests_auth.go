package weathertests

import (
	"net/http"

	"github.com/kirkepsteinify/weather-api-tests/apiclient"
	"github.com/kirkepsteinify/weather-api-tests/framework"
	"github.com/kirkepsteinify/weather-api-tests/servicedef"

	"github.com/stretchr/testify/require"
)

const testPassword = "testpass123!"

// NewCredentials builds a throwaway account whose email and username are unique per token.
func NewCredentials(token string) Credentials {
	return Credentials{
		Email:    "testuser_" + token + "@example.com",
		Username: "testuser_" + token,
		Password: testPassword,
	}
}

// RegisterUser creates a new account and returns the identifier the service assigned to it,
// along with the credentials that were used.
func RegisterUser(t *framework.T, api *apiclient.Client, tokens framework.TokenSource) (UserHandle, Credentials) {
	creds := NewCredentials(tokens.NextToken())
	t.Info("Registering %s", creds.Email)

	resp, err := api.Post(t.Context(), servicedef.PathRegister, servicedef.RegisterParams{
		Email:    creds.Email,
		Username: creds.Username,
		Password: creds.Password,
	}, t.DebugLogger())
	expect(t, resp, err, http.StatusCreated, "Registration failed")

	id := requireHandle(t, resp, resp.JSON.GetByKey("user").GetByKey("id"), "user.id")
	t.Success("User registered: %s", creds.Email)
	t.Detail("User ID: %s", display(id))
	return UserHandle{ID: id}, creds
}

// Login signs in with the credentials from registration. The session token is not used by
// later steps.
func Login(t *framework.T, api *apiclient.Client, creds Credentials) {
	require.NotEmpty(t, creds.Email, "no registered user to log in with")

	resp, err := api.Post(t.Context(), servicedef.PathLogin, servicedef.LoginParams{
		Email:    creds.Email,
		Password: creds.Password,
	}, t.DebugLogger())
	expect(t, resp, err, http.StatusOK, "Login failed")

	t.Success("Login successful for %s", creds.Email)
	if role := resp.JSON.GetByKey("user").GetByKey("role"); !role.IsNull() {
		t.Detail("User role: %s", display(role))
	}
}
