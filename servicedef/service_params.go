// Package servicedef contains the request bodies sent to the weather service.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	PathHealth       = "/health"
	PathRegister     = "/api/auth/register"
	PathLogin        = "/api/auth/login"
	PathStations     = "/api/stations"
	PathMeasurements = "/api/measurements"
)

type RegisterParams struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateStationParams refers to its owner by the identifier the service assigned at
// registration, sent back with whatever JSON type the service used for it.
type CreateStationParams struct {
	UserID   ldvalue.Value `json:"userId"`
	Name     string        `json:"name"`
	Location string        `json:"location"`
}

// MeasurementParams is a single reading from a station. The last three fields are optional
// and are left out of the JSON entirely when nil.
type MeasurementParams struct {
	StationID   ldvalue.Value `json:"stationId"`
	Temperature float64       `json:"temperature"`
	Humidity    float64       `json:"humidity"`
	Pressure    float64       `json:"pressure"`
	WindSpeed   *float64      `json:"windSpeed,omitempty"`
	Rainfall    *float64      `json:"rainfall,omitempty"`
	LightLevel  *float64      `json:"lightLevel,omitempty"`
}
