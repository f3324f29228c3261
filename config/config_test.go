package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/weathertests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allVars = []string{
	"WEATHER_API_URL", "HTTP_TIMEOUT", "BATCH_DELAY", "BATCH_ABORT_ON_FAILURE",
	"HISTORY_PERIOD", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allVars {
		t.Setenv(v, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, got.BaseURL)
	assert.Equal(t, time.Duration(0), got.HTTPTimeout)
	assert.Equal(t, 500*time.Millisecond, got.BatchDelay)
	assert.False(t, got.BatchAbortOnFailure)
	assert.Equal(t, "24h", got.HistoryPeriod)
	assert.Equal(t, slog.LevelInfo, got.LogLevel)
	assert.Equal(t, "text", got.LogFormat)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_API_URL", "  https://weather.example.com/  ")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("BATCH_DELAY", "0s")
	t.Setenv("BATCH_ABORT_ON_FAILURE", "true")
	t.Setenv("HISTORY_PERIOD", "7d")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	got, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://weather.example.com", got.BaseURL)
	assert.Equal(t, 3*time.Second, got.HTTPTimeout)
	assert.Equal(t, time.Duration(0), got.BatchDelay)
	assert.True(t, got.BatchAbortOnFailure)
	assert.Equal(t, "7d", got.HistoryPeriod)
	assert.Equal(t, slog.LevelDebug, got.LogLevel)
	assert.Equal(t, "json", got.LogFormat)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "url without scheme", key: "WEATHER_API_URL", value: "localhost:5000"},
		{name: "bad timeout", key: "HTTP_TIMEOUT", value: "soon"},
		{name: "negative timeout", key: "HTTP_TIMEOUT", value: "-1s"},
		{name: "bad delay", key: "BATCH_DELAY", value: "half a second"},
		{name: "bad abort flag", key: "BATCH_ABORT_ON_FAILURE", value: "maybe"},
		{name: "unknown period", key: "HISTORY_PERIOD", value: "2w"},
		{name: "unknown log level", key: "LOG_LEVEL", value: "verbose"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestValidatePeriod(t *testing.T) {
	for _, p := range ValidPeriods {
		assert.NoError(t, ValidatePeriod(p))
	}
	assert.Error(t, ValidatePeriod(""))
	assert.Error(t, ValidatePeriod("24H"))
}

func TestLoadUsesGivenLookup(t *testing.T) {
	vars := map[string]string{"BATCH_DELAY": "20ms", "HISTORY_PERIOD": "1h"}
	got, err := Load(func(name string) string { return vars[name] })
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, got.BaseURL)
	assert.Equal(t, 20*time.Millisecond, got.BatchDelay)
	assert.Equal(t, "1h", got.HistoryPeriod)
}

func TestDefaultsMatchSuite(t *testing.T) {
	assert.Equal(t, weathertests.DefaultBatchDelay, DefaultBatchDelay)
	assert.Equal(t, weathertests.DefaultHistoryPeriod, DefaultHistoryPeriod)
}
