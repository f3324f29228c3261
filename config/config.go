package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kirkepsteinify/weather-api-tests/weathertests"
)

const (
	DefaultBaseURL       = "http://localhost:5000"
	DefaultBatchDelay    = weathertests.DefaultBatchDelay
	DefaultHistoryPeriod = weathertests.DefaultHistoryPeriod
)

// Periods accepted by the weather service for measurement history queries.
var ValidPeriods = []string{"1h", "24h", "7d", "30d", "90d", "1y"}

type Config struct {
	BaseURL string

	// HTTPTimeout of zero means no timeout beyond what the transport itself imposes.
	HTTPTimeout time.Duration

	BatchDelay          time.Duration
	BatchAbortOnFailure bool
	HistoryPeriod       string

	LogLevel  slog.Level
	LogFormat string
}

// LoadFromEnv reads the configuration from environment variables.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv)
}

// Load reads the configuration through getenv, which returns "" for anything unset. Callers
// use this to layer other sources, such as command-line flags, over the environment.
func Load(getenv func(string) string) (Config, error) {
	baseURL := strings.TrimSpace(getenv("WEATHER_API_URL"))
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if err := ValidateBaseURL(baseURL); err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_API_URL: %w", err)
	}

	timeoutStr := strings.TrimSpace(getenv("HTTP_TIMEOUT"))
	if timeoutStr == "" {
		timeoutStr = "0s"
	}
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout < 0 {
		return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT %q", timeoutStr)
	}

	delayStr := strings.TrimSpace(getenv("BATCH_DELAY"))
	delay := DefaultBatchDelay
	if delayStr != "" {
		delay, err = time.ParseDuration(delayStr)
		if err != nil || delay < 0 {
			return Config{}, fmt.Errorf("invalid BATCH_DELAY %q", delayStr)
		}
	}

	abortStr := strings.TrimSpace(getenv("BATCH_ABORT_ON_FAILURE"))
	abort := false
	if abortStr != "" {
		abort, err = strconv.ParseBool(abortStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BATCH_ABORT_ON_FAILURE %q: %w", abortStr, err)
		}
	}

	period := strings.TrimSpace(getenv("HISTORY_PERIOD"))
	if period == "" {
		period = DefaultHistoryPeriod
	}
	if err := ValidatePeriod(period); err != nil {
		return Config{}, err
	}

	logLevelStr := strings.TrimSpace(getenv("LOG_LEVEL"))
	if logLevelStr == "" {
		logLevelStr = "info"
	}
	level, err := parseLogLevel(logLevelStr)
	if err != nil {
		return Config{}, err
	}

	logFormat := strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT")))
	switch logFormat {
	case "":
		logFormat = "text"
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q (allowed: text, json)", logFormat)
	}

	return Config{
		BaseURL:             strings.TrimSuffix(baseURL, "/"),
		HTTPTimeout:         timeout,
		BatchDelay:          delay,
		BatchAbortOnFailure: abort,
		HistoryPeriod:       period,
		LogLevel:            level,
		LogFormat:           logFormat,
	}, nil
}

func ValidateBaseURL(s string) error {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("%q is not an http or https URL", s)
	}
	return nil
}

func ValidatePeriod(p string) error {
	for _, v := range ValidPeriods {
		if p == v {
			return nil
		}
	}
	return fmt.Errorf("invalid period %q (allowed: %s)", p, strings.Join(ValidPeriods, ", "))
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
