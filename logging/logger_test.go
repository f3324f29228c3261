package logging

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLoggerDump(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 30, 45, 123000000, time.UTC)
	l := &CapturingLogger{now: func() time.Time { return fixed }}
	l.Printf("GET %s", "/health")
	l.Printf("<< %d", 200)

	out := l.Output()
	require.Len(t, out, 2)
	assert.Equal(t, "GET /health", out[0].Message)

	var buf bytes.Buffer
	out.Dump(&buf, "    DEBUG ")
	assert.Equal(t,
		"    DEBUG [2024-05-01 12:30:45.123] GET /health\n"+
			"    DEBUG [2024-05-01 12:30:45.123] << 200\n",
		buf.String())
}

func TestCapturingLoggerOutputIsACopy(t *testing.T) {
	var l CapturingLogger
	l.Printf("first")
	out := l.Output()
	l.Printf("second")
	assert.Len(t, out, 1)
	assert.Len(t, l.Output(), 2)
}

func TestTeeWritesToAllLoggers(t *testing.T) {
	var a, b CapturingLogger
	Tee(&a, &b, NullLogger()).Printf("hello %s", "world")
	assert.Equal(t, "hello world", a.Output()[0].Message)
	assert.Equal(t, "hello world", b.Output()[0].Message)
}

func TestFromSlogWritesAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelDebug, JSON: true}, "weather-api-tests")
	FromSlog(logger).Printf("request %d\n", 1)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	assert.Contains(t, buf.String(), `"msg":"request 1"`)
	assert.Contains(t, buf.String(), `"app":"weather-api-tests"`)
}

func TestFromSlogRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Level: slog.LevelInfo, NoColor: true}, "weather-api-tests")
	FromSlog(logger).Printf("hidden")
	assert.Empty(t, buf.String())
}
