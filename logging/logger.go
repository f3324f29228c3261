package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal interface used for per-step debug output, such as the request and
// response traces written by the API client.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages so that they can be shown later, after we know
// whether the step they belong to has failed.
type CapturingLogger struct {
	output []CapturedMessage
	now    func() time.Time
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Message,
		)
	}
}

// Tee returns a Logger that writes every message to all of the given loggers.
func Tee(loggers ...Logger) Logger {
	return teeLogger(loggers)
}

type teeLogger []Logger

func (t teeLogger) Printf(message string, args ...interface{}) {
	for _, l := range t {
		l.Printf(message, args...)
	}
}

// FromSlog adapts a structured logger to the Printf-style Logger interface. Messages are
// written at debug level.
func FromSlog(logger *slog.Logger) Logger {
	if logger == nil {
		return NullLogger()
	}
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (s slogLogger) Printf(message string, args ...interface{}) {
	s.logger.Debug(strings.TrimSuffix(fmt.Sprintf(message, args...), "\n"))
}
