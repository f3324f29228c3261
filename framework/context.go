package framework

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/kirkepsteinify/weather-api-tests/logging"
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageFailure MessageKind = "failure"
	MessageInfo    MessageKind = "info"
	MessageDetail  MessageKind = "detail"
)

// T is the context for a single step. It implements the TestingT interface of testify's
// assert and require packages, so a step can use those for invariants.
//
// Calling FailNow or Fail stops the step immediately, the same way it does with testing.T.
type T struct {
	ctx         context.Context
	id          StepID
	reporter    Reporter
	debugLogger logging.CapturingLogger
	logger      logging.Logger
	failed      bool
	err         error
	errors      []error
}

func newT(ctx context.Context, id StepID, reporter Reporter, extraLogger logging.Logger) *T {
	t := &T{
		ctx:      ctx,
		id:       id,
		reporter: reporter,
	}
	t.logger = &t.debugLogger
	if extraLogger != nil {
		t.logger = logging.Tee(&t.debugLogger, extraLogger)
	}
	return t
}

func (t *T) run(action func(*T)) {
	defer func() {
		if r := recover(); r != nil {
			t.failed = true
			if _, ok := r.(*T); ok {
				if t.err == nil && len(t.errors) == 0 {
					t.errors = append(t.errors, errNoFailureMessage)
				}
				return
			}
			t.err = &UnclassifiedError{Value: r, Stack: debug.Stack()}
			t.Failure("Unexpected error: %v", r)
		}
	}()

	action(t)
}

// result returns the step's outcome as an error, or nil if it passed.
func (t *T) result() error {
	if !t.failed {
		return nil
	}
	if t.err != nil {
		return t.err
	}
	return errors.Join(t.errors...)
}

// Context returns the run's context. It is cancelled if the operator interrupts the run.
func (t *T) Context() context.Context {
	return t.ctx
}

func (t *T) ID() StepID {
	return t.id
}

// Errorf is called by assertions to log a failure. It does not stop the step.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.reporter.Message(t.id, MessageFailure, reformatError(err))
}

// FailNow is called by assertions when the step should fail and stop immediately. The
// methods in the require package call FailNow.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Fail records err as the reason the step failed, and stops the step. It does not report
// anything; the caller is expected to have described the failure already.
func (t *T) Fail(err error) {
	t.err = err
	t.FailNow()
}

func (t *T) Success(format string, args ...interface{}) {
	t.reporter.Message(t.id, MessageSuccess, fmt.Sprintf(format, args...))
}

func (t *T) Failure(format string, args ...interface{}) {
	t.reporter.Message(t.id, MessageFailure, fmt.Sprintf(format, args...))
}

func (t *T) Info(format string, args ...interface{}) {
	t.reporter.Message(t.id, MessageInfo, fmt.Sprintf(format, args...))
}

// Detail reports a plain line of output, such as a field extracted from a response.
func (t *T) Detail(format string, args ...interface{}) {
	t.reporter.Message(t.id, MessageDetail, fmt.Sprintf(format, args...))
}

// Debug logs some debug output for the step. Whether it is shown depends on the reporter.
func (t *T) Debug(message string, args ...interface{}) {
	t.logger.Printf(message, args...)
}

func (t *T) DebugLogger() logging.Logger {
	return t.logger
}

// testify messages start with a newline and are heavily indented; make them fit our output.
func reformatError(err error) string {
	s := err.Error()
	for len(s) > 0 && (s[0] == '\n' || s[0] == '\t' || s[0] == ' ') {
		s = s[1:]
	}
	return s
}
