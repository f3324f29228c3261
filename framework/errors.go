package framework

import (
	"errors"
	"fmt"
)

// ErrInterrupted is the error recorded for a step that was cut short by the operator.
var ErrInterrupted = errors.New("interrupted by operator")

var errNoFailureMessage = errors.New("step failed with no failure message")

// UnclassifiedError is a panic that escaped a step's own error handling. It always ends the run.
type UnclassifiedError struct {
	Value interface{}
	Stack []byte
}

func (e *UnclassifiedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Value)
}
