package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for configuration and host operations.
var (
	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownSimulation indicates a simulation name with no registered model.
	ErrUnknownSimulation = errors.New("dynamo: unknown simulation")

	// ErrUnknownParam indicates a parameter name the model does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// SimError records where in a run a problem was observed.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
