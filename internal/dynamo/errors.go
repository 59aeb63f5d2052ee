package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrInvalidStep indicates a non-positive step size.
	ErrInvalidStep = errors.New("dynamo: step size must be positive")

	// ErrInvalidDuration indicates a non-positive total duration.
	ErrInvalidDuration = errors.New("dynamo: duration must be positive")

	// ErrDimensionMismatch indicates a state whose length disagrees with
	// the system dimension. There is no silent broadcasting.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates an adaptive timestep below the minimum.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)

// StepError wraps an error with the step and time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
