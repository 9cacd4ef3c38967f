package driver

import "errors"

var (
	// ErrNoPlane is returned by New when Options carries no grid.
	ErrNoPlane = errors.New("driver: no grid plane")

	// ErrInvalidFPS indicates a non-positive frame rate.
	ErrInvalidFPS = errors.New("driver: frame rate must be positive")

	// ErrInvalidSteps indicates an offline run with no steps or a
	// non-positive time step.
	ErrInvalidSteps = errors.New("driver: invalid step count or time step")
)
