package sampler

import (
	"errors"
	"fmt"
)

var (
	// ErrSampling covers every failure of the process-sampling step. It is
	// distinct from the engine's input validation errors.
	ErrSampling = errors.New("sampling failed")

	ErrProcUnavailable     = fmt.Errorf("%w: process information source unavailable", ErrSampling)
	ErrNoEligibleProcesses = fmt.Errorf("%w: no eligible processes observed", ErrSampling)
)
