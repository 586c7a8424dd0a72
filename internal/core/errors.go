package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers every input rejection before simulation starts.
	ErrInvalidInput = errors.New("invalid input")

	ErrEmptyRegistry    = fmt.Errorf("%w: empty task registry", ErrInvalidInput)
	ErrNonPositiveBurst = fmt.Errorf("%w: non-positive burst", ErrInvalidInput)
)
