package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when operating on a closed state.
	ErrClosed = errors.New("script state is closed")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script timeout")

	// ErrScript is returned when a script fails to compile or raises an error.
	ErrScript = errors.New("script error")

	// ErrNoSnapshot is returned when a script needs nav but nothing is bound.
	ErrNoSnapshot = errors.New("no snapshot bound")
)
