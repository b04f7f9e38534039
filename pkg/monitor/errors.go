package monitor

import "errors"

// Common errors returned by the monitor.
var (
	// ErrInvalidTarget is returned when the target path cannot be monitored,
	// e.g. it is empty, relative, or has no parent directory.
	ErrInvalidTarget = errors.New("invalid target: must be an absolute path with a parent directory")

	// ErrInvalidStrategy is returned for an unrecognized fingerprint strategy name.
	ErrInvalidStrategy = errors.New("invalid fingerprint strategy: must be metadata or content")

	// ErrNilCallback is returned when New is called without a change callback.
	ErrNilCallback = errors.New("change callback must not be nil")

	// ErrAlreadyStarted is returned when Start is called on a running monitor.
	ErrAlreadyStarted = errors.New("monitor already started")

	// ErrNotStarted is returned when Stop is called on a non-running monitor.
	ErrNotStarted = errors.New("monitor not started")

	// ErrMonitorClosed is returned when attempting to use a closed monitor.
	ErrMonitorClosed = errors.New("monitor is closed")
)
