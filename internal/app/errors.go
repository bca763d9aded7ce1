package service

import "errors"

// stateError is returned while the service cannot serve requests.
type stateError struct{ msg string }

func (e *stateError) Error() string { return e.msg }

// Unavailable marks the error as a temporary lack of service.
func (e *stateError) Unavailable() bool { return true }

// Sentinel error kinds for the service.
var (
	ErrNotStarted error = &stateError{msg: "service not started"}
	ErrStart            = errors.New("service start failed")
)
