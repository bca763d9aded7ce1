package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/hueblend/internal/display"
	"github.com/okian/hueblend/internal/domain/hue"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrStream           = errors.New("display stream failed")
)

// opError ties an error kind to the operation that produced it.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	if e.err == nil {
		return e.op + ": " + e.kind.Error()
	}
	return e.op + ": " + e.kind.Error() + ": " + e.err.Error()
}

func (e *opError) Unwrap() []error {
	if e.err == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.err}
}

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// WrapKind classifies err as kind and tags it with op.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// Wrap tags err with op, keeping its kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// unavailable is implemented by errors from a backend that cannot serve yet.
type unavailable interface {
	Unavailable() bool
}

func isUnavailable(err error) bool {
	var u unavailable
	return errors.As(err, &u) && u.Unavailable()
}

// classify maps an error to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, hue.ErrInvalidAngle):
		return http.StatusBadRequest, "invalid_angle"
	case errors.Is(err, hue.ErrInvalidCoordinates):
		return http.StatusBadRequest, "invalid_coordinates"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, display.ErrTooManySubscribers):
		return http.StatusTooManyRequests, "too_many_subscribers"
	case errors.Is(err, display.ErrClosed), isUnavailable(err):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
