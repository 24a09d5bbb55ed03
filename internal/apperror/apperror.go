package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("Validation Error")
	ErrUpstream   = errors.New("upstream error")
	ErrSuperseded = errors.New("superseded")
)

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Upstream wraps a failure talking to the GitHub API (network error,
// unexpected status, undecodable body). The cause stays in the chain so
// callers can still errors.Is against it.
func Upstream(message string, cause error) *AppError {
	return &AppError{
		Err:     errors.Join(ErrUpstream, cause),
		Message: message,
	}
}

// Superseded marks a result that was discarded because a newer request for
// the same view started while this one was in flight.
func Superseded(view string) *AppError {
	return &AppError{
		Err:     ErrSuperseded,
		Message: fmt.Sprintf("%s request superseded by a newer one", view),
	}
}
