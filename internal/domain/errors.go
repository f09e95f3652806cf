package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when no question set has been stored for a session.
	ErrSessionNotFound = errors.New("no quiz found for session")
	// ErrNoQuestionsAvailable matches NoQuestionsError regardless of the provider code.
	ErrNoQuestionsAvailable = errors.New("no questions available for the requested options")
	// ErrNetwork matches NetworkError.
	ErrNetwork = errors.New("network error")
	// ErrQuestionNotFound indicates a selection referenced a question index outside the set.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a selection referenced an answer the question does not offer.
	ErrOptionNotFound = errors.New("option not found")
	// ErrInvalidOptions is returned for query options the provider would reject.
	ErrInvalidOptions = errors.New("invalid quiz options")
	// ErrJobNotFound is returned by job repositories for unknown ids.
	ErrJobNotFound = errors.New("job not found")
	// ErrInvalidJob is returned when a job payload is missing required fields.
	ErrInvalidJob = errors.New("invalid job")
)

// NetworkError wraps a transport failure (DNS, connection refused, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// NoQuestionsError carries the provider's non-zero response_code.
type NoQuestionsError struct {
	ResponseCode int
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("no questions available (response_code=%d)", e.ResponseCode)
}

func (e *NoQuestionsError) Is(target error) bool { return target == ErrNoQuestionsAvailable }
