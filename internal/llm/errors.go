package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when a client is built without a key
	ErrMissingAPIKey = errors.New("API key is required")
	// ErrEmptyResponse is returned when the model produced no text
	ErrEmptyResponse = errors.New("no text in model response")
	// ErrCircuitOpen is returned while remote calls are short-circuited
	ErrCircuitOpen = errors.New("remote ranking temporarily disabled after repeated failures")
)

// APICallError represents a failed call to the generation endpoint
type APICallError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *APICallError) Error() string {
	msg := "API call failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("API call failed with status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
