package ranking

import "fmt"

// MalformedResponseError represents a model response that could not be decoded
// into a ranking: invalid JSON, or a JSON value that is not an array.
type MalformedResponseError struct {
	Reason string
	Cause  error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed AI response: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("malformed AI response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
