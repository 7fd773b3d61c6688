package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyText is returned for a reply that decodes but carries no text.
var ErrEmptyText = errors.New("generation service returned empty text")

// GenerationError is returned once every attempt of a request has failed.
// StatusCode is the HTTP status of the last attempt that got a response,
// or zero if none did.
type GenerationError struct {
	Attempts   int
	StatusCode int
	Reason     string
	Wrapped    error
}

func (e *GenerationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("text generation failed after %d attempts: %s: %v", e.Attempts, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("text generation failed after %d attempts: %s", e.Attempts, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Wrapped
}

// statusError is a non-2xx reply from the generation service.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("generation service returned status %d", e.code)
	}
	return fmt.Sprintf("generation service returned status %d: %s", e.code, e.body)
}
