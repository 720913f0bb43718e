package client

import (
	"errors"
	"fmt"
)

// ErrorCategory normalises screening service failures.
type ErrorCategory string

const (
	// ErrorTimeout indicates the service took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorUnavailable indicates the service could not be reached
	ErrorUnavailable ErrorCategory = "unavailable"

	// ErrorBadStatus indicates a non-2xx response
	ErrorBadStatus ErrorCategory = "bad_status"

	// ErrorBadData indicates a 2xx response whose body could not be decoded
	ErrorBadData ErrorCategory = "bad_data"
)

// FallbackMessage is used when a failed response carries no body.
const FallbackMessage = "Request failed"

// ServiceError is returned for every failed screening service call. Message
// is safe to show to the analyst.
type ServiceError struct {
	Category   ErrorCategory
	Operation  string
	Status     int
	Message    string
	Underlying error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("screening %s [%s]", e.Operation, e.Category)
	if e.Status != 0 {
		msg += fmt.Sprintf(" status %d", e.Status)
	}
	msg += ": " + e.Message
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

func (e *ServiceError) Unwrap() error { return e.Underlying }

// UserMessage is the analyst-facing text.
func (e *ServiceError) UserMessage() string { return e.Message }

// GetCategory extracts the category from err, or "" if err is not a ServiceError.
func GetCategory(err error) ErrorCategory {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Category
	}
	return ""
}
