// Package errors provides standardized error handling for the triage service.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"

	ErrCodeModelUnavailable       ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeModelTimeout           ErrorCode = "MODEL_TIMEOUT"
	ErrCodeModelOutputInvalid     ErrorCode = "MODEL_OUTPUT_INVALID"
	ErrCodeSchemaValidationFailed ErrorCode = "SCHEMA_VALIDATION_FAILED"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, message string, cause error) *StandardError {
	se := &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		se.Details = cause.Error()
	}
	return se
}

// NewInvalidRequestError is returned for request bodies that cannot be decoded.
func NewInvalidRequestError(details string) *StandardError {
	se := newError(ErrCodeInvalidRequest, "Invalid request body", nil)
	se.Details = details
	return se
}

// NewModelUnavailableError wraps a failure to load or invoke the model.
func NewModelUnavailableError(err error) *StandardError {
	return newError(ErrCodeModelUnavailable, "Generative model invocation failed", err)
}

// NewModelTimeoutError is returned when inference exceeds its deadline.
func NewModelTimeoutError(timeout time.Duration) *StandardError {
	se := newError(ErrCodeModelTimeout, "Generative model timed out", nil)
	se.Details = fmt.Sprintf("timeout: %s", timeout)
	return se
}

// NewModelOutputInvalidError wraps JSON extraction failures.
func NewModelOutputInvalidError(err error) *StandardError {
	return newError(ErrCodeModelOutputInvalid, "Model output is not a JSON object", err)
}

// NewSchemaValidationFailedError lists schema violations of the model output.
func NewSchemaValidationFailedError(violations []string) *StandardError {
	se := newError(ErrCodeSchemaValidationFailed, "Model output does not match verdict schema", nil)
	se.Details = fmt.Sprintf("%v", violations)
	se.Metadata = map[string]interface{}{"violations": violations}
	return se
}

// NewCacheUnavailableError wraps redis failures. Cache errors never fail a request.
func NewCacheUnavailableError(op string, err error) *StandardError {
	se := newError(ErrCodeCacheUnavailable, "Classification cache unavailable", err)
	se.Metadata = map[string]interface{}{"operation": op}
	return se
}

// NewInternalError wraps anything unexpected.
func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err)
}
