package models

import (
	"errors"
	"fmt"
)

// Error codes reported by the persistence service
const (
	CodeCandidateNotFound       = "CANDIDATE_NOT_FOUND"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInvalidTransition       = "INVALID_TRANSITION"
	CodeSchedulingConflict      = "SCHEDULING_CONFLICT"
	CodeDeliveryFailed          = "DELIVERY_FAILED"
	CodeInvalidRequest          = "INVALID_REQUEST"
)

// APIError is the {code, message} error shape of the persistence service
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError builds an APIError with a formatted message
func NewAPIError(code, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsAPIError extracts an APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
