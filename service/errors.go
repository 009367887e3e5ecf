package service

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrCodeInvalidAmount ErrorCode = "INVALID_AMOUNT"
	ErrCodeInvalidRate   ErrorCode = "INVALID_RATE"
	ErrCodeInvalidTenure ErrorCode = "INVALID_TENURE"
	ErrCodeInvalidEnum   ErrorCode = "INVALID_ENUM"
	ErrCodeLimitExceeded ErrorCode = "LIMIT_EXCEEDED"
)

// ValidationError rejects caller input before any computation happens.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(code ErrorCode, field, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
