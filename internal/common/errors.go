package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Pipeline error taxonomy. NoTextDetected is deliberately NOT here: a valid
// empty OCR result is a normal outcome carried in the response, not an error.
var (
	ErrUnauthenticated   = errors.New("no verified requester")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrOCRUnavailable    = errors.New("text detection unavailable")
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrNotFound          = errors.New("resource not found")
	ErrInternal          = errors.New("internal error")
)

// NewAppError builds an AppError wrapping cause.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapError annotates err with message, preserving the chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
