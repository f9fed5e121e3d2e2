package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := "INTERNAL_ERROR"
	if appErr, ok := err.(*AppError); ok {
		code = appErr.Code
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// ConfigInvalid reports an invalid or missing configuration value
func ConfigInvalid(message string) *AppError {
	return New("CONFIG_INVALID", message)
}

// SourceError wraps a failure while reading the source table
func SourceError(err error) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: "SOURCE_ERROR", Message: "failed to load source table", Cause: err}
}

// ExportError wraps a failure while exporting a document
func ExportError(category string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{Code: "EXPORT_ERROR", Message: fmt.Sprintf("failed to export document for %s", category), Cause: err}
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}
