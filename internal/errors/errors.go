// Package errors provides unified error handling across the promptmaster
// system. Both the CLI and the TUI report failures through the same
// structured AppError type so error codes stay consistent between
// surfaces.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Storage errors
	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeDataCorruption     ErrorCode = "DATA_CORRUPTION"

	// Editor errors
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// Resource errors
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// Input errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// System errors
	ErrCodeClipboardFailure ErrorCode = "CLIPBOARD_FAILURE"
	ErrCodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryStorage    ErrorCategory = "storage"
	CategoryEditor     ErrorCategory = "editor"
	CategoryResource   ErrorCategory = "resource"
	CategoryValidation ErrorCategory = "validation"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   string        `json:"details,omitempty"`
	Severity  ErrorSeverity `json:"severity"`
	Category  ErrorCategory `json:"category"`
	Cause     error         `json:"-"`
	Timestamp time.Time     `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeStorageUnavailable:
		return CategoryStorage, SeverityCritical
	case ErrCodeDataCorruption:
		return CategoryStorage, SeverityError
	case ErrCodeIndexOutOfRange:
		return CategoryEditor, SeverityError
	case ErrCodeNotFound:
		return CategoryResource, SeverityInfo
	case ErrCodeValidation, ErrCodeInvalidInput:
		return CategoryValidation, SeverityWarning
	case ErrCodeClipboardFailure:
		return CategorySystem, SeverityWarning
	default:
		return CategorySystem, SeverityError
	}
}

// IsCode reports whether err carries the given code anywhere in its
// chain
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// GetAppError extracts an AppError from an error chain, or converts a
// plain error into an internal one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, err.Error())
}

// Common error constructors

func StorageUnavailableError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageUnavailable, fmt.Sprintf("Storage operation failed: %s", operation))
}

func DataCorruptionError(err error) *AppError {
	return Wrap(err, ErrCodeDataCorruption, "Stored template data is not parseable")
}

func IndexOutOfRangeError(index, length int) *AppError {
	return NewAppError(ErrCodeIndexOutOfRange,
		fmt.Sprintf("Section index %d out of range [0, %d)", index, length))
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func ClipboardError(err error) *AppError {
	return Wrap(err, ErrCodeClipboardFailure, "Failed to copy to clipboard")
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}
