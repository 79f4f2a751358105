// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"os"
	"strings"

	"word-scan/internal/platform"
)

// ErrorType represents different types of errors for handling strategies
type ErrorType int

const (
	ErrorTypeUnknown      ErrorType = iota
	ErrorTypeTransient              // File briefly locked or busy
	ErrorTypePermanent              // Retrying cannot help
	ErrorTypeTimeout                // Deadline hit on a slow device
	ErrorTypeAccessDenied           // Permissions
	ErrorTypeNotFound               // Path vanished
	ErrorTypeCancelled              // Caller gave up
)

// String returns the name of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeTransient:
		return "Transient"
	case ErrorTypePermanent:
		return "Permanent"
	case ErrorTypeTimeout:
		return "Timeout"
	case ErrorTypeAccessDenied:
		return "AccessDenied"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// ClassifiedError wraps an error with type information
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Original == nil {
		return e.Type.String()
	}
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

// IsRetryable returns whether this error should be retried
func (e *ClassifiedError) IsRetryable() bool {
	return e.Retryable
}

// ClassifyError categorizes a filesystem error for retry handling
func ClassifyError(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &ClassifiedError{Original: err, Type: ErrorTypeCancelled}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return &ClassifiedError{Original: err, Type: ErrorTypeTimeout, Retryable: true}
	case platform.IsTransientError(err):
		return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Retryable: true}
	case platform.IsPermissionError(err):
		return &ClassifiedError{Original: err, Type: ErrorTypeAccessDenied}
	case platform.IsNotExist(err):
		return &ClassifiedError{Original: err, Type: ErrorTypeNotFound}
	case strings.Contains(strings.ToLower(err.Error()), "timeout"):
		return &ClassifiedError{Original: err, Type: ErrorTypeTimeout, Retryable: true}
	}

	return &ClassifiedError{Original: err, Type: ErrorTypeUnknown}
}

// NewTransientError creates a new transient error
func NewTransientError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypeTransient,
		Message:   message,
		Retryable: true,
	}
}

// NewPermanentError creates a new permanent error
func NewPermanentError(message string, cause error) *ClassifiedError {
	return &ClassifiedError{
		Original:  cause,
		Type:      ErrorTypePermanent,
		Message:   message,
		Retryable: false,
	}
}
