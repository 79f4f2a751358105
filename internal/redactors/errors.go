// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"errors"
	"fmt"
	"time"
)

// ScanErrorType defines the type of a per-file failure
type ScanErrorType int

const (
	// ErrorAccess indicates the file could not be opened or read
	ErrorAccess ScanErrorType = iota

	// ErrorDecode indicates the content is not text in a supported encoding
	ErrorDecode

	// ErrorFileSystem indicates a stat or directory operation failure
	ErrorFileSystem

	// ErrorWrite indicates an artifact could not be written
	ErrorWrite
)

// String returns the string representation of the error type
func (t ScanErrorType) String() string {
	switch t {
	case ErrorAccess:
		return "access"
	case ErrorDecode:
		return "decode"
	case ErrorFileSystem:
		return "file_system"
	case ErrorWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ErrOutputLocked is returned when another run holds the output directory.
var ErrOutputLocked = errors.New("output directory is in use by another scan")

// ScanError represents a failure while scanning or redacting one file. Every
// ScanError is recoverable: the file is skipped and the run continues.
type ScanError struct {
	// Type is the type of error
	Type ScanErrorType

	// Message is the error message
	Message string

	// FilePath is the path to the file being processed when the error occurred
	FilePath string

	// Component is the component that generated the error
	Component string

	// Timestamp is when the error occurred
	Timestamp time.Time

	// Cause is the underlying error that caused this error
	Cause error
}

// Error implements the error interface
func (se *ScanError) Error() string {
	msg := fmt.Sprintf("[%s] %s (file: %s, component: %s)", se.Type, se.Message, se.FilePath, se.Component)
	if se.Cause != nil {
		msg += ": " + se.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping
func (se *ScanError) Unwrap() error {
	return se.Cause
}

// NewScanError creates a new ScanError
func NewScanError(errorType ScanErrorType, message, filePath, component string, cause error) *ScanError {
	return &ScanError{
		Type:      errorType,
		Message:   message,
		FilePath:  filePath,
		Component: component,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// AsScanError extracts a ScanError from an error chain.
func AsScanError(err error) (*ScanError, bool) {
	var se *ScanError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
