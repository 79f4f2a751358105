// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// Windows error constants
const (
	ERROR_ACCESS_DENIED        = syscall.Errno(5)
	ERROR_PRIVILEGE_NOT_HELD   = syscall.Errno(1314)
	ERROR_SHARING_VIOLATION    = syscall.Errno(32)
	ERROR_LOCK_VIOLATION       = syscall.Errno(33)
	ERROR_FILENAME_EXCED_RANGE = syscall.Errno(206)
	ERROR_NOT_READY            = syscall.Errno(21)
)

// Unix errno values that mean "try again shortly".
const (
	errnoEBUSY  = syscall.Errno(16)
	errnoEAGAIN = syscall.Errno(11)
)

// WindowsError represents a Windows-specific error with enhanced messaging
type WindowsError struct {
	OriginalError error
	Path          string
	Operation     string
	Suggestion    string
}

func (we *WindowsError) Error() string {
	if we.Suggestion != "" {
		return fmt.Sprintf("%s %s: %s. %s", we.Operation, we.Path, we.OriginalError.Error(), we.Suggestion)
	}
	return fmt.Sprintf("%s %s: %s", we.Operation, we.Path, we.OriginalError.Error())
}

func (we *WindowsError) Unwrap() error {
	return we.OriginalError
}

// ErrorHandler provides platform-specific error handling
type ErrorHandler interface {
	HandleFileError(err error, filePath string, operation string) error
	IsPermissionError(err error) bool
	IsTransientError(err error) bool
}

// GetErrorHandler returns the appropriate error handler for the current platform
func GetErrorHandler() ErrorHandler {
	if IsWindows() {
		return &WindowsErrorHandler{}
	}
	return &UnixErrorHandler{}
}

// WindowsErrorHandler handles Windows-specific errors
type WindowsErrorHandler struct{}

// HandleFileError provides Windows-specific file error handling
func (w *WindowsErrorHandler) HandleFileError(err error, filePath string, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case w.IsPermissionError(err):
		return &WindowsError{
			OriginalError: err,
			Path:          filePath,
			Operation:     operation,
			Suggestion:    "Access denied; run as Administrator or check the folder permissions",
		}
	case w.IsTransientError(err):
		return &WindowsError{
			OriginalError: err,
			Path:          filePath,
			Operation:     operation,
			Suggestion:    "The file is being used by another process",
		}
	case hasErrno(err, ERROR_FILENAME_EXCED_RANGE):
		return &WindowsError{
			OriginalError: err,
			Path:          filePath,
			Operation:     operation,
			Suggestion:    fmt.Sprintf("Path is %d characters long; enable Win32 long paths or shorten the output directory", len(filePath)),
		}
	}

	return &WindowsError{
		OriginalError: err,
		Path:          filePath,
		Operation:     operation,
	}
}

// IsPermissionError checks if the error is a Windows permission error
func (w *WindowsErrorHandler) IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, fs.ErrPermission) || hasErrno(err, ERROR_ACCESS_DENIED, ERROR_PRIVILEGE_NOT_HELD) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "access is denied") ||
		strings.Contains(errMsg, "privilege not held")
}

// IsTransientError reports sharing and lock violations, which clear once the
// other process closes the file.
func (w *WindowsErrorHandler) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if hasErrno(err, ERROR_SHARING_VIOLATION, ERROR_LOCK_VIOLATION, ERROR_NOT_READY) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "being used by another process")
}

// UnixErrorHandler provides basic error handling for Unix systems
type UnixErrorHandler struct{}

// HandleFileError provides basic file error handling for Unix systems
func (u *UnixErrorHandler) HandleFileError(err error, filePath string, operation string) error {
	if err == nil {
		return nil
	}

	if u.IsPermissionError(err) {
		return fmt.Errorf("%s %s: permission denied (check ownership with 'ls -la'): %w", operation, filePath, err)
	}

	return fmt.Errorf("%s %s: %w", operation, filePath, err)
}

// IsPermissionError checks for Unix permission errors
func (u *UnixErrorHandler) IsPermissionError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrPermission) || strings.Contains(err.Error(), "permission denied")
}

// IsTransientError reports EBUSY/EAGAIN style failures.
func (u *UnixErrorHandler) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	return hasErrno(err, errnoEBUSY, errnoEAGAIN)
}

// WrapFileError wraps a file operation error with platform-specific handling
func WrapFileError(err error, filePath string, operation string) error {
	if err == nil {
		return nil
	}
	return GetErrorHandler().HandleFileError(err, filePath, operation)
}

// IsPermissionError reports whether err is an access-denied failure on this platform.
func IsPermissionError(err error) bool {
	return GetErrorHandler().IsPermissionError(err)
}

// IsTransientError reports whether retrying the failed file operation may succeed.
func IsTransientError(err error) bool {
	return GetErrorHandler().IsTransientError(err)
}

// IsNotExist reports whether err means the path vanished.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

func hasErrno(err error, codes ...syscall.Errno) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	for _, code := range codes {
		if errno == code {
			return true
		}
	}
	return false
}
