// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"syscall"
	"testing"
)

func TestClassifyError(t *testing.T) {
	busy := error(syscall.EBUSY)
	if runtime.GOOS == "windows" {
		busy = syscall.Errno(32) // sharing violation
	}

	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"busy file", &os.PathError{Op: "open", Path: "x", Err: busy}, ErrorTypeTransient, true},
		{"permission", &os.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, ErrorTypeAccessDenied, false},
		{"missing", fmt.Errorf("stat: %w", fs.ErrNotExist), ErrorTypeNotFound, false},
		{"cancelled", fmt.Errorf("write: %w", context.Canceled), ErrorTypeCancelled, false},
		{"deadline", context.DeadlineExceeded, ErrorTypeTimeout, true},
		{"unknown", errors.New("disk on fire"), ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("expected type %s, got %s", tt.wantType, got.Type)
			}
			if got.IsRetryable() != tt.retryable {
				t.Errorf("expected retryable=%v, got %v", tt.retryable, got.IsRetryable())
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error must wrap the original")
			}
		})
	}
}

func TestClassifyError_AlreadyClassified(t *testing.T) {
	orig := NewPermanentError("nope", nil)
	wrapped := fmt.Errorf("context: %w", orig)
	if got := ClassifyError(wrapped); got != orig {
		t.Errorf("expected the wrapped classified error to be returned, got %v", got)
	}
	if ClassifyError(nil) != nil {
		t.Error("nil error should classify to nil")
	}
}
