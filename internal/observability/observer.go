// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// StandardObserver implements observability for all components. Workers share
// one observer, so every write goes through the shared mutex.
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	mu            *sync.Mutex
	runID         string
	DebugObserver *DebugObserver // Reference to debug observer when in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// NewStandardObserver creates observability component
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		writer = io.Discard
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
		mu:     &sync.Mutex{},
	}
}

// Nop returns an observer that records nothing.
func Nop() *StandardObserver {
	return NewStandardObserver(ObservabilityOff, io.Discard)
}

// WithRunID returns an observer that tags every record with runID. It shares
// the writer and lock of o.
func (o *StandardObserver) WithRunID(runID string) *StandardObserver {
	clone := *o
	clone.runID = runID
	return &clone
}

// Level reports the configured verbosity.
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		data := StandardObservabilityData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}

		o.LogOperation(data)
	}
}

// LogError records a failed operation.
func (o *StandardObserver) LogError(component, operation, filePath string, err error) {
	data := StandardObservabilityData{
		Component: component,
		Operation: operation,
		FilePath:  filePath,
		Success:   false,
	}
	if err != nil {
		data.Error = err.Error()
	}
	o.LogOperation(data)
}

// LogOperation logs operation data. Metrics level only records failures;
// debug level records everything.
func (o *StandardObserver) LogOperation(data StandardObservabilityData) {
	if o.level == ObservabilityOff {
		return
	}
	if o.level == ObservabilityMetrics && data.Success {
		return
	}

	data.RunID = o.runID
	data.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)

	o.mu.Lock()
	defer o.mu.Unlock()
	_ = json.NewEncoder(o.writer).Encode(data)
}

// StandardObservabilityData for all components
type StandardObservabilityData struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	RunID      string                 `json:"run_id,omitempty"`
	Timestamp  string                 `json:"timestamp"`
	FilePath   string                 `json:"file_path,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	MatchCount int                    `json:"match_count,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
