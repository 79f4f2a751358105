// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"word-scan/internal/observability"
)

// PlainTextPreprocessor reads any file as text with the UTF-8 then
// Windows-1251 fallback. Structured formats are not parsed.
type PlainTextPreprocessor struct {
	observer *observability.StandardObserver
}

// NewPlainTextPreprocessor creates a new plain text preprocessor
func NewPlainTextPreprocessor() *PlainTextPreprocessor {
	return &PlainTextPreprocessor{}
}

// SetObserver sets the observability component
func (ptp *PlainTextPreprocessor) SetObserver(observer *observability.StandardObserver) {
	ptp.observer = observer
}

// GetName returns the name of this preprocessor
func (ptp *PlainTextPreprocessor) GetName() string {
	return "Plain Text Preprocessor"
}

// Process reads the whole file and decodes it. Read failures are returned
// wrapped; content that cannot be decoded yields an error matching
// ErrUndecodable.
func (ptp *PlainTextPreprocessor) Process(filePath string) (*ProcessedContent, error) {
	var finishTiming func(bool, map[string]interface{})
	if ptp.observer != nil {
		finishTiming = ptp.observer.StartTiming("plaintext_preprocessor", "process_file", filePath)
	}

	data, err := os.ReadFile(filepath.Clean(filePath))
	if err != nil {
		if finishTiming != nil {
			finishTiming(false, map[string]interface{}{"error": err.Error()})
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, enc, err := Decode(data)
	if err != nil {
		// Undecodable content is a skip, not a failure.
		if finishTiming != nil {
			finishTiming(true, map[string]interface{}{"skipped": "undecodable", "reason": err.Error(), "bytes": len(data)})
		}
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}

	result := &ProcessedContent{
		OriginalPath:  filePath,
		Filename:      filepath.Base(filePath),
		Text:          text,
		Encoding:      enc,
		Size:          int64(len(data)),
		LineCount:     strings.Count(text, "\n") + 1,
		ProcessorType: "plaintext",
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"encoding":   string(enc),
			"bytes":      len(data),
			"line_count": result.LineCount,
		})
	}

	return result, nil
}
