// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"word-scan/internal/observability"
)

// ProcessedContent contains the decoded text of one file
type ProcessedContent struct {
	// Original file information
	OriginalPath string
	Filename     string

	// Decoded content
	Text string

	// Encoding that decoded Text. Writing Text back with the same encoding
	// reproduces the source bytes.
	Encoding Encoding

	// Size is the number of bytes read from disk.
	Size int64

	LineCount int

	ProcessorType string
}

// Preprocessor turns a file on disk into scannable text
type Preprocessor interface {
	// Process reads and decodes the file
	Process(filePath string) (*ProcessedContent, error)

	// GetName returns the name of this preprocessor
	GetName() string

	// SetObserver sets the observability component
	SetObserver(observer *observability.StandardObserver)
}
