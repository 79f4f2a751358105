// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"word-scan/internal/config"
	"word-scan/internal/paths"
	"word-scan/internal/platform"

	"golang.org/x/text/cases"
)

// ConfigError reports an unusable scan configuration. It is returned before
// any scanning starts.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid scan configuration: %s: %s", e.Field, e.Message)
}

// RequestOptions holds the caller-supplied values for a ScanRequest.
type RequestOptions struct {
	Words           []string
	OutputDir       string
	Extensions      []string
	Concurrency     int
	Roots           []string
	ExcludePatterns []string
	// DrainTimeout of zero selects config.DefaultDrainTimeout.
	DrainTimeout time.Duration
}

// ScanRequest is the immutable configuration of one run.
type ScanRequest struct {
	words           []string
	outputDir       string
	extensions      []string
	concurrency     int
	roots           []string
	excludePatterns []string
	drainTimeout    time.Duration
}

// NewScanRequest validates and normalizes opts. Words are trimmed and
// deduplicated case-insensitively, keeping the first spelling. Extensions are
// lower-cased with a leading dot. Without roots, every platform scan root is used.
func NewScanRequest(opts RequestOptions) (*ScanRequest, error) {
	words := NormalizeWords(opts.Words)
	if len(words) == 0 {
		return nil, &ConfigError{Field: "words", Message: "the forbidden word list is empty"}
	}

	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, &ConfigError{Field: "output", Message: "an output directory is required"}
	}
	outputDir, err := paths.ResolvePath(opts.OutputDir)
	if err != nil {
		return nil, &ConfigError{Field: "output", Message: err.Error()}
	}
	if err := paths.ValidatePath(outputDir); err != nil {
		return nil, &ConfigError{Field: "output", Message: err.Error()}
	}

	extensions := config.NormalizeExtensions(opts.Extensions)
	if len(extensions) == 0 {
		return nil, &ConfigError{Field: "extensions", Message: "at least one file extension is required"}
	}

	if opts.Concurrency <= 0 {
		return nil, &ConfigError{Field: "concurrency", Message: fmt.Sprintf("must be positive, got %d", opts.Concurrency)}
	}

	drain := opts.DrainTimeout
	switch {
	case drain < 0:
		return nil, &ConfigError{Field: "drain_timeout", Message: fmt.Sprintf("must not be negative, got %s", drain)}
	case drain == 0:
		drain = config.DefaultDrainTimeout
	}

	for _, pattern := range opts.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, &ConfigError{Field: "exclude", Message: fmt.Sprintf("invalid pattern %q", pattern)}
		}
	}

	roots := opts.Roots
	if len(roots) == 0 {
		roots, err = platform.GetPlatform().ScanRoots()
		if err != nil {
			return nil, &ConfigError{Field: "roots", Message: err.Error()}
		}
		if len(roots) == 0 {
			return nil, &ConfigError{Field: "roots", Message: "no ready drives found"}
		}
	}
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := paths.ResolvePath(root)
		if err != nil || abs == "" {
			return nil, &ConfigError{Field: "roots", Message: fmt.Sprintf("cannot resolve %q", root)}
		}
		resolved = append(resolved, abs)
	}

	return &ScanRequest{
		words:           words,
		outputDir:       outputDir,
		extensions:      extensions,
		concurrency:     opts.Concurrency,
		roots:           resolved,
		excludePatterns: append([]string(nil), opts.ExcludePatterns...),
		drainTimeout:    drain,
	}, nil
}

// NormalizeWords trims every word, drops blanks and removes case-insensitive
// duplicates while keeping the first spelling and order.
func NormalizeWords(words []string) []string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		key := fold.String(w)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w)
	}
	return out
}

// Words returns the normalized forbidden words in list order.
func (r *ScanRequest) Words() []string {
	return append([]string(nil), r.words...)
}

// OutputDir returns the absolute output directory.
func (r *ScanRequest) OutputDir() string {
	return r.outputDir
}

// Extensions returns the selected extensions, each with a leading dot.
func (r *ScanRequest) Extensions() []string {
	return append([]string(nil), r.extensions...)
}

// Concurrency returns the maximum number of files scanned at once.
func (r *ScanRequest) Concurrency() int {
	return r.concurrency
}

// Roots returns the absolute scan roots.
func (r *ScanRequest) Roots() []string {
	return append([]string(nil), r.roots...)
}

// ExcludePatterns returns the directory name globs to skip.
func (r *ScanRequest) ExcludePatterns() []string {
	return append([]string(nil), r.excludePatterns...)
}

// DrainTimeout bounds the wait for in-flight scans after a cancel.
func (r *ScanRequest) DrainTimeout() time.Duration {
	return r.drainTimeout
}
