// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"word-scan/internal/detector"
	"word-scan/internal/observability"
	"word-scan/internal/platform"
	"word-scan/internal/preprocessors"
	"word-scan/internal/redactors"
	"word-scan/internal/security"
)

// ContentScanner scans one file at a time: it decodes the file, counts whole-word
// matches, and when anything matched writes the original and redacted copies.
// It keeps no per-run mutable state and is safe for concurrent use.
type ContentScanner struct {
	matcher      *detector.Matcher
	preprocessor preprocessors.Preprocessor
	output       *redactors.OutputManager
	observer     *observability.StandardObserver
	now          func() time.Time
}

// NewContentScanner builds the scanner for req.
func NewContentScanner(req *ScanRequest, observer *observability.StandardObserver) (*ContentScanner, error) {
	if observer == nil {
		observer = observability.Nop()
	}

	matcher, err := detector.NewMatcher(req.Words())
	if err != nil {
		return nil, &ConfigError{Field: "words", Message: err.Error()}
	}

	output, err := redactors.NewOutputManager(req.OutputDir(), observer)
	if err != nil {
		return nil, &ConfigError{Field: "output", Message: err.Error()}
	}

	pre := preprocessors.NewPlainTextPreprocessor()
	pre.SetObserver(observer)

	return &ContentScanner{
		matcher:      matcher,
		preprocessor: pre,
		output:       output,
		observer:     observer,
		now:          time.Now,
	}, nil
}

// GetComponentName returns the component name for observability
func (cs *ContentScanner) GetComponentName() string {
	return "content_scanner"
}

// Output exposes the artifact writer, used for the run lock and the report path.
func (cs *ContentScanner) Output() *redactors.OutputManager {
	return cs.output
}

// Scan processes path. A nil result with a nil error means the file was
// skipped: it vanished, could not be decoded, or contained no forbidden word.
// Stat, read and write failures return a *redactors.ScanError.
func (cs *ContentScanner) Scan(ctx context.Context, path string) (*FileScanResult, error) {
	finishTiming := cs.observer.StartTiming(cs.GetComponentName(), "scan_file", path)

	attrs, err := platform.GetSimpleFileAttributes(path)
	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return nil, redactors.NewScanError(redactors.ErrorFileSystem, "cannot stat file", path,
			cs.GetComponentName(), platform.WrapFileError(err, path, "reading"))
	}
	if !attrs.Exists || !attrs.Regular {
		finishTiming(true, map[string]interface{}{"skipped": "missing"})
		return nil, nil
	}

	content, err := cs.preprocessor.Process(path)
	if err != nil {
		switch {
		case errors.Is(err, preprocessors.ErrUndecodable):
			finishTiming(true, map[string]interface{}{"skipped": "undecodable"})
			return nil, nil
		case platform.IsNotExist(err):
			finishTiming(true, map[string]interface{}{"skipped": "missing"})
			return nil, nil
		}
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return nil, redactors.NewScanError(redactors.ErrorAccess, "cannot read file", path,
			cs.GetComponentName(), platform.WrapFileError(err, path, "reading"))
	}

	found := cs.matcher.Find(content.Text)
	total := found.Total()
	if total == 0 {
		finishTiming(true, map[string]interface{}{"matches": 0})
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	redacted, _ := redactors.ApplyMask(content.Text, found.Matches)
	encoded, err := preprocessors.Encode(redacted, content.Encoding)
	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return nil, redactors.NewScanError(redactors.ErrorWrite, "cannot encode redacted text", path,
			cs.GetComponentName(), err)
	}

	var originalPath, modifiedPath string
	err = security.WipeAfter(encoded, func(b []byte) error {
		var werr error
		originalPath, modifiedPath, werr = cs.output.WriteArtifacts(ctx, path, b)
		return werr
	})
	if err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = filepath.Clean(path)
	}

	words := cs.matcher.Words()
	counts := make([]WordCount, 0, len(words))
	for i, n := range found.Counts {
		if n > 0 {
			counts = append(counts, WordCount{Word: words[i], Count: n})
		}
	}

	result := &FileScanResult{
		Path:              absPath,
		Size:              attrs.Size,
		WordCounts:        counts,
		TotalReplacements: total,
		ScannedAt:         cs.now(),
		Encoding:          string(content.Encoding),
		OriginalPath:      originalPath,
		ModifiedPath:      modifiedPath,
	}

	finishTiming(true, map[string]interface{}{
		"matches":  total,
		"encoding": result.Encoding,
		"bytes":    attrs.Size,
	})
	return result, nil
}
