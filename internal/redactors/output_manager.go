// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"word-scan/internal/filelock"
	"word-scan/internal/observability"
	"word-scan/internal/paths"
	"word-scan/internal/platform"
	"word-scan/internal/resilience"
)

const (
	// OriginalPrefix marks the untouched copy of a source file.
	OriginalPrefix = "original_"
	// ModifiedPrefix marks the redacted copy of a source file.
	ModifiedPrefix = "modified_"
	// LockFileName is created in the output directory while a run owns it.
	LockFileName = ".word-scan.lock"
)

// OutputManager writes the per-file artifacts of a run into one flat output
// directory. It is safe for concurrent use; writes to the same artifact name
// are serialized so the last writer wins with a complete file.
type OutputManager struct {
	// outputDir is the directory where artifacts are stored
	outputDir string

	// observer handles observability and metrics
	observer *observability.StandardObserver

	// retry governs transient write failures such as sharing violations
	retry resilience.RetryConfig

	// nameLocks holds one *sync.Mutex per artifact base name
	nameLocks sync.Map
}

// NewOutputManager creates a new OutputManager
func NewOutputManager(outputDir string, observer *observability.StandardObserver) (*OutputManager, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory cannot be empty")
	}
	if err := paths.ValidatePath(outputDir); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = observability.Nop()
	}

	return &OutputManager{
		outputDir: filepath.Clean(outputDir),
		observer:  observer,
		retry:     resilience.DefaultRetryConfig(),
	}, nil
}

// SetRetryConfig replaces the retry policy for artifact writes.
func (om *OutputManager) SetRetryConfig(cfg resilience.RetryConfig) {
	om.retry = cfg
}

// GetComponentName returns the component identifier
func (om *OutputManager) GetComponentName() string {
	return "output_manager"
}

// OutputDir returns the directory artifacts are written to
func (om *OutputManager) OutputDir() string {
	return om.outputDir
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (om *OutputManager) EnsureOutputDir() error {
	if info, err := os.Stat(om.outputDir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", om.outputDir)
		}
		return nil
	}

	if err := os.MkdirAll(om.outputDir, 0o755); err != nil {
		return platform.WrapFileError(err, om.outputDir, "creating output directory")
	}
	return nil
}

// ArtifactPaths returns where the original and modified copies of sourcePath go.
func (om *OutputManager) ArtifactPaths(sourcePath string) (originalPath, modifiedPath string) {
	name := paths.SanitizeFileName(filepath.Base(sourcePath))
	return filepath.Join(om.outputDir, OriginalPrefix+name),
		filepath.Join(om.outputDir, ModifiedPrefix+name)
}

// WriteArtifacts stores a byte-for-byte copy of sourcePath and the redacted
// bytes. Existing artifacts with the same names are replaced. Failures come
// back as *ScanError.
func (om *OutputManager) WriteArtifacts(ctx context.Context, sourcePath string, modified []byte) (originalPath, modifiedPath string, err error) {
	finishTiming := om.observer.StartTiming("output_manager", "write_artifacts", sourcePath)

	originalPath, modifiedPath = om.ArtifactPaths(sourcePath)

	if err := om.EnsureOutputDir(); err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return "", "", NewScanError(ErrorWrite, "cannot create output directory", sourcePath, om.GetComponentName(), err)
	}

	unlock := om.lockName(filepath.Base(originalPath))
	defer unlock()

	if err := om.withRetry(ctx, func() error { return copyFile(sourcePath, originalPath) }); err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return "", "", NewScanError(ErrorWrite, "cannot copy original", sourcePath, om.GetComponentName(),
			platform.WrapFileError(err, originalPath, "writing"))
	}

	if err := om.withRetry(ctx, func() error {
		return filelock.AtomicWriteFrom(modifiedPath, bytes.NewReader(modified))
	}); err != nil {
		finishTiming(false, map[string]interface{}{"error": err.Error()})
		return "", "", NewScanError(ErrorWrite, "cannot write modified copy", sourcePath, om.GetComponentName(),
			platform.WrapFileError(err, modifiedPath, "writing"))
	}

	finishTiming(true, map[string]interface{}{
		"original_path": originalPath,
		"modified_path": modifiedPath,
		"bytes":         len(modified),
	})
	return originalPath, modifiedPath, nil
}

// AcquireRunLock takes the output directory's lock file without blocking.
// It returns ErrOutputLocked when another process holds it.
func (om *OutputManager) AcquireRunLock() (release func() error, err error) {
	if err := om.EnsureOutputDir(); err != nil {
		return nil, err
	}

	lock := filelock.NewFileLock(filepath.Join(om.outputDir, LockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrOutputLocked, om.outputDir)
	}
	return lock.Unlock, nil
}

func (om *OutputManager) withRetry(ctx context.Context, op func() error) error {
	return resilience.RetryWithBackoff(ctx, om.retry, func(context.Context) error {
		return op()
	})
}

func (om *OutputManager) lockName(name string) func() {
	v, _ := om.nameLocks.LoadOrStore(name, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// copyFile streams the source into place without loading it into memory
func copyFile(sourcePath, destPath string) error {
	sourceFile, err := os.Open(filepath.Clean(sourcePath))
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	return filelock.AtomicWriteFrom(destPath, sourceFile)
}
