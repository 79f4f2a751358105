// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"word-scan/internal/aggregate"
	"word-scan/internal/core"
	"word-scan/internal/gate"
	"word-scan/internal/observability"
	"word-scan/internal/walker"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// FileScanner scans a single file. core.ContentScanner implements it.
type FileScanner interface {
	Scan(ctx context.Context, path string) (*core.FileScanResult, error)
}

// PathSource enumerates candidate files. walker.Enumerator implements it.
type PathSource interface {
	Enumerate(ctx context.Context, visit func(path string) bool, rootDone func(root string, files int)) int
}

// Options configures a Scheduler. Scanner and Source default to a
// core.ContentScanner and a walker.Enumerator built from the ScanRequest.
type Options struct {
	Scanner   FileScanner
	Source    PathSource
	Callbacks Callbacks
	Observer  *observability.StandardObserver
}

// Scheduler runs scans with at most ScanRequest.Concurrency files in flight.
type Scheduler struct {
	scanner   FileScanner
	source    PathSource
	callbacks Callbacks
	observer  *observability.StandardObserver
}

// NewScheduler creates a scheduler.
func NewScheduler(opts Options) *Scheduler {
	observer := opts.Observer
	if observer == nil {
		observer = observability.Nop()
	}
	return &Scheduler{
		scanner:   opts.Scanner,
		source:    opts.Source,
		callbacks: opts.Callbacks,
		observer:  observer,
	}
}

// GetComponentName returns the component name for observability
func (s *Scheduler) GetComponentName() string {
	return "scheduler"
}

// Start begins a run and returns immediately. Cancelling ctx cancels the run.
func (s *Scheduler) Start(ctx context.Context, req *core.ScanRequest) *RunHandle {
	id := uuid.NewString()
	h := &RunHandle{
		id:        id,
		gate:      gate.New(),
		agg:       aggregate.New(),
		callbacks: s.callbacks,
		observer:  s.observer.WithRunID(id),
		done:      make(chan struct{}),
		startedAt: time.Now(),
	}

	scanner, source, err := s.resolve(req, h.observer)
	if err != nil {
		h.finish(Summary{RunID: id, StartedAt: h.startedAt, FinishedAt: time.Now()}, err)
		return h
	}

	go h.run(ctx, req, scanner, source)
	return h
}

func (s *Scheduler) resolve(req *core.ScanRequest, observer *observability.StandardObserver) (FileScanner, PathSource, error) {
	scanner := s.scanner
	if scanner == nil {
		cs, err := core.NewContentScanner(req, observer)
		if err != nil {
			return nil, nil, err
		}
		scanner = cs
	}

	source := s.source
	if source == nil {
		source = walker.NewEnumerator(walker.Options{
			Roots:           req.Roots(),
			Extensions:      req.Extensions(),
			ExcludePatterns: req.ExcludePatterns(),
			SkipDirs:        []string{req.OutputDir()},
			Observer:        observer,
		})
	}
	return scanner, source, nil
}

// Summary describes a finished run.
type Summary struct {
	RunID          string                 `json:"run_id" yaml:"run_id"`
	Cancelled      bool                   `json:"cancelled" yaml:"cancelled"`
	FilesKnown     int                    `json:"files_known" yaml:"files_known"`
	FilesProcessed int                    `json:"files_processed" yaml:"files_processed"`
	Errors         int                    `json:"errors" yaml:"errors"`
	Abandoned      int                    `json:"abandoned" yaml:"abandoned"`
	Aggregate      aggregate.RunAggregate `json:"aggregate" yaml:"aggregate"`
	StartedAt      time.Time              `json:"started_at" yaml:"started_at"`
	FinishedAt     time.Time              `json:"finished_at" yaml:"finished_at"`
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

func (h *RunHandle) run(parent context.Context, req *core.ScanRequest, scanner FileScanner, source PathSource) {
	finishTiming := h.observer.StartTiming("scheduler", "run", "")
	n := req.Concurrency()

	// runCtx stops enumeration and admission; in-flight scans use scanCtx so
	// they can finish during the drain window after a cancel.
	runCtx, stopRun := context.WithCancel(parent)
	defer stopRun()
	scanCtx, stopScans := context.WithCancel(context.WithoutCancel(parent))
	defer stopScans()

	go func() {
		select {
		case <-parent.Done():
			h.Cancel()
		case <-h.gate.Done():
		case <-h.done:
			return
		}
		stopRun()
	}()

	queue := make(chan string, 4*n)
	go h.enumerate(runCtx, source, queue)

	sem := semaphore.NewWeighted(int64(n))
	var inflight sync.WaitGroup

	for path := range queue {
		if err := sem.Acquire(runCtx, 1); err != nil {
			break
		}
		if err := h.gate.Checkpoint(runCtx); err != nil {
			sem.Release(1)
			break
		}
		inflight.Add(1)
		h.active.Add(1)
		go func(path string) {
			defer inflight.Done()
			defer sem.Release(1)
			defer h.active.Add(-1)
			h.scanOne(scanCtx, scanner, path)
		}(path)
	}
	if parent.Err() != nil {
		h.Cancel()
	}
	// Discard whatever is still queued so the enumerator can exit.
	for range queue {
	}

	drained := make(chan struct{})
	go func() {
		inflight.Wait()
		close(drained)
	}()

	abandoned := 0
	if h.gate.State() == gate.Cancelled {
		timer := time.NewTimer(req.DrainTimeout())
		select {
		case <-drained:
		case <-timer.C:
			abandoned = int(h.active.Load())
			h.agg.Seal()
			h.sealed.Store(true)
			stopScans()
			h.callbacks.statusMessage(fmt.Sprintf("abandoned %d scans still running after %s", abandoned, req.DrainTimeout()))
		}
		timer.Stop()
	} else {
		<-drained
	}
	h.agg.Seal()
	h.sealed.Store(true)

	summary := Summary{
		RunID:          h.id,
		Cancelled:      h.gate.State() == gate.Cancelled,
		FilesKnown:     int(h.totalKnown.Load()),
		FilesProcessed: int(h.processed.Load()),
		Errors:         int(h.errors.Load()),
		Abandoned:      abandoned,
		Aggregate:      h.agg.Snapshot(),
		StartedAt:      h.startedAt,
		FinishedAt:     time.Now(),
	}

	finishTiming(true, map[string]interface{}{
		"cancelled":          summary.Cancelled,
		"files_known":        summary.FilesKnown,
		"files_processed":    summary.FilesProcessed,
		"files_matched":      summary.Aggregate.FilesMatched,
		"total_replacements": summary.Aggregate.TotalReplacements,
		"abandoned":          abandoned,
		"concurrency":        n,
	})
	h.finish(summary, nil)
}

func (h *RunHandle) enumerate(ctx context.Context, source PathSource, queue chan<- string) {
	defer close(queue)

	h.callbacks.statusMessage("searching for files...")
	visit := func(path string) bool {
		select {
		case queue <- path:
			h.totalKnown.Add(1)
			return true
		case <-ctx.Done():
			return false
		}
	}
	rootDone := func(root string, files int) {
		if h.observer.DebugObserver != nil {
			h.observer.DebugObserver.LogMetric("scheduler", "files in "+root, files)
		}
		h.callbacks.totalFilesKnown(int(h.totalKnown.Load()))
	}

	source.Enumerate(ctx, visit, rootDone)

	total := int(h.totalKnown.Load())
	h.callbacks.totalFilesKnown(total)
	if ctx.Err() == nil {
		h.callbacks.statusMessage(fmt.Sprintf("found %d files", total))
	}
}

// scanOne isolates one file: errors and panics are reported and the file
// still counts as processed.
func (h *RunHandle) scanOne(ctx context.Context, scanner FileScanner, path string) {
	defer func() {
		if r := recover(); r != nil {
			h.errors.Add(1)
			err := fmt.Errorf("panic while scanning: %v", r)
			h.observer.LogError("scheduler", "scan_file", path, err)
			if h.observer.DebugObserver != nil {
				h.observer.DebugObserver.LogDetail("scheduler", string(debug.Stack()))
			}
			h.report(fmt.Sprintf("error processing %s: %v", path, err))
		}
		n := h.processed.Add(1)
		if !h.sealed.Load() {
			h.callbacks.filesProcessed(int(n))
		}
	}()

	result, err := scanner.Scan(ctx, path)
	if err != nil {
		h.errors.Add(1)
		h.observer.LogError("scheduler", "scan_file", path, err)
		h.report(fmt.Sprintf("error processing %s: %v", path, err))
		return
	}
	if result == nil || result.TotalReplacements == 0 {
		return
	}
	if h.agg.Record(result) {
		h.callbacks.fileMatched(result)
	}
}

func (h *RunHandle) report(msg string) {
	if !h.sealed.Load() {
		h.callbacks.statusMessage(msg)
	}
}
