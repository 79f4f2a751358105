// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"sync/atomic"
	"time"

	"word-scan/internal/aggregate"
	"word-scan/internal/core"
	"word-scan/internal/gate"
	"word-scan/internal/observability"
)

// RunHandle controls and observes one run. All methods are safe for
// concurrent use.
type RunHandle struct {
	id        string
	gate      *gate.Gate
	agg       *aggregate.Aggregator
	callbacks Callbacks
	observer  *observability.StandardObserver
	startedAt time.Time

	processed  atomic.Int64
	totalKnown atomic.Int64
	errors     atomic.Int64
	active     atomic.Int64
	sealed     atomic.Bool

	done    chan struct{}
	summary Summary
	err     error
}

// ID returns the run's unique identifier.
func (h *RunHandle) ID() string { return h.id }

// Pause stops new files from being admitted. Scans already running finish.
func (h *RunHandle) Pause() bool {
	if h.gate.Pause() {
		h.callbacks.statusMessage("paused")
		return true
	}
	return false
}

// Resume lets a paused run continue.
func (h *RunHandle) Resume() bool {
	if h.gate.Resume() {
		h.callbacks.statusMessage("resumed")
		return true
	}
	return false
}

// Cancel stops the run. Queued files are discarded; running scans get the
// drain timeout to finish. Cancelling twice is a no-op.
func (h *RunHandle) Cancel() bool {
	if h.gate.Cancel() {
		h.callbacks.statusMessage("cancelling...")
		return true
	}
	return false
}

// State returns the control state.
func (h *RunHandle) State() gate.State { return h.gate.State() }

// Done is closed when the run has finished and its summary is available.
func (h *RunHandle) Done() <-chan struct{} { return h.done }

// Wait blocks until the run finishes or ctx is done.
func (h *RunHandle) Wait(ctx context.Context) (Summary, error) {
	select {
	case <-h.done:
		return h.summary, h.err
	case <-ctx.Done():
		return Summary{}, ctx.Err()
	}
}

// Snapshot returns the current aggregate totals.
func (h *RunHandle) Snapshot() aggregate.RunAggregate { return h.agg.Snapshot() }

// Results returns the matched files recorded so far.
func (h *RunHandle) Results() []*core.FileScanResult { return h.agg.Results() }

// TopWords returns the n most frequent words so far.
func (h *RunHandle) TopWords(n int) []core.WordCount { return h.agg.TopWords(n) }

// Processed returns the number of files scanned so far.
func (h *RunHandle) Processed() int { return int(h.processed.Load()) }

// TotalKnown returns the number of files enumerated so far.
func (h *RunHandle) TotalKnown() int { return int(h.totalKnown.Load()) }

// Errors returns the number of files that failed with an error.
func (h *RunHandle) Errors() int { return int(h.errors.Load()) }

// StartedAt returns when the run began.
func (h *RunHandle) StartedAt() time.Time { return h.startedAt }

func (h *RunHandle) finish(summary Summary, err error) {
	h.summary = summary
	h.err = err
	h.sealed.Store(true)
	h.agg.Seal()
	close(h.done)
}
