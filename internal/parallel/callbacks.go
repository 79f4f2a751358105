// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"sync"

	"word-scan/internal/core"
)

// Callbacks receive run progress. Any field may be nil. The scheduler calls
// them from worker goroutines; wrap them with Serialize when the receiver
// needs single-threaded delivery.
type Callbacks struct {
	// TotalFilesKnown reports the number of files enumerated so far. It is
	// called after each root finishes and once more when enumeration ends.
	TotalFilesKnown func(total int)
	// FilesProcessed reports the number of files scanned so far.
	FilesProcessed func(processed int)
	// FileMatched reports a file that contained at least one forbidden word.
	FileMatched func(result *core.FileScanResult)
	// StatusMessage reports human-readable progress and per-file errors.
	StatusMessage func(message string)
}

func (c Callbacks) totalFilesKnown(n int) {
	if c.TotalFilesKnown != nil {
		c.TotalFilesKnown(n)
	}
}

func (c Callbacks) filesProcessed(n int) {
	if c.FilesProcessed != nil {
		c.FilesProcessed(n)
	}
}

func (c Callbacks) fileMatched(r *core.FileScanResult) {
	if c.FileMatched != nil {
		c.FileMatched(r)
	}
}

func (c Callbacks) statusMessage(msg string) {
	if c.StatusMessage != nil {
		c.StatusMessage(msg)
	}
}

// Serialize returns callbacks that queue every event for a single consumer
// goroutine which invokes cb in order. buffer bounds the queue; a full queue
// blocks the caller. stop flushes the queue and waits for the consumer; events
// sent after stop are dropped.
func Serialize(cb Callbacks, buffer int) (serialized Callbacks, stop func()) {
	if buffer < 0 {
		buffer = 0
	}
	events := make(chan func(), buffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ev := range events {
			ev()
		}
	}()

	var mu sync.RWMutex
	closed := false
	send := func(ev func()) {
		mu.RLock()
		defer mu.RUnlock()
		if closed {
			return
		}
		events <- ev
	}

	stop = func() {
		mu.Lock()
		if !closed {
			closed = true
			close(events)
		}
		mu.Unlock()
		<-done
	}

	serialized = Callbacks{
		TotalFilesKnown: func(n int) { send(func() { cb.totalFilesKnown(n) }) },
		FilesProcessed:  func(n int) { send(func() { cb.filesProcessed(n) }) },
		FileMatched:     func(r *core.FileScanResult) { send(func() { cb.fileMatched(r) }) },
		StatusMessage:   func(msg string) { send(func() { cb.statusMessage(msg) }) },
	}
	return serialized, stop
}
