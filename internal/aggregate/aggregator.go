// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package aggregate

import (
	"sort"
	"sync"

	"word-scan/internal/core"
)

// RunAggregate is a point-in-time copy of the run totals.
type RunAggregate struct {
	FilesMatched      int   `json:"files_matched" yaml:"files_matched"`
	TotalBytes        int64 `json:"total_bytes" yaml:"total_bytes"`
	TotalReplacements int   `json:"total_replacements" yaml:"total_replacements"`
	// WordTotals holds cumulative counts in the order each word was first seen.
	WordTotals []core.WordCount `json:"word_totals" yaml:"word_totals"`
}

// Aggregator collects per-file results from concurrent workers. All state is
// guarded by one mutex; readers receive copies.
type Aggregator struct {
	mu        sync.Mutex
	results   []*core.FileScanResult
	agg       RunAggregate
	wordIndex map[string]int
	sealed    bool
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{wordIndex: make(map[string]int)}
}

// Record adds one result. Nil results and results without replacements are
// ignored. It returns false once the aggregator is sealed.
func (a *Aggregator) Record(result *core.FileScanResult) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.sealed {
		return false
	}
	if result == nil || result.TotalReplacements <= 0 {
		return true
	}

	a.results = append(a.results, result)
	a.agg.FilesMatched++
	a.agg.TotalBytes += result.Size
	a.agg.TotalReplacements += result.TotalReplacements

	for _, wc := range result.WordCounts {
		i, ok := a.wordIndex[wc.Word]
		if !ok {
			i = len(a.agg.WordTotals)
			a.wordIndex[wc.Word] = i
			a.agg.WordTotals = append(a.agg.WordTotals, core.WordCount{Word: wc.Word})
		}
		a.agg.WordTotals[i].Count += wc.Count
	}
	return true
}

// Seal stops further recording. Results that arrive afterwards are dropped.
func (a *Aggregator) Seal() {
	a.mu.Lock()
	a.sealed = true
	a.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (a *Aggregator) Sealed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sealed
}

// Snapshot returns a copy of the current totals.
func (a *Aggregator) Snapshot() RunAggregate {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := a.agg
	snap.WordTotals = append([]core.WordCount(nil), a.agg.WordTotals...)
	return snap
}

// Results returns the recorded results in arrival order.
func (a *Aggregator) Results() []*core.FileScanResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*core.FileScanResult(nil), a.results...)
}

// TopWords returns up to n words with the highest cumulative counts.
// Equal counts keep first-seen order.
func (a *Aggregator) TopWords(n int) []core.WordCount {
	return TopWords(a.Snapshot().WordTotals, n)
}

// TopWords sorts a copy of totals by count, descending and stable, and keeps
// at most n entries.
func TopWords(totals []core.WordCount, n int) []core.WordCount {
	if n <= 0 {
		return nil
	}
	sorted := append([]core.WordCount(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Summarize builds totals from a result list without an Aggregator.
func Summarize(results []*core.FileScanResult) RunAggregate {
	a := New()
	for _, r := range results {
		a.Record(r)
	}
	return a.Snapshot()
}
