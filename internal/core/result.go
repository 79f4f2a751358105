// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import "time"

// WordCount is the number of occurrences of one forbidden word.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// FileScanResult describes one file that contained at least one forbidden word.
type FileScanResult struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
	// WordCounts lists only words with a positive count, in word-list order.
	WordCounts        []WordCount `json:"word_counts" yaml:"word_counts"`
	TotalReplacements int         `json:"total_replacements" yaml:"total_replacements"`
	ScannedAt         time.Time   `json:"scanned_at" yaml:"scanned_at"`
	Encoding          string      `json:"encoding" yaml:"encoding"`
	OriginalPath      string      `json:"original_path" yaml:"original_path"`
	ModifiedPath      string      `json:"modified_path" yaml:"modified_path"`
}

// CountOf returns the count recorded for word, or zero.
func (r *FileScanResult) CountOf(word string) int {
	for _, wc := range r.WordCounts {
		if wc.Word == word {
			return wc.Count
		}
	}
	return 0
}
