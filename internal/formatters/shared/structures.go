// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"time"

	"word-scan/internal/core"
	"word-scan/internal/formatters"
)

// ReportDocument is the top-level structure for JSON/YAML output
type ReportDocument struct {
	GeneratedAt       time.Time        `json:"generated_at" yaml:"generated_at"`
	Cancelled         bool             `json:"cancelled" yaml:"cancelled"`
	FilesMatched      int              `json:"files_matched" yaml:"files_matched"`
	TotalBytes        int64            `json:"total_bytes" yaml:"total_bytes"`
	TotalSize         string           `json:"total_size" yaml:"total_size"`
	TotalReplacements int              `json:"total_replacements" yaml:"total_replacements"`
	TopWords          []core.WordCount `json:"top_words" yaml:"top_words"`
	Files             []FileEntry      `json:"files" yaml:"files"`
}

// FileEntry represents one matched file in JSON/YAML format
type FileEntry struct {
	Path              string           `json:"path" yaml:"path"`
	Size              int64            `json:"size" yaml:"size"`
	FormattedSize     string           `json:"formatted_size" yaml:"formatted_size"`
	ScannedAt         time.Time        `json:"scanned_at" yaml:"scanned_at"`
	TotalReplacements int              `json:"total_replacements" yaml:"total_replacements"`
	Encoding          string           `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	OriginalPath      string           `json:"original_path,omitempty" yaml:"original_path,omitempty"`
	ModifiedPath      string           `json:"modified_path,omitempty" yaml:"modified_path,omitempty"`
	Words             []core.WordCount `json:"words" yaml:"words"`
}

// ConvertReport builds the document shared by the JSON and YAML formatters.
// Slices are never nil so empty reports serialize as empty lists.
func ConvertReport(report *formatters.Report) ReportDocument {
	doc := ReportDocument{
		GeneratedAt:       report.GeneratedAt,
		Cancelled:         report.Cancelled,
		FilesMatched:      report.Summary.FilesMatched,
		TotalBytes:        report.Summary.TotalBytes,
		TotalSize:         formatters.FormatFileSize(report.Summary.TotalBytes),
		TotalReplacements: report.Summary.TotalReplacements,
		TopWords:          append([]core.WordCount{}, report.TopWords...),
		Files:             make([]FileEntry, 0, len(report.Results)),
	}

	for _, r := range report.Results {
		doc.Files = append(doc.Files, FileEntry{
			Path:              r.Path,
			Size:              r.Size,
			FormattedSize:     formatters.FormatFileSize(r.Size),
			ScannedAt:         r.ScannedAt,
			TotalReplacements: r.TotalReplacements,
			Encoding:          r.Encoding,
			OriginalPath:      r.OriginalPath,
			ModifiedPath:      r.ModifiedPath,
			Words:             formatters.SortedWordCounts(r),
		})
	}
	return doc
}
