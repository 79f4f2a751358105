// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"word-scan/internal/aggregate"
	"word-scan/internal/core"
	"word-scan/internal/filelock"
)

// TopWordsLimit is the number of words listed in the report ranking.
const TopWordsLimit = 10

// DefaultFormat is the canonical report format.
const DefaultFormat = "text"

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor bool // Whether to disable colored output
}

// Report is everything a formatter renders. Build it with NewReport.
type Report struct {
	GeneratedAt time.Time
	Results     []*core.FileScanResult
	Summary     aggregate.RunAggregate
	TopWords    []core.WordCount
	// Cancelled marks a report written after the run was stopped early.
	Cancelled bool
}

// NewReport computes totals and the top words for results. Results keep their
// order; nil entries are dropped.
func NewReport(results []*core.FileScanResult, generatedAt time.Time) *Report {
	kept := make([]*core.FileScanResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			kept = append(kept, r)
		}
	}
	summary := aggregate.Summarize(kept)
	return &Report{
		GeneratedAt: generatedAt,
		Results:     kept,
		Summary:     summary,
		TopWords:    aggregate.TopWords(summary.WordTotals, TopWordsLimit),
	}
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format renders the report
	Format(report *Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatInfo provides metadata about a formatter
type FormatInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	MimeType    string `json:"mime_type"`
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter.
func Export(format string, report *Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	return formatter.Format(report, options)
}

// GetFormatInfo returns metadata about a specific formatter
func GetFormatInfo(name string) FormatInfo {
	formatter, exists := Get(name)
	if !exists {
		return FormatInfo{}
	}

	info := FormatInfo{
		Name:        formatter.Name(),
		Description: formatter.Description(),
		Extension:   formatter.FileExtension(),
	}

	switch name {
	case "json":
		info.MimeType = "application/json"
	case "csv":
		info.MimeType = "text/csv"
	case "yaml":
		info.MimeType = "application/x-yaml"
	case "text":
		info.MimeType = "text/plain; charset=utf-8"
	default:
		info.MimeType = "application/octet-stream"
	}

	return info
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		formats = append(formats, GetFormatInfo(name))
	}
	return formats
}

// ReportFileName names a report after the moment it was generated.
func ReportFileName(generatedAt time.Time, format string) string {
	ext := ".txt"
	if f, ok := Get(format); ok {
		ext = f.FileExtension()
	}
	return "Report_" + generatedAt.Format("20060102_150405") + ext
}

// Generate renders results with the named format and writes the report
// atomically to outputPath.
func Generate(results []*core.FileScanResult, outputPath, format string, generatedAt time.Time) error {
	return WriteReport(NewReport(results, generatedAt), outputPath, format)
}

// WriteReport renders report without colors and writes it atomically.
func WriteReport(report *Report, outputPath, format string) error {
	content, err := Export(format, report, FormatterOptions{NoColor: true})
	if err != nil {
		return err
	}
	if err := filelock.AtomicWrite(filepath.Clean(outputPath), []byte(content)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders bytes in binary units with up to two decimals,
// for example "512 B" or "1.5 KB".
func FormatFileSize(bytes int64) string {
	value := float64(bytes)
	order := 0
	for value >= 1024 && order < len(sizeUnits)-1 {
		order++
		value /= 1024
	}
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[order]
}

// SortedWordCounts orders a file's word counts by count, descending. Ties keep
// word-list order.
func SortedWordCounts(result *core.FileScanResult) []core.WordCount {
	counts := append([]core.WordCount(nil), result.WordCounts...)
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
