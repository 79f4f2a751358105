// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"word-scan/internal/formatters"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import, one row per file and word"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

// Format writes one row per matched word of each file, in report order.
func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) (string, error) {
	headers := []string{"Path", "Size", "Scanned At", "Total Replacements", "Word", "Count"}
	csvRows := []string{strings.Join(headers, ",")}

	for _, r := range report.Results {
		for _, wc := range formatters.SortedWordCounts(r) {
			row := []string{
				f.escapeCSVField(r.Path),
				strconv.FormatInt(r.Size, 10),
				r.ScannedAt.Format(time.RFC3339),
				strconv.Itoa(r.TotalReplacements),
				f.escapeCSVField(wc.Word),
				strconv.Itoa(wc.Count),
			}
			csvRows = append(csvRows, strings.Join(row, ","))
		}
	}

	return strings.Join(csvRows, "\n") + "\n", nil
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	// If field contains comma, quote, or newline, wrap in quotes and escape internal quotes
	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection prefixes fields that a spreadsheet would run as a formula
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
