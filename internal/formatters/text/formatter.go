// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"word-scan/internal/formatters"

	"github.com/fatih/color"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	lineWidth  = 80
)

// Formatter renders the human-readable report
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable report with totals, top words and per-file details"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report *formatters.Report, options formatters.FormatterOptions) (string, error) {
	heading := newColor(options, color.FgCyan, color.Bold)
	label := newColor(options, color.FgWhite, color.Bold)
	warn := newColor(options, color.FgYellow)

	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, heading.Sprint("FORBIDDEN WORD SCAN REPORT"))
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Files found: %d\n", len(report.Results))
	if report.Cancelled {
		fmt.Fprintln(&b, warn.Sprint("Status: cancelled, results are partial"))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, label.Sprint("SUMMARY:"))
	fmt.Fprintf(&b, "  Total size: %s\n", formatters.FormatFileSize(report.Summary.TotalBytes))
	fmt.Fprintf(&b, "  Total replacements: %d\n", report.Summary.TotalReplacements)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, label.Sprintf("TOP %d FORBIDDEN WORDS:", formatters.TopWordsLimit))
	for i, wc := range report.TopWords {
		fmt.Fprintf(&b, "  %d. %s: %d %s\n", i+1, wc.Word, wc.Count, times(wc.Count))
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, label.Sprint("FILE DETAILS:"))
	fmt.Fprintln(&b, strings.Repeat("-", lineWidth))
	for i, r := range report.Results {
		fmt.Fprintf(&b, "File #%d:\n", i+1)
		fmt.Fprintf(&b, "  Path: %s\n", r.Path)
		fmt.Fprintf(&b, "  Size: %s\n", formatters.FormatFileSize(r.Size))
		fmt.Fprintf(&b, "  Scanned at: %s\n", r.ScannedAt.Format(timeLayout))
		fmt.Fprintf(&b, "  Total replacements: %d\n", r.TotalReplacements)
		fmt.Fprintln(&b, "  Words found:")
		for _, wc := range formatters.SortedWordCounts(r) {
			fmt.Fprintf(&b, "    - %s: %d %s\n", wc.Word, wc.Count, times(wc.Count))
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, heading.Sprint("END OF REPORT"))
	return b.String(), nil
}

func newColor(options formatters.FormatterOptions, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if options.NoColor {
		c.DisableColor()
	}
	return c
}

func times(n int) string {
	if n == 1 {
		return "time"
	}
	return "times"
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
