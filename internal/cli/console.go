// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"word-scan/internal/core"
	"word-scan/internal/parallel"

	"github.com/fatih/color"
	"golang.org/x/term"
	"golang.org/x/time/rate"
)

const progressInterval = 100 * time.Millisecond

// console renders run progress. Its callbacks must be delivered from a single
// goroutine (see parallel.Serialize).
type console struct {
	out    io.Writer
	errOut io.Writer

	quiet       bool
	interactive bool

	progress  rate.Sometimes
	total     int
	processed int
	lineOpen  bool

	green  *color.Color
	yellow *color.Color
	red    *color.Color
	cyan   *color.Color
	bold   *color.Color
}

func newConsole(out, errOut io.Writer, quiet, noColor bool) *console {
	c := &console{
		out:         out,
		errOut:      errOut,
		quiet:       quiet,
		interactive: isTerminal(errOut),
		progress:    rate.Sometimes{Interval: progressInterval},
		green:       color.New(color.FgGreen),
		yellow:      color.New(color.FgYellow),
		red:         color.New(color.FgRed),
		cyan:        color.New(color.FgCyan),
		bold:        color.New(color.Bold),
	}
	if noColor {
		for _, col := range []*color.Color{c.green, c.yellow, c.red, c.cyan, c.bold} {
			col.DisableColor()
		}
	}
	return c
}

func (c *console) callbacks() parallel.Callbacks {
	return parallel.Callbacks{
		TotalFilesKnown: func(total int) {
			c.total = total
			c.drawProgress(false)
		},
		FilesProcessed: func(processed int) {
			c.processed = processed
			c.drawProgress(false)
		},
		FileMatched:   c.fileMatched,
		StatusMessage: c.status,
	}
}

func (c *console) fileMatched(r *core.FileScanResult) {
	c.breakLine()
	fmt.Fprintf(c.out, "%s %s (replacements: %d)\n", c.green.Sprint("Found file:"), r.Path, r.TotalReplacements)
}

func (c *console) status(msg string) {
	if c.quiet && !strings.HasPrefix(msg, "error") {
		return
	}
	c.breakLine()
	if strings.HasPrefix(msg, "error") {
		c.red.Fprintln(c.errOut, msg)
		return
	}
	c.yellow.Fprintln(c.errOut, msg)
}

// drawProgress redraws the progress line at most once per progressInterval
// unless force is set. Non-interactive outputs get no progress line.
func (c *console) drawProgress(force bool) {
	if c.quiet || !c.interactive {
		return
	}
	draw := func() {
		fmt.Fprintf(c.errOut, "\rProcessed: %d of %d files", c.processed, c.total)
		c.lineOpen = true
	}
	if force {
		draw()
		return
	}
	c.progress.Do(draw)
}

func (c *console) breakLine() {
	if c.lineOpen {
		fmt.Fprintln(c.errOut)
		c.lineOpen = false
	}
}

func (c *console) header(words, extensions []string, outputDir string, roots []string) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "%s %d\n", c.bold.Sprint("Forbidden words loaded:"), len(words))
	fmt.Fprintf(c.out, "%s %s\n", c.bold.Sprint("Extensions:"), strings.Join(extensions, ", "))
	fmt.Fprintf(c.out, "%s %s\n", c.bold.Sprint("Output directory:"), outputDir)
	fmt.Fprintf(c.out, "%s %s\n", c.bold.Sprint("Roots:"), strings.Join(roots, ", "))
}

func (c *console) summary(s parallel.Summary, reportPath string) {
	c.drawProgress(true)
	c.breakLine()

	state := c.green.Sprint("Scan complete")
	if s.Cancelled {
		state = c.yellow.Sprint("Scan cancelled, results are partial")
	}
	fmt.Fprintln(c.out, state)
	fmt.Fprintf(c.out, "  Files processed: %d of %d\n", s.FilesProcessed, s.FilesKnown)
	fmt.Fprintf(c.out, "  Files found: %d\n", s.Aggregate.FilesMatched)
	fmt.Fprintf(c.out, "  Total replacements: %d\n", s.Aggregate.TotalReplacements)
	if s.Errors > 0 {
		fmt.Fprintf(c.out, "  Errors: %s\n", c.red.Sprint(s.Errors))
	}
	if s.Abandoned > 0 {
		fmt.Fprintf(c.out, "  Abandoned after drain timeout: %d\n", s.Abandoned)
	}
	fmt.Fprintf(c.out, "  Duration: %s\n", s.Duration().Round(time.Millisecond))
	fmt.Fprintf(c.out, "%s %s\n", c.cyan.Sprint("Report saved:"), reportPath)
}

func isTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
