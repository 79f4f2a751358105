// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"word-scan/internal/config"
	"word-scan/internal/formatters"

	"github.com/fatih/color"
)

// System renders reference listings for the CLI
type System struct {
	out    io.Writer
	colors map[string]*color.Color
}

// NewSystem creates a help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	colors := map[string]*color.Color{
		"title":    color.New(color.FgWhite, color.Bold),
		"header":   color.New(color.FgBlue, color.Bold),
		"emphasis": color.New(color.FgWhite, color.Bold),
		"example":  color.New(color.FgMagenta),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}
	return &System{out: out, colors: colors}
}

// ShowPresets lists the extension presets
func (h *System) ShowPresets(presets []config.Preset) {
	h.colors["title"].Fprintln(h.out, "Extension Presets")
	fmt.Fprintln(h.out, "=================")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  PRESET\tDESCRIPTION\tEXTENSIONS")
	h.colors["header"].Fprintln(w, "  ------\t-----------\t----------")
	for _, p := range presets {
		fmt.Fprint(w, "  ")
		h.colors["emphasis"].Fprint(w, p.Name)
		fmt.Fprintf(w, "\t%s\t%s\n", p.Description, strings.Join(p.Extensions, " "))
	}
	w.Flush()

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "Example:")
	h.colors["example"].Fprintln(h.out, "  word-scan --words words.txt --output ./redacted --preset all")
}

// ShowFormats lists the report formats
func (h *System) ShowFormats(formats []formatters.FormatInfo) {
	h.colors["title"].Fprintln(h.out, "Report Formats")
	fmt.Fprintln(h.out, "==============")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  FORMAT\tEXTENSION\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  ------\t---------\t-----------")
	for _, f := range formats {
		fmt.Fprint(w, "  ")
		h.colors["emphasis"].Fprint(w, f.Name)
		fmt.Fprintf(w, "\t%s\t%s\n", f.Extension, f.Description)
	}
	w.Flush()
}

// ShowControls describes the keys accepted while a scan runs
func (h *System) ShowControls() {
	h.colors["header"].Fprintln(h.out, "Controls: p + Enter pauses, r + Enter resumes, q + Enter cancels")
}
