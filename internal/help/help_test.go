// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"strings"
	"testing"

	"word-scan/internal/config"
	"word-scan/internal/formatters"
)

func TestShowPresets(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowPresets(config.Presets())

	out := buf.String()
	for _, want := range []string{"Extension Presets", "PRESET", "html", ".htm", "--preset all"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output contains color codes with colors disabled")
	}
}

func TestShowFormats(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowFormats([]formatters.FormatInfo{
		{Name: "text", Extension: ".txt", Description: "Readable report"},
	})

	out := buf.String()
	if !strings.Contains(out, "text") || !strings.Contains(out, ".txt") || !strings.Contains(out, "Readable report") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestShowControls(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowControls()
	if !strings.Contains(buf.String(), "q + Enter cancels") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
