// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
)

// Preset is a named extension set.
type Preset struct {
	Name        string
	Description string
	Extensions  []string
}

var presets = []Preset{
	{Name: "txt", Description: "Plain text files", Extensions: []string{".txt"}},
	{Name: "doc", Description: "Word documents", Extensions: []string{".doc", ".docx"}},
	{Name: "pdf", Description: "PDF documents", Extensions: []string{".pdf"}},
	{Name: "html", Description: "HTML pages", Extensions: []string{".html", ".htm"}},
	{Name: "all", Description: "All text-bearing files", Extensions: []string{
		".txt", ".doc", ".docx", ".pdf", ".html", ".htm", ".rtf", ".odt",
		".xml", ".json", ".csv", ".log", ".md", ".ini", ".cfg", ".conf", ".properties",
	}},
}

// Presets returns the built-in extension presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		p.Extensions = append([]string(nil), p.Extensions...)
		out[i] = p
	}
	return out
}

// PresetExtensions returns a copy of the extensions of the named preset.
func PresetExtensions(name string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.Name == key {
			return append([]string(nil), p.Extensions...), nil
		}
	}

	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return nil, fmt.Errorf("unknown extension preset %q (valid: %s)", name, strings.Join(names, ", "))
}

// ParseExtensionList splits a comma separated flag value and normalizes each entry.
func ParseExtensionList(value string) []string {
	return NormalizeExtensions(strings.Split(value, ","))
}

// NormalizeExtensions lower-cases each extension, ensures a leading dot and
// drops blanks and duplicates while keeping first-seen order.
func NormalizeExtensions(exts []string) []string {
	seen := make(map[string]bool, len(exts))
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
