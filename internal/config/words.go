// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"word-scan/internal/preprocessors"
)

// ReadWordList reads one forbidden word per line. The file is decoded like
// scanned content (UTF-8 with optional BOM, else Windows-1251). Lines are
// trimmed and blank lines are ignored. Deduplication is left to the scan
// request.
func ReadWordList(path string) ([]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("error reading words file: %w", err)
	}
	text, _, err := preprocessors.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error reading words file: %w", err)
	}

	var words []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading words file: %w", err)
	}
	return words, nil
}
