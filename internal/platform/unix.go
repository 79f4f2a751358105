// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"os"
	"path/filepath"
)

// UnixPlatform implements Platform interface for Unix-like systems (Linux, macOS, etc.)
type UnixPlatform struct{}

// GetConfigDir returns the Unix-appropriate configuration directory
func (u *UnixPlatform) GetConfigDir() string {
	if dir := os.Getenv("WORDSCAN_CONFIG_DIR"); dir != "" {
		return dir
	}

	// XDG Base Directory specification
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "word-scan")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "word-scan")
}

// GetTempDir returns the Unix temporary directory
func (u *UnixPlatform) GetTempDir() string {
	if tmpDir := os.Getenv("TMPDIR"); tmpDir != "" {
		return tmpDir
	}
	return "/tmp"
}

// NormalizePath normalizes a path for Unix
func (u *UnixPlatform) NormalizePath(path string) string {
	return filepath.Clean(path)
}

// ScanRoots returns the single filesystem root. Pseudo filesystems below it
// are pruned through GetDirAttributes during traversal.
func (u *UnixPlatform) ScanRoots() ([]string, error) {
	return []string{"/"}, nil
}

// SupportsCaseSensitivePaths returns true for Unix (case-sensitive)
func (u *UnixPlatform) SupportsCaseSensitivePaths() bool {
	return true
}
