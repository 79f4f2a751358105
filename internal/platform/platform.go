// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"runtime"
)

// Platform defines the interface for platform-specific operations
type Platform interface {
	GetConfigDir() string
	GetTempDir() string
	NormalizePath(path string) string
	// ScanRoots returns the filesystem roots a full scan starts from.
	ScanRoots() ([]string, error)
	SupportsCaseSensitivePaths() bool
}

// Config holds platform-specific configuration
type Config struct {
	OS                 string   `json:"os"`
	Architecture       string   `json:"architecture"`
	ConfigDirectory    string   `json:"config_directory"`
	TempDirectory      string   `json:"temp_directory"`
	ScanRoots          []string `json:"scan_roots"`
	CaseSensitivePaths bool     `json:"case_sensitive_paths"`
}

// GetPlatform returns the appropriate platform implementation for the current OS
func GetPlatform() Platform {
	switch runtime.GOOS {
	case "windows":
		return &WindowsPlatform{}
	default:
		return &UnixPlatform{}
	}
}

// GetConfig returns platform configuration for the current system
func GetConfig() *Config {
	platform := GetPlatform()
	roots, _ := platform.ScanRoots()
	return &Config{
		OS:                 runtime.GOOS,
		Architecture:       runtime.GOARCH,
		ConfigDirectory:    platform.GetConfigDir(),
		TempDirectory:      platform.GetTempDir(),
		ScanRoots:          roots,
		CaseSensitivePaths: platform.SupportsCaseSensitivePaths(),
	}
}

// IsWindows returns true if running on Windows
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// IsUnix returns true if running on Unix-like systems (Linux, macOS, etc.)
func IsUnix() bool {
	return !IsWindows()
}
