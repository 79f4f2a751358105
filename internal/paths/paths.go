// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"path/filepath"
	"strings"
	"unicode"

	"word-scan/internal/platform"
)

// ConfigFileName is the name of the per-user config file.
const ConfigFileName = "config.yaml"

// GetConfigDir returns the word-scan configuration directory
// Uses platform-specific logic for Windows APPDATA directories and Unix home directories
func GetConfigDir() string {
	return platform.GetPlatform().GetConfigDir()
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// GetTempDir returns the platform-appropriate temporary directory
func GetTempDir() string {
	return platform.GetPlatform().GetTempDir()
}

// NormalizePath normalizes a file path for the current platform
func NormalizePath(path string) string {
	return platform.GetPlatform().NormalizePath(path)
}

// ResolvePath resolves a path to its absolute, normalized form.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	absPath, err := filepath.Abs(NormalizePath(path))
	if err != nil {
		return "", err
	}
	return absPath, nil
}

// invalidNameChars are rejected by at least one supported filesystem.
const invalidNameChars = `<>:"/\|?*`

// SanitizeFileName makes a base name safe to create in any output directory.
// Reserved characters and control characters become '_'. The result is the
// same on every platform so artifact names do not depend on where a scan ran.
func SanitizeFileName(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsControl(r) || strings.ContainsRune(invalidNameChars, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidatePath validates a path for the current platform
func ValidatePath(path string) error {
	if path == "" {
		return nil // Empty path is valid
	}

	if platform.IsWindows() {
		return validateWindowsPath(path)
	}

	return validateUnixPath(path)
}

// validateWindowsPath validates a Windows path
func validateWindowsPath(path string) error {
	for i, char := range path {
		if !strings.ContainsRune(`<>:"|?*`, char) {
			continue
		}
		// Skip colon if it's part of a drive letter (position 1: C:)
		if char == ':' && i == 1 {
			continue
		}
		return &PathValidationError{
			Path:   path,
			Reason: "contains invalid character: " + string(char),
		}
	}

	if len(path) > 32767 {
		return &PathValidationError{
			Path:   path,
			Reason: "path exceeds maximum length of 32,767 characters",
		}
	}

	return nil
}

// validateUnixPath validates a Unix path
func validateUnixPath(path string) error {
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{
			Path:   path,
			Reason: "contains null byte",
		}
	}
	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
