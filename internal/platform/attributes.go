// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SimpleFileAttributes represents basic file attributes that can be detected cross-platform
type SimpleFileAttributes struct {
	Exists  bool
	Regular bool
	Size    int64
}

// GetSimpleFileAttributes gets basic file attributes that work on all platforms.
// A missing file is not an error; it is reported through Exists.
func GetSimpleFileAttributes(filePath string) (*SimpleFileAttributes, error) {
	cleanPath := filepath.Clean(filePath)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &SimpleFileAttributes{Exists: false}, nil
		}
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	return &SimpleFileAttributes{
		Exists:  true,
		Regular: info.Mode().IsRegular(),
		Size:    info.Size(),
	}, nil
}

// DirAttributes carries the directory flags that make traversal skip a subtree.
type DirAttributes struct {
	Hidden bool
	System bool
}

// Skip reports whether a directory with these attributes must not be descended into.
func (a DirAttributes) Skip() bool {
	return a.Hidden || a.System
}

// GetDirAttributes reads the hidden/system flags of a directory without following links.
func GetDirAttributes(dirPath string) (DirAttributes, error) {
	cleanPath := filepath.Clean(dirPath)
	info, err := os.Lstat(cleanPath)
	if err != nil {
		return DirAttributes{}, WrapFileError(err, cleanPath, "reading directory attributes")
	}
	return AttributesFromInfo(cleanPath, info), nil
}

// AttributesFromInfo derives directory flags from already-fetched file info.
func AttributesFromInfo(dirPath string, info fs.FileInfo) DirAttributes {
	return dirAttributes(filepath.Clean(dirPath), info)
}
