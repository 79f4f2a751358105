// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package platform

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Kernel-backed pseudo filesystems. Their "files" are not documents and
// reading some of them blocks forever.
var systemDirs = map[string]bool{
	"/proc": true,
	"/sys":  true,
	"/dev":  true,
	"/run":  true,
}

func dirAttributes(dirPath string, info fs.FileInfo) DirAttributes {
	name := info.Name()
	if name == "" {
		name = filepath.Base(dirPath)
	}
	return DirAttributes{
		Hidden: strings.HasPrefix(name, ".") && name != "." && name != "..",
		System: systemDirs[dirPath] || name == "lost+found",
	}
}
