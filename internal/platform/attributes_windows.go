// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package platform

import (
	"io/fs"
	"syscall"

	"golang.org/x/sys/windows"
)

func dirAttributes(_ string, info fs.FileInfo) DirAttributes {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || data == nil {
		return DirAttributes{}
	}
	return DirAttributes{
		Hidden: data.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0,
		System: data.FileAttributes&windows.FILE_ATTRIBUTE_SYSTEM != 0,
	}
}
