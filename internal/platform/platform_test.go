// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleFileAttributes_Missing(t *testing.T) {
	attrs, err := GetSimpleFileAttributes(filepath.Join(t.TempDir(), "gone.txt"))
	require.NoError(t, err)
	assert.False(t, attrs.Exists)
}

func TestGetSimpleFileAttributes_Size(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	attrs, err := GetSimpleFileAttributes(path)
	require.NoError(t, err)
	assert.True(t, attrs.Exists)
	assert.True(t, attrs.Regular)
	assert.Equal(t, int64(5), attrs.Size)
}

func TestGetDirAttributes_DotDirectoryIsHidden(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("dot-prefix hiding is a Unix convention")
	}
	dir := filepath.Join(t.TempDir(), ".cache")
	require.NoError(t, os.Mkdir(dir, 0o755))

	attrs, err := GetDirAttributes(dir)
	require.NoError(t, err)
	assert.True(t, attrs.Hidden)
	assert.True(t, attrs.Skip())
}

func TestGetDirAttributes_PlainDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.Mkdir(dir, 0o755))

	attrs, err := GetDirAttributes(dir)
	require.NoError(t, err)
	assert.False(t, attrs.Skip())
}

func TestGetDirAttributes_MissingDirectory(t *testing.T) {
	_, err := GetDirAttributes(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, IsNotExist(err))
}

func TestIsPermissionError(t *testing.T) {
	assert.False(t, IsPermissionError(nil))
	assert.True(t, IsPermissionError(&os.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}))
	assert.False(t, IsPermissionError(fmt.Errorf("boom")))
}

func TestIsTransientError(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.True(t, IsTransientError(&os.PathError{Op: "open", Path: "x", Err: ERROR_SHARING_VIOLATION}))
	} else {
		assert.True(t, IsTransientError(&os.PathError{Op: "open", Path: "x", Err: syscall.EBUSY}))
	}
	assert.False(t, IsTransientError(fs.ErrNotExist))
}

func TestWrapFileError_KeepsCause(t *testing.T) {
	cause := &os.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}
	err := WrapFileError(cause, "x", "copying original")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Contains(t, err.Error(), "copying original")
}

func TestGetPlatform_ScanRoots(t *testing.T) {
	roots, err := GetPlatform().ScanRoots()
	require.NoError(t, err)
	assert.NotEmpty(t, roots)
}
