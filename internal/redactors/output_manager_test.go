// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputManager_WriteArtifacts(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.txt")
	original := []byte("this is secret info\r\n")
	require.NoError(t, os.WriteFile(src, original, 0o600))

	outDir := filepath.Join(t.TempDir(), "out", "nested")
	om, err := NewOutputManager(outDir, nil)
	require.NoError(t, err)

	origPath, modPath, err := om.WriteArtifacts(context.Background(), src, []byte("this is ******* info\r\n"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "original_notes.txt"), origPath)
	assert.Equal(t, filepath.Join(outDir, "modified_notes.txt"), modPath)

	gotOrig, err := os.ReadFile(origPath)
	require.NoError(t, err)
	assert.Equal(t, original, gotOrig)

	gotMod, err := os.ReadFile(modPath)
	require.NoError(t, err)
	assert.Equal(t, "this is ******* info\r\n", string(gotMod))
}

func TestOutputManager_Overwrites(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("first"), 0o600))

	om, err := NewOutputManager(t.TempDir(), nil)
	require.NoError(t, err)

	_, _, err = om.WriteArtifacts(context.Background(), src, []byte("one"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0o600))
	origPath, modPath, err := om.WriteArtifacts(context.Background(), src, []byte("two"))
	require.NoError(t, err)

	got, _ := os.ReadFile(origPath)
	assert.Equal(t, "second", string(got))
	got, _ = os.ReadFile(modPath)
	assert.Equal(t, "two", string(got))
}

func TestOutputManager_ArtifactPathsSanitized(t *testing.T) {
	om, err := NewOutputManager("out", nil)
	require.NoError(t, err)

	orig, mod := om.ArtifactPaths(filepath.Join("dir", "we?ird*name.txt"))
	assert.Equal(t, filepath.Join("out", "original_we_ird_name.txt"), orig)
	assert.Equal(t, filepath.Join("out", "modified_we_ird_name.txt"), mod)
}

func TestOutputManager_OutputDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o600))

	om, err := NewOutputManager(blocker, nil)
	require.NoError(t, err)

	_, _, err = om.WriteArtifacts(context.Background(), src, []byte("y"))
	require.Error(t, err)

	se, ok := AsScanError(err)
	require.True(t, ok)
	assert.Equal(t, ErrorWrite, se.Type)
	assert.Equal(t, "write", se.Type.String())
}

func TestOutputManager_MissingSourceIsWriteError(t *testing.T) {
	om, err := NewOutputManager(t.TempDir(), nil)
	require.NoError(t, err)

	_, _, err = om.WriteArtifacts(context.Background(), filepath.Join(t.TempDir(), "gone.txt"), []byte("y"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOutputManager_RunLock(t *testing.T) {
	dir := t.TempDir()
	first, err := NewOutputManager(dir, nil)
	require.NoError(t, err)
	second, err := NewOutputManager(dir, nil)
	require.NoError(t, err)

	release, err := first.AcquireRunLock()
	require.NoError(t, err)

	_, err = second.AcquireRunLock()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputLocked)

	require.NoError(t, release())
	release2, err := second.AcquireRunLock()
	require.NoError(t, err)
	require.NoError(t, release2())
}

func TestNewOutputManager_Empty(t *testing.T) {
	_, err := NewOutputManager("", nil)
	assert.Error(t, err)
}
