// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "notes.txt", "notes.txt"},
		{"reserved", `a<b>c:d"e|f?g*h.txt`, "a_b_c_d_e_f_g_h.txt"},
		{"separators", `dir/sub\file.txt`, "dir_sub_file.txt"},
		{"control", "bad\x01name\t.txt", "bad_name_.txt"},
		{"cyrillic", "отчёт.txt", "отчёт.txt"},
		{"empty", "", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestGetConfigFile_UsesOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WORDSCAN_CONFIG_DIR", dir)

	assert.Equal(t, dir, GetConfigDir())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), GetConfigFile())
}

func TestResolvePath(t *testing.T) {
	got, err := ResolvePath("some/../dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "dir", filepath.Base(got))

	empty, err := ResolvePath("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath(""))
	assert.NoError(t, ValidatePath(filepath.Join("a", "b.txt")))

	err := ValidatePath("bad\x00path")
	if err == nil {
		err = ValidatePath("bad|path")
	}
	require.Error(t, err)
	var pve *PathValidationError
	assert.ErrorAs(t, err, &pve)
}
