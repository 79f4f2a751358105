// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"word-scan/internal/preprocessors"
)

func TestParseExtensionList(t *testing.T) {
	got := ParseExtensionList(" txt, .MD ,,log,.txt")
	want := []string{".txt", ".md", ".log"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseExtensionList() = %v, want %v", got, want)
	}
}

func TestPresetExtensions(t *testing.T) {
	all, err := PresetExtensions("ALL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 17 {
		t.Errorf("expected 17 extensions in the all preset, got %d", len(all))
	}

	all[0] = ".mutated"
	again, _ := PresetExtensions("all")
	if again[0] != ".txt" {
		t.Error("PresetExtensions must return a copy")
	}

	if _, err := PresetExtensions("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestReadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "\xEF\xBB\xBFsecret\r\n\n  пароль  \n\t\nSecret\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write words: %v", err)
	}

	words, err := ReadWordList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"secret", "пароль", "Secret"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("ReadWordList() = %q, want %q", words, want)
	}

	if _, err := ReadWordList(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing words file")
	}
}

func TestReadWordList_Windows1251(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	// "пароль\r\nсекрет\r\n" in Windows-1251.
	content := []byte{0xEF, 0xE0, 0xF0, 0xEE, 0xEB, 0xFC, '\r', '\n', 0xF1, 0xE5, 0xEA, 0xF0, 0xE5, 0xF2, '\r', '\n'}
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write words: %v", err)
	}

	words, err := ReadWordList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"пароль", "секрет"}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("ReadWordList() = %q, want %q", words, want)
	}
}

func TestReadWordList_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte{0x98, 'x'}, 0600); err != nil {
		t.Fatalf("failed to write words: %v", err)
	}
	if _, err := ReadWordList(path); !errors.Is(err, preprocessors.ErrUndecodable) {
		t.Errorf("expected ErrUndecodable, got %v", err)
	}
}
