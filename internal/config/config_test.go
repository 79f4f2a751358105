// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigOrDefault_NoFile(t *testing.T) {
	t.Setenv("WORDSCAN_CONFIG_DIR", t.TempDir())
	t.Chdir(t.TempDir())

	cfg := LoadConfigOrDefault("")
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format == "" {
		t.Error("expected default format to be set")
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
	if cfg.Defaults.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency=%d, got %d", DefaultConcurrency, cfg.Defaults.Concurrency)
	}
}

func TestLoadConfigOrDefault_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "word-scan.yaml")

	content := `
defaults:
  format: json
  concurrency: 8
  drain_timeout: 5s
  extensions: [".md", "LOG"]
profiles:
  quick:
    description: Small run
    concurrency: 2
    preset: html
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.Concurrency != 8 {
		t.Errorf("expected concurrency=8, got %d", cfg.Defaults.Concurrency)
	}
	if cfg.Defaults.DrainTimeout != 5*time.Second {
		t.Errorf("expected drain_timeout=5s, got %s", cfg.Defaults.DrainTimeout)
	}

	exts, err := cfg.Defaults.EffectiveExtensions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(exts, []string{".md", ".log"}) {
		t.Errorf("unexpected extensions %v", exts)
	}

	settings, err := cfg.Resolve("quick")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.Concurrency != 2 || settings.Format != "json" {
		t.Errorf("profile not merged over defaults: %+v", settings)
	}
	exts, _ = settings.EffectiveExtensions()
	if !reflect.DeepEqual(exts, []string{".html", ".htm"}) {
		t.Errorf("expected html preset, got %v", exts)
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"negative concurrency": "defaults:\n  concurrency: -1\n",
		"unknown preset":       "defaults:\n  preset: spreadsheets\n",
		"bad exclude pattern":  "defaults:\n  exclude_patterns: [\"[\"]\n",
		"bad profile":          "profiles:\n  broken:\n    concurrency: -4\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.DrainTimeout != DefaultDrainTimeout {
		t.Errorf("expected default drain timeout %s, got %s", DefaultDrainTimeout, cfg.Defaults.DrainTimeout)
	}
	if !reflect.DeepEqual(cfg.Defaults.Extensions, []string{".txt"}) {
		t.Errorf("expected default extensions [.txt], got %v", cfg.Defaults.Extensions)
	}
}

func TestLoadConfig_ProfilesInitialized(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profiles == nil {
		t.Error("expected profiles map to be initialized")
	}
	if _, ok := cfg.Profiles["documents"]; !ok {
		t.Error("expected 'documents' profile to exist in defaults")
	}
	if _, err := cfg.Resolve("missing"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestFindConfigFile_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WORDSCAN_CONFIG_DIR", t.TempDir())
	t.Chdir(dir)

	if got := FindConfigFile(); got != "" {
		t.Fatalf("expected no config file, got %q", got)
	}
	if err := os.WriteFile(".word-scan.yaml", []byte("defaults: {}\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if got := FindConfigFile(); got != ".word-scan.yaml" {
		t.Errorf("expected .word-scan.yaml, got %q", got)
	}
}

func TestMerge_OverlaysSetFields(t *testing.T) {
	base := DefaultSettings()
	merged := base.Merge(Settings{OutputDir: "out", Debug: true, Roots: []string{"/data"}})

	if merged.OutputDir != "out" || !merged.Debug {
		t.Errorf("overlay fields missing: %+v", merged)
	}
	if merged.Concurrency != DefaultConcurrency || merged.Format != DefaultFormat {
		t.Errorf("unset overlay fields must keep base values: %+v", merged)
	}
}
