// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"word-scan/internal/paths"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConcurrency is the number of files scanned at once.
	DefaultConcurrency = 4
	// DefaultDrainTimeout bounds how long a cancelled run waits for in-flight scans.
	DefaultDrainTimeout = 30 * time.Second
	// DefaultFormat is the report format used when none is configured.
	DefaultFormat = "text"
)

// Settings holds every tunable of a scan run. The same shape is used for the
// config file defaults, for profiles and for the resolved CLI values.
type Settings struct {
	WordsFile       string        `yaml:"words_file"`
	Words           []string      `yaml:"words"`
	OutputDir       string        `yaml:"output_dir"`
	Extensions      []string      `yaml:"extensions"`
	Preset          string        `yaml:"preset"`
	Concurrency     int           `yaml:"concurrency"`
	DrainTimeout    time.Duration `yaml:"drain_timeout"`
	Roots           []string      `yaml:"roots"`
	ExcludePatterns []string      `yaml:"exclude_patterns"`
	Format          string        `yaml:"format"`
	Listen          string        `yaml:"listen"`
	NoColor         bool          `yaml:"no_color"`
	Quiet           bool          `yaml:"quiet"`
	Debug           bool          `yaml:"debug"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Settings `yaml:"defaults"`

	// Profiles for different scanning scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a named set of overrides on top of the defaults
type Profile struct {
	Description string `yaml:"description"`
	Settings    `yaml:",inline"`
}

// DefaultSettings returns the built-in settings that apply before any config file.
func DefaultSettings() Settings {
	return Settings{
		Extensions:   []string{".txt"},
		Concurrency:  DefaultConcurrency,
		DrainTimeout: DefaultDrainTimeout,
		Format:       DefaultFormat,
	}
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Defaults: DefaultSettings(),
		Profiles: make(map[string]Profile),
	}

	config.Profiles["documents"] = Profile{
		Description: "Office, PDF and markup documents read as text",
		Settings:    Settings{Preset: "all"},
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if config.Profiles == nil {
		config.Profiles = make(map[string]Profile)
	}

	ApplyPlatformDefaults(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations using platform-aware paths
func FindConfigFile() string {
	for _, name := range []string{"word-scan.yaml", "word-scan.yml", ".word-scan.yaml", ".word-scan.yml"} {
		if fileExists(name) {
			return name
		}
	}

	standardConfig := paths.GetConfigFile()
	if fileExists(standardConfig) {
		return standardConfig
	}
	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in sorted order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Resolve returns the defaults with the named profile applied. An empty name
// returns the defaults unchanged.
func (c *Config) Resolve(profileName string) (Settings, error) {
	settings := c.Defaults
	if profileName == "" {
		return settings, nil
	}
	profile := c.GetProfile(profileName)
	if profile == nil {
		return Settings{}, fmt.Errorf("profile %q not found (available: %s)", profileName, strings.Join(c.ListProfiles(), ", "))
	}
	return settings.Merge(profile.Settings), nil
}

// Merge returns s overlaid with every field that is set in o.
func (s Settings) Merge(o Settings) Settings {
	if o.WordsFile != "" {
		s.WordsFile = o.WordsFile
	}
	if len(o.Words) > 0 {
		s.Words = o.Words
	}
	if o.OutputDir != "" {
		s.OutputDir = o.OutputDir
	}
	if len(o.Extensions) > 0 {
		s.Extensions = o.Extensions
	}
	if o.Preset != "" {
		s.Preset = o.Preset
	}
	if o.Concurrency > 0 {
		s.Concurrency = o.Concurrency
	}
	if o.DrainTimeout > 0 {
		s.DrainTimeout = o.DrainTimeout
	}
	if len(o.Roots) > 0 {
		s.Roots = o.Roots
	}
	if len(o.ExcludePatterns) > 0 {
		s.ExcludePatterns = o.ExcludePatterns
	}
	if o.Format != "" {
		s.Format = o.Format
	}
	if o.Listen != "" {
		s.Listen = o.Listen
	}
	s.NoColor = s.NoColor || o.NoColor
	s.Quiet = s.Quiet || o.Quiet
	s.Debug = s.Debug || o.Debug
	return s
}

// EffectiveExtensions returns the extension set the settings select: the
// preset when one is named, otherwise the explicit list.
func (s Settings) EffectiveExtensions() ([]string, error) {
	if s.Preset != "" {
		return PresetExtensions(s.Preset)
	}
	return NormalizeExtensions(s.Extensions), nil
}

// normalizePlatformPath normalizes a path for the current platform
func normalizePlatformPath(path string) string {
	if path == "" {
		return ""
	}
	return paths.NormalizePath(path)
}

// ApplyPlatformDefaults normalizes every path in the configuration for the current platform
func ApplyPlatformDefaults(config *Config) {
	if config == nil {
		return
	}

	normalizeSettingsPaths(&config.Defaults)
	for name, profile := range config.Profiles {
		normalizeSettingsPaths(&profile.Settings)
		config.Profiles[name] = profile
	}
}

func normalizeSettingsPaths(s *Settings) {
	s.WordsFile = normalizePlatformPath(s.WordsFile)
	s.OutputDir = normalizePlatformPath(s.OutputDir)
	for i, root := range s.Roots {
		s.Roots[i] = normalizePlatformPath(root)
	}
}

// ValidateConfig validates the defaults and every profile
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := validateSettings(config.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	for name, profile := range config.Profiles {
		if err := validateSettings(profile.Settings); err != nil {
			return fmt.Errorf("profile '%s': %w", name, err)
		}
	}

	return nil
}

func validateSettings(s Settings) error {
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", s.Concurrency)
	}
	if s.DrainTimeout < 0 {
		return fmt.Errorf("drain_timeout must not be negative, got %s", s.DrainTimeout)
	}
	if s.Preset != "" {
		if _, err := PresetExtensions(s.Preset); err != nil {
			return err
		}
	}
	for _, pattern := range s.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	if err := paths.ValidatePath(s.OutputDir); err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	if err := paths.ValidatePath(s.WordsFile); err != nil {
		return fmt.Errorf("invalid words file path: %w", err)
	}
	for _, root := range s.Roots {
		if err := paths.ValidatePath(root); err != nil {
			return fmt.Errorf("invalid scan root: %w", err)
		}
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}
