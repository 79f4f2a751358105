// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"word-scan/internal/config"
	"word-scan/internal/core"
	"word-scan/internal/formatters"

	"github.com/spf13/pflag"
)

// resolveSettings layers built-in defaults, the config file, the selected
// profile and finally the flags the user actually set.
func resolveSettings(flags *pflag.FlagSet, opts *rootOptions) (config.Settings, error) {
	var cfg *config.Config
	if opts.configFile != "" {
		loaded, err := config.LoadConfig(opts.configFile)
		if err != nil {
			return config.Settings{}, fmt.Errorf("failed to load config %s: %w", opts.configFile, err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadConfigOrDefault("")
	}

	settings, err := cfg.Resolve(opts.profile)
	if err != nil {
		return config.Settings{}, err
	}
	settings = config.DefaultSettings().Merge(settings)

	if flags.Changed("words") {
		settings.WordsFile = opts.wordsFile
		settings.Words = nil
	}
	if flags.Changed("output") {
		settings.OutputDir = opts.outputDir
	}
	if flags.Changed("extensions") {
		settings.Extensions = config.ParseExtensionList(opts.extensions)
		settings.Preset = ""
	}
	if flags.Changed("preset") {
		settings.Preset = opts.preset
	}
	if flags.Changed("concurrency") {
		settings.Concurrency = opts.concurrency
	}
	if flags.Changed("root") {
		settings.Roots = opts.roots
	}
	if flags.Changed("exclude") {
		settings.ExcludePatterns = opts.excludes
	}
	if flags.Changed("format") {
		settings.Format = opts.format
	}
	if flags.Changed("drain-timeout") {
		settings.DrainTimeout = opts.drainTimeout
	}
	if flags.Changed("listen") {
		settings.Listen = opts.listen
	}
	settings.NoColor = settings.NoColor || opts.noColor
	settings.Quiet = settings.Quiet || opts.quiet
	settings.Debug = settings.Debug || opts.debug

	return settings, nil
}

// buildRequest turns resolved settings into a validated scan request.
func buildRequest(settings config.Settings) (*core.ScanRequest, error) {
	if settings.WordsFile == "" && len(settings.Words) == 0 {
		return nil, errors.New("a forbidden words file is required (use --words)")
	}
	if strings.TrimSpace(settings.OutputDir) == "" {
		return nil, errors.New("an output directory is required (use --output)")
	}
	if _, ok := formatters.Get(settings.Format); !ok {
		return nil, fmt.Errorf("unsupported report format %q (available: %s)", settings.Format, strings.Join(formatters.List(), ", "))
	}

	words := settings.Words
	if settings.WordsFile != "" {
		if _, err := os.Stat(settings.WordsFile); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("words file not found: %s", settings.WordsFile)
			}
			return nil, fmt.Errorf("cannot access words file %s: %w", settings.WordsFile, err)
		}
		loaded, err := config.ReadWordList(settings.WordsFile)
		if err != nil {
			return nil, err
		}
		words = loaded
	}

	extensions, err := settings.EffectiveExtensions()
	if err != nil {
		return nil, err
	}

	return core.NewScanRequest(core.RequestOptions{
		Words:           words,
		OutputDir:       settings.OutputDir,
		Extensions:      extensions,
		Concurrency:     settings.Concurrency,
		Roots:           settings.Roots,
		ExcludePatterns: settings.ExcludePatterns,
		DrainTimeout:    settings.DrainTimeout,
	})
}
