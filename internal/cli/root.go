// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cli wires the scan engine to the command line.
package cli

import (
	"fmt"
	"time"

	"word-scan/internal/config"
	"word-scan/internal/formatters"
	"word-scan/internal/help"
	"word-scan/internal/version"

	"github.com/spf13/cobra"

	// Import formatters to register them
	_ "word-scan/internal/formatters/csv"
	_ "word-scan/internal/formatters/json"
	_ "word-scan/internal/formatters/text"
	_ "word-scan/internal/formatters/yaml"
)

// rootOptions holds the raw flag values of the root command.
type rootOptions struct {
	wordsFile    string
	outputDir    string
	extensions   string
	preset       string
	concurrency  int
	roots        []string
	excludes     []string
	format       string
	drainTimeout time.Duration
	configFile   string
	profile      string
	listen       string
	noColor      bool
	quiet        bool
	debug        bool
	noGUI        bool
}

// NewRootCommand creates the word-scan command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word-scan",
		Short: "Find and redact forbidden words across local drives",
		Long: `word-scan walks every ready drive (or the given roots), finds files whose
extension is selected, and counts case-insensitive whole-word occurrences of
each forbidden word. For every file with at least one match it stores an
original_ copy and a modified_ copy with each occurrence replaced by *******,
then writes a Report_<timestamp> summary into the output directory.

Examples:
  word-scan --words words.txt --output ./redacted
  word-scan --words words.txt --output ./redacted --extensions txt,log,md
  word-scan --words words.txt --output ./redacted --preset all --root /srv/share
  word-scan --config word-scan.yaml --profile documents --listen 127.0.0.1:8080`,
		Version:      version.Short(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts)
		},
	}
	cmd.SetVersionTemplate(version.Info() + "\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.wordsFile, "words", "", "File with one forbidden word per line (required unless set in config)")
	flags.StringVar(&opts.outputDir, "output", "", "Directory for artifacts and the report, created if missing (required unless set in config)")
	flags.StringVar(&opts.extensions, "extensions", "", "Comma-separated file extensions to scan (default .txt)")
	flags.StringVar(&opts.preset, "preset", "", "Extension preset: txt, doc, pdf, html or all")
	flags.IntVar(&opts.concurrency, "concurrency", config.DefaultConcurrency, "Maximum number of files scanned at once")
	flags.StringSliceVar(&opts.roots, "root", nil, "Directory to scan, repeatable (default: all ready drives)")
	flags.StringSliceVar(&opts.excludes, "exclude", nil, "Directory name glob to skip, repeatable")
	flags.StringVar(&opts.format, "format", config.DefaultFormat, "Report format: text, json, yaml or csv")
	flags.DurationVar(&opts.drainTimeout, "drain-timeout", config.DefaultDrainTimeout, "How long a cancelled scan waits for files in progress")
	flags.StringVar(&opts.configFile, "config", "", "Path to configuration file (YAML)")
	flags.StringVar(&opts.profile, "profile", "", "Profile name to use from config file")
	flags.StringVar(&opts.listen, "listen", "", "Serve the HTTP control API on this address, e.g. 127.0.0.1:8080")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	flags.BoolVar(&opts.debug, "debug", false, "Print step-by-step debug traces to stderr")
	flags.BoolVar(&opts.noGUI, "no-gui", false, "Accepted for compatibility; word-scan always runs in console mode")
	_ = flags.MarkHidden("no-gui")

	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newPresetsCommand())
	cmd.AddCommand(newFormatsCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newPresetsCommand() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the extension presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			help.NewSystem(cmd.OutOrStdout(), noColor).ShowPresets(config.Presets())
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func newFormatsCommand() *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List the report formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			help.NewSystem(cmd.OutOrStdout(), noColor).ShowFormats(formatters.GetSupportedFormats())
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}
