// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"word-scan/internal/formatters"
	"word-scan/internal/help"
	"word-scan/internal/observability"
	"word-scan/internal/parallel"
	"word-scan/internal/redactors"
	"word-scan/internal/web"

	"github.com/spf13/cobra"
)

const (
	callbackBuffer  = 256
	shutdownTimeout = 5 * time.Second
)

// controlInput is the source of p/r/q console commands. Nil enables them only
// when stdin is a terminal.
var controlInput io.Reader

func runScan(cmd *cobra.Command, opts *rootOptions) error {
	settings, err := resolveSettings(cmd.Flags(), opts)
	if err != nil {
		return err
	}
	req, err := buildRequest(settings)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	var observer *observability.StandardObserver
	switch {
	case settings.Debug:
		observer = observability.NewStandardObserver(observability.ObservabilityDebug, errOut)
		observer.DebugObserver = observability.NewDebugObserver(errOut)
	case settings.Quiet:
		observer = observability.Nop()
	default:
		observer = observability.NewStandardObserver(observability.ObservabilityMetrics, errOut)
	}

	output, err := redactors.NewOutputManager(req.OutputDir(), observer)
	if err != nil {
		return err
	}
	release, err := output.AcquireRunLock()
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	out := cmd.OutOrStdout()
	con := newConsole(out, errOut, settings.Quiet, settings.NoColor)
	con.header(req.Words(), req.Extensions(), req.OutputDir(), req.Roots())

	ctx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Everything printed before Start; afterwards only the callback
	// consumer writes to the console.
	var server *web.ControlServer
	if settings.Listen != "" {
		server = web.NewControlServer(settings.Listen, observer)
		addr, err := server.Start()
		if err != nil {
			return fmt.Errorf("failed to start control server: %w", err)
		}
		fmt.Fprintf(out, "Control API listening on http://%s\n", addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
	}

	input := controlInput
	if input == nil && isTerminal(cmd.InOrStdin()) {
		input = cmd.InOrStdin()
	}
	if input != nil && !settings.Quiet {
		help.NewSystem(out, settings.NoColor).ShowControls()
	}

	callbacks, stopCallbacks := parallel.Serialize(con.callbacks(), callbackBuffer)
	scheduler := parallel.NewScheduler(parallel.Options{
		Callbacks: callbacks,
		Observer:  observer,
	})
	run := scheduler.Start(ctx, req)
	if server != nil {
		server.Attach(run)
	}
	if input != nil {
		go readControls(input, run)
	}

	// A second interrupt after the first one falls back to the default
	// handler and terminates the process.
	go func() {
		select {
		case <-ctx.Done():
			stopSignals()
		case <-run.Done():
		}
	}()

	summary, err := run.Wait(context.Background())
	stopCallbacks()
	if err != nil {
		return err
	}

	generatedAt := time.Now()
	reportPath := filepath.Join(req.OutputDir(), formatters.ReportFileName(generatedAt, settings.Format))
	report := formatters.NewReport(run.Results(), generatedAt)
	report.Cancelled = summary.Cancelled
	if err := formatters.WriteReport(report, reportPath, settings.Format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	con.summary(summary, reportPath)
	return nil
}

// readControls maps console lines to run controls: p pauses, r resumes and
// q cancels. It returns when input ends or the run has finished.
func readControls(input io.Reader, run *parallel.RunHandle) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		select {
		case <-run.Done():
			return
		default:
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "p", "pause":
			run.Pause()
		case "r", "resume":
			run.Resume()
		case "q", "quit", "cancel":
			run.Cancel()
		}
	}
}
