// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"word-scan/internal/aggregate"
	"word-scan/internal/core"
	"word-scan/internal/formatters"
	"word-scan/internal/gate"
	"word-scan/internal/observability"
	"word-scan/internal/version"

	// Import formatters to register them
	_ "word-scan/internal/formatters/csv"
	_ "word-scan/internal/formatters/json"
	_ "word-scan/internal/formatters/text"
	_ "word-scan/internal/formatters/yaml"
)

// Controller is the run surface the server exposes. parallel.RunHandle
// implements it.
type Controller interface {
	ID() string
	State() gate.State
	Pause() bool
	Resume() bool
	Cancel() bool
	Done() <-chan struct{}
	Snapshot() aggregate.RunAggregate
	Results() []*core.FileScanResult
	Processed() int
	TotalKnown() int
	Errors() int
	StartedAt() time.Time
}

// StatusResponse is returned by /status and by the control endpoints.
type StatusResponse struct {
	RunID          string                 `json:"run_id"`
	State          string                 `json:"state"`
	Finished       bool                   `json:"finished"`
	FilesKnown     int                    `json:"files_known"`
	FilesProcessed int                    `json:"files_processed"`
	Errors         int                    `json:"errors"`
	Aggregate      aggregate.RunAggregate `json:"aggregate"`
	ElapsedSeconds float64                `json:"elapsed_seconds"`
	Changed        *bool                  `json:"changed,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ControlServer serves a JSON control surface for the active run.
type ControlServer struct {
	addr     string
	observer *observability.StandardObserver
	now      func() time.Time

	mu       sync.RWMutex
	run      Controller
	server   *http.Server
	listener net.Listener
}

// NewControlServer creates a server that will listen on addr, for example
// "127.0.0.1:8080" or ":0".
func NewControlServer(addr string, observer *observability.StandardObserver) *ControlServer {
	if observer == nil {
		observer = observability.Nop()
	}
	return &ControlServer{addr: addr, observer: observer, now: time.Now}
}

// GetComponentName returns the component name for observability
func (cs *ControlServer) GetComponentName() string {
	return "control_server"
}

// Attach makes run the controlled run. Passing nil detaches.
func (cs *ControlServer) Attach(run Controller) {
	cs.mu.Lock()
	cs.run = run
	cs.mu.Unlock()
}

// Handler returns the route table.
func (cs *ControlServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", cs.handleHealth)
	mux.HandleFunc("GET /status", cs.handleStatus)
	mux.HandleFunc("POST /pause", cs.control(func(c Controller) bool { return c.Pause() }))
	mux.HandleFunc("POST /resume", cs.control(func(c Controller) bool { return c.Resume() }))
	mux.HandleFunc("POST /cancel", cs.control(func(c Controller) bool { return c.Cancel() }))
	mux.HandleFunc("GET /report", cs.handleReport)
	return mux
}

// Start binds the listener and serves in the background. It returns the
// bound address.
func (cs *ControlServer) Start() (string, error) {
	listener, err := net.Listen("tcp", cs.addr)
	if err != nil {
		return "", fmt.Errorf("control server cannot listen on %s: %w", cs.addr, err)
	}

	server := cs.createSecureServer()
	cs.mu.Lock()
	cs.server = server
	cs.listener = listener
	cs.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cs.observer.LogError(cs.GetComponentName(), "serve", listener.Addr().String(), err)
		}
	}()
	return listener.Addr().String(), nil
}

// Stop shuts the server down, waiting for active requests until ctx ends.
func (cs *ControlServer) Stop(ctx context.Context) error {
	cs.mu.RLock()
	server := cs.server
	cs.mu.RUnlock()
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// createSecureServer creates an HTTP server with security timeouts
func (cs *ControlServer) createSecureServer() *http.Server {
	return &http.Server{
		Handler: cs.Handler(),
		// Timeout for reading request headers (prevents slow header attacks)
		ReadHeaderTimeout: 15 * time.Second,
		// Timeout for reading entire request
		ReadTimeout: 30 * time.Second,
		// Timeout for writing response
		WriteTimeout: 30 * time.Second,
		// Timeout for idle connections
		IdleTimeout: 60 * time.Second,
	}
}

func (cs *ControlServer) current() Controller {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.run
}

// handleHealth provides a health check endpoint with version information
func (cs *ControlServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Full()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": cs.now().UTC().Format(time.RFC3339),
		"service":   "word-scan",
		"version":   versionInfo["version"],
		"build_info": map[string]interface{}{
			"version":    versionInfo["version"],
			"commit":     versionInfo["commit"],
			"build_date": versionInfo["buildDate"],
			"go_version": versionInfo["goVersion"],
			"platform":   versionInfo["platform"],
		},
		"active_run": cs.current() != nil,
	})
}

func (cs *ControlServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	run := cs.current()
	if run == nil {
		sendError(w, "no active run", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, cs.status(run))
}

// control wraps a state transition. The response carries the new status and
// whether the call changed the state.
func (cs *ControlServer) control(op func(Controller) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run := cs.current()
		if run == nil {
			sendError(w, "no active run", http.StatusServiceUnavailable)
			return
		}
		changed := op(run)
		cs.observer.StartTiming(cs.GetComponentName(), "control"+r.URL.Path, "")(true, map[string]interface{}{
			"changed": changed,
			"state":   run.State().String(),
		})
		status := cs.status(run)
		status.Changed = &changed
		writeJSON(w, http.StatusOK, status)
	}
}

// handleReport renders the results recorded so far. The format query
// parameter selects a registered formatter; text is the default.
func (cs *ControlServer) handleReport(w http.ResponseWriter, r *http.Request) {
	run := cs.current()
	if run == nil {
		sendError(w, "no active run", http.StatusServiceUnavailable)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatters.DefaultFormat
	}

	report := formatters.NewReport(run.Results(), cs.now())
	report.Cancelled = run.State() == gate.Cancelled
	content, err := formatters.Export(format, report, formatters.FormatterOptions{NoColor: true})
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", formatters.GetFormatInfo(format).MimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(content))
}

func (cs *ControlServer) status(run Controller) StatusResponse {
	finished := false
	select {
	case <-run.Done():
		finished = true
	default:
	}
	return StatusResponse{
		RunID:          run.ID(),
		State:          run.State().String(),
		Finished:       finished,
		FilesKnown:     run.TotalKnown(),
		FilesProcessed: run.Processed(),
		Errors:         run.Errors(),
		Aggregate:      run.Snapshot(),
		ElapsedSeconds: cs.now().Sub(run.StartedAt()).Seconds(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sendError sends an error response with a specific HTTP status code
func sendError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}
