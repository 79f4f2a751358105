// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"word-scan/internal/aggregate"
	"word-scan/internal/core"
	"word-scan/internal/gate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRun struct {
	mu      sync.Mutex
	g       *gate.Gate
	results []*core.FileScanResult
	done    chan struct{}
}

func newFakeRun() *fakeRun {
	return &fakeRun{
		g:    gate.New(),
		done: make(chan struct{}),
		results: []*core.FileScanResult{{
			Path:              "/data/a.txt",
			Size:              20,
			WordCounts:        []core.WordCount{{Word: "secret", Count: 2}},
			TotalReplacements: 2,
		}},
	}
}

func (f *fakeRun) ID() string {
	return "run-1"
}

func (f *fakeRun) State() gate.State {
	return f.g.State()
}

func (f *fakeRun) Pause() bool {
	return f.g.Pause()
}

func (f *fakeRun) Resume() bool {
	return f.g.Resume()
}

func (f *fakeRun) Cancel() bool {
	return f.g.Cancel()
}

func (f *fakeRun) Done() <-chan struct{} {
	return f.done
}

func (f *fakeRun) Snapshot() aggregate.RunAggregate {
	return aggregate.Summarize(f.Results())
}

func (f *fakeRun) Processed() int {
	return 7
}

func (f *fakeRun) TotalKnown() int {
	return 10
}

func (f *fakeRun) Errors() int {
	return 1
}

func (f *fakeRun) StartedAt() time.Time {
	return time.Now().Add(-time.Second)
}

func (f *fakeRun) Results() []*core.FileScanResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*core.FileScanResult(nil), f.results...)
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) StatusResponse {
	t.Helper()
	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	return status
}

func TestHealth(t *testing.T) {
	cs := NewControlServer("127.0.0.1:0", nil)
	rec := do(t, cs.Handler(), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "word-scan", body["service"])
	assert.Equal(t, false, body["active_run"])
}

func TestNoActiveRun(t *testing.T) {
	cs := NewControlServer("127.0.0.1:0", nil)
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/status"},
		{http.MethodPost, "/pause"},
		{http.MethodGet, "/report"},
	} {
		rec := do(t, cs.Handler(), tc.method, tc.path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, tc.path)
		assert.Contains(t, rec.Body.String(), "no active run")
	}
}

func TestStatusAndControl(t *testing.T) {
	run := newFakeRun()
	cs := NewControlServer("127.0.0.1:0", nil)
	cs.Attach(run)
	h := cs.Handler()

	status := decodeStatus(t, do(t, h, http.MethodGet, "/status"))
	assert.Equal(t, "run-1", status.RunID)
	assert.Equal(t, "running", status.State)
	assert.Equal(t, 10, status.FilesKnown)
	assert.Equal(t, 7, status.FilesProcessed)
	assert.Equal(t, 2, status.Aggregate.TotalReplacements)
	assert.False(t, status.Finished)
	assert.Nil(t, status.Changed)

	status = decodeStatus(t, do(t, h, http.MethodPost, "/pause"))
	assert.Equal(t, "paused", status.State)
	require.NotNil(t, status.Changed)
	assert.True(t, *status.Changed)

	status = decodeStatus(t, do(t, h, http.MethodPost, "/pause"))
	assert.False(t, *status.Changed)

	status = decodeStatus(t, do(t, h, http.MethodPost, "/resume"))
	assert.Equal(t, "running", status.State)

	status = decodeStatus(t, do(t, h, http.MethodPost, "/cancel"))
	assert.Equal(t, "cancelled", status.State)
	assert.Equal(t, gate.Cancelled, run.State())

	close(run.done)
	status = decodeStatus(t, do(t, h, http.MethodGet, "/status"))
	assert.True(t, status.Finished)
}

func TestControlRequiresPost(t *testing.T) {
	cs := NewControlServer("127.0.0.1:0", nil)
	cs.Attach(newFakeRun())

	rec := do(t, cs.Handler(), http.MethodGet, "/cancel")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReport(t *testing.T) {
	cs := NewControlServer("127.0.0.1:0", nil)
	cs.Attach(newFakeRun())
	h := cs.Handler()

	rec := do(t, h, http.MethodGet, "/report")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rec.Body.String(), "Path: /data/a.txt")

	rec = do(t, h, http.MethodGet, "/report?format=json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"total_replacements": 2`)

	rec = do(t, h, http.MethodGet, "/report?format=xml")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartAndStop(t *testing.T) {
	cs := NewControlServer("127.0.0.1:0", nil)
	addr, err := cs.Start()
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "healthy"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cs.Stop(ctx))
}
