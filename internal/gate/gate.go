// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package gate implements cooperative run control. Workers call Checkpoint
// at file boundaries; controllers call Pause, Resume and Cancel from any
// goroutine.
package gate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// State is the control state of a run.
type State int32

const (
	Running State = iota
	Paused
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrCancelled is returned by Checkpoint once the gate is cancelled.
var ErrCancelled = errors.New("run cancelled")

// Gate is a tri-state switch. Running and Paused alternate freely; Cancelled
// is terminal.
type Gate struct {
	state atomic.Int32

	// mu guards transitions and wake.
	mu sync.Mutex
	// wake is closed when the gate leaves Paused.
	wake chan struct{}
	done chan struct{}
}

// New returns a gate in the Running state.
func New() *Gate {
	return &Gate{done: make(chan struct{})}
}

// State returns the current state without blocking.
func (g *Gate) State() State {
	return State(g.state.Load())
}

// Pause moves a running gate to Paused. It reports whether the state changed.
func (g *Gate) Pause() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.State() != Running {
		return false
	}
	g.wake = make(chan struct{})
	g.state.Store(int32(Paused))
	return true
}

// Resume releases a paused gate. It reports whether the state changed.
func (g *Gate) Resume() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.State() != Paused {
		return false
	}
	g.state.Store(int32(Running))
	close(g.wake)
	return true
}

// Cancel moves the gate to Cancelled and releases every waiter. Only the
// first call reports true.
func (g *Gate) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	prev := g.State()
	if prev == Cancelled {
		return false
	}
	g.state.Store(int32(Cancelled))
	if prev == Paused {
		close(g.wake)
	}
	close(g.done)
	return true
}

// Done returns a channel that is closed once the gate is cancelled.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Checkpoint returns immediately while running, blocks while paused, and
// returns ErrCancelled once cancelled. If ctx ends first its error is returned.
func (g *Gate) Checkpoint(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.mu.Lock()
		state, wake := g.State(), g.wake
		g.mu.Unlock()

		switch state {
		case Running:
			return nil
		case Cancelled:
			return ErrCancelled
		}

		select {
		case <-wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
