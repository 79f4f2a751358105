// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"bytes"
	"errors"
	"testing"
)

func TestWipe_ZeroesEveryBuffer(t *testing.T) {
	a := []byte("sensitive-data")
	b := []byte("more")
	Wipe(a, b)
	if !bytes.Equal(a, make([]byte, len(a))) {
		t.Errorf("expected first buffer zeroed, got %q", a)
	}
	if !bytes.Equal(b, make([]byte, len(b))) {
		t.Errorf("expected second buffer zeroed, got %q", b)
	}
}

func TestWipe_NilAndEmpty(t *testing.T) {
	// Must not panic
	Wipe(nil, []byte{})
	Wipe()
}

func TestWipeAfter(t *testing.T) {
	buf := []byte("this is ******* info")
	var seen string
	err := WipeAfter(buf, func(b []byte) error {
		seen = string(b)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != "this is ******* info" {
		t.Errorf("fn saw %q", seen)
	}
	if !bytes.Equal(buf, make([]byte, len(buf))) {
		t.Errorf("expected buffer zeroed after fn, got %q", buf)
	}
}

func TestWipeAfter_PropagatesErrorAndWipes(t *testing.T) {
	buf := []byte("secret")
	want := errors.New("write failed")
	if err := WipeAfter(buf, func([]byte) error { return want }); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
	if !bytes.Equal(buf, make([]byte, len(buf))) {
		t.Errorf("expected buffer zeroed on error, got %q", buf)
	}
}
