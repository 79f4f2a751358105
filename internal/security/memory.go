// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package security holds helpers for handling scanned content in memory.
package security

// Wipe overwrites every buffer with zeros.
//
// Limitations: the garbage collector may have moved or copied the data, and
// strings built from these bytes are immutable copies that Wipe cannot reach.
// It shortens the time redacted content stays in memory; it is not a
// guarantee that no copy remains.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}

// WipeAfter runs fn with buf and wipes buf when fn returns.
func WipeAfter(buf []byte, fn func([]byte) error) error {
	defer Wipe(buf)
	return fn(buf)
}
