// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding names a text encoding a file was decoded with.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF8BOM     Encoding = "utf-8-bom"
	EncodingWindows1251 Encoding = "windows-1251"
)

// ErrUndecodable is returned when neither UTF-8 nor the Windows-1251
// fallback can represent the file.
var ErrUndecodable = errors.New("content is neither valid UTF-8 nor Windows-1251")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to text. UTF-8 is tried first; a leading
// byte order mark is stripped and remembered in the returned encoding. Bytes
// that are not valid UTF-8 get one retry as Windows-1251.
func Decode(data []byte) (string, Encoding, error) {
	if body, ok := bytes.CutPrefix(data, utf8BOM); ok && utf8.Valid(body) {
		return string(body), EncodingUTF8BOM, nil
	}
	if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	text, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if !definedIn1251(text) {
		return "", "", ErrUndecodable
	}
	return string(text), EncodingWindows1251, nil
}

// definedIn1251 reports whether decoded text contains only characters the
// code page assigns. Byte 0x98 is unassigned; depending on the table it
// decodes to U+FFFD or to the C1 control U+0098. No assigned byte decodes to
// a C1 control.
func definedIn1251(text []byte) bool {
	for _, r := range string(text) {
		if r == utf8.RuneError || (r >= 0x80 && r <= 0x9F) {
			return false
		}
	}
	return true
}

// Encode converts text back to bytes in enc.
func Encode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingUTF8, "":
		return []byte(text), nil
	case EncodingUTF8BOM:
		out := make([]byte, 0, len(utf8BOM)+len(text))
		out = append(out, utf8BOM...)
		return append(out, text...), nil
	case EncodingWindows1251:
		out, err := charmap.Windows1251.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encoding as %s: %w", enc, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}
