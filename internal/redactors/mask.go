// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package redactors

import (
	"strings"

	"word-scan/internal/detector"
)

// MaskToken replaces every redacted span regardless of its length.
const MaskToken = "*******"

// ApplyMask replaces the given match spans of content with MaskToken. Matches
// must be ordered by start offset, ties by word order, as detector.Matcher.Find
// returns them. A span overlapping an already masked span is dropped, so the
// earliest span wins. It returns the redacted text and the number of spans masked.
func ApplyMask(content string, matches []detector.Match) (string, int) {
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	b.Grow(len(content))

	masked := 0
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End > len(content) || m.Start > m.End {
			continue
		}
		b.WriteString(content[last:m.Start])
		b.WriteString(MaskToken)
		last = m.End
		masked++
	}
	b.WriteString(content[last:])
	return b.String(), masked
}
