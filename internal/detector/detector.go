// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"fmt"
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"
)

// Match is one whole-word occurrence of a forbidden word.
type Match struct {
	// Word is the forbidden word as supplied, not the matched text.
	Word string
	// WordIndex is the position of Word in the matcher's word list.
	WordIndex int
	// Start and End are byte offsets into the scanned content.
	Start int
	End   int
}

// Result holds everything a single pass over one document found.
type Result struct {
	// Counts is indexed like the matcher's word list.
	Counts  []int
	Matches []Match
}

// Total returns the sum of all per-word counts.
func (r Result) Total() int {
	total := 0
	for _, c := range r.Counts {
		total += c
	}
	return total
}

// Matcher finds case-insensitive whole-word occurrences of a fixed word list.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	words    []string
	patterns []*regexp.Regexp
}

// NewMatcher compiles one literal pattern per word. Words are matched exactly
// as given; callers trim and deduplicate beforehand.
func NewMatcher(words []string) (*Matcher, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("matcher needs at least one word")
	}

	m := &Matcher{
		words:    append([]string(nil), words...),
		patterns: make([]*regexp.Regexp, len(words)),
	}
	for i, word := range words {
		if word == "" {
			return nil, fmt.Errorf("word %d is empty", i+1)
		}
		re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(word))
		if err != nil {
			return nil, fmt.Errorf("compiling pattern for %q: %w", word, err)
		}
		m.patterns[i] = re
	}
	return m, nil
}

// GetComponentName returns the component identifier
func (m *Matcher) GetComponentName() string {
	return "detector"
}

// Words returns a copy of the word list in matching order.
func (m *Matcher) Words() []string {
	return append([]string(nil), m.words...)
}

// Find scans content once per word. Matches are returned ordered by start
// offset, ties by word order.
func (m *Matcher) Find(content string) Result {
	res := Result{Counts: make([]int, len(m.words))}
	for i, re := range m.patterns {
		spans := findWholeWords(re, content)
		res.Counts[i] = len(spans)
		for _, s := range spans {
			res.Matches = append(res.Matches, Match{
				Word:      m.words[i],
				WordIndex: i,
				Start:     s[0],
				End:       s[1],
			})
		}
	}

	sort.SliceStable(res.Matches, func(a, b int) bool {
		if res.Matches[a].Start != res.Matches[b].Start {
			return res.Matches[a].Start < res.Matches[b].Start
		}
		return res.Matches[a].WordIndex < res.Matches[b].WordIndex
	})
	return res
}

// findWholeWords returns non-overlapping matches of re that are not glued to
// a word character on either side. After a rejected candidate the search
// resumes one rune past its start, which yields the same spans a leftmost
// first engine would report for a boundary-anchored pattern.
func findWholeWords(re *regexp.Regexp, content string) [][2]int {
	var spans [][2]int
	pos := 0
	for pos <= len(content) {
		loc := re.FindStringIndex(content[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]

		if isBoundary(content, start, end) {
			spans = append(spans, [2]int{start, end})
			pos = end
			if end == start {
				pos++
			}
			continue
		}

		_, size := utf8.DecodeRuneInString(content[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return spans
}

// isBoundary reports whether content[start:end] stands alone. A neighbour
// that is a word character, or that repeats a non-word edge character of the
// match ("C++" inside "C+++"), continues the token.
func isBoundary(content string, start, end int) bool {
	match := content[start:end]
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(content[:start])
		first, _ := utf8.DecodeRuneInString(match)
		if IsWordChar(r) || (r == first && !IsWordChar(first)) {
			return false
		}
	}
	if end < len(content) {
		r, _ := utf8.DecodeRuneInString(content[end:])
		last, _ := utf8.DecodeLastRuneInString(match)
		if IsWordChar(r) || (r == last && !IsWordChar(last)) {
			return false
		}
	}
	return true
}

// IsWordChar reports whether r continues a word: letters, combining marks,
// decimal digits and connector punctuation such as '_'.
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.IsMark(r) ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Pc, r)
}
