// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_WholeWordOnly(t *testing.T) {
	m, err := NewMatcher([]string{"cat"})
	require.NoError(t, err)

	assert.Equal(t, []int{1}, m.Find("cat category scatter").Counts)
}

func TestMatcher_Counts(t *testing.T) {
	tests := []struct {
		name    string
		words   []string
		content string
		want    []int
	}{
		{"case insensitive", []string{"secret"}, "Secret SECRET secret", []int{3}},
		{"punctuation boundaries", []string{"secret"}, "(secret), 'secret'. secret!", []int{3}},
		{"underscore is a word char", []string{"secret"}, "secret_key my_secret", []int{0}},
		{"digits are word chars", []string{"secret"}, "secret1 2secret", []int{0}},
		{"cyrillic", []string{"пароль"}, "Пароль: пароль, паролька", []int{2}},
		{"cyrillic neighbour", []string{"кот"}, "котик скот кот", []int{1}},
		{"multi word", []string{"top secret"}, "a TOP SECRET plan", []int{1}},
		{"regex metacharacters", []string{"a.b"}, "a.b axb", []int{1}},
		{"retry after rejected candidate", []string{"aa"}, "aaa aa", []int{1}},
		{"per word order", []string{"b", "a"}, "a b a", []int{1, 2}},
		{"no content", []string{"x"}, "", []int{0}},
		{"repeated symbol edge continues the token", []string{"C++"}, "I use C++ daily, C+++ too", []int{1}},
		{"repeated leading symbol", []string{"#secret"}, "##secret #secret", []int{1}},
		{"different symbol neighbour", []string{"C++"}, "(C++) C++, -C++", []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.words)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Find(tt.content).Counts)
		})
	}
}

func TestMatcher_FindOrdersBySpan(t *testing.T) {
	m, err := NewMatcher([]string{"info", "secret"})
	require.NoError(t, err)

	res := m.Find("this is secret info")
	require.Len(t, res.Matches, 2)
	assert.Equal(t, Match{Word: "secret", WordIndex: 1, Start: 8, End: 14}, res.Matches[0])
	assert.Equal(t, Match{Word: "info", WordIndex: 0, Start: 15, End: 19}, res.Matches[1])
	assert.Equal(t, 2, res.Total())
}

func TestMatcher_KeepsSuppliedSpelling(t *testing.T) {
	m, err := NewMatcher([]string{"Secret"})
	require.NoError(t, err)

	res := m.Find("secret")
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "Secret", res.Matches[0].Word)
}

func TestNewMatcher_Rejects(t *testing.T) {
	_, err := NewMatcher(nil)
	assert.Error(t, err)

	_, err = NewMatcher([]string{"ok", ""})
	assert.Error(t, err)
}

func TestIsWordChar(t *testing.T) {
	assert.True(t, IsWordChar('a'))
	assert.True(t, IsWordChar('Ж'))
	assert.True(t, IsWordChar('7'))
	assert.True(t, IsWordChar('_'))
	assert.True(t, IsWordChar('\u0301'))
	assert.False(t, IsWordChar(' '))
	assert.False(t, IsWordChar('-'))
	assert.False(t, IsWordChar('*'))
}
