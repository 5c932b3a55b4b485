package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macshonle/go-wiktscan"
)

func TestEscapeTitle(t *testing.T) {
	assert.Equal(t, "and%2for", escapeTitle("and/or"))
	assert.Equal(t, "C%2b%2b", escapeTitle("C++"))
	assert.Equal(t, "cat", escapeTitle("cat"))
}

func TestNewWord(t *testing.T) {
	n := 2
	w := newWord("a/b", []wiktscan.SenseEntry{
		{Word: "a/b", POS: "NOU", Syllables: &n},
		{Word: "a/b", POS: "VRB", Syllables: &n},
	})
	assert.Equal(t, "a%2fb", w.ID)
	assert.Equal(t, "a/b", w.Word)
	assert.Equal(t, []string{"NOU", "VRB"}, w.POS)
	assert.Equal(t, 2, *w.Syllables)
	assert.Len(t, w.Senses, 2)
}
