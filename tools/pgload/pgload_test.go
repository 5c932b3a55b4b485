package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macshonle/go-wiktscan"
)

func TestSenseTags(t *testing.T) {
	e := wiktscan.SenseEntry{
		DomainTags:   []string{"music"},
		RegisterTags: []string{"informal", "slang"},
	}
	assert.Equal(t, []string{"domain:music", "register:informal", "register:slang"}, senseTags(e))
	assert.Empty(t, senseTags(wiktscan.SenseEntry{}))
}

func TestWordQueries(t *testing.T) {
	n := 1
	qs, err := wordQueries("run", []wiktscan.SenseEntry{
		{Word: "run", POS: "NOU", WordCount: 1, Syllables: &n},
		{Word: "run", POS: "VRB", WordCount: 1, Syllables: &n},
		{Word: "run", POS: "VRB", WordCount: 1, Syllables: &n, Lemma: "ran"},
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t,
		"INSERT INTO words (word,pos,is_phrase,nsyll,morphology) VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING",
		qs[0].sql)
	assert.Equal(t, "run", qs[0].args[0])
	assert.Equal(t, []string{"NOU", "VRB"}, qs[0].args[1])
	assert.Nil(t, qs[0].args[4])

	assert.Contains(t, qs[1].sql, "INSERT INTO senses")
	assert.Contains(t, qs[1].sql, "($17,$18,$19,$20,$21,$22,$23,$24) ON CONFLICT DO NOTHING")
	require.Len(t, qs[1].args, 24)
	// word, pos, n for the third row
	assert.Equal(t, []any{"run", "VRB", 2}, qs[1].args[16:19])
	assert.Equal(t, "ran", qs[1].args[20])
	assert.Nil(t, qs[1].args[4])
}

func TestWordQueriesMorphology(t *testing.T) {
	qs, err := wordQueries("happiness", []wiktscan.SenseEntry{{
		Word: "happiness",
		POS:  "NOU",
		Morphology: &wiktscan.Morphology{
			Kind:     wiktscan.KindSuffixed,
			Base:     "happy",
			Suffixes: []string{"-ness"},
		},
	}})
	require.NoError(t, err)
	assert.Contains(t, qs[0].args[4], `"type":"suffixed"`)
}
