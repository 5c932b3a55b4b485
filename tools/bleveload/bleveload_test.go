package main

import (
	"strings"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macshonle/go-wiktscan"
)

const senses = `{"id":"cat","pos":"NOU","wc":1,"nsyll":1}
{"id":"cat","pos":"VRB","wc":1,"nsyll":1,"register_tags":["informal"]}
{"id":"cats","pos":"NOU","wc":1,"nsyll":1,"is_inflected":true,"lemma":"cat"}
{"id":"happiness","pos":"NOU","wc":1,"nsyll":3,"morphology":{"type":"suffixed","base":"happy","components":["happy","-ness"],"prefixes":[],"suffixes":["-ness"],"is_compound":false,"etymology_template":"suffix"}}
`

func TestNewWord(t *testing.T) {
	n := 2
	w := newWord("run", []wiktscan.SenseEntry{
		{POS: "NOU", Syllables: &n, RegisterTags: []string{"informal"}},
		{POS: "VRB", Lemma: "ran", RegisterTags: []string{"informal"}, DomainTags: []string{"sports"}},
	})
	assert.Equal(t, []string{"NOU", "VRB"}, w.POS)
	assert.Equal(t, []string{"ran"}, w.Lemma)
	assert.Equal(t, []string{"informal", "sports"}, w.Tags)
	assert.Equal(t, 2, w.Syllables)
	assert.Equal(t, 2, w.Senses)
	assert.Empty(t, w.Morphology)
}

func TestLoadAndSearch(t *testing.T) {
	idx, err := bleve.NewMemOnly(indexMapping())
	require.NoError(t, err)
	defer idx.Close()

	words, err := load(idx, strings.NewReader(senses), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), words)

	count, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	ids := func(query string) []string {
		res, err := search(idx, query, 10)
		require.NoError(t, err)
		var rv []string
		for _, h := range res.Hits {
			rv = append(rv, h.ID)
		}
		return rv
	}

	assert.Equal(t, []string{"cat"}, ids("pos:VRB"))
	assert.Equal(t, []string{"cat"}, ids("tags:informal"))
	assert.Equal(t, []string{"cats"}, ids("lemma:cat"))
	assert.Equal(t, []string{"happiness"}, ids("morphology:suffixed"))
	assert.Equal(t, []string{"happiness"}, ids("nsyll:>=3"))
}
