package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const senses = `{"id":"cat","pos":"NOU","wc":1,"nsyll":1,"register_tags":["informal"]}
{"id":"cat","pos":"VRB","wc":1,"nsyll":1}
{"id":"cats","pos":"NOU","wc":1,"nsyll":1,"is_inflected":true,"lemma":"cat"}
{"id":"dogs","pos":"NOU","wc":1,"nsyll":1,"is_inflected":true,"lemma":"dog"}
`

func TestLoad(t *testing.T) {
	s, err := openStore(filepath.Join(t.TempDir(), "w.db"), 10)
	require.NoError(t, err)
	defer s.Close()

	words, err := load(s, strings.NewReader(senses))
	require.NoError(t, err)
	assert.Equal(t, int64(3), words)

	var pos string
	require.NoError(t, s.db.QueryRow("SELECT pos FROM words WHERE word = 'cat'").Scan(&pos))
	assert.Equal(t, "NOU,VRB", pos)

	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM senses").Scan(&count))
	assert.Equal(t, 4, count)

	var tags string
	require.NoError(t, s.db.QueryRow(
		"SELECT tags FROM senses s JOIN words w ON w.id = s.word_id WHERE w.word = 'cat' AND s.pos = 'NOU'").Scan(&tags))
	assert.JSONEq(t, `{"register":["informal"]}`, tags)

	// cats points at cat, dogs has no dog to point at
	var lemmaWord string
	require.NoError(t, s.db.QueryRow(`SELECT l.word FROM senses s
		JOIN words w ON w.id = s.word_id
		JOIN words l ON l.id = s.lemma_id
		WHERE w.word = 'cats'`).Scan(&lemmaWord))
	assert.Equal(t, "cat", lemmaWord)

	var missing int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM senses s
		JOIN words w ON w.id = s.word_id
		WHERE w.word = 'dogs' AND s.lemma_id IS NULL`).Scan(&missing))
	assert.Equal(t, 1, missing)
}

func TestLoadTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.db")
	s, err := openStore(path, 10)
	require.NoError(t, err)
	_, err = load(s, strings.NewReader(senses))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A fresh cache still finds the existing rows.
	s, err = openStore(path, 10)
	require.NoError(t, err)
	defer s.Close()
	words, err := load(s, strings.NewReader(senses))
	require.NoError(t, err)
	assert.Equal(t, int64(0), words)
}
