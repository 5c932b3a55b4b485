// Load scanned wiktionary senses into a SQLite database.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"

	"github.com/macshonle/go-wiktscan"
)

var dbpath = flag.String("db", "wiktionary.db", "Path to the SQLite database.")
var file = flag.String("file", "", "The JSONL file written by wiktscan.")
var cacheSize = flag.Int("cache", 100000, "How many word ids to remember for lemma lookups.")

const schema = `
CREATE TABLE IF NOT EXISTS words (
	id         INTEGER PRIMARY KEY,
	word       TEXT NOT NULL UNIQUE,
	pos        TEXT NOT NULL,
	is_phrase  INTEGER NOT NULL DEFAULT 0,
	nsyll      INTEGER,
	morphology JSON
);
CREATE TABLE IF NOT EXISTS senses (
	word_id         INTEGER NOT NULL REFERENCES words(id),
	pos             TEXT NOT NULL,
	n               INTEGER NOT NULL,
	wc              INTEGER NOT NULL,
	lemma           TEXT,
	lemma_id        INTEGER REFERENCES words(id),
	spelling_region TEXT,
	tags            JSON,
	PRIMARY KEY (word_id, pos, n)
);
CREATE INDEX IF NOT EXISTS senses_lemma ON senses(lemma);
`

type store struct {
	db  *sql.DB
	ids *lru.Cache[string, int64]
}

func openStore(path string, cache int) (*store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %v: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	ids, err := lru.New[string, int64](cache)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &store{db: db, ids: ids}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// lookup finds a word's row id, from the cache if it has been seen
// recently.
func (s *store) lookup(tx *sql.Tx, word string) (int64, bool, error) {
	if id, ok := s.ids.Get(word); ok {
		return id, true, nil
	}
	var id int64
	err := tx.QueryRow("SELECT id FROM words WHERE word = ?", word).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		return 0, false, nil
	case err != nil:
		return 0, false, err
	}
	s.ids.Add(word, id)
	return id, true, nil
}

type tags struct {
	Domain   []string `json:"domain,omitempty"`
	Region   []string `json:"region,omitempty"`
	Register []string `json:"register,omitempty"`
	Temporal []string `json:"temporal,omitempty"`
}

func senseTags(e wiktscan.SenseEntry) (any, error) {
	t := tags{e.DomainTags, e.RegionTags, e.RegisterTags, e.TemporalTags}
	if t.Domain == nil && t.Region == nil && t.Register == nil && t.Temporal == nil {
		return nil, nil
	}
	b, err := json.Marshal(t)
	return string(b), err
}

// add stores one headword and its senses. A word that is already
// present is skipped.
func (s *store) add(word string, senses []wiktscan.SenseEntry) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, found, err := s.lookup(tx, word); err != nil || found {
		return false, err
	}

	first := senses[0]
	var morph any
	if first.Morphology != nil {
		b, err := json.Marshal(first.Morphology)
		if err != nil {
			return false, err
		}
		morph = string(b)
	}
	var nsyll any
	if first.Syllables != nil {
		nsyll = *first.Syllables
	}
	res, err := tx.Exec("INSERT INTO words (word, pos, is_phrase, nsyll, morphology) VALUES (?, ?, ?, ?, ?)",
		word, strings.Join(wiktscan.PartsOfSpeech(senses), ","), first.IsPhrase, nsyll, morph)
	if err != nil {
		return false, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}

	n := map[string]int{}
	for _, e := range senses {
		n[e.POS]++
		var lemmaID any
		if e.Lemma != "" {
			lid, found, err := s.lookup(tx, e.Lemma)
			if err != nil {
				return false, err
			}
			if found {
				lemmaID = lid
			}
		}
		t, err := senseTags(e)
		if err != nil {
			return false, err
		}
		_, err = tx.Exec(`INSERT INTO senses (word_id, pos, n, wc, lemma, lemma_id, spelling_region, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, e.POS, n[e.POS], e.WordCount, nullable(e.Lemma), lemmaID, nullable(e.SpellingRegion), t)
		if err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	s.ids.Add(word, id)
	return true, nil
}

func load(s *store, r io.Reader) (int64, error) {
	words := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err := wiktscan.GroupByWord(wiktscan.NewEntryReader(r), func(w string, senses []wiktscan.SenseEntry) error {
		added, err := s.add(w, senses)
		if err != nil {
			return fmt.Errorf("%v: %w", w, err)
		}
		if !added {
			return nil
		}
		words++
		if words%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s words total (%.2f/s)",
				humanize.Comma(words), float64(reportfreq)/d.Seconds())
			prev = now
		}
		return nil
	})
	return words, err
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a JSONL file.")
	}
	s, err := openStore(*dbpath, *cacheSize)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer s.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Error opening %v: %v", *file, err)
	}
	defer f.Close()

	start := time.Now()
	words, err := load(s, f)
	log.Printf("Ended with err after %v:  %v after %s words",
		time.Since(start), err, humanize.Comma(words))
}
