// Load scanned wiktionary senses into PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/macshonle/go-wiktscan"
)

var dsn = flag.String("dsn", "postgres://localhost/wiktionary", "PostgreSQL connection string.")
var file = flag.String("file", "", "The JSONL file written by wiktscan.")
var workers = flag.Int("workers", 8, "Concurrent inserts.")
var create = flag.Bool("create", true, "Create the tables if they don't exist.")

const schema = `
CREATE TABLE IF NOT EXISTS words (
	word       TEXT PRIMARY KEY,
	pos        TEXT[] NOT NULL,
	is_phrase  BOOLEAN NOT NULL DEFAULT FALSE,
	nsyll      INTEGER,
	morphology JSONB
);
CREATE TABLE IF NOT EXISTS senses (
	word            TEXT NOT NULL REFERENCES words(word),
	pos             TEXT NOT NULL,
	n               INTEGER NOT NULL,
	wc              INTEGER NOT NULL,
	lemma           TEXT,
	phrase_type     TEXT,
	spelling_region TEXT,
	tags            TEXT[] NOT NULL,
	PRIMARY KEY (word, pos, n)
);`

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type query struct {
	sql  string
	args []any
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// senseTags flattens the label categories into "category:label" strings.
func senseTags(e wiktscan.SenseEntry) []string {
	tags := []string{}
	for _, c := range []struct {
		name string
		tags []string
	}{
		{"domain", e.DomainTags},
		{"region", e.RegionTags},
		{"register", e.RegisterTags},
		{"temporal", e.TemporalTags},
	} {
		for _, t := range c.tags {
			tags = append(tags, c.name+":"+t)
		}
	}
	return tags
}

// wordQueries builds the inserts for one headword. Rows that already
// exist are left alone.
func wordQueries(word string, senses []wiktscan.SenseEntry) ([]query, error) {
	first := senses[0]
	var morph any
	if first.Morphology != nil {
		b, err := json.Marshal(first.Morphology)
		if err != nil {
			return nil, err
		}
		morph = string(b)
	}

	var rv []query
	sql, args, err := psql.Insert("words").
		Columns("word", "pos", "is_phrase", "nsyll", "morphology").
		Values(word, wiktscan.PartsOfSpeech(senses), first.IsPhrase, first.Syllables, morph).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return nil, err
	}
	rv = append(rv, query{sql, args})

	ins := psql.Insert("senses").
		Columns("word", "pos", "n", "wc", "lemma", "phrase_type", "spelling_region", "tags")
	n := map[string]int{}
	for _, e := range senses {
		n[e.POS]++
		ins = ins.Values(word, e.POS, n[e.POS], e.WordCount, nullable(e.Lemma),
			nullable(e.PhraseType), nullable(e.SpellingRegion), senseTags(e))
	}
	sql, args, err = ins.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return nil, err
	}
	return append(rv, query{sql, args}), nil
}

func insertWord(ctx context.Context, pool *pgxpool.Pool, word string, senses []wiktscan.SenseEntry) error {
	qs, err := wordQueries(word, senses)
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	for _, q := range qs {
		if _, err := tx.Exec(ctx, q.sql, q.args...); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a JSONL file.")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		log.Fatalf("Error connecting to %v: %v", *dsn, err)
	}
	defer pool.Close()

	if *create {
		for _, stmt := range strings.Split(schema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := pool.Exec(ctx, stmt); err != nil {
				log.Fatalf("Error creating schema: %v", err)
			}
		}
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Error opening %v: %v", *file, err)
	}
	defer f.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)

	words := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err = wiktscan.GroupByWord(wiktscan.NewEntryReader(f), func(w string, senses []wiktscan.SenseEntry) error {
		if gctx.Err() != nil {
			return gctx.Err()
		}
		g.Go(func() error {
			if err := insertWord(gctx, pool, w, senses); err != nil {
				log.Printf("Error inserting %v: %v", w, err)
			}
			return nil
		})
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
	if gerr := g.Wait(); err == nil {
		err = gerr
	}
	log.Printf("Ended with err after %v:  %v after %s words",
		time.Since(start), err, humanize.Comma(words))
}
