package main

import (
	"flag"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/mgo.v2"

	"github.com/macshonle/go-wiktscan"
)

var proc = flag.Int("proc", 8, "How many processes to run.")
var file = flag.String("file", "", "The JSONL file written by wiktscan.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "senses", "The collection to store senses in.")
var dbname = flag.String("dbname", "wiktionary", "The database name to use.")

var wg sync.WaitGroup

// A sense is identified by its word, part of speech and position
// within that part of speech.
var senseIndex = mgo.Index{
	Key:        []string{"word", "pos", "n"},
	Unique:     true,
	DropDups:   true,
	Background: true,
}

var wordIndex = mgo.Index{
	Key:        []string{"word"},
	Background: true,
}

type sense struct {
	Word           string               `bson:",omitempty"`
	POS            string               `bson:",omitempty"`
	N              int                  `bson:",omitempty"`
	WordCount      int                  `bson:"wc,omitempty"`
	IsAbbreviation bool                 `bson:"abbreviation,omitempty"`
	IsInflected    bool                 `bson:"inflected,omitempty"`
	IsPhrase       bool                 `bson:"phrase,omitempty"`
	Syllables      *int                 `bson:"nsyll,omitempty"`
	PhraseType     string               `bson:"phrasetype,omitempty"`
	Lemma          string               `bson:",omitempty"`
	Domain         []string             `bson:",omitempty"`
	Region         []string             `bson:",omitempty"`
	Register       []string             `bson:",omitempty"`
	Temporal       []string             `bson:",omitempty"`
	SpellingRegion string               `bson:"spelling,omitempty"`
	Morphology     *wiktscan.Morphology `bson:",omitempty"`
}

func makeSenses(word string, entries []wiktscan.SenseEntry) []interface{} {
	n := map[string]int{}
	rv := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		n[e.POS]++
		rv = append(rv, &sense{
			Word:           word,
			POS:            e.POS,
			N:              n[e.POS],
			WordCount:      e.WordCount,
			IsAbbreviation: e.IsAbbreviation,
			IsInflected:    e.IsInflected,
			IsPhrase:       e.IsPhrase,
			Syllables:      e.Syllables,
			PhraseType:     e.PhraseType,
			Lemma:          e.Lemma,
			Domain:         e.DomainTags,
			Region:         e.RegionTags,
			Register:       e.RegisterTags,
			Temporal:       e.TemporalTags,
			SpellingRegion: e.SpellingRegion,
			Morphology:     e.Morphology,
		})
	}
	return rv
}

func wordHandler(db *mgo.Database, ch <-chan []interface{}) {
	for docs := range ch {
		insertSenses(db, docs)
	}
}

func insertSenses(db *mgo.Database, docs []interface{}) {
	defer wg.Done()
	err := db.C(*collection).Insert(docs...)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate Key Error inserting %s", docs[0].(*sense).Word)
			}
		} else {
			log.Printf("Error inserting %s: %s", docs[0].(*sense).Word, err)
		}
	}
}

func processSenses(f *os.File, db *mgo.Database) {
	ch := make(chan []interface{}, 1000)
	for i := 0; i < *proc; i++ {
		go wordHandler(db, ch)
	}

	words := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err := wiktscan.GroupByWord(wiktscan.NewEntryReader(f), func(w string, entries []wiktscan.SenseEntry) error {
		wg.Add(1)
		ch <- makeSenses(w, entries)
		words++
		if words%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s words total (%.2f/s)\n",
				humanize.Comma(words), float64(reportfreq)/d.Seconds())
			prev = now
		}
		return nil
	})
	wg.Wait()
	close(ch)

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s words (%.2f w/s)",
		d, err, humanize.Comma(words), float64(words)/d.Seconds())
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a JSONL file.")
	}
	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to %v: %v", *dburl, err)
	}
	defer session.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()

	c := session.DB(*dbname).C(*collection)
	for _, idx := range []mgo.Index{senseIndex, wordIndex} {
		if err := c.EnsureIndex(idx); err != nil {
			log.Fatalf("Error creating index on %v: %v", idx.Key, err)
		}
	}
	processSenses(f, session.DB(*dbname))
}
