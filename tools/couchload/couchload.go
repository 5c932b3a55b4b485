// Load scanned wiktionary senses into CouchDB, one document per headword.
package main

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"

	"github.com/macshonle/go-wiktscan"
)

var wg sync.WaitGroup

type Word struct {
	ID         string                `json:"_id"`
	Rev        string                `json:"_rev,omitempty"`
	Word       string                `json:"word"`
	POS        []string              `json:"pos"`
	IsPhrase   bool                  `json:"is_phrase,omitempty"`
	Syllables  *int                  `json:"nsyll,omitempty"`
	Senses     []wiktscan.SenseEntry `json:"senses"`
	Morphology *wiktscan.Morphology  `json:"morphology,omitempty"`
}

func newWord(w string, senses []wiktscan.SenseEntry) Word {
	first := senses[0]
	return Word{
		ID:         escapeTitle(w),
		Word:       w,
		POS:        wiktscan.PartsOfSpeech(senses),
		IsPhrase:   first.IsPhrase,
		Syllables:  first.Syllables,
		Senses:     senses,
		Morphology: first.Morphology,
	}
}

func escapeTitle(in string) string {
	return strings.NewReplacer("/", "%2f", "+", "%2b").Replace(in)
}

// resolveConflict keeps whichever version of a word has more senses.
func resolveConflict(db *couch.Database, w *Word) {
	var prev Word
	err := db.Retrieve(w.ID, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", w.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", w.ID)
		return
	}
	if len(w.Senses) > len(prev.Senses) {
		log.Printf("  %s has more senses...replacing %s.", w.ID, prev.Rev)
		_, err = db.EditWith(w, w.ID, prev.Rev)
		if err != nil {
			log.Printf("  Error updating %v: %v", prev.ID, err)
		}
	}
}

func doWord(db *couch.Database, w Word) {
	defer wg.Done()
	_, _, err := db.Insert(&w)
	httpe, isHttpError := err.(*couch.HTTPError)
	switch {
	case err == nil:
		// yay
	case isHttpError && httpe.Status == 409:
		resolveConflict(db, &w)
	default:
		log.Printf("Error inserting %v: %v", w.ID, err)
	}
}

func wordHandler(db couch.Database, ch <-chan Word) {
	for w := range ch {
		doWord(&db, w)
	}
}

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: %s http://localhost:5984/wiktionary senses.jsonl", os.Args[0])
	}
	dburl, file := os.Args[1], os.Args[2]

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	f, err := os.Open(file)
	if err != nil {
		log.Fatalf("Error opening %v: %v", file, err)
	}
	defer f.Close()

	ch := make(chan Word, 1000)
	for i := 0; i < 20; i++ {
		go wordHandler(db, ch)
	}

	words := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	err = wiktscan.GroupByWord(wiktscan.NewEntryReader(f), func(w string, senses []wiktscan.SenseEntry) error {
		wg.Add(1)
		ch <- newWord(w, senses)

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
	wg.Wait()
	close(ch)
	log.Printf("Ended with err after %v:  %v after %s words",
		time.Since(start), err, humanize.Comma(words))
}
