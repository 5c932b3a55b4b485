// Load scanned wiktionary senses into Couchbase, one document per sense.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"

	"github.com/macshonle/go-wiktscan"
)

var numWorkers = flag.Int("numWorkers", 8, "Number of sense workers")

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] senses.jsonl\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type sense struct {
	key   string
	entry wiktscan.SenseEntry
}

// senseKeys names each sense word/POS/n, n counting from one within
// a part of speech.
func senseKeys(word string, senses []wiktscan.SenseEntry) []sense {
	n := map[string]int{}
	rv := make([]sense, 0, len(senses))
	for _, s := range senses {
		n[s.POS]++
		rv = append(rv, sense{fmt.Sprintf("%s/%s/%d", word, s.POS, n[s.POS]), s})
	}
	return rv
}

func senseHandler(db *couchbase.Bucket, ch <-chan sense) {
	defer wg.Done()
	for s := range ch {
		if err := db.Set(s.key, 0, s.entry); err != nil {
			log.Printf("Error setting %v: %v", s.key, err)
		}
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
	}

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}
	defer db.Close()

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error opening %v: %v", flag.Arg(0), err)
	}
	defer f.Close()

	ch := make(chan sense, 1000)
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go senseHandler(db, ch)
	}

	words, senses := int64(0), int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err = wiktscan.GroupByWord(wiktscan.NewEntryReader(f), func(w string, entries []wiktscan.SenseEntry) error {
		for _, s := range senseKeys(w, entries) {
			ch <- s
			senses++
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
	close(ch)
	wg.Wait()
	log.Printf("Ended with err after %v:  %v after %s words, %s senses",
		time.Since(start), err, humanize.Comma(words), humanize.Comma(senses))
}
