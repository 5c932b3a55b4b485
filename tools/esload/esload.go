// Load scanned wiktionary senses into ElasticSearch, one document per
// headword.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-elasticsearch"
	"github.com/dustin/go-humanize"

	"github.com/macshonle/go-wiktscan"
)

var (
	index      = flag.String("index", "wiktionary", "ElasticSearch index")
	docType    = flag.String("type", "word", "ElasticSearch document type")
	numWorkers = flag.Int("workers", 4, "Number of bulk loaders")
	batchSize  = flag.Int("batch", 1000, "Documents per bulk request")
)

var wg sync.WaitGroup

type word struct {
	Word   string                `json:"word"`
	POS    []string              `json:"pos"`
	Senses []wiktscan.SenseEntry `json:"senses"`
}

func wordHandler(u string, ch <-chan word) {
	defer wg.Done()
	counter := 0
	es := elasticsearch.ElasticSearch{URL: u}
	bulkLoader := es.Bulk()

	for w := range ch {
		counter++
		if counter > *batchSize {
			bulkLoader.SendBatch()
			counter = 0
		}
		bulkLoader.Update(&elasticsearch.UpdateInstruction{
			Id:    w.Word,
			Index: *index,
			Type:  *docType,
			Body:  w,
		})
	}
	bulkLoader.Quit()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n  %s [opts] senses.jsonl http://localhost:9200/\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}
	filename, esurl := flag.Arg(0), flag.Arg(1)

	f, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()

	ch := make(chan word, 1000)
	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go wordHandler(esurl, ch)
	}

	words := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	err = wiktscan.GroupByWord(wiktscan.NewEntryReader(f), func(w string, senses []wiktscan.SenseEntry) error {
		ch <- word{Word: w, POS: wiktscan.PartsOfSpeech(senses), Senses: senses}
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
	log.Printf("Ended with err after %v:  %v after %s words",
		time.Since(start), err, humanize.Comma(words))
}
