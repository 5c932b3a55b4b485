// Build a bleve index of scanned wiktionary words, or query one.
//
//	bleveload -index words.bleve -file senses.jsonl
//	bleveload -index words.bleve -q '+pos:VRB +tags:informal'
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/dustin/go-humanize"

	"github.com/macshonle/go-wiktscan"
)

var indexPath = flag.String("index", "wiktionary.bleve", "Path to the bleve index.")
var file = flag.String("file", "", "The JSONL file written by wiktscan.")
var batchSize = flag.Int("batch", 1000, "Words per index batch.")
var q = flag.String("q", "", "Search the index with this query string instead of loading.")
var size = flag.Int("n", 20, "Maximum search results.")

type word struct {
	Word       string   `json:"word"`
	POS        []string `json:"pos"`
	Lemma      []string `json:"lemma,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Syllables  int      `json:"nsyll,omitempty"`
	Morphology string   `json:"morphology,omitempty"`
	Senses     int      `json:"senses"`
}

func newWord(w string, senses []wiktscan.SenseEntry) word {
	rv := word{
		Word:   w,
		POS:    wiktscan.PartsOfSpeech(senses),
		Senses: len(senses),
	}
	seen := map[*[]string]map[string]bool{&rv.Lemma: {}, &rv.Tags: {}}
	add := func(dst *[]string, vals ...string) {
		for _, v := range vals {
			if v != "" && !seen[dst][v] {
				seen[dst][v] = true
				*dst = append(*dst, v)
			}
		}
	}
	for _, e := range senses {
		add(&rv.Lemma, e.Lemma)
		add(&rv.Tags, e.DomainTags...)
		add(&rv.Tags, e.RegionTags...)
		add(&rv.Tags, e.RegisterTags...)
		add(&rv.Tags, e.TemporalTags...)
	}
	first := senses[0]
	if first.Syllables != nil {
		rv.Syllables = *first.Syllables
	}
	if first.Morphology != nil {
		rv.Morphology = string(first.Morphology.Kind)
	}
	return rv
}

// indexMapping keeps the coded fields whole so they can be matched
// exactly, and analyzes the word itself as text.
func indexMapping() mapping.IndexMapping {
	keyword := bleve.NewKeywordFieldMapping()
	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("word", bleve.NewTextFieldMapping())
	for _, f := range []string{"pos", "lemma", "tags", "morphology"} {
		doc.AddFieldMappingsAt(f, keyword)
	}
	doc.AddFieldMappingsAt("nsyll", bleve.NewNumericFieldMapping())
	doc.AddFieldMappingsAt("senses", bleve.NewNumericFieldMapping())

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func openIndex(path string) (bleve.Index, error) {
	idx, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		return bleve.New(path, indexMapping())
	}
	return idx, err
}

func load(idx bleve.Index, r io.Reader, n int) (int64, error) {
	words := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)

	batch := idx.NewBatch()
	err := wiktscan.GroupByWord(wiktscan.NewEntryReader(r), func(w string, senses []wiktscan.SenseEntry) error {
		if err := batch.Index(w, newWord(w, senses)); err != nil {
			return err
		}
		if batch.Size() >= n {
			if err := idx.Batch(batch); err != nil {
				return err
			}
			batch.Reset()
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
	if err == nil && batch.Size() > 0 {
		err = idx.Batch(batch)
	}
	return words, err
}

func search(idx bleve.Index, query string, n int) (*bleve.SearchResult, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), n, 0, false)
	req.Fields = []string{"pos", "nsyll"}
	req.SortBy([]string{"-_score", "_id"})
	return idx.Search(req)
}

func main() {
	flag.Parse()
	idx, err := openIndex(*indexPath)
	if err != nil {
		log.Fatalf("Error opening index %v: %v", *indexPath, err)
	}
	defer idx.Close()

	if *q != "" {
		res, err := search(idx, *q, *size)
		if err != nil {
			log.Fatalf("Error searching: %v", err)
		}
		for _, h := range res.Hits {
			fmt.Printf("%s\t%v\t%v\n", h.ID, h.Fields["pos"], h.Fields["nsyll"])
		}
		log.Printf("%s matches in %v", humanize.Comma(int64(res.Total)), res.Took)
		return
	}

	if *file == "" {
		log.Fatal("You must supply a JSONL file or a query.")
	}
	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Error opening %v: %v", *file, err)
	}
	defer f.Close()

	start := time.Now()
	words, err := load(idx, f, *batchSize)
	log.Printf("Ended with err after %v:  %v after %s words",
		time.Since(start), err, humanize.Comma(words))
}
