// Print a multistream index with its offsets unwrapped, or, given the
// dump as well, the byte range and page count of every stream.
package main

import (
	"compress/bzip2"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/macshonle/go-wiktscan"
)

func openIndex(fn string) (io.Reader, func() error) {
	r, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Error opening %v: %v", fn, err)
	}
	if strings.HasSuffix(fn, ".bz2") {
		return bzip2.NewReader(r), r.Close
	}
	return r, r.Close
}

func printEntries(r io.Reader) {
	ir := wiktscan.NewIndexReader(r)
	for {
		e, err := ir.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading stream:  %v", err)
		}

		fmt.Println(e.String())
	}
}

func printStreams(r io.Reader, dump string) {
	st, err := os.Stat(dump)
	if err != nil {
		log.Fatalf("Error reading %v: %v", dump, err)
	}
	streams, err := wiktscan.ReadStreams(r, st.Size())
	if err != nil {
		log.Fatalf("Error reading index: %v", err)
	}
	pages := 0
	for _, s := range streams {
		fmt.Printf("%d\t%d\t%d\n", s.Offset, s.Length, s.Pages)
		pages += s.Pages
	}
	log.Printf("%s streams, %s pages, %s",
		humanize.Comma(int64(len(streams))), humanize.Comma(int64(pages)),
		humanize.Bytes(uint64(st.Size())))
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatalf("Usage: %s index.txt.bz2 [multistream.xml.bz2]", os.Args[0])
	}
	r, closer := openIndex(os.Args[1])
	defer closer()

	if len(os.Args) == 3 {
		printStreams(r, os.Args[2])
		return
	}
	printEntries(r)
}
