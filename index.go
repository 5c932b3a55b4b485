package wiktscan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrBadIndexRecord is returned for an index line that is not
// offset:page-id:title.
var ErrBadIndexRecord = errors.New("bad index record")

// An IndexEntry is one page of a multistream dump index.
type IndexEntry struct {
	StreamOffset int64
	PageID       int64
	Title        string
}

func (i IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", i.StreamOffset, i.PageID, i.Title)
}

// An IndexReader reads the index of a multistream dump, the file named
// like enwiktionary-latest-pages-articles-multistream-index.txt.bz2
// once decompressed.
type IndexReader struct {
	r          *bufio.Scanner
	line       int
	base       int64
	prevOffset int64
}

// NewIndexReader gets an index reader.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{r: bufio.NewScanner(r)}
}

// Next gets the next entry from the index.
//
// Offsets only ever grow, so one that goes backwards is taken to have
// wrapped around 32 bits, as some older dump tools wrote them.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.r.Scan() {
		err := ir.r.Err()
		if err == nil {
			err = io.EOF
		}
		return IndexEntry{}, err
	}
	ir.line++
	parts := strings.SplitN(ir.r.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, fmt.Errorf("line %d: %w", ir.line, ErrBadIndexRecord)
	}
	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("line %d: %w", ir.line, err)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return IndexEntry{}, fmt.Errorf("line %d: %w", ir.line, err)
	}

	if offset < ir.prevOffset {
		ir.base += 1 << 32
	}
	ir.prevOffset = offset
	return IndexEntry{StreamOffset: offset + ir.base, PageID: id, Title: parts[2]}, nil
}

// IndexSummaryReader folds index entries into one record per bzip2
// stream: where it starts and how many pages it holds.
type IndexSummaryReader struct {
	index      *IndexReader
	prevOffset int64
	count      int
}

// NewIndexSummaryReader gets a new IndexSummaryReader from the given
// stream of index lines.  An empty index is an error.
func NewIndexSummaryReader(r io.Reader) (*IndexSummaryReader, error) {
	rv := &IndexSummaryReader{index: NewIndexReader(r)}
	first, err := rv.index.Next()
	if err != nil {
		return nil, err
	}
	rv.prevOffset = first.StreamOffset
	rv.count = 1
	return rv, nil
}

// Next gets the next offset and page count.
//
// The last stream comes back together with io.EOF; calls after that
// return a zero offset and count.
func (isr *IndexSummaryReader) Next() (offset int64, count int, err error) {
	for {
		e, err := isr.index.Next()
		if err != nil {
			offset, count = isr.prevOffset, isr.count
			isr.prevOffset, isr.count = 0, 0
			return offset, count, err
		}
		if e.StreamOffset != isr.prevOffset {
			offset, count = isr.prevOffset, isr.count
			isr.prevOffset, isr.count = e.StreamOffset, 1
			return offset, count, nil
		}
		isr.count++
	}
}

// A Stream is a byte range of a multistream dump holding one
// independent bzip2 stream.
type Stream struct {
	Offset int64
	Length int64
	Pages  int
}

// ReadStreams lists the streams of a dump of the given size from its
// index, in file order.  The header stream before the first indexed
// page and the footer after the last are covered too, so reading every
// stream yields the whole document.
func ReadStreams(index io.Reader, size int64) ([]Stream, error) {
	isr, err := NewIndexSummaryReader(index)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var rv []Stream
	for {
		offset, count, err := isr.Next()
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading index: %w", err)
		}
		if len(rv) == 0 && offset > 0 {
			rv = append(rv, Stream{Offset: 0})
		}
		rv = append(rv, Stream{Offset: offset, Pages: count})
		if err == io.EOF {
			break
		}
	}

	for i := range rv {
		end := size
		if i+1 < len(rv) {
			end = rv[i+1].Offset
		}
		if end < rv[i].Offset {
			return nil, fmt.Errorf("stream at %d ends before it starts: %w",
				rv[i].Offset, ErrBadIndexRecord)
		}
		rv[i].Length = end - rv[i].Offset
	}
	return rv, nil
}
