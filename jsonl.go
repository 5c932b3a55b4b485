package wiktscan

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// MaxLineSize is the longest JSONL record an EntryReader accepts.
const MaxLineSize = 16 << 20

// An EntryWriter writes one JSON object per line.
type EntryWriter struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewEntryWriter gets a buffered JSONL writer.  Call Flush when done.
func NewEntryWriter(w io.Writer) *EntryWriter {
	buf := bufio.NewWriterSize(w, ChunkSize)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &EntryWriter{buf: buf, enc: enc}
}

// Write encodes v as a single line.
func (w *EntryWriter) Write(v any) error {
	return w.enc.Encode(v)
}

// Flush writes out anything still buffered.
func (w *EntryWriter) Flush() error {
	return w.buf.Flush()
}

// An EntryReader reads back the sense entries of a scan.
type EntryReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewEntryReader gets a reader over JSONL produced by Run.
func NewEntryReader(r io.Reader) *EntryReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)
	return &EntryReader{scanner: scanner}
}

// Next gets the next entry.  Blank lines are skipped.  It returns
// io.EOF at the end of the input.
func (r *EntryReader) Next() (SenseEntry, error) {
	for r.scanner.Scan() {
		r.line++
		b := r.scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var e SenseEntry
		if err := json.Unmarshal(b, &e); err != nil {
			return SenseEntry{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return e, nil
	}
	if err := r.scanner.Err(); err != nil {
		return SenseEntry{}, fmt.Errorf("line %d: %w", r.line, err)
	}
	return SenseEntry{}, io.EOF
}

// GroupByWord calls fn once per run of consecutive entries sharing a
// headword.  Scans write all senses of a page together, so each call
// sees every sense of one word.
//
// An error from fn stops the walk and is returned as is.
func GroupByWord(r *EntryReader, fn func(word string, senses []SenseEntry) error) error {
	var senses []SenseEntry
	for {
		e, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(senses) > 0 && senses[0].Word != e.Word {
			if err := fn(senses[0].Word, senses); err != nil {
				return err
			}
			senses = nil
		}
		senses = append(senses, e)
	}
	if len(senses) > 0 {
		return fn(senses[0].Word, senses)
	}
	return nil
}

// PartsOfSpeech lists the distinct parts of speech of a word's senses
// in the order they first appear.
func PartsOfSpeech(senses []SenseEntry) []string {
	var rv []string
	seen := map[string]bool{}
	for _, s := range senses {
		if !seen[s.POS] {
			seen[s.POS] = true
			rv = append(rv, s.POS)
		}
	}
	return rv
}
