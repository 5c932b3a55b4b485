package wiktscan

import (
	"bytes"
	"encoding/xml"
	"io"
)

// ChunkSize is how much the Splitter asks its reader for at a time.
const ChunkSize = 1 << 20

const maxHeaderSize = 1 << 20

var (
	pageStart     = []byte("<page>")
	pageEnd       = []byte("</page>")
	siteInfoStart = []byte("<siteinfo>")
	siteInfoEnd   = []byte("</siteinfo>")
)

// The toplevel site info describing basic dump properties.
type SiteInfo struct {
	SiteName   string `xml:"sitename"`
	DBName     string `xml:"dbname"`
	Base       string `xml:"base"`
	Generator  string `xml:"generator"`
	Case       string `xml:"case"`
	Namespaces []struct {
		Key   string `xml:"key,attr"`
		Case  string `xml:"case,attr"`
		Value string `xml:",chardata"`
	} `xml:"namespaces>namespace"`
}

// A Fragment is the raw text of one <page>...</page> block, numbered
// in the order it appeared in the dump.
type Fragment struct {
	Seq int64
	XML string
}

// A PageSource emits page fragments in input order.
//
// Next returns io.EOF once the input is exhausted.
type PageSource interface {
	Next() (Fragment, error)
}

// A Splitter cuts a dump into page fragments without parsing it as
// xml.  Only the bytes of the page being assembled are kept in memory.
type Splitter struct {
	r      io.Reader
	chunk  []byte
	data   []byte
	off    int
	seq    int64
	err    error
	header []byte
	inBody bool
}

// NewSplitter gets a page splitter reading from the given reader.
func NewSplitter(r io.Reader) *Splitter {
	return &Splitter{r: r, chunk: make([]byte, ChunkSize)}
}

// Next gets the next page fragment.
//
// A page left unterminated at the end of the input is dropped and the
// call returns io.EOF.  Any other read error is returned as is.
func (s *Splitter) Next() (Fragment, error) {
	for {
		pending := s.data[s.off:]
		if start := bytes.Index(pending, pageStart); start >= 0 {
			s.keepHeader(pending[:start])
			s.inBody = true
			if end := bytes.Index(pending[start:], pageEnd); end >= 0 {
				stop := start + end + len(pageEnd)
				f := Fragment{Seq: s.seq, XML: string(pending[start:stop])}
				s.seq++
				s.off += stop
				return f, nil
			}
			s.off += start
		} else if keep := len(pageStart) - 1; len(pending) > keep {
			s.keepHeader(pending[:len(pending)-keep])
			s.off += len(pending) - keep
		}

		if s.err != nil {
			return Fragment{}, s.err
		}
		s.fill()
	}
}

func (s *Splitter) fill() {
	if s.off > 0 {
		n := copy(s.data, s.data[s.off:])
		s.data = s.data[:n]
		s.off = 0
	}
	n, err := s.r.Read(s.chunk)
	s.data = append(s.data, s.chunk[:n]...)
	if err != nil {
		s.err = err
	}
}

// keepHeader remembers what precedes the first page so SiteInfo can be
// recovered later.
func (s *Splitter) keepHeader(b []byte) {
	if s.inBody {
		return
	}
	if len(s.header)+len(b) > maxHeaderSize {
		s.inBody = true
		return
	}
	s.header = append(s.header, b...)
	if bytes.Contains(s.header, siteInfoEnd) {
		s.inBody = true
	}
}

// SiteInfo decodes the <siteinfo> block seen before the first page.
//
// It reports false until the block has been read in full.
func (s *Splitter) SiteInfo() (SiteInfo, bool) {
	si := SiteInfo{}
	start := bytes.Index(s.header, siteInfoStart)
	end := bytes.Index(s.header, siteInfoEnd)
	if start < 0 || end < start {
		return si, false
	}
	err := xml.Unmarshal(s.header[start:end+len(siteInfoEnd)], &si)
	return si, err == nil
}
