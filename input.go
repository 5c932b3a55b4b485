package wiktscan

import (
	"compress/bzip2"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	return r.close()
}

// Open opens a dump for scanning.
//
// Files ending in .bz2 are decompressed.  When index names the
// multistream index of a .bz2 dump, its streams are decompressed by
// workers goroutines in parallel instead.  The index itself may be
// plain or .bz2.
func Open(ctx context.Context, path, index string, workers int) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if index == "" {
		if !strings.HasSuffix(path, ".bz2") {
			return f, nil
		}
		return readCloser{bzip2.NewReader(f), f.Close}, nil
	}

	streams, err := readIndex(index, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	msr := NewMultiStreamReader(ctx, f, streams, workers)
	return readCloser{msr, func() error {
		msr.Close()
		return f.Close()
	}}, nil
}

func readIndex(path string, data *os.File) ([]Stream, error) {
	st, err := data.Stat()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}
	streams, err := ReadStreams(r, st.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return streams, nil
}
